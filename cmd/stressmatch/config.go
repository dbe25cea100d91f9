package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// config is the merged result of defaults, the config file, STRESSMATCH_*
// environment variables and flags (lowest to highest priority).
type config struct {
	Addr          string            `mapstructure:"addr"`
	Corpus        string            `mapstructure:"corpus"`
	Lists         map[string]string `mapstructure:"lists"`
	DefaultList   string            `mapstructure:"default_list"`
	CacheTTL      time.Duration     `mapstructure:"cache_ttl"`
	Suggestions   int               `mapstructure:"suggestions"`
	CheckInterval time.Duration     `mapstructure:"check_interval"`
	SourcesDB     string            `mapstructure:"sources_db"`
	LogLevel      string            `mapstructure:"log_level"`
}

const defaultListPath = "uk_number_ones.txt"

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8421")
	v.SetDefault("corpus", "corpus/cmudict-en")
	v.SetDefault("lists", map[string]string{"default": defaultListPath})
	v.SetDefault("default_list", "default")
	v.SetDefault("cache_ttl", "10m")
	v.SetDefault("suggestions", 3)
	v.SetDefault("check_interval", "24h")
	v.SetDefault("sources_db", "corpus/sources.db")
	v.SetDefault("log_level", "info")
}

// loadConfig reads cfgFile, or stressmatch.yaml from the working directory
// or ~/.stressmatch when cfgFile is empty. A missing default file is not an error.
func loadConfig(v *viper.Viper, cfgFile string) (*config, error) {
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("stressmatch")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".stressmatch"))
		}
	}

	v.SetEnvPrefix("STRESSMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Lists) == 0 {
		cfg.Lists = map[string]string{"default": defaultListPath}
	}
	if _, ok := cfg.Lists[cfg.DefaultList]; !ok {
		return nil, fmt.Errorf("default_list %q is not one of the configured lists", cfg.DefaultList)
	}
	return &cfg, nil
}

// defaultListFile is the path of the default phrase list.
func (c *config) defaultListFile() string {
	return c.Lists[c.DefaultList]
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}
