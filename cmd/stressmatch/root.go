package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hazyhaar/stressmatch/pkg/corpus"
	"github.com/hazyhaar/stressmatch/pkg/match"
	"github.com/hazyhaar/stressmatch/pkg/phrases"
	"github.com/hazyhaar/stressmatch/pkg/stress"
)

// errReported means the command already told the user what went wrong.
var errReported = errors.New("reported")

const prompt = "\nEnter a phrase (x to exit): "

// app carries state shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config
	logger  *slog.Logger
	in      io.Reader
	out     io.Writer

	// onListen, when set, receives the bound server address.
	onListen func(net.Addr)
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), in: in, out: out}
	var listFile string

	root := &cobra.Command{
		Use:   "stressmatch [phrase]",
		Short: "Find phrases with the same stress pattern as yours",
		Long: `stressmatch looks up every word of a phrase in the CMU Pronouncing
Dictionary, builds its stress signature (1 primary, 2 secondary, 0 unstressed)
and prints every line of a phrase list that has exactly the same signature.

Without a phrase it prompts repeatedly until you enter x.

Example:
  stressmatch "never gonna give you up"
  stressmatch -l songs.tsv "yellow submarine"`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMatch(cmd, args, listFile)
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./stressmatch.yaml or ~/.stressmatch/stressmatch.yaml)")
	root.PersistentFlags().String("corpus", "", "corpus directory (manifest.yaml) or raw CMU dictionary file")
	_ = a.v.BindPFlag("corpus", root.PersistentFlags().Lookup("corpus"))
	root.Flags().StringVarP(&listFile, "phrase-list", "l", "", "path to newline-separated list of phrases (default: the configured default list)")

	root.AddCommand(
		newStressCmd(a),
		newServeCmd(a),
		newImportCmd(a),
		newMCPCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init() error {
	cfg, err := loadConfig(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	a.cfg, a.logger = cfg, logger
	return nil
}

func (a *app) loadCorpus() (*corpus.Corpus, error) {
	c, err := corpus.Load(a.cfg.Corpus)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w (run \"stressmatch import cmudict-en\" first, or pass --corpus)", err)
		}
		return nil, err
	}
	a.logger.Debug("corpus loaded", "corpus", c.Manifest.ID, "words", c.Len())
	return c, nil
}

func (a *app) newEngine(c *corpus.Corpus, b *stress.Builder) *match.Engine {
	return match.NewEngine(b,
		match.WithCache(a.cfg.CacheTTL),
		match.WithSuggester(c, a.cfg.Suggestions),
	)
}

func (a *app) runMatch(cmd *cobra.Command, args []string, listFile string) error {
	if listFile == "" {
		listFile = a.cfg.defaultListFile()
	}
	if _, err := os.Stat(listFile); err != nil {
		fmt.Fprintf(a.out, "Error: Phrase list file %s not found.\n", listFile)
		return errReported
	}

	c, err := a.loadCorpus()
	if err != nil {
		return err
	}
	b := stress.NewBuilder(c)
	idx, err := phrases.LoadFile(listFile, b)
	if err != nil {
		return err
	}
	a.logger.Debug("phrase list loaded", "path", listFile, "entries", idx.Entries(), "dropped", idx.Dropped())
	engine := a.newEngine(c, b)

	if len(args) == 1 {
		fmt.Fprintln(a.out, engine.MatchPhrase(args[0], idx))
		return nil
	}
	return interactive(cmd.Context().Done(), a.in, a.out, engine, idx)
}

// interactive prompts until the user enters x, input ends, or done is closed.
func interactive(done <-chan struct{}, in io.Reader, out io.Writer, engine *match.Engine, src match.Source) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		select {
		case <-done:
			return nil
		default:
		}
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "x" {
			return nil
		}
		fmt.Fprintln(out, engine.MatchPhrase(line, src))
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stressmatch %s\n", version)
		},
	}
}
