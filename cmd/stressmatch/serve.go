package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hazyhaar/stressmatch/pkg/api"
	"github.com/hazyhaar/stressmatch/pkg/importer"
	"github.com/hazyhaar/stressmatch/pkg/match"
	"github.com/hazyhaar/stressmatch/pkg/phrases"
	"github.com/hazyhaar/stressmatch/pkg/stress"
)

func newServeCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and MCP server",
		Long: `Serve loads the corpus and every configured phrase list, then exposes
/v1/match, /v1/match/batch, /v1/stress/{phrase}, /v1/lists, /v1/health,
/metrics and an MCP endpoint at /mcp.

SIGHUP reloads the phrase lists; SIGINT/SIGTERM shut down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context(), watch)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8421)")
	_ = a.v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	cmd.Flags().BoolVar(&watch, "watch", true, "reload phrase lists when their files change")
	return cmd
}

// loadService loads the corpus and every configured phrase list.
func (a *app) loadService() (*phrases.Registry, *match.Engine, error) {
	c, err := a.loadCorpus()
	if err != nil {
		return nil, nil, err
	}
	b := stress.NewBuilder(c)

	reg := phrases.NewRegistry(b, a.cfg.Lists, a.cfg.DefaultList, a.logger)
	if err := reg.Load(); err != nil {
		return nil, nil, err
	}
	a.logger.Info("phrase lists loaded", "corpus", c.Manifest.ID, "words", c.Len(),
		"lists", reg.ListCount(), "entries", reg.TotalEntries())
	return reg, a.newEngine(c, b), nil
}

func (a *app) serve(ctx context.Context, watch bool) error {
	logger := a.logger

	reg, engine, err := a.loadService()
	if err != nil {
		return err
	}

	mcpSrv := api.NewMCPServer(reg, engine, version, logger)
	srv := &http.Server{
		Handler:           api.NewRouter(reg, engine, api.Options{Logger: logger, MCPServer: mcpSrv}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	ln, err := net.Listen("tcp", a.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.cfg.Addr, err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("stressmatch listening", "addr", ln.Addr().String())
		if a.onListen != nil {
			a.onListen(ln.Addr())
		}
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		sighup := make(chan os.Signal, 1)
		signal.Notify(sighup, syscall.SIGHUP)
		defer signal.Stop(sighup)
		return reloadOnSignal(ctx, sighup, reg, logger)
	})

	if watch {
		g.Go(func() error {
			return phrases.NewWatcher(reg, logger).Run(ctx)
		})
	}

	if a.cfg.CheckInterval > 0 {
		sdb, err := a.openSources()
		if err != nil {
			logger.Warn("source checks disabled", "error", err)
		} else {
			defer sdb.Close()
			g.Go(func() error {
				return importer.NewChecker(sdb, logger, a.cfg.CheckInterval).Run(ctx)
			})
		}
	}

	return g.Wait()
}

// reloadOnSignal reloads reg every time sig fires until ctx is done.
// A failed reload keeps the previous lists.
func reloadOnSignal(ctx context.Context, sig <-chan os.Signal, reg *phrases.Registry, logger *slog.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sig:
			logger.Info("SIGHUP received, reloading phrase lists")
			if err := reg.Reload(); err != nil {
				logger.Error("reload failed", "error", err)
				continue
			}
			logger.Info("phrase lists reloaded", "lists", reg.ListCount(), "entries", reg.TotalEntries())
		}
	}
}

// openSources opens the sources DB and seeds a row for every adapter.
func (a *app) openSources() (*importer.SourceDB, error) {
	if err := os.MkdirAll(filepath.Dir(a.cfg.SourcesDB), 0o755); err != nil {
		return nil, err
	}
	sdb, err := importer.OpenSourceDB(a.cfg.SourcesDB)
	if err != nil {
		return nil, err
	}
	if err := sdb.Seed(importer.All()); err != nil {
		sdb.Close()
		return nil, err
	}
	return sdb, nil
}
