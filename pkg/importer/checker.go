package importer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var sourceUp = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "stressmatch_corpus_source_up",
	Help: "Whether the last HEAD request against a corpus source URL succeeded (1) or not (0).",
}, []string{"adapter"})

// Checker periodically sends HEAD requests to every corpus source URL and
// records whether the upstream dictionary is still reachable.
type Checker struct {
	sources  *SourceDB
	logger   *slog.Logger
	interval time.Duration
	client   *http.Client
}

func NewChecker(sources *SourceDB, logger *slog.Logger, interval time.Duration) *Checker {
	return &Checker{
		sources:  sources,
		logger:   logger,
		interval: interval,
		client: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Run checks immediately, then every interval until ctx is cancelled.
// It always returns nil so it can sit in an errgroup next to the server.
func (c *Checker) Run(ctx context.Context) error {
	c.CheckAll(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.CheckAll(ctx)
		}
	}
}

// CheckAll checks every source once and returns the number that failed.
func (c *Checker) CheckAll(ctx context.Context) int {
	sources, err := c.sources.ListSources()
	if err != nil {
		c.logger.Error("source check: cannot list sources", "error", err)
		return 0
	}

	var failed int
	for _, src := range sources {
		if ctx.Err() != nil {
			return failed
		}

		status, checkErr := c.checkOne(ctx, src.SourceURL)
		errMsg := ""
		if checkErr != nil {
			errMsg = checkErr.Error()
		}
		if err := c.sources.UpdateCheck(src.AdapterID, status, errMsg); err != nil {
			c.logger.Error("source check: update failed", "adapter", src.AdapterID, "error", err)
		}

		if status >= 200 && status < 400 {
			sourceUp.WithLabelValues(src.AdapterID).Set(1)
			continue
		}
		failed++
		sourceUp.WithLabelValues(src.AdapterID).Set(0)
		c.logger.Warn("source unreachable",
			"adapter", src.AdapterID,
			"url", src.SourceURL,
			"status", status,
			"error", errMsg,
		)
	}

	if len(sources) > 0 {
		c.logger.Info("source check complete", "total", len(sources), "failed", failed)
	}
	return failed
}

// checkOne returns the HEAD status code, or 0 on a network error.
func (c *Checker) checkOne(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HEAD %s: %w", url, err)
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
