// CLAUDE:SUMMARY stressmatch entry point: finds phrases that share the stress pattern of an input phrase.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errReported) {
			slog.Error("stressmatch failed", "error", err)
		}
		os.Exit(1)
	}
}
