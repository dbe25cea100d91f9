// CLAUDE:SUMMARY CLI subcommand that downloads pronunciation dictionaries and compiles them into corpus directories.
package main

import (
	"context"
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/stressmatch/pkg/importer"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		all       bool
		sources   []string
		outputDir string
		url       string
	)
	cmd := &cobra.Command{
		Use:   "import [source...]",
		Short: "Download and compile pronunciation dictionaries",
		Long: `Import downloads a pronunciation dictionary and writes data.gob and
manifest.yaml into <output-dir>/<corpus>/. Without arguments it lists the
available sources and the result of their last availability check.

Example:
  stressmatch import cmudict-en
  stressmatch import --source cmudict-en --output-dir /srv/corpus
  stressmatch import cmudict-0.7b --url https://mirror.example.org/cmudict-0.7b`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir == "" {
				outputDir = filepath.Dir(a.cfg.Corpus)
			}
			sdb, err := a.openSources()
			if err != nil {
				return err
			}
			defer sdb.Close()

			args = append(args, sources...)
			if all {
				args = nil
				for _, ad := range importer.All() {
					args = append(args, ad.ID())
				}
			}
			if len(args) == 0 {
				return listSources(a, sdb)
			}
			if url != "" {
				if len(args) != 1 {
					return fmt.Errorf("--url needs exactly one source")
				}
				if err := sdb.SetURL(args[0], url); err != nil {
					return err
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
			defer cancel()

			var failed int
			for _, id := range args {
				fmt.Fprintf(a.out, "[%s] importing...\n", id)
				if err := importer.Run(ctx, sdb, id, outputDir, a.logger); err != nil {
					fmt.Fprintf(a.out, "[%s] FAILED: %v\n", id, err)
					failed++
					continue
				}
				fmt.Fprintf(a.out, "[%s] OK\n", id)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d imports failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "import every available source")
	cmd.Flags().StringSliceVar(&sources, "source", nil, "adapter ID to import (repeatable; same as a positional argument)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory receiving corpus directories (default: parent of the configured corpus)")
	cmd.Flags().StringVar(&url, "url", "", "override and remember the download URL of the source")
	return cmd
}

func listSources(a *app, sdb *importer.SourceDB) error {
	sources, err := sdb.ListSources()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tCORPUS\tWORDS\tSTATUS\tDESCRIPTION")
	for _, src := range sources {
		words, status := "-", "unchecked"
		if src.Words != nil {
			words = fmt.Sprint(*src.Words)
		}
		if src.LastStatus != nil {
			status = fmt.Sprint(*src.LastStatus)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", src.AdapterID, src.CorpusID, words, status, src.Description)
	}
	return tw.Flush()
}
