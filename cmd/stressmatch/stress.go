package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/stressmatch/pkg/match"
	"github.com/hazyhaar/stressmatch/pkg/stress"
)

func newStressCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stress <phrase>",
		Short: "Show the stress signature of a phrase word by word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCorpus()
			if err != nil {
				return err
			}
			ex := a.newEngine(c, stress.NewBuilder(c)).Explain(args[0], nil)
			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(ex)
			}
			return printExplanation(a.out, ex)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	return cmd
}

func printExplanation(out io.Writer, ex match.Explanation) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, w := range ex.Words {
		switch {
		case !w.Known && len(ex.Suggestions[w.Word]) > 0:
			fmt.Fprintf(tw, "%s\t?\tdid you mean: %s\n", display(w.Word), strings.Join(ex.Suggestions[w.Word], ", "))
		case !w.Known:
			fmt.Fprintf(tw, "%s\t?\tnot in corpus\n", display(w.Word))
		default:
			fmt.Fprintf(tw, "%s\t%s\t\n", w.Word, w.Signature)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if ex.OK {
		_, err := fmt.Fprintf(out, "signature: %s\n", ex.Signature)
		return err
	}
	_, err := fmt.Fprintf(out, "signature: none (%d unknown word(s))\n", len(ex.Unknown))
	return err
}

// display makes an empty word (from a doubled space) visible.
func display(word string) string {
	if word == "" {
		return `""`
	}
	return word
}
