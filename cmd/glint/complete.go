package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCompleteCmd(opts *rootOptions) *cobra.Command {
	var (
		caret  int
		accept bool
	)

	cmd := &cobra.Command{
		Use:   "complete FILE",
		Short: "List completions at a caret offset",
		Long: `List the suggestions for the identifier fragment before --caret, a rune
offset into FILE. A negative offset means the end of the text. With
--accept the first suggestion is applied and the new text printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := opts.session(opts.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			doc, err := open(cmd, s, args[0])
			if err != nil {
				return err
			}
			if caret >= 0 {
				doc.Caret = min(caret, doc.Len())
			} else {
				doc.Caret = doc.Len()
			}

			out := cmd.OutOrStdout()
			if accept {
				if !s.AcceptFirst(doc) {
					return fmt.Errorf("no completion at offset %d", doc.Caret)
				}
				return writeText(out, doc.Text)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, item := range s.Suggestions(doc) {
				fmt.Fprintf(tw, "%s\t%s\n", item.Label, item.Kind)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&caret, "caret", -1, "caret rune offset (negative: end of text)")
	cmd.Flags().BoolVar(&accept, "accept", false, "apply the first suggestion and print the result")
	return cmd
}
