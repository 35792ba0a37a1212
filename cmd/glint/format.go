package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/glint/internal/format"
)

func newFormatCmd(opts *rootOptions) *cobra.Command {
	var (
		diff  bool
		write bool
		check bool
	)

	cmd := &cobra.Command{
		Use:   "format FILE",
		Short: "Normalize whitespace",
		Long: `Trim each line, drop blank lines, expand tabs to two spaces and end
the text with one newline. By default the result is printed. --diff prints a
unified diff instead, --write rewrites FILE in place and --check exits
with status 2 when FILE would change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if write && args[0] == "-" {
				return fmt.Errorf("--write needs a file, not stdin")
			}
			logger := opts.logger(cmd.ErrOrStderr())
			s, _, err := opts.session(logger)
			if err != nil {
				return err
			}
			doc, err := open(cmd, s, args[0])
			if err != nil {
				return err
			}

			before := doc.Text
			changed := s.Format(doc)
			out := cmd.OutOrStdout()

			switch {
			case check:
				if changed {
					fmt.Fprintln(out, args[0])
					return errCheckFailed
				}
				return nil
			case diff:
				_, err := fmt.Fprint(out, format.Unified(before, doc.Text))
				return err
			case write:
				if !changed {
					return nil
				}
				if err := os.WriteFile(args[0], []byte(doc.Text), fileMode(args[0])); err != nil {
					return fmt.Errorf("writing %s: %w", args[0], err)
				}
				logger.Debug("formatted", "path", args[0])
				return nil
			default:
				_, err := fmt.Fprint(out, doc.Text)
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&diff, "diff", false, "print a unified diff")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place")
	cmd.Flags().BoolVar(&check, "check", false, "exit with status 2 if the file is not formatted")
	cmd.MarkFlagsMutuallyExclusive("diff", "write", "check")
	return cmd
}
