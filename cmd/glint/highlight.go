package main

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/dshills/glint/internal/renderer/ansi"
)

func newHighlightCmd(opts *rootOptions) *cobra.Command {
	var (
		lineNumbers bool
		background  bool
		colorMode   string
	)

	cmd := &cobra.Command{
		Use:     "highlight FILE",
		Aliases: []string{"cat"},
		Short:   "Print a file with syntax highlighting",
		Long: `Print FILE with ANSI colors from the selected theme. Use "-" to read
standard input.

Examples:
  glint highlight main.js
  glint highlight -n --theme chroma:monokai page.html
  cat style.css | glint highlight --language css -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := colorProfile(colorMode, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			s, _, err := opts.session(opts.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			doc, err := open(cmd, s, args[0])
			if err != nil {
				return err
			}

			out := ansi.Render(s.Highlight(doc), doc.Theme, ansi.Options{
				Profile:     profile,
				Background:  background,
				LineNumbers: lineNumbers,
			})
			return writeText(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().BoolVarP(&lineNumbers, "line-numbers", "n", false, "prefix lines with their number")
	cmd.Flags().BoolVarP(&background, "background", "b", false, "paint the theme background")
	cmd.Flags().StringVar(&colorMode, "color", "auto", "color mode: auto, truecolor, 256, 16 or none")
	return cmd
}

// colorProfile maps a --color value to a termenv profile. "auto" inspects w.
func colorProfile(mode string, w io.Writer) (termenv.Profile, error) {
	switch mode {
	case "auto", "":
		return ansi.DetectProfile(w), nil
	case "truecolor":
		return termenv.TrueColor, nil
	case "256":
		return termenv.ANSI256, nil
	case "16":
		return termenv.ANSI, nil
	case "none":
		return termenv.Ascii, nil
	default:
		return termenv.Ascii, fmt.Errorf("unknown color mode %q", mode)
	}
}
