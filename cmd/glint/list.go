package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/glint/internal/language"
	"github.com/dshills/glint/internal/theme"
)

func newLanguagesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			extra := make(map[language.ID][]string)
			for ext, id := range cfg.Extensions {
				lid := language.ID(strings.ToLower(id))
				extra[lid] = append(extra[lid], strings.ToLower(ext))
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tFAMILY\tEXTENSIONS")
			for _, p := range language.All() {
				exts := append(p.Extensions, extra[p.ID]...)
				slices.Sort(exts)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.DisplayName, p.Family, strings.Join(exts, " "))
			}
			return tw.Flush()
		},
	}
}

func newThemesCmd(opts *rootOptions) *cobra.Command {
	var chroma bool

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List the available themes",
		Long: `List the built-in and configured themes. The active theme is marked
with "*". With --chroma the chroma style names usable as
"--theme chroma:<style>" are listed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if chroma {
				for _, name := range theme.ChromaStyles() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			s, cfg, err := opts.session(opts.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "\tID\tNAME\tBACKGROUND\tTEXT\tCARET")
			for _, p := range s.Themes().All() {
				mark := ""
				if string(p.ID) == cfg.Theme {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", mark, p.ID, p.DisplayName, p.Background, p.Text, p.Caret)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&chroma, "chroma", false, "list chroma styles")
	cmd.AddCommand(newThemesImportCmd(), newThemesExportCmd(opts))
	return cmd
}

// themeEntry is one [[themes]] table of the config file.
type themeEntry struct {
	ID         string `toml:"id" yaml:"id"`
	Name       string `toml:"name" yaml:"name"`
	Background string `toml:"background" yaml:"background"`
	Text       string `toml:"text" yaml:"text"`
	Caret      string `toml:"caret" yaml:"caret"`
}

type themeFile struct {
	Themes []themeEntry `toml:"themes" yaml:"themes"`
}

func newThemesImportCmd() *cobra.Command {
	var (
		id     string
		output string
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Convert a VS Code color theme to a config entry",
		Long: `Read the editor colors of a VS Code color theme and print a themes
entry to paste into the config file. The id defaults to the file name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if id == "" {
				id = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			p, err := theme.FromVSCode(theme.ID(strings.ToLower(id)), data)
			if err != nil {
				return err
			}

			spec := specOf(p)
			file := themeFile{Themes: []themeEntry{{
				ID:         spec.ID,
				Name:       spec.Name,
				Background: spec.Background,
				Text:       spec.Text,
				Caret:      spec.Caret,
			}}}

			var out []byte
			switch output {
			case "toml":
				out, err = toml.Marshal(file)
			case "yaml":
				out, err = yaml.Marshal(file)
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "theme id")
	cmd.Flags().StringVarP(&output, "output", "o", "toml", "output format: toml or yaml")
	return cmd
}

func newThemesExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export ID",
		Short: "Print a theme as a VS Code color theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := opts.session(opts.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			p, err := s.Themes().Resolve(theme.ID(args[0]))
			if err != nil {
				return err
			}
			data, err := theme.ToVSCode(p)
			if err != nil {
				return err
			}
			return writeText(cmd.OutOrStdout(), string(data))
		},
	}
}
