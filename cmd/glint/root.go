package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/glint/internal/config"
	"github.com/dshills/glint/internal/editor"
	"github.com/dshills/glint/internal/theme"
)

// chromaPrefix selects a chroma style as the theme, as in "chroma:monokai".
const chromaPrefix = "chroma:"

// errCheckFailed reports that format --check found unformatted input.
// It maps to exit status 2 so scripts can tell it from a hard failure.
var errCheckFailed = errors.New("input is not formatted")

func exitCode(err error) int {
	if errors.Is(err, errCheckFailed) {
		return 2
	}
	return 1
}

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	theme      string
	language   string
	debug      bool
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "glint",
		Short: "Highlight, complete and format source snippets",
		Long: `glint colors source text with a small set of built-in language profiles
and themes, suggests keyword and identifier completions, and normalizes
whitespace. Run "glint edit" for the interactive viewer.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", config.DefaultPath(), "config file (TOML or YAML)")
	flags.StringVarP(&opts.theme, "theme", "t", "", `theme id, or "chroma:<style>" for a chroma style`)
	flags.StringVarP(&opts.language, "language", "l", "", "language id (default: detect from the file)")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(
		newHighlightCmd(opts),
		newCompleteCmd(opts),
		newFormatCmd(opts),
		newLanguagesCmd(opts),
		newThemesCmd(opts),
		newEditCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// logger returns a text logger on w at the level selected by --debug.
func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the config file and applies the --theme and --language
// overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", o.configPath, err)
	}
	if o.theme != "" {
		name := o.theme
		if style, ok := strings.CutPrefix(name, chromaPrefix); ok {
			p, err := theme.FromChroma(style)
			if err != nil {
				return nil, err
			}
			cfg.Themes = append(cfg.Themes, specOf(p))
			name = string(p.ID)
		}
		cfg.Theme = name
	}
	if o.language != "" {
		cfg.Language = o.language
	}
	return cfg, nil
}

// session builds an editor session from the effective configuration.
func (o *rootOptions) session(logger *slog.Logger) (*editor.Session, *config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := editor.NewSessionFromConfig(cfg, editor.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

// open loads path into a new document. "-" reads standard input.
func open(cmd *cobra.Command, s *editor.Session, path string) (*editor.Document, error) {
	if path != "-" {
		return s.OpenNew(path)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	doc := s.New()
	doc.Name = "stdin"
	doc.Text = string(data)
	doc.Caret = doc.Len()
	if !cmd.Flags().Changed("language") {
		if p, ok := s.Languages().Detect("", data); ok {
			doc.Language = p
		}
	}
	return doc, nil
}

// writeText writes s to w with a trailing newline.
func writeText(w io.Writer, s string) error {
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}

func specOf(p theme.Profile) theme.Spec {
	return theme.Spec{
		ID:         string(p.ID),
		Name:       p.DisplayName,
		Background: p.Background.Hex(),
		Text:       p.Text.Hex(),
		Caret:      p.Caret.Hex(),
	}
}

// fileMode returns the permissions of path, or 0o644 when it cannot be read.
func fileMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "glint %s\n", versionString())
			return err
		},
	}
}
