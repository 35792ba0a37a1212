package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/glint/internal/app"
	"github.com/dshills/glint/internal/editor"
	"github.com/dshills/glint/internal/renderer/backend"
)

func newEditCmd(opts *rootOptions) *cobra.Command {
	var (
		noWatch   bool
		logFile   string
		popupRows int
	)

	cmd := &cobra.Command{
		Use:   "edit [FILE]",
		Short: "Open the interactive viewer",
		Long: `Open FILE, or a starter template when no file is given, in the terminal
viewer. The config file is reloaded when it changes.

Keys:
  Tab      accept the first suggestion (indent when none)
  Esc      hide suggestions
  Ctrl-T   next theme
  Ctrl-L   next language
  Ctrl-F   format
  Ctrl-R   reset to the language template
  Ctrl-Q   quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal owns the screen, so logs go to a file or nowhere.
			logger := slog.New(slog.DiscardHandler)
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer f.Close()
				logger = opts.logger(f)
			}

			s, _, err := opts.session(logger)
			if err != nil {
				return err
			}
			doc := openForEdit(s, args, logger)

			term, err := backend.NewTerminal()
			if err != nil {
				return fmt.Errorf("creating terminal: %w", err)
			}
			return runViewer(cmd, s, doc, term, app.Options{
				ConfigPath:  opts.configPath,
				WatchConfig: !noWatch,
				PopupRows:   popupRows,
				Logger:      logger,
			})
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the config file on change")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	cmd.Flags().IntVar(&popupRows, "popup-rows", app.DefaultPopupRows, "maximum visible suggestions")
	return cmd
}

// openForEdit returns the document for FILE, or a scratch document. A file
// that cannot be read still opens so the failure shows in the viewer.
func openForEdit(s *editor.Session, args []string, logger *slog.Logger) *editor.Document {
	doc := s.New()
	if len(args) == 0 {
		return doc
	}
	if err := s.Open(doc, args[0]); err != nil {
		logger.Warn("showing template", "err", err)
	}
	return doc
}

// runViewer runs the viewer on b until the user quits or the command
// context is canceled.
func runViewer(cmd *cobra.Command, s *editor.Session, doc *editor.Document, b backend.Backend, opts app.Options) error {
	application := app.New(s, doc, opts)
	if err := application.SetBackend(b); err != nil {
		return err
	}
	defer application.Shutdown()

	if err := application.Run(cmd.Context()); err != nil {
		return err
	}
	m := application.Metrics().Snapshot()
	opts.Logger.Debug("viewer closed", "frames", m.FrameCount, "inputs", m.InputCount, "reloads", m.Reloads, "avg_fps", m.AvgFPS())
	return nil
}
