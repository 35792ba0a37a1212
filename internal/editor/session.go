package editor

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	gocache "github.com/patrickmn/go-cache"

	"github.com/dshills/glint/internal/completion"
	"github.com/dshills/glint/internal/config"
	"github.com/dshills/glint/internal/config/loader"
	"github.com/dshills/glint/internal/format"
	"github.com/dshills/glint/internal/language"
	"github.com/dshills/glint/internal/renderer/highlight"
	"github.com/dshills/glint/internal/theme"
)

// Highlight results are kept briefly so redraws without edits are free.
const (
	highlightTTL     = 2 * time.Minute
	highlightCleanup = 5 * time.Minute
)

// Session owns the registries, engines and caches shared by the documents
// it opens. Its methods are safe for concurrent use; a Document is not and
// belongs to one caller at a time.
type Session struct {
	mu          sync.RWMutex
	languages   *language.Registry
	themes      *theme.Registry
	engine      completion.Engine
	highlighter *highlight.Highlighter
	forced      language.ID
	defaultLang language.ID
	defaultTh   theme.ID

	fs     loader.FileSystem
	logger *slog.Logger
	cache  *gocache.Cache
}

// Option configures a Session.
type Option func(*Session)

// WithFS sets the file system documents are opened from.
func WithFS(fsys loader.FileSystem) Option {
	return func(s *Session) {
		if fsys != nil {
			s.fs = fsys
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a session with built-in languages and themes.
func NewSession(opts ...Option) *Session {
	s := &Session{
		languages:   language.NewRegistry(),
		themes:      theme.NewRegistry(),
		engine:      completion.DefaultEngine,
		highlighter: highlight.New(highlight.DefaultPalette()),
		defaultLang: language.JavaScript,
		defaultTh:   theme.Default().ID,
		fs:          loader.DefaultFS(),
		logger:      slog.New(slog.DiscardHandler),
		cache:       gocache.New(highlightTTL, highlightCleanup),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSessionFromConfig creates a session configured by cfg.
func NewSessionFromConfig(cfg *config.Config, opts ...Option) (*Session, error) {
	s := NewSession(opts...)
	if err := s.Apply(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply replaces the session's settings with cfg. Cached highlights are
// dropped since the palette or themes may have changed.
func (s *Session) Apply(cfg *config.Config) error {
	langs, err := cfg.LanguageRegistry()
	if err != nil {
		return err
	}
	themes, err := cfg.ThemeRegistry()
	if err != nil {
		return err
	}
	th, err := themes.Resolve(theme.ID(cfg.Theme))
	if err != nil {
		return err
	}
	palette, err := cfg.HighlightPalette()
	if err != nil {
		return err
	}
	var forced language.ID
	if cfg.Language != "" {
		if forced, err = language.ParseID(cfg.Language); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.languages = langs
	s.themes = themes
	s.engine = cfg.Engine()
	s.highlighter = highlight.New(palette)
	s.defaultTh = th.ID
	s.forced = forced
	s.defaultLang = language.JavaScript
	if forced != "" {
		s.defaultLang = forced
	}
	s.mu.Unlock()

	s.cache.Flush()
	s.logger.Debug("session configured", "theme", th.ID, "language", forced, "min_prefix", cfg.Completion.MinPrefix)
	return nil
}

// Themes returns the session's theme registry.
func (s *Session) Themes() *theme.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.themes
}

// Languages returns the session's language registry.
func (s *Session) Languages() *language.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.languages
}

// New creates an untitled document with the default language and theme.
func (s *Session) New() *Document {
	s.mu.RLock()
	lang := language.MustLookup(s.defaultLang)
	th, ok := s.themes.Lookup(s.defaultTh)
	s.mu.RUnlock()
	if !ok {
		th = theme.Default()
	}
	return NewDocument(lang, th)
}

// Open reads path into doc. The language is detected from the file name
// and content unless the session forces one; an undetected language keeps
// the current one. On failure the text is kept, the name reports the
// failure and the error is returned.
func (s *Session) Open(doc *Document, path string) error {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		doc.Name = OpenFailedName
		s.logger.Warn("open failed", "path", path, "err", err)
		return fmt.Errorf("opening %s: %w", path, err)
	}

	doc.Text = string(data)
	doc.Caret = 0
	doc.Path = path
	doc.Name = filepath.Base(path)
	doc.Modified = false

	s.mu.RLock()
	forced, langs := s.forced, s.languages
	s.mu.RUnlock()

	if forced != "" {
		doc.Language = language.MustLookup(forced)
	} else if p, ok := langs.Detect(path, data); ok {
		doc.Language = p
	}
	s.logger.Debug("opened document", "id", doc.ID, "path", path, "language", doc.Language.ID, "runes", doc.Len())
	return nil
}

// OpenNew is New followed by Open.
func (s *Session) OpenNew(path string) (*Document, error) {
	doc := s.New()
	if err := s.Open(doc, path); err != nil {
		return nil, err
	}
	return doc, nil
}

// Highlight colors the document. Results are cached by content, language
// and theme.
func (s *Session) Highlight(doc *Document) highlight.StyledText {
	key := highlightKey(doc)
	if v, ok := s.cache.Get(key); ok {
		return v.(highlight.StyledText)
	}

	s.mu.RLock()
	h := s.highlighter
	s.mu.RUnlock()

	st := h.Highlight(doc.Text, doc.Language, doc.Theme)
	s.cache.Set(key, st, gocache.DefaultExpiration)
	return st
}

func highlightKey(doc *Document) string {
	return fmt.Sprintf("%016x/%s/%s/%s", xxhash.Sum64String(doc.Text), doc.Language.ID, doc.Theme.ID, doc.Theme.Text.Hex())
}

// Suggestions returns completion items for the token at the caret.
func (s *Session) Suggestions(doc *Document) []completion.Item {
	s.mu.RLock()
	e := s.engine
	s.mu.RUnlock()
	return e.Suggest(doc.Text, doc.Caret, doc.Language)
}

// Accept applies suggestion at the caret.
func (s *Session) Accept(doc *Document, suggestion string) {
	text, caret := completion.Apply(doc.Text, doc.Caret, suggestion)
	doc.setText(text, caret)
}

// AcceptFirst applies the first suggestion, if any.
func (s *Session) AcceptFirst(doc *Document) bool {
	items := s.Suggestions(doc)
	if len(items) == 0 {
		return false
	}
	s.Accept(doc, items[0].Label)
	return true
}

// SetLanguage switches the document language. An empty document receives
// the language's starter template.
func (s *Session) SetLanguage(doc *Document, id language.ID) error {
	p, ok := s.Languages().Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", language.ErrUnknownLanguage, id)
	}
	setLanguage(doc, p)
	return nil
}

// CycleLanguage switches to the next language.
func (s *Session) CycleLanguage(doc *Document) {
	setLanguage(doc, s.Languages().Next(doc.Language.ID))
}

func setLanguage(doc *Document, p language.Profile) {
	doc.Language = p
	if doc.Text == "" {
		doc.Text = p.StarterTemplate
		doc.Caret = 0
	}
}

// SetTheme switches the document theme.
func (s *Session) SetTheme(doc *Document, id theme.ID) error {
	th, err := s.Themes().Resolve(id)
	if err != nil {
		return err
	}
	doc.Theme = th
	return nil
}

// CycleTheme switches to the next theme.
func (s *Session) CycleTheme(doc *Document) {
	doc.Theme = s.Themes().Next(doc.Theme.ID)
}

// Reset restores the starter template and detaches the file.
func (s *Session) Reset(doc *Document) {
	doc.Text = doc.Language.StarterTemplate
	doc.Caret = 0
	doc.Name = UntitledName
	doc.Path = ""
	doc.Modified = false
}

// Format normalizes whitespace. It reports whether the text changed.
func (s *Session) Format(doc *Document) bool {
	formatted := format.Format(doc.Text)
	if formatted == doc.Text {
		return false
	}
	doc.setText(formatted, doc.Caret)
	return true
}

// CachedHighlights returns the number of cached highlight results.
func (s *Session) CachedHighlights() int {
	return s.cache.ItemCount()
}
