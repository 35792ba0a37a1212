package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dshills/glint/internal/completion"
	"github.com/dshills/glint/internal/config/loader"
	"github.com/dshills/glint/internal/language"
	"github.com/dshills/glint/internal/renderer/highlight"
	"github.com/dshills/glint/internal/theme"
)

// Config holds glint's settings.
type Config struct {
	// Theme is the id of the initial theme.
	Theme string
	// Language forces a language id. Empty means detect per file.
	Language string
	// Completion tunes the suggestion popup.
	Completion CompletionConfig
	// Palette overrides accent colors by token type name.
	Palette map[string]string
	// Extensions maps file extensions to language ids.
	Extensions map[string]string
	// Themes adds or replaces themes.
	Themes []theme.Spec
}

// CompletionConfig holds completion engine settings.
type CompletionConfig struct {
	MinPrefix int
	MaxItems  int
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Theme: string(theme.Default().ID),
		Completion: CompletionConfig{
			MinPrefix: completion.DefaultMinPrefix,
		},
	}
}

// DefaultPath returns the user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "glint.toml"
	}
	return filepath.Join(dir, "glint", "config.toml")
}

// Load reads path from fsys, applies GLINT_* environment overrides and
// validates the result. A missing file yields the defaults.
func Load(fsys loader.FileSystem, path string) (*Config, error) {
	return load(fsys, path, loader.NewEnvLoader())
}

// LoadFile is Load on the OS file system.
func LoadFile(path string) (*Config, error) {
	return Load(loader.DefaultFS(), path)
}

func load(fsys loader.FileSystem, path string, env loader.Loader) (*Config, error) {
	var data map[string]any
	if path != "" {
		l, err := loader.ForPath(fsys, path)
		if err != nil {
			return nil, err
		}
		if data, err = l.Load(); err != nil {
			return nil, err
		}
	}
	if env != nil {
		overrides, err := env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		data = loader.DeepMerge(data, overrides)
	}

	cfg, err := FromMap(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var knownKeys = []string{"theme", "language", "completion", "palette", "extensions", "themes"}

// FromMap builds a Config from a decoded document, starting from the
// defaults. All type errors are reported together.
func FromMap(data map[string]any) (*Config, error) {
	cfg := Default()
	var errs []error

	for key := range data {
		if !slices.Contains(knownKeys, key) {
			errs = append(errs, &ValidationError{Path: key, Message: "unknown setting", Value: data[key], Err: ErrUnknownSetting})
		}
	}

	if v, ok := data["theme"]; ok {
		s, err := asString("theme", v)
		errs = append(errs, err)
		cfg.Theme = s
	}
	if v, ok := data["language"]; ok {
		s, err := asString("language", v)
		errs = append(errs, err)
		cfg.Language = s
	}
	if v, ok := data["completion"]; ok {
		errs = append(errs, decodeCompletion(v, &cfg.Completion))
	}
	if v, ok := data["palette"]; ok {
		m, err := asStringMap("palette", v)
		errs = append(errs, err)
		cfg.Palette = m
	}
	if v, ok := data["extensions"]; ok {
		m, err := asStringMap("extensions", v)
		errs = append(errs, err)
		cfg.Extensions = m
	}
	if v, ok := data["themes"]; ok {
		specs, err := decodeThemes(v)
		errs = append(errs, err)
		cfg.Themes = specs
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeCompletion(v any, out *CompletionConfig) error {
	m, ok := v.(map[string]any)
	if !ok {
		return &TypeError{Path: "completion", Expected: "table", Actual: typeName(v)}
	}
	var errs []error
	for key, val := range m {
		path := "completion." + key
		switch key {
		case "min_prefix":
			n, err := asInt(path, val)
			errs = append(errs, err)
			out.MinPrefix = n
		case "max_items":
			n, err := asInt(path, val)
			errs = append(errs, err)
			out.MaxItems = n
		default:
			errs = append(errs, &ValidationError{Path: path, Message: "unknown setting", Value: val, Err: ErrUnknownSetting})
		}
	}
	return errors.Join(errs...)
}

func decodeThemes(v any) ([]theme.Spec, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, &TypeError{Path: "themes", Expected: "array", Actual: typeName(v)}
	}
	specs := make([]theme.Spec, 0, len(list))
	var errs []error
	for i, item := range list {
		path := fmt.Sprintf("themes[%d]", i)
		m, err := asStringMap(path, item)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		specs = append(specs, theme.Spec{
			ID:         m["id"],
			Name:       m["name"],
			Background: m["background"],
			Text:       m["text"],
			Caret:      m["caret"],
		})
	}
	return specs, errors.Join(errs...)
}

func asString(path string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// asInt accepts the integer representations produced by the TOML and
// YAML decoders.
func asInt(path string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		if n <= math.MaxInt {
			return int(n), nil
		}
	case float64:
		if n == math.Trunc(n) && math.Abs(n) <= math.MaxInt32 {
			return int(n), nil
		}
	}
	return 0, &TypeError{Path: path, Expected: "integer", Actual: typeName(v)}
}

func asStringMap(path string, v any) (map[string]string, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &TypeError{Path: path, Expected: "table", Actual: typeName(v)}
	}
	out := make(map[string]string, len(m))
	var errs []error
	for key, val := range m {
		s, err := asString(path+"."+key, val)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[key] = s
	}
	return out, errors.Join(errs...)
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}

// Validate checks cross-field constraints: the theme and language must
// resolve, numbers must be in range and colors must parse.
func (c *Config) Validate() error {
	var errs []error

	themes, err := c.ThemeRegistry()
	if err != nil {
		errs = append(errs, err)
	} else if _, err := themes.Resolve(theme.ID(c.Theme)); err != nil {
		errs = append(errs, &ValidationError{Path: "theme", Message: "unknown theme", Value: c.Theme, Err: err})
	}

	if strings.TrimSpace(c.Language) != "" {
		if _, err := language.ParseID(c.Language); err != nil {
			errs = append(errs, &ValidationError{Path: "language", Message: "unknown language", Value: c.Language, Err: err})
		}
	}

	if c.Completion.MinPrefix < 1 {
		errs = append(errs, &ValidationError{Path: "completion.min_prefix", Message: "must be at least 1", Value: c.Completion.MinPrefix})
	}
	if c.Completion.MaxItems < 0 {
		errs = append(errs, &ValidationError{Path: "completion.max_items", Message: "must not be negative", Value: c.Completion.MaxItems})
	}

	if _, err := c.HighlightPalette(); err != nil {
		errs = append(errs, &ValidationError{Path: "palette", Message: "invalid palette", Value: c.Palette, Err: err})
	}
	if _, err := c.LanguageRegistry(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// HighlightPalette returns the default accents with the configured
// overrides applied.
func (c *Config) HighlightPalette() (highlight.Palette, error) {
	return highlight.DefaultPalette().WithOverrides(c.Palette)
}

// ThemeRegistry returns the built-in themes plus the configured ones.
func (c *Config) ThemeRegistry() (*theme.Registry, error) {
	reg := theme.NewRegistry()
	for i, spec := range c.Themes {
		p, err := theme.FromSpec(spec)
		if err != nil {
			return nil, &ValidationError{Path: fmt.Sprintf("themes[%d]", i), Message: "invalid theme", Value: spec.ID, Err: err}
		}
		reg.Register(p)
	}
	return reg, nil
}

// LanguageRegistry returns the language registry with the configured
// extension overrides.
func (c *Config) LanguageRegistry() (*language.Registry, error) {
	reg := language.NewRegistry()
	exts := make([]string, 0, len(c.Extensions))
	for ext := range c.Extensions {
		exts = append(exts, ext)
	}
	slices.Sort(exts)

	var errs []error
	for _, ext := range exts {
		id := language.ID(strings.ToLower(c.Extensions[ext]))
		if err := reg.WithExtension(ext, id); err != nil {
			errs = append(errs, &ValidationError{Path: "extensions." + ext, Message: "invalid mapping", Value: c.Extensions[ext], Err: err})
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return reg, nil
}

// Engine returns the configured completion engine.
func (c *Config) Engine() completion.Engine {
	return completion.Engine{
		MinPrefix: c.Completion.MinPrefix,
		MaxItems:  c.Completion.MaxItems,
	}
}
