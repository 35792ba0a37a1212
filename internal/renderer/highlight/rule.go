package highlight

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dlclark/regexp2"
	gocache "github.com/patrickmn/go-cache"

	"github.com/dshills/glint/internal/renderer/core"
)

// MatchTimeout bounds a single pattern evaluation so a pathological
// pattern cannot stall a render.
const MatchTimeout = 250 * time.Millisecond

// ErrInvalidPattern indicates a rule pattern that does not compile.
var ErrInvalidPattern = errors.New("invalid pattern")

// Rule pairs a pattern with the color painted over its matches.
// Patterns use the regexp2 dialect, which supports lookahead.
type Rule struct {
	Kind    TokenType
	Pattern string
	Color   core.Color
}

// PatternError describes a pattern that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns ErrInvalidPattern and the underlying compile error.
func (e *PatternError) Unwrap() []error {
	return []error{ErrInvalidPattern, e.Err}
}

type compiled struct {
	re  *regexp2.Regexp
	err error
}

// patterns memoizes compilation, failures included, for the process lifetime.
var patterns = gocache.New(gocache.NoExpiration, 0)

// Compile returns the compiled form of pattern, reusing earlier results.
func Compile(pattern string) (*regexp2.Regexp, error) {
	if v, ok := patterns.Get(pattern); ok {
		c := v.(compiled)
		return c.re, c.err
	}

	var c compiled
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		c.err = &PatternError{Pattern: pattern, Err: err}
	} else {
		re.MatchTimeout = MatchTimeout
		c.re = re
	}
	patterns.Set(pattern, c, gocache.NoExpiration)
	return c.re, c.err
}

var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	pkgLogger.Store(slog.New(slog.DiscardHandler))
}

// SetLogger sets the logger used to report skipped rules. nil restores
// the discarding default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	pkgLogger.Store(l)
}

func logger() *slog.Logger {
	return pkgLogger.Load()
}
