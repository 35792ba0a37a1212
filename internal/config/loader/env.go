package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration overrides from environment variables.
type EnvLoader struct {
	mapping map[string]string // Env var -> config path
	lookup  func(string) (string, bool)
}

// DefaultEnvMapping returns the recognized environment variables.
func DefaultEnvMapping() map[string]string {
	return map[string]string{
		"GLINT_THEME":                 "theme",
		"GLINT_LANGUAGE":              "language",
		"GLINT_COMPLETION_MIN_PREFIX": "completion.min_prefix",
		"GLINT_COMPLETION_MAX_ITEMS":  "completion.max_items",
	}
}

// NewEnvLoader creates a loader over the process environment.
func NewEnvLoader() *EnvLoader {
	return &EnvLoader{
		mapping: DefaultEnvMapping(),
		lookup:  os.LookupEnv,
	}
}

// Load reads the mapped variables. Unset variables are skipped; empty
// values are kept.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for env, path := range l.mapping {
		if val, ok := l.lookup(env); ok {
			setByPath(config, path, parseValue(val))
		}
	}
	return config, nil
}

// parseValue keeps integers numeric so env overrides type-check the same
// way file values do.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
		return i
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
