package loader

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOMLLoader_Load(t *testing.T) {
	fsys := fstest.MapFS{
		"glint.toml": {Data: []byte(`
theme = "paper"

[completion]
min_prefix = 3

[[themes]]
id = "dusk"
background = "#101010"
text = "#eeeeee"
`)},
	}

	config, err := NewTOMLLoaderWithFS(fsys, "glint.toml").Load()
	require.NoError(t, err)

	assert.Equal(t, "paper", config["theme"])
	completion, ok := config["completion"].(map[string]any)
	require.True(t, ok, "completion should be a table")
	assert.Equal(t, int64(3), completion["min_prefix"])

	themes, ok := config["themes"].([]any)
	require.True(t, ok, "themes should be an array, got %T", config["themes"])
	require.Len(t, themes, 1)
	assert.Equal(t, "dusk", themes[0].(map[string]any)["id"])
}

func TestYAMLLoader_Load(t *testing.T) {
	fsys := fstest.MapFS{
		"glint.yaml": {Data: []byte(`
theme: paper
completion:
  max_items: 5
extensions:
  .jsx: typescript
`)},
	}

	config, err := NewYAMLLoaderWithFS(fsys, "glint.yaml").Load()
	require.NoError(t, err)

	assert.Equal(t, "paper", config["theme"])
	completion, ok := config["completion"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 5, completion["max_items"])
	assert.Equal(t, map[string]any{".jsx": "typescript"}, config["extensions"])
}

func TestLoad_MissingFile(t *testing.T) {
	fsys := fstest.MapFS{}

	config, err := NewTOMLLoaderWithFS(fsys, "nope.toml").Load()
	assert.NoError(t, err)
	assert.Nil(t, config)

	config, err = NewYAMLLoaderWithFS(fsys, "nope.yml").Load()
	assert.NoError(t, err)
	assert.Nil(t, config)
}

func TestLoad_ParseErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.toml": {Data: []byte("theme = \"paper\"\ntheme = = 1\n")},
		"bad.yaml": {Data: []byte("theme: [unclosed\n")},
	}

	_, err := NewTOMLLoaderWithFS(fsys, "bad.toml").Load()
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bad.toml", perr.Path)
	assert.Positive(t, perr.Line)
	assert.Contains(t, perr.Error(), "bad.toml")

	_, err = NewYAMLLoaderWithFS(fsys, "bad.yaml").Load()
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bad.yaml", perr.Path)
	assert.NotNil(t, perr.Unwrap())
}

func TestLoadFromReader(t *testing.T) {
	config, err := NewTOMLLoader("").LoadFromReader(strings.NewReader(`language = "go"`))
	require.NoError(t, err)
	assert.Equal(t, "go", config["language"])

	config, err = NewYAMLLoader("").LoadFromReader(strings.NewReader("language: rust\n"))
	require.NoError(t, err)
	assert.Equal(t, "rust", config["language"])
}

func TestForPath(t *testing.T) {
	fsys := fstest.MapFS{}

	l, err := ForPath(fsys, "a/glint.TOML")
	require.NoError(t, err)
	assert.IsType(t, &TOMLLoader{}, l)

	l, err = ForPath(fsys, "glint.yml")
	require.NoError(t, err)
	assert.IsType(t, &YAMLLoader{}, l)

	_, err = ForPath(fsys, "glint.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEnvLoader_Load(t *testing.T) {
	env := map[string]string{
		"GLINT_THEME":                 "paper",
		"GLINT_COMPLETION_MIN_PREFIX": "3",
		"GLINT_LANGUAGE":              "",
	}
	l := &EnvLoader{
		mapping: DefaultEnvMapping(),
		lookup: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
	}

	config, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"theme":      "paper",
		"language":   "",
		"completion": map[string]any{"min_prefix": int64(3)},
	}, config)
}

func TestEnvLoader_ProcessEnv(t *testing.T) {
	t.Setenv("GLINT_COMPLETION_MAX_ITEMS", "7")

	config, err := NewEnvLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, int64(7), config["completion"].(map[string]any)["max_items"])
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"theme":      "midnight",
		"completion": map[string]any{"min_prefix": int64(2), "max_items": int64(10)},
	}
	src := map[string]any{
		"theme":      "paper",
		"completion": map[string]any{"min_prefix": int64(3)},
	}

	got := DeepMerge(dst, src)
	assert.Equal(t, map[string]any{
		"theme":      "paper",
		"completion": map[string]any{"min_prefix": int64(3), "max_items": int64(10)},
	}, got)

	assert.Equal(t, src, DeepMerge(nil, src))
}
