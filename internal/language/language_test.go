package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllProfilesComplete(t *testing.T) {
	profiles := All()
	require.Len(t, profiles, 6)

	seen := make(map[ID]bool)
	templates := make(map[string]ID)
	for _, p := range profiles {
		t.Run(string(p.ID), func(t *testing.T) {
			assert.False(t, seen[p.ID], "duplicate id")
			seen[p.ID] = true

			assert.NotEmpty(t, p.DisplayName)
			assert.NotEmpty(t, p.Keywords)
			assert.NotEmpty(t, p.Snippets)
			assert.NotEmpty(t, p.Extensions)
			assert.NotEmpty(t, p.StarterTemplate)

			other, dup := templates[p.StarterTemplate]
			assert.False(t, dup, "starter template shared with %s", other)
			templates[p.StarterTemplate] = p.ID
		})
	}
}

func TestFamilies(t *testing.T) {
	assert.Equal(t, FamilyMarkup, MustLookup(HTML).Family)
	assert.Equal(t, FamilyStylesheet, MustLookup(CSS).Family)
	for _, id := range []ID{JavaScript, TypeScript, Go, Rust} {
		assert.Equal(t, FamilyGeneral, MustLookup(id).Family, id)
	}
	assert.Equal(t, "markup", FamilyMarkup.String())
	assert.Equal(t, "unknown", Family(99).String())
}

func TestLookupReturnsCopies(t *testing.T) {
	p := MustLookup(Go)
	p.Keywords[0] = "mutated"

	again := MustLookup(Go)
	assert.Equal(t, "package", again.Keywords[0])
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("cobol")
	assert.False(t, ok)
	assert.Panics(t, func() { MustLookup("cobol") })
}

func TestForExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want ID
		ok   bool
	}{
		{".tsx", TypeScript, true},
		{".ts", TypeScript, true},
		{"js", JavaScript, true},
		{".JSX", JavaScript, true},
		{".go", Go, true},
		{".rs", Rust, true},
		{".htm", HTML, true},
		{".css", CSS, true},
		{".xyz", "", false},
		{"", "", false},
		{".", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			p, ok := ForExtension(tt.ext)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, p.ID)
			if !tt.ok {
				assert.True(t, p.IsZero())
			}
		})
	}
}

func TestExtensionsSorted(t *testing.T) {
	exts := Extensions()
	assert.Contains(t, exts, ".tsx")
	assert.IsNonDecreasing(t, exts)
}

func TestDetect(t *testing.T) {
	p, ok := Detect("server.mjs", nil)
	require.True(t, ok)
	assert.Equal(t, JavaScript, p.ID)

	p, ok = Detect("run", []byte("#!/usr/bin/env node\nconsole.log(1)\n"))
	require.True(t, ok)
	assert.Equal(t, JavaScript, p.ID)

	_, ok = Detect("notes.xyz", []byte("plain words"))
	assert.False(t, ok)
}

func TestRegistryOverrides(t *testing.T) {
	r := NewRegistry()

	_, ok := r.ForExtension(".es")
	assert.False(t, ok)

	require.NoError(t, r.WithExtension("ES", JavaScript))
	p, ok := r.ForExtension(".es")
	require.True(t, ok)
	assert.Equal(t, JavaScript, p.ID)

	p, ok = r.Detect("app.es", nil)
	require.True(t, ok)
	assert.Equal(t, JavaScript, p.ID)

	err := r.WithExtension(".x", "cobol")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
	assert.Error(t, r.WithExtension("", Go))
}

func TestRegistryNext(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, TypeScript, r.Next(JavaScript).ID)
	assert.Equal(t, JavaScript, r.Next(CSS).ID)
	assert.Equal(t, JavaScript, r.Next("unknown").ID)
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" Rust ")
	require.NoError(t, err)
	assert.Equal(t, Rust, id)

	_, err = ParseID("cobol")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}
