package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMerged_OrderAndNesting(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	require.NoError(t, writeTestFile(a, "root: one\nsuggest:\n  provider: openai\n  model: a\n"))
	require.NoError(t, writeTestFile(b, "root: two\nsuggest:\n  model: b\n"))

	got, err := loadMerged([]string{a, b})
	require.NoError(t, err)

	assert.Equal(t, "two", got["root"])
	suggest := got["suggest"].(map[string]any)
	assert.Equal(t, "openai", suggest["provider"])
	assert.Equal(t, "b", suggest["model"])
}

func TestLoadMerged_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := loadMerged([]string{filepath.Join(dir, "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, writeTestFile(bad, "root: ["))
	_, err = loadMerged([]string{bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestMergeMaps(t *testing.T) {
	dst := map[string]any{
		"tui":  map[string]any{"theme": "gruvbox"},
		"root": ".",
	}
	mergeMaps(dst, map[string]any{
		"tui":     map[string]any{"theme": "catppuccin"},
		"pattern": "*.resw",
	})
	mergeMaps(dst, nil)

	assert.Equal(t, map[string]any{
		"tui":     map[string]any{"theme": "catppuccin"},
		"root":    ".",
		"pattern": "*.resw",
	}, dst)
}

func writeTestFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
