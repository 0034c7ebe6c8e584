package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDocument(t *testing.T) {
	t.Run("json by extension", func(t *testing.T) {
		doc, err := loadDocument(writeFile(t, "doc.json", `{"a": 1}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"a": float64(1)}, doc)
	})

	t.Run("yaml by extension", func(t *testing.T) {
		doc, err := loadDocument(writeFile(t, "doc.yaml", "a: 1\nb:\n  - x\n"))
		require.NoError(t, err)
		m, ok := doc.(map[string]interface{})
		require.True(t, ok, "expected a map, got %T", doc)
		assert.Contains(t, m, "a")
		assert.Contains(t, m, "b")
	})

	t.Run("unknown extension falls back from json to yaml", func(t *testing.T) {
		doc, err := loadDocument(writeFile(t, "doc.txt", "key: value\n"))
		require.NoError(t, err)
		m, ok := doc.(map[string]interface{})
		require.True(t, ok, "expected a map, got %T", doc)
		assert.Equal(t, "value", m["key"])
	})

	t.Run("garbage fails with both parse errors", func(t *testing.T) {
		_, err := loadDocument(writeFile(t, "doc.json", `{"a":`))
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadDocument(filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
	})
}

func TestAppWiring(t *testing.T) {
	app := newApp()
	require.Len(t, app.Commands, 2)
	names := []string{app.Commands[0].Name, app.Commands[1].Name}
	assert.Contains(t, names, "diff")
	assert.Contains(t, names, "hash")
}
