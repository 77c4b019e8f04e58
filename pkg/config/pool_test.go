package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/XiaoConstantine/evolve-go/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePoolFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestLoadPoolYAML(t *testing.T) {
	path := writePoolFile(t, "pool.yaml", `
color: [red, green, blue]
shape:
  - circle
  - square
`)

	pool, err := LoadPoolYAML(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"red", "green", "blue"}, pool["color"])
	assert.Equal(t, []string{"circle", "square"}, pool["shape"])
	assert.Equal(t, []string{"color", "shape"}, pool.Genes())
}

func TestLoadPoolYAMLInvalidSyntax(t *testing.T) {
	path := writePoolFile(t, "pool.yaml", "color: [red, green")

	_, err := LoadPoolYAML(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML gene pool")
}

func TestLoadPoolYAMLInvalidPool(t *testing.T) {
	path := writePoolFile(t, "pool.yaml", "color: []")

	_, err := LoadPoolYAML(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid gene pool")
}

func TestLoadPoolYAMLMissingFile(t *testing.T) {
	_, err := LoadPoolYAML("/nonexistent/pool.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read gene pool file")
}

func TestLoadPoolINI(t *testing.T) {
	path := writePoolFile(t, "pool.ini", `
[genes]
color = red, green, blue
shape = circle, square
`)

	pool, err := LoadPoolINI(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"red", "green", "blue"}, pool["color"])
	assert.Equal(t, []string{"circle", "square"}, pool["shape"])
}

func TestLoadPoolINIMissingSection(t *testing.T) {
	path := writePoolFile(t, "pool.ini", `
[other]
key = value
`)

	_, err := LoadPoolINI(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "has no [genes] section")
}

func TestLoadPoolINIMissingFile(t *testing.T) {
	_, err := LoadPoolINI("/nonexistent/pool.ini")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load gene pool file")
}

func TestLoadPoolFormatInference(t *testing.T) {
	yamlPath := writePoolFile(t, "pool.yml", "color: [red, green]")

	pool, err := LoadPool(yamlPath, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "green"}, pool["color"])

	iniPath := writePoolFile(t, "pool.ini", "[genes]\ncolor = red, green\n")

	pool, err = LoadPool(iniPath, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "green"}, pool["color"])
}

func TestLoadPoolExplicitFormat(t *testing.T) {
	// Unrecognized extension with an explicit format
	path := writePoolFile(t, "pool.conf", "color: [red, green]")

	pool, err := LoadPool(path, "yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "green"}, pool["color"])
}

func TestLoadPoolUnsupportedFormat(t *testing.T) {
	path := writePoolFile(t, "pool.toml", "color = [\"red\"]")

	_, err := LoadPool(path, "toml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported gene pool format: toml")
}

func TestLoadPoolNoPath(t *testing.T) {
	_, err := LoadPool("", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no gene pool path specified")
}

func TestLoadPoolUnknownExtension(t *testing.T) {
	path := writePoolFile(t, "pool.conf", "color: [red]")

	_, err := LoadPool(path, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot infer gene pool format")
}

func TestPoolConfigLoadPool(t *testing.T) {
	path := writePoolFile(t, "pool.yaml", "color: [red, green]")

	cfg := &PoolConfig{Path: path}
	pool, err := cfg.LoadPool()
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "green"}, pool["color"])
}

func TestSavePoolYAML(t *testing.T) {
	pool := core.Pool[string]{
		"color": {"red", "green", "blue"},
		"shape": {"circle", "square"},
	}

	// Parent directories are created when missing
	path := filepath.Join(t.TempDir(), "nested", "dir", "pool.yaml")
	err := SavePoolYAML(pool, path)
	require.NoError(t, err)

	loaded, err := LoadPoolYAML(path)
	require.NoError(t, err)
	assert.Equal(t, pool, loaded)
}

func TestSavePoolYAMLInvalidPool(t *testing.T) {
	err := SavePoolYAML(core.Pool[string]{}, filepath.Join(t.TempDir(), "pool.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to save invalid gene pool")
}
