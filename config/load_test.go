package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, DefaultServerPort, cfg.Server.Port)
	require.Equal(t, 6, cfg.Server.MaxPathLength)
	require.Equal(t, 0.4, cfg.Graph.Similarity.KeywordWeight)
	require.Equal(t, 0.3, cfg.Graph.Similarity.Threshold)
	require.Equal(t, 1000, cfg.Graph.Paths.MaxExplored)
	require.Equal(t, "https://osdr.nasa.gov/osdr/data/osd", cfg.OSDR.BaseURL)
}

func TestLoadFromFile(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "biograph.toml")
	content := `
[server]
port = 9999

[graph.similarity]
threshold = 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	require.Equal(t, 9999, cfg.Server.Port)
	require.Equal(t, 0.5, cfg.Graph.Similarity.Threshold)
	// Unset keys keep their defaults
	require.Equal(t, 1000, cfg.Graph.Paths.MaxExplored)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestWriteDefaultRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biograph.toml")
	require.NoError(t, WriteDefault(path))

	// Round trip: the written file loads back with the same defaults
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultServerPort, cfg.Server.Port)

	require.Error(t, WriteDefault(path))
}

func TestEnvOverride(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	t.Setenv("BIOGRAPH_SERVER_PORT", "8123")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8123, cfg.Server.Port)
}
