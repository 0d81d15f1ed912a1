package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorule/randomizer/internal/settings"
)

func TestLoadFallsBackToDefaultsWhenFileIsMissing(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), *s)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	s := settings.Default()
	s.SwordlessMode = true
	s.LCRequirement = 5
	s.Exclusions = []string{"Zelda"}

	require.NoError(t, Save(path, &s))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, *loaded)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid: yaml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
