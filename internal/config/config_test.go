package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/f3rmion/hanzinum/internal/numeral"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	want := &Config{Script: "simplified", Currency: true, Format: "csv"}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	opts, err := got.Options()
	require.NoError(t, err)
	assert.Equal(t, numeral.Options{Currency: true, Script: numeral.Simplified}, opts)
}

func TestLoadKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("currency: true\n"), 0644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{Script: "traditional", Currency: true, Format: "text"}, got)
}

func TestLoadDirMissingFile(t *testing.T) {
	t.Parallel()

	got, err := LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"bad yaml":   "script: [",
		"bad script": "script: klingon\n",
		"bad format": "format: xml\n",
	}

	for name, body := range cases {
		body := body
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
