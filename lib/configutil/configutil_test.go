package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	OutputRoot string `json:"output_root"`
	Silent     bool   `json:"silent"`
}

func writeFile(t *testing.T, path string, contents string) {
	err := os.WriteFile(path, []byte(contents), 0644)
	require.NoError(t, err)
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "leetdaily.json5"), `{
		// comments are allowed
		output_root: "solutions",
	}`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "leetdaily.json5"))
	require.NoError(t, err)
	require.Equal(t, "solutions", cfg.OutputRoot)
	require.False(t, cfg.Silent)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "leetdaily.json5"), `{output_root: "solutions"}`)
	writeFile(t, filepath.Join(dir, "leetdaily.local.json5"), `{output_root: "scratch", silent: true}`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "leetdaily.json5"))
	require.NoError(t, err)
	require.Equal(t, "scratch", cfg.OutputRoot)
	require.True(t, cfg.Silent)
}

func TestReadConfigMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadConfig[testConfig](filepath.Join(dir, "leetdaily.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
