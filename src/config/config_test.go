package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load("", envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "Sc", cfg.Soft)
	assert.Equal(t, "JPN", cfg.Locale)
	assert.False(t, cfg.UsesAWS())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
lang: en
locale: ENG
timeout: 5s
data_dir: out
bucket: from-file
`), 0o644))

	cfg, err := load(path, envOf(map[string]string{
		"BUCKET_NAME":  "from-env",
		"HTTP_TIMEOUT": "2s",
	}))
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, "ENG", cfg.Locale)
	assert.Equal(t, "out", cfg.DataDir)
	assert.Equal(t, "from-env", cfg.Bucket)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, "Sc", cfg.Soft, "unset keys keep defaults")
	assert.True(t, cfg.UsesAWS())
}

func badYAML(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: [soon"), 0o644))
	return path
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		env  map[string]string
	}{
		{name: "missing file", path: filepath.Join(t.TempDir(), "nope.yaml")},
		{name: "bad timeout", env: map[string]string{"HTTP_TIMEOUT": "soon"}},
		{name: "bad yaml", path: badYAML(t)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(tt.path, envOf(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestHomeOptions(t *testing.T) {
	cfg := Default()
	cfg.Lang = "en"
	opts := cfg.HomeOptions()
	assert.Equal(t, "en", opts.Lang)
	assert.Equal(t, cfg.Timeout, opts.Timeout)
	assert.Equal(t, cfg.ResourceBase, opts.ResourceBase)
}
