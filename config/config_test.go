package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Test missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.Equal(t, "http://localhost:8000/predict", cfg.APIURL)
		assert.Equal(t, "images/test.jpg", cfg.ImagePath)
		assert.Equal(t, "result.json", cfg.OutputPath)
	})

	t.Run("Test partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("apiURL: http://10.0.0.5:8000/predict\nthreshold: 0.6\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://10.0.0.5:8000/predict", cfg.APIURL)
		assert.InDelta(t, 0.6, cfg.Threshold, 0.0001)
		// untouched keys stay at their defaults
		assert.Equal(t, "result.json", cfg.OutputPath)
		assert.Equal(t, 30, cfg.TimeoutSeconds)
		assert.Equal(t, 2, cfg.RetryCount)
	})

	t.Run("Test invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(":\t: not yaml"), 0644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("Test bad values normalized", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("timeoutSeconds: -5\nretryCount: -1\n"), 0644))
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.TimeoutSeconds)
		assert.Equal(t, 0, cfg.RetryCount)
	})
}
