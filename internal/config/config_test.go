package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.5, cfg.Fusion.ImageWeight)
	assert.Equal(t, 7, cfg.Map.Neighborhood)
	assert.Equal(t, 5*time.Second, cfg.Weather.Timeout)
	assert.Equal(t, 10.0, cfg.Weather.FallbackRainfallMM)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agrisense.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
map:
  raster_path: maps/ts.png
weather:
  provider: openmeteo
  timeout: 2s
fusion:
  image_weight: 0.6
  map_weight: 0.2
  prior_weight: 0.2
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "maps/ts.png", cfg.Map.RasterPath)
	assert.Equal(t, "openmeteo", cfg.Weather.Provider)
	assert.Equal(t, 2*time.Second, cfg.Weather.Timeout)
	assert.Equal(t, 0.6, cfg.Fusion.ImageWeight)
	// untouched sections keep defaults
	assert.Equal(t, 800, cfg.Features.MaxDimension)
	assert.Equal(t, 19.9178, cfg.Map.Bounds.North)
}

func TestLoadRejectsBadWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fusion:\n  image_weight: 0.9\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"AGRISENSE_WEATHER_PROVIDER": "Simulated",
		"OPENWEATHER_API_KEY":        "legacy-key",
		"AGRISENSE_LOG_LEVEL":        "DEBUG",
	}
	cfg := DefaultConfig()
	cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	assert.Equal(t, "simulated", cfg.Weather.Provider)
	assert.Equal(t, "legacy-key", cfg.Weather.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weather.Provider = "carrier-pigeon"
	cfg.Map.Neighborhood = 4
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
	assert.Contains(t, err.Error(), "neighborhood")
}
