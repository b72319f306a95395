// Package config loads agrisense configuration from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"agrisense/pkg/geometry"
)

// Config holds all agrisense configuration.
type Config struct {
	Map      MapConfig      `yaml:"map"`
	Weather  WeatherConfig  `yaml:"weather"`
	Features FeaturesConfig `yaml:"features"`
	Fusion   FusionConfig   `yaml:"fusion"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// MapConfig configures the land-cover reference raster.
type MapConfig struct {
	RasterPath string             `yaml:"raster_path"`
	Bounds     geometry.GeoBounds `yaml:"bounds"`
	// Neighborhood is the side of the square averaged around the mapped pixel.
	Neighborhood int `yaml:"neighborhood"`
	// Synthetic substitutes the built-in six-region layout when RasterPath is empty.
	Synthetic bool `yaml:"synthetic"`
}

// WeatherConfig configures the weather provider and its fallback snapshot.
type WeatherConfig struct {
	Provider string        `yaml:"provider"` // openweathermap, openmeteo, simulated, none
	APIKey   string        `yaml:"api_key"`
	BaseURL  string        `yaml:"base_url"` // empty selects the provider's public endpoint
	Timeout  time.Duration `yaml:"timeout"`

	// ForecastIntervals is the number of 3-hour forecast slots requested.
	ForecastIntervals int `yaml:"forecast_intervals"`

	FallbackTemperatureC float64 `yaml:"fallback_temperature_c"`
	FallbackHumidity     float64 `yaml:"fallback_humidity"`
	FallbackRainfallMM   float64 `yaml:"fallback_rainfall_mm"`
}

// FeaturesConfig configures image preprocessing.
type FeaturesConfig struct {
	MaxDimension int `yaml:"max_dimension"`
	BlurKernel   int `yaml:"blur_kernel"`
}

// FusionConfig holds the soil fusion weights. They must sum to 1.
type FusionConfig struct {
	ImageWeight float64 `yaml:"image_weight"`
	MapWeight   float64 `yaml:"map_weight"`
	PriorWeight float64 `yaml:"prior_weight"`
}

// CatalogConfig points at an alternative plant catalog.
type CatalogConfig struct {
	PlantsPath string `yaml:"plants_path"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Map: MapConfig{
			Bounds: geometry.GeoBounds{
				North: 19.9178,
				South: 15.8361,
				West:  77.2356,
				East:  81.3211,
			},
			Neighborhood: 7,
		},
		Weather: WeatherConfig{
			Provider:             "openweathermap",
			Timeout:              5 * time.Second,
			ForecastIntervals:    40,
			FallbackTemperatureC: 28.5,
			FallbackHumidity:     65,
			FallbackRainfallMM:   10,
		},
		Features: FeaturesConfig{
			MaxDimension: 800,
			BlurKernel:   5,
		},
		Fusion: FusionConfig{
			ImageWeight: 0.5,
			MapWeight:   0.3,
			PriorWeight: 0.2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path yields defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("AGRISENSE_WEATHER_API_KEY"); ok {
		c.Weather.APIKey = v
	}
	if v, ok := lookup("OPENWEATHER_API_KEY"); ok && c.Weather.APIKey == "" {
		c.Weather.APIKey = v
	}
	if v, ok := lookup("AGRISENSE_WEATHER_PROVIDER"); ok {
		c.Weather.Provider = strings.ToLower(v)
	}
	if v, ok := lookup("AGRISENSE_MAP_RASTER"); ok {
		c.Map.RasterPath = v
	}
	if v, ok := lookup("AGRISENSE_LOG_LEVEL"); ok {
		c.Logging.Level = strings.ToLower(v)
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	var errs []error

	if !c.Map.Bounds.Valid() {
		errs = append(errs, fmt.Errorf("map.bounds must have north > south and east > west"))
	}
	if c.Map.Neighborhood < 1 || c.Map.Neighborhood%2 == 0 {
		errs = append(errs, fmt.Errorf("map.neighborhood must be a positive odd number, got %d", c.Map.Neighborhood))
	}

	switch c.Weather.Provider {
	case "openweathermap", "openmeteo", "simulated", "none":
	default:
		errs = append(errs, fmt.Errorf("unknown weather.provider %q", c.Weather.Provider))
	}
	if c.Weather.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("weather.timeout must be positive"))
	}

	if c.Features.MaxDimension < 32 {
		errs = append(errs, fmt.Errorf("features.max_dimension too small: %d", c.Features.MaxDimension))
	}
	if c.Features.BlurKernel < 1 || c.Features.BlurKernel%2 == 0 {
		errs = append(errs, fmt.Errorf("features.blur_kernel must be a positive odd number, got %d", c.Features.BlurKernel))
	}

	f := c.Fusion
	if f.ImageWeight < 0 || f.MapWeight < 0 || f.PriorWeight < 0 {
		errs = append(errs, fmt.Errorf("fusion weights must be non-negative"))
	} else if sum := f.ImageWeight + f.MapWeight + f.PriorWeight; sum < 0.999 || sum > 1.001 {
		errs = append(errs, fmt.Errorf("fusion weights must sum to 1, got %.3f", sum))
	}

	return errors.Join(errs...)
}
