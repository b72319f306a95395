package analysis

import (
	"net/http"

	"go.uber.org/zap"

	"agrisense/internal/config"
	"agrisense/internal/disease"
	"agrisense/internal/extract"
	"agrisense/internal/landcover"
	"agrisense/internal/logging"
	"agrisense/internal/plant"
	"agrisense/internal/soil"
	"agrisense/internal/weather"
)

// syntheticRasterSize is the side of the generated reference raster.
const syntheticRasterSize = 1000

// FromConfig builds an analyzer from cfg. A raster that fails to load is
// logged and left out; the analyzer then reports every location as Unknown.
func FromConfig(cfg *config.Config, logger *zap.Logger) (*Analyzer, error) {
	logger = logging.OrNop(logger)

	params := extract.DefaultParams().
		WithMaxDimension(cfg.Features.MaxDimension).
		WithBlurKernel(cfg.Features.BlurKernel)

	catalog, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	f := cfg.Fusion
	return New(Components{
		Extractor: extract.NewExtractor(params, logger),
		Land:      landcover.NewClassifier(loadRaster(cfg.Map, logger), landcover.DefaultTable(), cfg.Map.Neighborhood, logger),
		Weather:   newAdjuster(cfg.Weather, logger),
		Soil:      soil.NewEngine(soil.DefaultParams().WithWeights(f.ImageWeight, f.MapWeight, f.PriorWeight), logger),
		Disease:   disease.NewEngine(disease.DefaultRules(), logger),
		Plants:    plant.NewIdentifier(catalog, logger),
	}, logger)
}

func loadCatalog(cfg config.CatalogConfig) (*plant.Catalog, error) {
	if cfg.PlantsPath == "" {
		return plant.DefaultCatalog()
	}
	return plant.LoadCatalogFile(cfg.PlantsPath)
}

func loadRaster(cfg config.MapConfig, logger *zap.Logger) *landcover.Raster {
	switch {
	case cfg.RasterPath != "":
		r, err := landcover.LoadRaster(cfg.RasterPath, cfg.Bounds)
		if err != nil {
			logger.Warn("land-use raster unavailable, locations will classify as Unknown",
				zap.String("path", cfg.RasterPath),
				zap.Error(err))
			return nil
		}
		return r
	case cfg.Synthetic:
		r, err := landcover.SyntheticRaster(syntheticRasterSize, syntheticRasterSize, cfg.Bounds)
		if err != nil {
			logger.Warn("failed to build synthetic raster", zap.Error(err))
			return nil
		}
		logger.Warn("using synthetic land-use raster")
		return r
	default:
		return nil
	}
}

func newAdjuster(cfg config.WeatherConfig, logger *zap.Logger) *weather.Adjuster {
	fallback := weather.DefaultFallback()
	fallback.TemperatureC = cfg.FallbackTemperatureC
	fallback.Humidity = cfg.FallbackHumidity
	fallback.RainfallMM = cfg.FallbackRainfallMM

	client := &http.Client{Timeout: cfg.Timeout}

	var provider weather.Provider
	switch cfg.Provider {
	case "openweathermap":
		if cfg.APIKey == "" {
			logger.Warn("no weather API key configured, using simulated weather")
			provider = weather.NewSimulator()
			break
		}
		provider = weather.NewOpenWeatherMap(cfg.BaseURL, cfg.APIKey, cfg.ForecastIntervals, cfg.FallbackRainfallMM, client, logger)
	case "openmeteo":
		provider = weather.NewOpenMeteo(cfg.BaseURL, cfg.ForecastIntervals/8, client)
	case "simulated":
		provider = weather.NewSimulator()
	}
	return weather.NewAdjuster(provider, fallback, cfg.Timeout, logger)
}
