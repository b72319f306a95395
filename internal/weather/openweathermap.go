package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"agrisense/internal/logging"
	"agrisense/pkg/geometry"
)

// ErrMissingAPIKey is returned by OpenWeatherMap when no key is configured.
var ErrMissingAPIKey = errors.New("missing weather API key")

// forecastSlotsPerDay is the number of 3-hour forecast intervals in a day.
const forecastSlotsPerDay = 8

// OpenWeatherMap reads current conditions and the 5-day/3-hour forecast.
type OpenWeatherMap struct {
	BaseURL            string
	APIKey             string
	Intervals          int
	FallbackRainfallMM float64
	Client             *http.Client

	logger *zap.Logger
	now    func() time.Time
}

// NewOpenWeatherMap builds the provider. An empty baseURL selects the public
// API.
func NewOpenWeatherMap(baseURL, apiKey string, intervals int, fallbackRainfallMM float64, client *http.Client, logger *zap.Logger) *OpenWeatherMap {
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5"
	}
	if intervals <= 0 {
		intervals = 40
	}
	return &OpenWeatherMap{
		BaseURL:            strings.TrimRight(baseURL, "/"),
		APIKey:             apiKey,
		Intervals:          intervals,
		FallbackRainfallMM: fallbackRainfallMM,
		Client:             client,
		logger:             logging.OrNop(logger).Named("openweathermap"),
		now:                time.Now,
	}
}

type owmCurrent struct {
	Main struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
		Pressure float64  `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type owmForecast struct {
	List []struct {
		Rain map[string]float64 `json:"rain"`
	} `json:"list"`
}

// Fetch implements Provider. Current conditions and forecast are requested
// concurrently; a failed forecast degrades to the fallback rainfall instead
// of failing the whole snapshot.
func (o *OpenWeatherMap) Fetch(ctx context.Context, loc geometry.LatLon) (Snapshot, error) {
	if o.APIKey == "" {
		return Snapshot{}, ErrMissingAPIKey
	}

	var (
		cur      owmCurrent
		rainfall float64
		rainErr  error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return getJSON(gctx, httpClient(o.Client), o.BaseURL+"/weather", o.params(loc, nil), &cur)
	})
	g.Go(func() error {
		rainfall, rainErr = o.rainfall(gctx, loc)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("failed to fetch current weather: %w", err)
	}
	if cur.Main.Temp == nil || cur.Main.Humidity == nil {
		return Snapshot{}, fmt.Errorf("failed to fetch current weather: payload missing main.temp or main.humidity")
	}

	snap := Snapshot{
		TemperatureC: *cur.Main.Temp,
		Humidity:     *cur.Main.Humidity,
		Pressure:     cur.Main.Pressure,
		WindSpeed:    cur.Wind.Speed,
		RainfallMM:   rainfall,
		Source:       SourceOpenWeatherMap,
		FetchedAt:    o.now().UTC(),
	}
	if len(cur.Weather) > 0 {
		snap.Condition = cur.Weather[0].Description
	}
	if rainErr != nil {
		o.logger.Warn("forecast unavailable, using fallback rainfall",
			zap.Float64("rainfall_mm", o.FallbackRainfallMM),
			zap.Error(rainErr))
		snap.RainfallMM = o.FallbackRainfallMM
		snap.RainfallEstimated = true
	}
	return snap, nil
}

// rainfall returns the average daily rainfall over the forecast horizon.
func (o *OpenWeatherMap) rainfall(ctx context.Context, loc geometry.LatLon) (float64, error) {
	var fc owmForecast
	extra := url.Values{"cnt": {strconv.Itoa(o.Intervals)}}
	if err := getJSON(ctx, httpClient(o.Client), o.BaseURL+"/forecast", o.params(loc, extra), &fc); err != nil {
		return 0, err
	}
	if len(fc.List) == 0 {
		return 0, fmt.Errorf("forecast has no intervals")
	}

	var total float64
	for _, slot := range fc.List {
		total += slot.Rain["3h"]
	}
	days := float64(len(fc.List)) / forecastSlotsPerDay
	return total / days, nil
}

func (o *OpenWeatherMap) params(loc geometry.LatLon, extra url.Values) url.Values {
	v := url.Values{
		"lat":   {strconv.FormatFloat(loc.Lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(loc.Lon, 'f', -1, 64)},
		"appid": {o.APIKey},
		"units": {"metric"},
	}
	for k, vals := range extra {
		v[k] = vals
	}
	return v
}
