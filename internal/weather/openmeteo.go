package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"agrisense/pkg/geometry"
)

const hoursPerDay = 24

// OpenMeteo reads the keyless Open-Meteo forecast API.
type OpenMeteo struct {
	BaseURL string
	Days    int
	Client  *http.Client

	now func() time.Time
}

// NewOpenMeteo builds the provider. An empty baseURL selects the public API.
func NewOpenMeteo(baseURL string, days int, client *http.Client) *OpenMeteo {
	if baseURL == "" {
		baseURL = "https://api.open-meteo.com"
	}
	if days <= 0 {
		days = 5
	}
	return &OpenMeteo{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Days:    days,
		Client:  client,
		now:     time.Now,
	}
}

type openMeteoResponse struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
		Time        string  `json:"time"`
	} `json:"current_weather"`
	Hourly struct {
		Time          []string  `json:"time"`
		Humidity      []float64 `json:"relative_humidity_2m"`
		Precipitation []float64 `json:"precipitation"`
	} `json:"hourly"`
}

// Fetch implements Provider.
func (m *OpenMeteo) Fetch(ctx context.Context, loc geometry.LatLon) (Snapshot, error) {
	params := url.Values{
		"latitude":        {strconv.FormatFloat(loc.Lat, 'f', 4, 64)},
		"longitude":       {strconv.FormatFloat(loc.Lon, 'f', 4, 64)},
		"current_weather": {"true"},
		"hourly":          {"relative_humidity_2m,precipitation"},
		"forecast_days":   {strconv.Itoa(m.Days)},
		"timezone":        {"UTC"},
	}

	var resp openMeteoResponse
	if err := getJSON(ctx, httpClient(m.Client), m.BaseURL+"/v1/forecast", params, &resp); err != nil {
		return Snapshot{}, fmt.Errorf("failed to fetch open-meteo forecast: %w", err)
	}
	if resp.CurrentWeather == nil {
		return Snapshot{}, fmt.Errorf("failed to fetch open-meteo forecast: payload missing current_weather")
	}
	if len(resp.Hourly.Humidity) == 0 {
		return Snapshot{}, fmt.Errorf("failed to fetch open-meteo forecast: payload missing hourly humidity")
	}

	cw := resp.CurrentWeather
	idx := hourIndex(resp.Hourly.Time, cw.Time)
	if idx >= len(resp.Hourly.Humidity) {
		idx = 0
	}
	snap := Snapshot{
		TemperatureC: cw.Temperature,
		Humidity:     resp.Hourly.Humidity[idx],
		WindSpeed:    cw.WindSpeed,
		Condition:    ConditionFromWMO(cw.WeatherCode),
		Source:       SourceOpenMeteo,
		FetchedAt:    m.now().UTC(),
	}

	if n := len(resp.Hourly.Precipitation); n > 0 {
		var total float64
		for _, p := range resp.Hourly.Precipitation {
			total += p
		}
		snap.RainfallMM = total / (float64(n) / hoursPerDay)
	}
	return snap, nil
}

// hourIndex finds the hourly slot for the current-weather timestamp. Both use
// ISO8601 without seconds; current_weather may sit mid-hour.
func hourIndex(times []string, current string) int {
	if len(current) >= 13 {
		prefix := current[:13]
		for i, t := range times {
			if strings.HasPrefix(t, prefix) {
				return i
			}
		}
	}
	return 0
}
