// Package weather fetches current conditions and turns them into reliability
// adjustments for the soil decision engine.
package weather

import (
	"context"
	"time"

	"agrisense/pkg/geometry"
)

// Snapshot sources.
const (
	SourceOpenWeatherMap = "openweathermap"
	SourceOpenMeteo      = "openmeteo"
	SourceSimulation     = "simulation"
	SourceFallback       = "fallback"
)

// Snapshot is one reading of current conditions plus the multi-day rainfall
// estimate.
type Snapshot struct {
	TemperatureC float64   `json:"temperature_c"`
	Humidity     float64   `json:"humidity"`
	RainfallMM   float64   `json:"rainfall_mm"`
	Condition    string    `json:"condition,omitempty"`
	WindSpeed    float64   `json:"wind_speed,omitempty"`
	Pressure     float64   `json:"pressure,omitempty"`
	Source       string    `json:"source"`
	FetchedAt    time.Time `json:"fetched_at,omitempty"`

	// RainfallEstimated is set when the forecast leg failed and RainfallMM
	// holds the fallback constant.
	RainfallEstimated bool `json:"rainfall_estimated,omitempty"`
}

// Provider is a weather source. Implementations must honour ctx cancellation.
type Provider interface {
	Fetch(ctx context.Context, loc geometry.LatLon) (Snapshot, error)
}

// Status tells callers where the adjustments came from.
type Status int

const (
	// StatusUnavailable means no location was given; adjustments are neutral.
	StatusUnavailable Status = iota
	// StatusLive means the provider answered in full.
	StatusLive
	// StatusPartial means current conditions are live but rainfall is the fallback constant.
	StatusPartial
	// StatusSimulated means the deterministic simulator produced the snapshot.
	StatusSimulated
	// StatusFallback means the provider failed and the fallback snapshot was used.
	StatusFallback
)

func (s Status) String() string {
	switch s {
	case StatusLive:
		return "live"
	case StatusPartial:
		return "partial"
	case StatusSimulated:
		return "simulated"
	case StatusFallback:
		return "fallback"
	default:
		return "unavailable"
	}
}

// Degraded reports whether some of the snapshot is made-up data.
func (s Status) Degraded() bool {
	return s == StatusPartial || s == StatusFallback
}

// MarshalText renders the status name in JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Adjustments are the reliability factors applied to the soil evidence.
type Adjustments struct {
	SandyReduction       float64 `json:"sandy_reduction"`
	ClayCrackIncrease    float64 `json:"clay_crack_increase"`
	TextureReliability   float64 `json:"texture_reliability"`
	ColorBiasReliability float64 `json:"color_bias_reliability"`
}

// Neutral returns the no-op adjustments.
func Neutral() Adjustments {
	return Adjustments{TextureReliability: 1, ColorBiasReliability: 1}
}

// Result is the outcome of Adjuster.Adjust. Snapshot is nil when Status is
// StatusUnavailable.
type Result struct {
	Adjustments Adjustments `json:"adjustments"`
	Snapshot    *Snapshot   `json:"snapshot,omitempty"`
	Status      Status      `json:"status"`
}

// NeutralResult is the result used when no weather lookup is possible.
func NeutralResult() Result {
	return Result{Adjustments: Neutral(), Status: StatusUnavailable}
}
