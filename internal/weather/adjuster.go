package weather

import (
	"context"
	"time"

	"go.uber.org/zap"

	"agrisense/internal/logging"
	"agrisense/pkg/geometry"
)

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 5 * time.Second

// DefaultFallback is the snapshot assumed when the provider fails.
func DefaultFallback() Snapshot {
	return Snapshot{
		TemperatureC: 28.5,
		Humidity:     65,
		RainfallMM:   10,
		Condition:    "unknown",
		Source:       SourceFallback,
	}
}

// Adjuster turns a location into weather adjustments. It holds no mutable
// state and may be shared between goroutines.
type Adjuster struct {
	provider Provider
	fallback Snapshot
	timeout  time.Duration
	logger   *zap.Logger
}

// NewAdjuster builds an adjuster. A nil provider makes every call return the
// neutral result.
func NewAdjuster(provider Provider, fallback Snapshot, timeout time.Duration, logger *zap.Logger) *Adjuster {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	fallback.Source = SourceFallback
	return &Adjuster{
		provider: provider,
		fallback: fallback,
		timeout:  timeout,
		logger:   logging.OrNop(logger).Named("weather"),
	}
}

// Adjust fetches conditions at loc and derives the adjustments. Provider
// failures never propagate: the fallback snapshot is used instead and the
// result is marked StatusFallback. There is no retry.
func (a *Adjuster) Adjust(ctx context.Context, loc *geometry.LatLon) Result {
	if loc == nil || a.provider == nil {
		return NeutralResult()
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	snap, err := a.provider.Fetch(ctx, *loc)
	if err != nil {
		a.logger.Warn("weather provider failed, using fallback snapshot",
			zap.Stringer("location", loc),
			zap.Error(err))
		fb := a.fallback
		return Result{
			Adjustments: Derive(fb),
			Snapshot:    &fb,
			Status:      StatusFallback,
		}
	}

	status := StatusLive
	switch {
	case snap.Source == SourceSimulation:
		status = StatusSimulated
	case snap.RainfallEstimated:
		status = StatusPartial
	}

	adj := Derive(snap)
	a.logger.Debug("weather adjustments derived",
		zap.Stringer("location", loc),
		zap.String("source", snap.Source),
		zap.Float64("temperature_c", snap.TemperatureC),
		zap.Float64("humidity", snap.Humidity),
		zap.Float64("rainfall_mm", snap.RainfallMM),
		zap.Float64("sandy_reduction", adj.SandyReduction),
		zap.Float64("clay_crack_increase", adj.ClayCrackIncrease))

	return Result{Adjustments: adj, Snapshot: &snap, Status: status}
}
