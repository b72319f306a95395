package weather

import "math"

// Rule thresholds.
const (
	RainfallThresholdMM   = 20.0
	RainfallSlopeMM       = 50.0
	MaxSandyReduction     = 0.3
	HeatThresholdC        = 35.0
	HeatSlopeC            = 20.0
	MaxClayCrackIncrease  = 0.4
	HumidityTextureStart  = 70.0
	HumidityTextureSlope  = 60.0
	MinTextureReliability = 0.5
	HumidityColorStart    = 80.0
	HumidColorReliability = 0.7
)

// Derive applies the fixed weather rules to a snapshot.
func Derive(s Snapshot) Adjustments {
	adj := Neutral()

	if s.RainfallMM > RainfallThresholdMM {
		adj.SandyReduction = math.Min(MaxSandyReduction, (s.RainfallMM-RainfallThresholdMM)/RainfallSlopeMM)
	}
	if s.TemperatureC > HeatThresholdC {
		adj.ClayCrackIncrease = math.Min(MaxClayCrackIncrease, (s.TemperatureC-HeatThresholdC)/HeatSlopeC)
	}
	if s.Humidity > HumidityTextureStart {
		adj.TextureReliability = math.Max(MinTextureReliability, 1-(s.Humidity-HumidityTextureStart)/HumidityTextureSlope)
	}
	if s.Humidity > HumidityColorStart {
		adj.ColorBiasReliability = HumidColorReliability
	}

	return adj
}
