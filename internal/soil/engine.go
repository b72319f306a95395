package soil

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"agrisense/internal/landcover"
	"agrisense/internal/logging"
	"agrisense/internal/weather"
	"agrisense/pkg/geometry"
)

// Params are the fusion weights. The defaults are empirical; they are kept
// configurable so they can be retuned against field data.
type Params struct {
	ImageWeight float64
	MapWeight   float64
	PriorWeight float64

	// Materiality is the deviation from neutral a weather factor needs
	// before it is reported as a reason.
	Materiality float64
}

// DefaultParams returns the stock weights.
func DefaultParams() Params {
	return Params{
		ImageWeight: 0.5,
		MapWeight:   0.3,
		PriorWeight: 0.2,
		Materiality: 0.1,
	}
}

// WithWeights returns a copy with the fusion weights replaced.
func (p Params) WithWeights(image, mapW, prior float64) Params {
	p.ImageWeight = image
	p.MapWeight = mapW
	p.PriorWeight = prior
	return p
}

// Verdict is the outcome of a soil decision.
type Verdict struct {
	SoilType   Class   `json:"soil_type"`
	Confidence float64 `json:"confidence"`

	FinalScores         Distribution `json:"final_scores"`
	ImageScores         Distribution `json:"image_scores"`
	AdjustedImageScores Distribution `json:"adjusted_image_scores"`
	MapScores           Distribution `json:"map_scores"`

	Land     landcover.Classification `json:"land"`
	Weather  weather.Result           `json:"weather"`
	Location *geometry.LatLon         `json:"location,omitempty"`

	Reasons         []string         `json:"reasons"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// ConfidencePercent returns the confidence rounded for display.
func (v *Verdict) ConfidencePercent() float64 {
	return Round2(v.Confidence * 100)
}

// Round2 rounds x to two decimals.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Engine fuses the three evidence streams. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	params Params
	logger *zap.Logger
}

// NewEngine creates an engine. A nil logger disables logging.
func NewEngine(params Params, logger *zap.Logger) *Engine {
	return &Engine{params: params, logger: logging.OrNop(logger).Named("soil")}
}

// Params returns the engine's weights.
func (e *Engine) Params() Params {
	return e.params
}

// Decide combines image scores, the land-use classification and the weather
// adjustments into a verdict. It never fails: any distribution that cannot be
// normalized is replaced by the uniform one.
func (e *Engine) Decide(image Distribution, land landcover.Classification, wx weather.Result, loc *geometry.LatLon) *Verdict {
	adj := wx.Adjustments
	img := e.normalizeOrUniform("image", image)

	adjusted := Distribution{
		Clay:  img[Clay] * (1 + adj.ClayCrackIncrease) * adj.TextureReliability,
		Loamy: img[Loamy] * adj.TextureReliability,
		Sandy: img[Sandy] * (1 - adj.SandyReduction) * adj.TextureReliability,
	}
	adjusted = e.normalizeOrUniform("adjusted image", adjusted)

	// The raw bias sums are blended, so a legend row whose weights sum to
	// less than one leans further towards the prior.
	mapScores := ConvertBias(land.SoilBias)
	prior := 1.0 / float64(len(Classes))
	cbr := adj.ColorBiasReliability
	for _, c := range Classes {
		mapScores[c] = mapScores[c]*cbr + (1-cbr)*prior
	}
	mapScores = e.normalizeOrUniform("map", mapScores)

	final := make(Distribution, len(Classes))
	for _, c := range Classes {
		final[c] = e.params.ImageWeight*adjusted[c] + e.params.MapWeight*mapScores[c] + e.params.PriorWeight*prior
	}
	final = e.normalizeOrUniform("final", final)

	winner, conf := final.Top()
	v := &Verdict{
		SoilType:            winner,
		Confidence:          conf,
		FinalScores:         final,
		ImageScores:         img,
		AdjustedImageScores: adjusted,
		MapScores:           mapScores,
		Land:                land,
		Weather:             wx,
		Location:            loc,
		Recommendations:     Recommend(winner, ""),
	}
	v.Reasons = e.reasons(img, land, wx, winner)

	e.logger.Debug("soil decided",
		zap.String("soil_type", string(winner)),
		zap.Float64("confidence", conf),
		zap.String("land_class", land.LandClass),
		zap.Stringer("weather", wx.Status))
	return v
}

func (e *Engine) reasons(img Distribution, land landcover.Classification, wx weather.Result, winner Class) []string {
	top, score := img.Top()
	landClass := land.LandClass
	if landClass == "" {
		landClass = landcover.UnknownLandClass
	}
	out := []string{
		fmt.Sprintf("Image analysis suggests %s soil (score: %.2f)", top, score),
		fmt.Sprintf("Location classified as %s based on satellite data", landClass),
	}

	m := e.params.Materiality
	adj := wx.Adjustments
	if adj.SandyReduction > m {
		out = append(out, "Recent rainfall reduced sandy soil probability")
	}
	if adj.ClayCrackIncrease > m {
		out = append(out, "High temperature increased clay cracking probability")
	}
	if 1-adj.TextureReliability > m {
		out = append(out, "High humidity reduced texture analysis reliability")
	}
	if 1-adj.ColorBiasReliability > m {
		out = append(out, "High humidity reduced satellite colour reliability")
	}
	if wx.Status.Degraded() {
		out = append(out, "Weather data unavailable, fallback conditions assumed")
	}

	return append(out, fmt.Sprintf("Combined analysis favors %s with highest confidence", winner))
}

// normalizeOrUniform normalizes d, substituting the uniform distribution
// when d is degenerate.
func (e *Engine) normalizeOrUniform(stage string, d Distribution) Distribution {
	n, err := Normalize(d)
	if err != nil {
		e.logger.Warn("degenerate scores, using uniform distribution",
			zap.String("stage", stage),
			zap.Error(err))
		return Uniform()
	}
	return n
}
