package soil

import (
	"math"

	"agrisense/internal/features"
)

// ImageScores turns whole-frame soil features into a normalized
// distribution. Colour, coarseness, grain, crack and homogeneity cues each
// vote for the class they are typical of.
func ImageScores(f features.SoilFeatures) Distribution {
	v := f.AvgValue / 255
	s := f.AvgSaturation / 255

	sandyColor := v * 0.6
	clayColor := s * (1 - v*0.5)
	loamyColor := math.Max(0, (1-math.Abs(v-0.5)-math.Abs(s-0.5))*0.8)

	raw := Distribution{
		Sandy: 0.3*sandyColor + 0.4*(f.Coarseness*0.8) + 0.3*(f.GrainScore*0.8),
		Clay:  0.3*clayColor + 0.3*((1-f.Coarseness)*0.7) + 0.4*(f.CrackScore*0.9),
		Loamy: 0.4*loamyColor + 0.4*(f.Homogeneity*0.6) + 0.2*f.Homogeneity,
	}
	d, err := Normalize(raw)
	if err != nil {
		return Uniform()
	}
	return d
}
