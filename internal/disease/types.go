// Package disease diagnoses leaf conditions from colour, shape and texture
// indices with an ordered rule cascade.
package disease

import "agrisense/internal/features"

// Type is the broad category of a diagnosis.
type Type string

const (
	TypeNutritional Type = "nutritional"
	TypeViral       Type = "viral"
	TypeFungal      Type = "fungal"
	TypeBacterial   Type = "bacterial"
	TypeHealthy     Type = "healthy"
	TypeUnknown     Type = "unknown"
)

// Confidence is a coarse certainty label.
type Confidence string

const (
	High   Confidence = "High"
	Medium Confidence = "Medium"
	Low    Confidence = "Low"
)

// Diagnosis is one detected condition.
type Diagnosis struct {
	Name       string     `json:"name"`
	Type       Type       `json:"type"`
	Confidence Confidence `json:"confidence"`
	Score      float64    `json:"score"`
	Symptoms   []string   `json:"symptoms"`
}

// Healthy reports whether the diagnosis is the healthy outcome.
func (d Diagnosis) Healthy() bool {
	return d.Type == TypeHealthy
}

// Indices are the inputs the rules look at.
type Indices struct {
	Red          float64 `json:"red"`
	Spot         float64 `json:"spot"`
	Curl         float64 `json:"curl"`
	Yellow       float64 `json:"yellow"`
	White        float64 `json:"white"`
	WaterSoaked  float64 `json:"water_soaked"`
	HealthyGreen float64 `json:"healthy_green"`
	EdgeDensity  float64 `json:"edge_density"`
}

// IndicesFrom picks the rule inputs out of a leaf feature set.
func IndicesFrom(leaf *features.LeafFeatures) Indices {
	if leaf == nil {
		return Indices{}
	}
	c := leaf.Color
	return Indices{
		Red:          c.RedIndex,
		Spot:         c.SpotIndex,
		Curl:         leaf.Shape.CurlIndex,
		Yellow:       c.Band(features.BandYellowing),
		White:        c.Band(features.BandWhiteMildew),
		WaterSoaked:  c.Band(features.BandWaterSoaked),
		HealthyGreen: c.Band(features.BandHealthyGreen),
		EdgeDensity:  leaf.Texture.EdgeDensity,
	}
}
