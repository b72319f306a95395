package disease

import "math"

// Rule is one step of the cascade. Match returns the diagnosis and true
// when the rule fires.
type Rule struct {
	Name  string
	Match func(Indices) (Diagnosis, bool)
}

// DefaultRules returns the cascade in priority order: red/purple nutrient
// stress, then curl-gated viral disease, then mildew, spots and yellowing,
// and finally the healthy or unclear default. The last rule always fires.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "nutrient_deficiency", Match: nutrientDeficiency},
		{Name: "leaf_curl_virus", Match: leafCurlVirus},
		{Name: "powdery_mildew", Match: powderyMildew},
		{Name: "leaf_spot", Match: leafSpot},
		{Name: "nitrogen_deficiency", Match: nitrogenDeficiency},
		{Name: "default", Match: conservativeDefault},
	}
}

func nutrientDeficiency(ix Indices) (Diagnosis, bool) {
	if ix.Red > 0.15 && ix.Spot < 0.1 && ix.Curl < 0.25 {
		return Diagnosis{
			Name:       "Nutrient Deficiency (Phos/Potassium)",
			Type:       TypeNutritional,
			Confidence: High,
			Score:      ix.Red,
			Symptoms:   []string{"Purple/Red discoloration", "No major spots", "Stunted growth"},
		}, true
	}
	return Diagnosis{}, false
}

// leafCurlVirus only considers viral signs on visibly curled leaves.
func leafCurlVirus(ix Indices) (Diagnosis, bool) {
	if ix.Curl <= 0.25 {
		return Diagnosis{}, false
	}
	score := 0.0
	if ix.Yellow > 0.1 {
		score += 0.4
	}
	if ix.EdgeDensity > 0.2 {
		score += 0.3
	}
	if score <= 0.5 {
		return Diagnosis{}, false
	}
	conf := Medium
	if ix.Curl > 0.4 {
		conf = High
	}
	return Diagnosis{
		Name:       "Leaf Curl Virus",
		Type:       TypeViral,
		Confidence: conf,
		Score:      ix.Curl,
		Symptoms:   []string{"Severe leaf curling", "Distortion", "Stunted growth"},
	}, true
}

func powderyMildew(ix Indices) (Diagnosis, bool) {
	if ix.White > 0.15 {
		return Diagnosis{
			Name:       "Powdery Mildew",
			Type:       TypeFungal,
			Confidence: High,
			Score:      ix.White,
			Symptoms:   []string{"White powdery patches"},
		}, true
	}
	return Diagnosis{}, false
}

// leafSpot separates water-soaked bacterial lesions from dry fungal spots.
func leafSpot(ix Indices) (Diagnosis, bool) {
	if !(ix.Spot > 0.15 || ix.WaterSoaked > 0.15) {
		return Diagnosis{}, false
	}
	d := Diagnosis{
		Name:       "Leaf Spot / Fungal Blight",
		Type:       TypeFungal,
		Confidence: Medium,
		Score:      math.Max(ix.Spot, ix.WaterSoaked),
		Symptoms:   []string{"Dark lesions", "Yellow halos"},
	}
	if ix.WaterSoaked > ix.Spot {
		d.Name = "Bacterial Blight"
		d.Type = TypeBacterial
	}
	if ix.Spot > 0.25 {
		d.Confidence = High
	}
	return d, true
}

func nitrogenDeficiency(ix Indices) (Diagnosis, bool) {
	if ix.Yellow > 0.25 && ix.Curl < 0.2 {
		return Diagnosis{
			Name:       "Nitrogen Deficiency",
			Type:       TypeNutritional,
			Confidence: Medium,
			Score:      ix.Yellow,
			Symptoms:   []string{"General Yellowing (Chlorosis)"},
		}, true
	}
	return Diagnosis{}, false
}

func conservativeDefault(ix Indices) (Diagnosis, bool) {
	if ix.HealthyGreen > 0.6 {
		return Diagnosis{
			Name:       "Healthy Plant",
			Type:       TypeHealthy,
			Confidence: High,
			Score:      0.9,
			Symptoms:   []string{"Normal green color", "Good structural integrity"},
		}, true
	}
	return Diagnosis{
		Name:       "Early Stage Stress / Unclear",
		Type:       TypeUnknown,
		Confidence: Low,
		Score:      0.3,
		Symptoms:   []string{"Mild discoloration", "No specific pattern detected"},
	}, true
}
