package soil

import "strings"

// Recommendation is one fertilizer suggestion.
type Recommendation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var soilAdvice = map[Class][]Recommendation{
	Clay: {
		{"Organic Compost", "Improves drainage and aeration in clay soil."},
		{"Gypsum", "Helps break up compact clay."},
	},
	Sandy: {
		{"Humus", "Increases water retention."},
		{"NPK 10-10-10", "Balanced nutrients as sandy soil leaches quickly."},
	},
	Loamy: {
		{"Balanced Fertilizer", "Loam is ideal, just maintain nutrients."},
	},
}

// Recommend returns fertilizer suggestions for a soil class, followed by any
// crop-specific addition. crop is matched case-insensitively and may be empty.
func Recommend(class Class, crop string) []Recommendation {
	var out []Recommendation
	out = append(out, soilAdvice[class]...)

	crop = strings.ToLower(crop)
	switch {
	case strings.Contains(crop, "wheat"):
		out = append(out, Recommendation{"Urea", "Top dressing for nitrogen."})
	case strings.Contains(crop, "rice"):
		out = append(out, Recommendation{"DAP", "Basal application."})
	case strings.Contains(crop, "corn"), strings.Contains(crop, "maize"):
		out = append(out, Recommendation{"Zinc Sulfate", "Corn is sensitive to Zinc deficiency."})
	}

	if len(out) == 0 {
		out = append(out, Recommendation{"General Purpose NPK", "Standard 17-17-17 fertilizer."})
	}
	return out
}
