package disease

// Treatment is the advice for one disease type.
type Treatment struct {
	Immediate  string `json:"immediate"`
	Preventive string `json:"preventive"`
	Organic    string `json:"organic"`
	Chemical   string `json:"chemical"`
}

var treatments = map[Type]Treatment{
	TypeFungal: {
		Immediate:  "Apply appropriate fungicide based on disease",
		Preventive: "Improve air circulation, avoid overhead watering",
		Organic:    "Neem oil 2-3%, copper-based fungicides",
		Chemical:   "Triazoles (tebuconazole), strobilurins (azoxystrobin)",
	},
	TypeBacterial: {
		Immediate:  "Copper-based bactericides, remove infected parts",
		Preventive: "Use clean seeds/tools, crop rotation",
		Organic:    "Copper sprays, garlic extract",
		Chemical:   "Streptomycin, kasugamycin (where approved)",
	},
	TypeViral: {
		Immediate:  "Remove infected plants, control insect vectors",
		Preventive: "Use virus-free planting material",
		Organic:    "Neem oil for vector control",
		Chemical:   "No cure, vector management only",
	},
}

// TreatmentFor returns the advice for t, if there is any.
func TreatmentFor(t Type) (Treatment, bool) {
	tr, ok := treatments[t]
	return tr, ok
}

// GeneralAdvice returns the advice that applies to any diagnosis.
func GeneralAdvice() []string {
	return []string{
		"Isolate affected plants to prevent spread",
		"Remove severely infected leaves/plants",
		"Improve air circulation around plants",
		"Avoid overhead watering to keep leaves dry",
		"Maintain proper plant nutrition",
		"Monitor plants regularly for early detection",
	}
}

// Plan is the treatment advice attached to a set of diagnoses.
type Plan struct {
	Diagnosis Diagnosis  `json:"diagnosis"`
	Treatment *Treatment `json:"treatment,omitempty"`
}

// Advice pairs each diagnosis with its treatment.
func Advice(diagnoses []Diagnosis) []Plan {
	out := make([]Plan, 0, len(diagnoses))
	for _, d := range diagnoses {
		p := Plan{Diagnosis: d}
		if tr, ok := TreatmentFor(d.Type); ok {
			p.Treatment = &tr
		}
		out = append(out, p)
	}
	return out
}
