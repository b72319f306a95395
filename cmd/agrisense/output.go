package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"agrisense/internal/analysis"
	"agrisense/internal/soil"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printVerdict(w io.Writer, v *soil.Verdict) {
	fmt.Fprintf(w, "Soil type:  %s (%.2f%%)\n", v.SoilType, v.ConfidencePercent())
	for _, c := range soil.Classes {
		fmt.Fprintf(w, "  %-6s %6.2f%%\n", c, soil.Round2(v.FinalScores[c]*100))
	}
	fmt.Fprintf(w, "Land use:   %s\n", v.Land.LandClass)
	fmt.Fprintf(w, "Weather:    %s\n", v.Weather.Status)
	if s := v.Weather.Snapshot; s != nil {
		fmt.Fprintf(w, "  %.1f°C, %.0f%% humidity, %.1f mm rain\n", s.TemperatureC, s.Humidity, s.RainfallMM)
	}

	fmt.Fprintln(w, "\nReasons:")
	for _, r := range v.Reasons {
		fmt.Fprintf(w, "  - %s\n", r)
	}
	fmt.Fprintln(w, "\nRecommendations:")
	for _, r := range v.Recommendations {
		fmt.Fprintf(w, "  - %s: %s\n", r.Name, r.Description)
	}
}

func printPlantReport(w io.Writer, r *analysis.PlantReport) {
	if r.Status == analysis.StatusNoSubject {
		fmt.Fprintln(w, "No plant detected in the image")
		return
	}

	p := r.Plant
	if p.Unknown {
		fmt.Fprintf(w, "Plant:      unknown (%.2f)\n", p.Confidence)
	} else {
		fmt.Fprintf(w, "Plant:      %s (%.2f)\n", p.CommonName, p.Confidence)
	}
	candidates := make([]string, 0, len(p.Top3))
	for _, c := range p.Top3 {
		candidates = append(candidates, fmt.Sprintf("%s %.2f", c.CommonName, c.Score))
	}
	fmt.Fprintf(w, "Candidates: %s\n", strings.Join(candidates, ", "))

	fmt.Fprintln(w, "\nDiagnosis:")
	for _, plan := range r.Treatment {
		d := plan.Diagnosis
		fmt.Fprintf(w, "  %s [%s, %s confidence, score %.2f]\n", d.Name, d.Type, d.Confidence, d.Score)
		for _, s := range d.Symptoms {
			fmt.Fprintf(w, "    * %s\n", s)
		}
		if t := plan.Treatment; t != nil {
			fmt.Fprintf(w, "    Immediate:  %s\n", t.Immediate)
			fmt.Fprintf(w, "    Preventive: %s\n", t.Preventive)
			fmt.Fprintf(w, "    Organic:    %s\n", t.Organic)
			fmt.Fprintf(w, "    Chemical:   %s\n", t.Chemical)
		}
	}
	if len(p.KnownDiseases) > 0 {
		names := make([]string, 0, len(p.KnownDiseases))
		for _, d := range p.KnownDiseases {
			names = append(names, d.Key)
		}
		fmt.Fprintf(w, "\nKnown diseases of this crop: %s\n", strings.Join(names, ", "))
	}
}
