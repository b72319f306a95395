// Package analysis composes feature extraction, land-use lookup, weather and
// the decision engines into the soil and plant analyses.
package analysis

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"

	"agrisense/internal/disease"
	"agrisense/internal/extract"
	"agrisense/internal/features"
	"agrisense/internal/landcover"
	"agrisense/internal/logging"
	"agrisense/internal/plant"
	"agrisense/internal/soil"
	"agrisense/internal/weather"
	"agrisense/pkg/geometry"
)

// Status is the outcome of a plant analysis.
type Status int

const (
	// StatusOK means a subject was segmented and diagnosed.
	StatusOK Status = iota
	// StatusNoSubject means nothing leaf-like was found in the frame.
	StatusNoSubject
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoSubject:
		return "no_subject"
	default:
		return "unknown"
	}
}

// MarshalText renders the status name in JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// PlantReport is the result of DiagnosePlant. Plant, Diagnoses and Treatment
// are empty when Status is StatusNoSubject.
type PlantReport struct {
	Status    Status                `json:"status"`
	Plant     *plant.Identification `json:"plant,omitempty"`
	Diagnoses []disease.Diagnosis   `json:"diagnoses"`
	Treatment []disease.Plan        `json:"treatment,omitempty"`
	Features  *features.Set         `json:"features"`
}

// Healthy reports whether the report carries only the healthy outcome.
func (r *PlantReport) Healthy() bool {
	for _, d := range r.Diagnoses {
		if !d.Healthy() {
			return false
		}
	}
	return true
}

// Components are the collaborators of an Analyzer. Nil fields get defaults:
// no raster, no weather and the built-in catalog.
type Components struct {
	Extractor *extract.Extractor
	Land      *landcover.Classifier
	Weather   *weather.Adjuster
	Soil      *soil.Engine
	Disease   *disease.Engine
	Plants    *plant.Identifier
}

// Analyzer runs the analyses. All collaborators are read-only after
// construction, so an Analyzer may be shared between goroutines.
type Analyzer struct {
	extractor *extract.Extractor
	land      *landcover.Classifier
	weather   *weather.Adjuster
	soil      *soil.Engine
	disease   *disease.Engine
	plants    *plant.Identifier
	logger    *zap.Logger
}

// New assembles an analyzer from c.
func New(c Components, logger *zap.Logger) (*Analyzer, error) {
	logger = logging.OrNop(logger)

	a := &Analyzer{
		extractor: c.Extractor,
		land:      c.Land,
		weather:   c.Weather,
		soil:      c.Soil,
		disease:   c.Disease,
		plants:    c.Plants,
		logger:    logger.Named("analysis"),
	}
	if a.extractor == nil {
		a.extractor = extract.NewExtractor(extract.DefaultParams(), logger)
	}
	if a.land == nil {
		a.land = landcover.NewClassifier(nil, nil, 1, logger)
	}
	if a.weather == nil {
		a.weather = weather.NewAdjuster(nil, weather.DefaultFallback(), 0, logger)
	}
	if a.soil == nil {
		a.soil = soil.NewEngine(soil.DefaultParams(), logger)
	}
	if a.disease == nil {
		a.disease = disease.NewEngine(nil, logger)
	}
	if a.plants == nil {
		catalog, err := plant.DefaultCatalog()
		if err != nil {
			return nil, err
		}
		a.plants = plant.NewIdentifier(catalog, logger)
	}
	return a, nil
}

// ExtractFeatures computes the feature set of img. Invalid input is reported
// with image.ErrInvalidImage.
func (a *Analyzer) ExtractFeatures(img image.Image) (*features.Set, error) {
	set, err := a.extractor.Extract(img)
	if err != nil {
		return nil, fmt.Errorf("failed to extract features: %w", err)
	}
	return set, nil
}

// ClassifySoil estimates the soil type of a photograph taken at loc. A nil
// loc skips the land-use and weather evidence. Only invalid images produce
// an error; missing map or weather data degrade the verdict instead.
func (a *Analyzer) ClassifySoil(ctx context.Context, img image.Image, loc *geometry.LatLon) (*soil.Verdict, error) {
	set, err := a.ExtractFeatures(img)
	if err != nil {
		return nil, err
	}

	scores := soil.ImageScores(set.Soil)
	land := a.land.Classify(loc)
	wx := a.weather.Adjust(ctx, loc)

	v := a.soil.Decide(scores, land, wx, loc)
	a.logger.Info("soil classified",
		zap.String("soil_type", string(v.SoilType)),
		zap.Float64("confidence", v.Confidence),
		zap.String("land_class", land.LandClass),
		zap.Stringer("weather", wx.Status))
	return v, nil
}

// DiagnosePlant identifies the leaf in img and runs the disease cascade on
// it. A frame without a subject is reported through StatusNoSubject, not as
// an error.
func (a *Analyzer) DiagnosePlant(img image.Image) (*PlantReport, error) {
	set, err := a.ExtractFeatures(img)
	if err != nil {
		return nil, err
	}

	if !set.SubjectFound || set.Leaf == nil {
		a.logger.Info("no plant subject detected")
		return &PlantReport{Status: StatusNoSubject, Features: set}, nil
	}

	id := a.plants.Identify(set.Leaf.Shape)
	diagnoses := a.disease.Diagnose(disease.IndicesFrom(set.Leaf))

	report := &PlantReport{
		Status:    StatusOK,
		Plant:     &id,
		Diagnoses: diagnoses,
		Treatment: disease.Advice(diagnoses),
		Features:  set,
	}

	fields := []zap.Field{
		zap.String("species", id.Species),
		zap.Float64("plant_confidence", id.Confidence),
	}
	if len(diagnoses) > 0 {
		fields = append(fields, zap.String("diagnosis", diagnoses[0].Name))
	}
	a.logger.Info("plant diagnosed", fields...)
	return report, nil
}
