package plant

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"agrisense/internal/features"
	"agrisense/internal/logging"
)

const (
	maxScore          = 6.0
	maxDisplayScore   = 0.95
	maxConfidence     = 0.85
	unknownConfidence = 0.4

	// UnknownSpecies labels a result too weak to trust.
	UnknownSpecies = "unknown"
)

// Candidate is one scored species.
type Candidate struct {
	Species    string  `json:"species"`
	CommonName string  `json:"common_name"`
	Score      float64 `json:"score"`
}

// Identification is the outcome of Identify.
type Identification struct {
	// Species is the best-scoring key, or UnknownSpecies when Unknown is set.
	Species    string      `json:"species"`
	CommonName string      `json:"common_name,omitempty"`
	Confidence float64     `json:"confidence"`
	Top3       []Candidate `json:"top3"`
	Unknown    bool        `json:"unknown"`

	// KnownDiseases lists what the identified species is susceptible to.
	KnownDiseases []KnownDisease `json:"known_diseases,omitempty"`
}

// Identifier scores leaf shapes against a catalog.
type Identifier struct {
	catalog *Catalog
	logger  *zap.Logger
}

// NewIdentifier creates an identifier over catalog.
func NewIdentifier(catalog *Catalog, logger *zap.Logger) *Identifier {
	return &Identifier{catalog: catalog, logger: logging.OrNop(logger).Named("plant")}
}

// score rates how well shape fits a profile, out of maxScore.
func (id *Identifier) score(p Profile, shape features.ShapeFeatures) float64 {
	var s float64

	ar := p.Leaf.AspectRatio
	if ar.Contains(shape.AspectRatio) {
		s += 2
	} else {
		d := math.Min(math.Abs(shape.AspectRatio-ar[0]), math.Abs(shape.AspectRatio-ar[1]))
		s += math.Max(0, 2-d)
	}

	s += 1 - math.Abs(shape.Circularity-id.catalog.ExpectedCircularity(p.Leaf.Shape))

	switch {
	case p.Leaf.Size == SizeLarge && shape.RelativeSize > 0.4:
		s++
	case p.Leaf.Size == SizeSmall && shape.RelativeSize < 0.2:
		s++
	}
	return s
}

// Identify returns the most likely species for a leaf shape. Equal scores
// resolve to the profile listed first in the catalog.
func (id *Identifier) Identify(shape features.ShapeFeatures) Identification {
	profiles := id.catalog.Profiles()
	if len(profiles) == 0 {
		return Identification{Species: UnknownSpecies, Unknown: true}
	}

	scored := make([]Candidate, len(profiles))
	for i, p := range profiles {
		scored[i] = Candidate{Species: p.Key, CommonName: p.CommonName, Score: id.score(p, shape)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	best := scored[0]
	out := Identification{
		Species:    best.Species,
		CommonName: best.CommonName,
		Confidence: math.Min(best.Score/maxScore, maxConfidence),
	}
	n := min(3, len(scored))
	out.Top3 = make([]Candidate, n)
	for i := 0; i < n; i++ {
		c := scored[i]
		c.Score = math.Min(c.Score/maxScore, maxDisplayScore)
		out.Top3[i] = c
	}

	if out.Confidence < unknownConfidence {
		out.Unknown = true
		out.Species = UnknownSpecies
		out.CommonName = ""
	} else if p, ok := id.catalog.Lookup(best.Species); ok {
		out.KnownDiseases = p.Diseases
	}

	id.logger.Debug("plant identified",
		zap.String("species", best.Species),
		zap.Float64("confidence", out.Confidence),
		zap.Bool("unknown", out.Unknown))
	return out
}
