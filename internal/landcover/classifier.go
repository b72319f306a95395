package landcover

import (
	"go.uber.org/zap"

	"agrisense/internal/logging"
	"agrisense/pkg/colorutil"
	"agrisense/pkg/geometry"
)

// Classification is the land-use verdict for one coordinate.
type Classification struct {
	ColorClass    string             `json:"color_class"`
	LandClass     string             `json:"land_class"`
	SoilBias      map[string]float64 `json:"soil_bias"`
	DetectedColor *colorutil.RGB     `json:"detected_color,omitempty"`
	Pixel         *geometry.PointInt `json:"pixel,omitempty"`
}

// Known reports whether a legend row matched.
func (c Classification) Known() bool {
	return c.ColorClass != UnknownKey
}

// Unknown returns the catch-all classification.
func Unknown() Classification {
	return Classification{
		ColorClass: UnknownKey,
		LandClass:  UnknownLandClass,
		SoilBias:   map[string]float64{BiasMixed: 1.0},
	}
}

// Classifier looks coordinates up on a raster. A nil raster is allowed and
// makes every lookup Unknown.
type Classifier struct {
	raster *Raster
	table  Table
	radius int
	logger *zap.Logger
}

// NewClassifier builds a classifier. neighborhood is the side of the sampled
// square (7 samples a 7x7 block).
func NewClassifier(raster *Raster, table Table, neighborhood int, logger *zap.Logger) *Classifier {
	if len(table) == 0 {
		table = DefaultTable()
	}
	if neighborhood < 1 {
		neighborhood = 1
	}
	return &Classifier{
		raster: raster,
		table:  table,
		radius: neighborhood / 2,
		logger: logging.OrNop(logger).Named("landcover"),
	}
}

// HasRaster reports whether lookups can succeed at all.
func (c *Classifier) HasRaster() bool {
	return c.raster != nil
}

// Classify returns the land-use class at loc. It never fails: a missing
// location, missing raster or unmatched colour all produce Unknown.
func (c *Classifier) Classify(loc *geometry.LatLon) Classification {
	if loc == nil || c.raster == nil {
		return Unknown()
	}

	px := c.raster.ToPixel(*loc)
	sample := c.raster.SampleMean(px, c.radius)
	pixel := &geometry.PointInt{X: px.X, Y: px.Y}

	row, ok := c.table.Match(sample)
	if !ok {
		c.logger.Debug("no legend match",
			zap.Stringer("location", loc),
			zap.Stringer("color", sample))
		u := Unknown()
		u.DetectedColor = &sample
		u.Pixel = pixel
		return u
	}

	bias := make(map[string]float64, len(row.SoilBias))
	for k, v := range row.SoilBias {
		bias[k] = v
	}

	return Classification{
		ColorClass:    row.Key,
		LandClass:     row.LandClass,
		SoilBias:      bias,
		DetectedColor: &sample,
		Pixel:         pixel,
	}
}
