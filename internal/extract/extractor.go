// Package extract turns soil and leaf photographs into feature sets using
// OpenCV.
package extract

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"agrisense/internal/features"
	agimage "agrisense/internal/image"
	"agrisense/internal/logging"
)

// Extractor computes feature sets. It holds only read-only configuration
// and is safe for concurrent use.
type Extractor struct {
	params Params
	logger *zap.Logger
}

// NewExtractor creates an extractor. A nil logger disables logging.
func NewExtractor(params Params, logger *zap.Logger) *Extractor {
	return &Extractor{params: params, logger: logging.OrNop(logger).Named("extract")}
}

// Params returns the extractor's parameters.
func (e *Extractor) Params() Params {
	return e.params
}

// Extract preprocesses the image, computes whole-frame soil features and,
// when a subject can be segmented, leaf features. A missing subject is not
// an error; Set.SubjectFound reports it.
func (e *Extractor) Extract(src image.Image) (*features.Set, error) {
	if err := agimage.Validate(src); err != nil {
		return nil, err
	}

	bgr, err := e.Preprocess(src)
	if err != nil {
		return nil, fmt.Errorf("failed to preprocess image: %w", err)
	}
	defer bgr.Close()

	set := &features.Set{
		Soil:   e.soilFeatures(bgr),
		Width:  bgr.Cols(),
		Height: bgr.Rows(),
	}

	seg, ok := e.Segment(bgr)
	if !ok {
		return set, nil
	}
	defer seg.Close()

	set.SubjectFound = true
	set.Leaf = &features.LeafFeatures{
		Shape:   shapeFeatures(seg, bgr.Rows()*bgr.Cols()),
		Texture: e.textureFeatures(bgr, seg),
		Color:   e.colorFeatures(bgr, seg),
	}

	e.logger.Debug("features extracted",
		zap.Int("width", set.Width),
		zap.Int("height", set.Height),
		zap.Float64("subject_area", seg.Area))
	return set, nil
}
