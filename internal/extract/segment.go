package extract

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"agrisense/internal/features"
)

// Segmentation is the main subject found in a frame.
type Segmentation struct {
	// Mask is 255 inside the filled subject contour and 0 elsewhere.
	Mask    gocv.Mat
	Contour []image.Point
	Area    float64
	Pixels  int
}

// Close releases the mask.
func (s *Segmentation) Close() {
	s.Mask.Close()
}

// Segment separates the leaf from its background. Healthy-green pixels are
// combined with an Otsu split of the saturation channel, cleaned with a
// close/open pass, and only the largest external contour is kept. ok is
// false when nothing was found.
func (e *Extractor) Segment(bgr gocv.Mat) (seg *Segmentation, ok bool) {
	if bgr.Empty() {
		return nil, false
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(bgr, &hsv, gocv.ColorBGRToHSV)

	combined := zeroMask(bgr)
	defer combined.Close()
	if green, found := e.params.band(features.BandHealthyGreen); found {
		m := inBand(hsv, green)
		gocv.BitwiseOr(combined, m, &combined)
		m.Close()
	}

	channels := gocv.Split(hsv)
	defer func() {
		for _, c := range channels {
			c.Close()
		}
	}()
	saturated := gocv.NewMat()
	defer saturated.Close()
	gocv.Threshold(channels[1], &saturated, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	gocv.BitwiseOr(combined, saturated, &combined)

	if k := e.params.MorphKernel; k > 0 {
		kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: k, Y: k})
		defer kernel.Close()
		gocv.MorphologyEx(combined, &combined, gocv.MorphClose, kernel)
		gocv.MorphologyEx(combined, &combined, gocv.MorphOpen, kernel)
	}

	contours := gocv.FindContours(combined, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	best, bestArea := -1, 0.0
	for i := 0; i < contours.Size(); i++ {
		if a := gocv.ContourArea(contours.At(i)); a > bestArea {
			best, bestArea = i, a
		}
	}
	if best < 0 {
		e.logger.Debug("no subject segmented")
		return nil, false
	}

	mask := zeroMask(bgr)
	gocv.DrawContours(&mask, contours, best, color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)

	return &Segmentation{
		Mask:    mask,
		Contour: contours.At(best).ToPoints(),
		Area:    bestArea,
		Pixels:  gocv.CountNonZero(mask),
	}, true
}
