package extract

import (
	"gocv.io/x/gocv"

	"agrisense/internal/features"
)

// colorFeatures measures band coverage and red shift inside the mask.
func (e *Extractor) colorFeatures(bgr gocv.Mat, seg *Segmentation) features.ColorFeatures {
	c := features.ColorFeatures{Bands: make(map[string]float64, len(e.params.Bands))}
	for _, b := range e.params.Bands {
		c.Bands[b.Name] = 0
	}
	if seg.Pixels == 0 {
		return c
	}
	total := float64(seg.Pixels)

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(bgr, &hsv, gocv.ColorBGRToHSV)

	for _, b := range e.params.Bands {
		m := inBand(hsv, b)
		gocv.BitwiseAnd(m, seg.Mask, &m)
		c.Bands[b.Name] = float64(gocv.CountNonZero(m)) / total
		m.Close()
	}

	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(bgr, &lab, gocv.ColorBGRToLab)
	channels := gocv.Split(lab)
	defer func() {
		for _, ch := range channels {
			ch.Close()
		}
	}()
	red := gocv.NewMat()
	defer red.Close()
	// Threshold is strict, so step one below the inclusive limit.
	gocv.Threshold(channels[1], &red, float32(e.params.RedThreshold-1), 255, gocv.ThresholdBinary)
	gocv.BitwiseAnd(red, seg.Mask, &red)
	c.RedIndex = float64(gocv.CountNonZero(red)) / total

	c.SpotIndex = c.Bands[features.BandNecrosisBrown] + c.Bands[features.BandBlackSpots]
	return c
}
