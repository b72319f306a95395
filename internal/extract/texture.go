package extract

import (
	"gocv.io/x/gocv"

	"agrisense/internal/features"
)

// textureFeatures computes edge, LBP, HSV and co-occurrence statistics over
// the masked leaf.
func (e *Extractor) textureFeatures(bgr gocv.Mat, seg *Segmentation) features.TextureFeatures {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(bgr, &gray, gocv.ColorBGRToGray)

	masked := zeroMask(bgr)
	defer masked.Close()
	gray.CopyToWithMask(&masked, seg.Mask)

	var t features.TextureFeatures

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(masked, &edges, e.params.CannyLow, e.params.CannyHigh)
	t.EdgeDensity = clamp01(float64(gocv.CountNonZero(edges)) / (float64(seg.Pixels) + 1e-5))

	grayPlane := plane(masked)
	maskPlane := plane(seg.Mask)
	t.LBPEnergy, t.LBPEntropy, t.LBPUniformity = features.LBPStats(features.LBPHistogram(grayPlane, maskPlane))
	t.GLCM = features.GLCM(grayPlane)

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(bgr, &hsv, gocv.ColorBGRToHSV)
	channels := gocv.Split(hsv)
	defer func() {
		for _, c := range channels {
			c.Close()
		}
	}()
	t.HueMean, t.HueStd = features.MaskedMeanStd(plane(channels[0]), maskPlane)
	t.SaturationMean, t.SaturationStd = features.MaskedMeanStd(plane(channels[1]), maskPlane)
	t.ValueMean, t.ValueStd = features.MaskedMeanStd(plane(channels[2]), maskPlane)

	return t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
