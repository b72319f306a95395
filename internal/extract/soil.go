package extract

import (
	"image"
	"math"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"

	"agrisense/internal/features"
)

// soilFeatures computes whole-frame colour, texture and structure cues.
func (e *Extractor) soilFeatures(bgr gocv.Mat) features.SoilFeatures {
	var s features.SoilFeatures

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(bgr, &hsv, gocv.ColorBGRToHSV)
	channels := gocv.Split(hsv)
	s.AvgHue = planeMean(channels[0])
	s.AvgSaturation = planeMean(channels[1])
	s.AvgValue = planeMean(channels[2])
	for _, c := range channels {
		c.Close()
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(bgr, &gray, gocv.ColorBGRToGray)

	s.Coarseness = coarseness(gray)
	s.Homogeneity = otsuWhiteFraction(gray)
	s.CrackScore = e.crackScore(gray)
	s.GrainScore = e.grainScore(gray)
	return s
}

func planeMean(m gocv.Mat) float64 {
	pix := m.ToBytes()
	if len(pix) == 0 {
		return 0
	}
	xs := make([]float64, len(pix))
	for i, p := range pix {
		xs[i] = float64(p)
	}
	return stat.Mean(xs, nil)
}

// coarseness is the spread of the Sobel gradient magnitude, scaled by 255.
func coarseness(gray gocv.Mat) float64 {
	gx := gocv.NewMat()
	defer gx.Close()
	gy := gocv.NewMat()
	defer gy.Close()
	gocv.Sobel(gray, &gx, gocv.MatTypeCV64F, 1, 0, 3, 1, 0, gocv.BorderDefault)
	gocv.Sobel(gray, &gy, gocv.MatTypeCV64F, 0, 1, 3, 1, 0, gocv.BorderDefault)

	dx, err := gx.DataPtrFloat64()
	if err != nil {
		return 0
	}
	dy, err := gy.DataPtrFloat64()
	if err != nil || len(dx) != len(dy) || len(dx) == 0 {
		return 0
	}
	mag := make([]float64, len(dx))
	for i := range dx {
		mag[i] = math.Hypot(dx[i], dy[i])
	}
	_, std := stat.PopMeanStdDev(mag, nil)
	return std / 255
}

// otsuWhiteFraction is the share of pixels above the Otsu threshold.
func otsuWhiteFraction(gray gocv.Mat) float64 {
	total := gray.Rows() * gray.Cols()
	if total == 0 {
		return 0
	}
	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(gray, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	return float64(gocv.CountNonZero(binary)) / float64(total)
}

// crackScore sums the length of straight edge segments relative to the
// frame diagonal, capped at 1.
func (e *Extractor) crackScore(gray gocv.Mat) float64 {
	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, e.params.CannyLow, e.params.CannyHigh)

	lines := gocv.NewMat()
	defer lines.Close()
	gocv.HoughLinesPWithParams(edges, &lines,
		e.params.HoughRho,
		float32(e.params.HoughThetaDeg*math.Pi/180),
		e.params.HoughThreshold,
		e.params.HoughMinLineLength,
		e.params.HoughMaxLineGap)

	var total float64
	for i := 0; i < lines.Rows(); i++ {
		v := lines.GetVeciAt(i, 0)
		total += math.Hypot(float64(v[2]-v[0]), float64(v[3]-v[1]))
	}
	diag := math.Hypot(float64(gray.Rows()), float64(gray.Cols()))
	if diag == 0 {
		return 0
	}
	return math.Min(total/diag, 1)
}

// grainScore counts roughly round blobs of grain size after contrast
// enhancement.
func (e *Extractor) grainScore(gray gocv.Mat) float64 {
	tile := e.params.CLAHETileSize
	clahe := gocv.NewCLAHEWithParams(e.params.CLAHEClipLimit, image.Point{X: tile, Y: tile})
	defer clahe.Close()

	enhanced := gocv.NewMat()
	defer enhanced.Close()
	clahe.Apply(gray, &enhanced)

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(enhanced, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)

	contours := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	count := 0
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		area := gocv.ContourArea(c)
		perimeter := gocv.ArcLength(c, true)
		if perimeter <= 0 {
			continue
		}
		circ := 4 * math.Pi * area / (perimeter * perimeter)
		if circ > e.params.GrainCircularityMin && circ < e.params.GrainCircularityMax &&
			area > e.params.GrainAreaMin && area < e.params.GrainAreaMax {
			count++
		}
	}
	if e.params.GrainNorm <= 0 {
		return 0
	}
	return math.Min(float64(count)/e.params.GrainNorm, 1)
}
