package extract

import (
	"math"

	"gocv.io/x/gocv"

	"agrisense/internal/features"
	"agrisense/pkg/geometry"
)

// shapeFeatures measures the segmented outline. frameArea is the pixel
// count of the whole preprocessed frame.
func shapeFeatures(seg *Segmentation, frameArea int) features.ShapeFeatures {
	pv := gocv.NewPointVectorFromPoints(seg.Contour)
	defer pv.Close()

	area := seg.Area
	perimeter := gocv.ArcLength(pv, true)
	rect := gocv.BoundingRect(pv)
	w, h := float64(rect.Dx()), float64(rect.Dy())

	hull := geometry.ConvexHull(geometry.FromImagePoints(seg.Contour))
	hullArea := geometry.PolygonArea(hull)

	extent := area / (w*h + 1e-5)
	f := features.ShapeFeatures{
		AspectRatio: w / (h + 1e-5),
		Solidity:    area / (hullArea + 1e-5),
		Circularity: 4 * math.Pi * area / (perimeter*perimeter + 1e-5),
		Extent:      extent,
		// A curled or distorted leaf leaves more of its box empty.
		CurlIndex:   1 - extent,
		Compactness: perimeter * perimeter / (4*math.Pi*area + 1e-5),
		Area:        area,
		Perimeter:   perimeter,
	}
	if frameArea > 0 {
		f.RelativeSize = area / float64(frameArea)
	}

	if len(seg.Contour) >= 5 {
		ellipse := gocv.FitEllipse(pv)
		major := math.Max(float64(ellipse.Width), float64(ellipse.Height))
		minor := math.Min(float64(ellipse.Width), float64(ellipse.Height))
		ratio := minor / (major + 1e-5)
		f.Eccentricity = math.Sqrt(math.Max(0, 1-ratio*ratio))
		f.Orientation = ellipse.Angle
	}

	m := gocv.Moments(seg.Mask, true)
	f.HuMoments = features.LogHu(features.HuMoments(
		m["nu20"], m["nu11"], m["nu02"], m["nu30"], m["nu21"], m["nu12"], m["nu03"]))

	return f
}
