package extract

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
	"golang.org/x/image/draw"

	"agrisense/internal/features"
)

// ToMat converts a Go image to a BGR Mat. The caller owns the result.
func ToMat(src image.Image) (gocv.Mat, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	rgba, ok := src.(*image.RGBA)
	if !ok || rgba.Stride != 4*w || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	}

	mat, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC4, rgba.Pix)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to create mat: %w", err)
	}
	defer mat.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(mat, &bgr, gocv.ColorRGBAToBGR)
	return bgr, nil
}

// plane copies a single-channel 8-bit Mat into a Plane.
func plane(m gocv.Mat) features.Plane {
	return features.Plane{Pix: m.ToBytes(), Width: m.Cols(), Height: m.Rows()}
}

// zeroMask allocates a blank single-channel mask the size of ref.
func zeroMask(ref gocv.Mat) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), ref.Rows(), ref.Cols(), gocv.MatTypeCV8U)
}

// inBand returns the mask of pixels of hsv inside any of the band's boxes.
func inBand(hsv gocv.Mat, band features.Band) gocv.Mat {
	out := zeroMask(hsv)
	for _, r := range band.Ranges {
		m := gocv.NewMat()
		lower := gocv.NewScalar(r.Lower.H, r.Lower.S, r.Lower.V, 0)
		upper := gocv.NewScalar(r.Upper.H, r.Upper.S, r.Upper.V, 0)
		gocv.InRangeWithScalar(hsv, lower, upper, &m)
		gocv.BitwiseOr(out, m, &out)
		m.Close()
	}
	return out
}

// BandMask returns the union of the named colour bands over a BGR frame.
// Unknown names are ignored. The caller owns the result.
func (e *Extractor) BandMask(bgr gocv.Mat, names ...string) gocv.Mat {
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(bgr, &hsv, gocv.ColorBGRToHSV)

	out := zeroMask(bgr)
	for _, name := range names {
		band, ok := e.params.band(name)
		if !ok {
			continue
		}
		m := inBand(hsv, band)
		gocv.BitwiseOr(out, m, &out)
		m.Close()
	}
	return out
}
