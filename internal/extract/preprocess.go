package extract

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
	"gocv.io/x/gocv"
)

// scaledSize returns the dimensions after fitting the longest side into
// maxDim. Images within the limit, or a non-positive limit, keep their size.
func scaledSize(w, h, maxDim int) (int, int) {
	longest := w
	if h > longest {
		longest = h
	}
	if maxDim <= 0 || longest <= maxDim {
		return w, h
	}
	scale := float64(maxDim) / float64(longest)
	nw, nh := int(float64(w)*scale), int(float64(h)*scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

// Preprocess downscales the image so its longest side fits MaxDimension,
// converts it to BGR and applies a Gaussian blur. The caller owns the
// returned Mat.
func (e *Extractor) Preprocess(src image.Image) (gocv.Mat, error) {
	b := src.Bounds()
	w, h := scaledSize(b.Dx(), b.Dy(), e.params.MaxDimension)
	if w != b.Dx() || h != b.Dy() {
		src = resize.Resize(uint(w), uint(h), src, resize.Bilinear)
	}

	bgr, err := ToMat(src)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to convert image: %w", err)
	}

	if k := e.params.BlurKernel; k > 1 {
		gocv.GaussianBlur(bgr, &bgr, image.Point{X: k, Y: k}, 0, 0, gocv.BorderDefault)
	}
	return bgr, nil
}
