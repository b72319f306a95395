package features

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Plane is a single-channel 8-bit image in row-major order.
type Plane struct {
	Pix    []uint8
	Width  int
	Height int
}

// At returns the value at (x, y).
func (p Plane) At(x, y int) uint8 {
	return p.Pix[y*p.Width+x]
}

// Valid reports whether Pix covers Width*Height.
func (p Plane) Valid() bool {
	return p.Width > 0 && p.Height > 0 && len(p.Pix) >= p.Width*p.Height
}

// LBPHistogram computes the normalized 256-bin histogram of 8-neighbour
// local binary pattern codes over the masked pixels. Border pixels inside
// the mask count as code 0. A neighbour sets its bit when it is strictly
// brighter than the centre.
func LBPHistogram(gray, mask Plane) []float64 {
	hist := make([]float64, 256)
	if !gray.Valid() || !mask.Valid() {
		return hist
	}
	w, h := gray.Width, gray.Height
	var total float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.At(x, y) == 0 {
				continue
			}
			code := 0
			if x > 0 && y > 0 && x < w-1 && y < h-1 {
				c := gray.At(x, y)
				code = bit(gray.At(x-1, y-1) > c, 7) |
					bit(gray.At(x, y-1) > c, 6) |
					bit(gray.At(x+1, y-1) > c, 5) |
					bit(gray.At(x+1, y) > c, 4) |
					bit(gray.At(x+1, y+1) > c, 3) |
					bit(gray.At(x, y+1) > c, 2) |
					bit(gray.At(x-1, y+1) > c, 1) |
					bit(gray.At(x-1, y) > c, 0)
			}
			hist[code]++
			total++
		}
	}
	for i := range hist {
		hist[i] /= total + 1e-7
	}
	return hist
}

func bit(set bool, shift uint) int {
	if set {
		return 1 << shift
	}
	return 0
}

// LBPStats reduces a normalized LBP histogram to energy, entropy (bits) and
// uniformity (the largest bin).
func LBPStats(hist []float64) (energy, entropy, uniformity float64) {
	for _, p := range hist {
		energy += p * p
		entropy -= p * math.Log2(p+1e-7)
		if p > uniformity {
			uniformity = p
		}
	}
	return energy, entropy, uniformity
}

// GLCMStats are Haralick-style statistics of a grey-level co-occurrence
// matrix.
type GLCMStats struct {
	Contrast    float64 `json:"contrast"`
	Homogeneity float64 `json:"homogeneity"`
	Energy      float64 `json:"energy"`
	Correlation float64 `json:"correlation"`
}

// GLCM builds the co-occurrence matrix of horizontally adjacent pixel pairs
// (distance 1, angle 0) where both values are non-zero, and reduces it.
// Background is expected to be zeroed by the caller. With no pairs every
// statistic is zero.
func GLCM(gray Plane) GLCMStats {
	if !gray.Valid() {
		return GLCMStats{}
	}
	counts := make([]float64, 256*256)
	var total float64
	for y := 0; y < gray.Height; y++ {
		for x := 0; x < gray.Width-1; x++ {
			a, b := gray.At(x, y), gray.At(x+1, y)
			if a > 0 && b > 0 {
				counts[int(a)*256+int(b)]++
				total++
			}
		}
	}
	if total == 0 {
		return GLCMStats{}
	}

	var s GLCMStats
	var meanI, meanJ float64
	for k, c := range counts {
		if c == 0 {
			continue
		}
		p := c / total
		i, j := float64(k/256), float64(k%256)
		d := i - j
		s.Contrast += p * d * d
		s.Homogeneity += p / (1 + d*d)
		s.Energy += p * p
		meanI += i * p
		meanJ += j * p
	}

	var varI, varJ, cov float64
	for k, c := range counts {
		if c == 0 {
			continue
		}
		p := c / total
		di, dj := float64(k/256)-meanI, float64(k%256)-meanJ
		varI += p * di * di
		varJ += p * dj * dj
		cov += p * di * dj
	}
	if varI > 0 && varJ > 0 {
		s.Correlation = cov / (math.Sqrt(varI) * math.Sqrt(varJ))
	}
	return s
}

// MaskedMeanStd returns the population mean and standard deviation of the
// values under the mask, or zeros when the mask is empty.
func MaskedMeanStd(values, mask Plane) (mean, std float64) {
	if !values.Valid() || !mask.Valid() {
		return 0, 0
	}
	n := values.Width * values.Height
	xs := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if mask.Pix[i] != 0 {
			xs = append(xs, float64(values.Pix[i]))
		}
	}
	if len(xs) == 0 {
		return 0, 0
	}
	return stat.PopMeanStdDev(xs, nil)
}
