// Package colorutil provides shared color types and conversions.
//
// HSV values follow the OpenCV 8-bit convention throughout: H 0-180, S 0-255,
// V 0-255.
package colorutil

import (
	"fmt"
	"image/color"
	"math"
)

// Overlay colors used by the annotated report.
var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Orange = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	Green  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
)

// RGB is an 8-bit-per-channel color triple. Channels are float64 so that
// neighbourhood averages keep their fractional part.
type RGB struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
}

func (c RGB) String() string {
	return fmt.Sprintf("(%.0f,%.0f,%.0f)", c.R, c.G, c.B)
}

// RGBBox is an inclusive axis-aligned box in RGB space.
type RGBBox struct {
	Min RGB `yaml:"min"`
	Max RGB `yaml:"max"`
}

// Contains reports whether c lies inside the box, bounds included.
func (b RGBBox) Contains(c RGB) bool {
	return c.R >= b.Min.R && c.R <= b.Max.R &&
		c.G >= b.Min.G && c.G <= b.Max.G &&
		c.B >= b.Min.B && c.B <= b.Max.B
}

// HSV is a color in OpenCV HSV convention.
type HSV struct {
	H float64 `yaml:"h"`
	S float64 `yaml:"s"`
	V float64 `yaml:"v"`
}

// HSVRange is an inclusive HSV box, as used by cv::inRange.
type HSVRange struct {
	Lower HSV `yaml:"lower"`
	Upper HSV `yaml:"upper"`
}

// Contains reports whether c lies inside the range, bounds included.
func (r HSVRange) Contains(c HSV) bool {
	return c.H >= r.Lower.H && c.H <= r.Upper.H &&
		c.S >= r.Lower.S && c.S <= r.Upper.S &&
		c.V >= r.Lower.V && c.V <= r.Upper.V
}

// RGBToHSV converts RGB (0-255) to HSV (OpenCV convention: H 0-180, S 0-255, V 0-255).
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC * 255.0

	if maxC == 0 {
		s = 0
	} else {
		s = (diff / maxC) * 255.0
	}

	switch {
	case diff == 0:
		h = 0
	case maxC == r:
		h = 60 * math.Mod((g-b)/diff, 6)
	case maxC == g:
		h = 60 * ((b-r)/diff + 2)
	default:
		h = 60 * ((r-g)/diff + 4)
	}
	if h < 0 {
		h += 360
	}

	return h / 2, s, v
}

// ToHSV converts the triple with RGBToHSV.
func (c RGB) ToHSV() HSV {
	h, s, v := RGBToHSV(c.R, c.G, c.B)
	return HSV{H: h, S: s, V: v}
}
