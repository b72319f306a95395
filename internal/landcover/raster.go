package landcover

import (
	"fmt"
	"image"
	"image/color"
	"math"

	agimage "agrisense/internal/image"
	"agrisense/pkg/colorutil"
	"agrisense/pkg/geometry"
)

// Raster is a north-up land-use image georeferenced by a bounding box.
// It is read-only after construction.
type Raster struct {
	img    image.Image
	bounds geometry.GeoBounds
}

// NewRaster wraps an already decoded image.
func NewRaster(img image.Image, bounds geometry.GeoBounds) (*Raster, error) {
	if err := agimage.Validate(img); err != nil {
		return nil, err
	}
	if !bounds.Valid() {
		return nil, fmt.Errorf("invalid raster bounds: %+v", bounds)
	}
	return &Raster{img: img, bounds: bounds}, nil
}

// LoadRaster loads the land-use map at path.
func LoadRaster(path string, bounds geometry.GeoBounds) (*Raster, error) {
	d, err := agimage.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load raster: %w", err)
	}
	return NewRaster(d.Image, bounds)
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int { return r.img.Bounds().Dx() }

// Height returns the raster height in pixels.
func (r *Raster) Height() int { return r.img.Bounds().Dy() }

// Bounds returns the geographic extent.
func (r *Raster) Bounds() geometry.GeoBounds { return r.bounds }

// ToPixel maps a coordinate to a pixel. The coordinate is clamped to the
// raster extent first, so the result is always a valid index.
func (r *Raster) ToPixel(loc geometry.LatLon) image.Point {
	c := r.bounds.Clamp(loc)
	w, h := r.Width(), r.Height()

	x := int((c.Lon - r.bounds.West) / (r.bounds.East - r.bounds.West) * float64(w))
	y := int((r.bounds.North - c.Lat) / (r.bounds.North - r.bounds.South) * float64(h))

	return image.Point{X: clamp(x, 0, w-1), Y: clamp(y, 0, h-1)}
}

// SampleMean averages the (2*radius+1)^2 neighbourhood around p, clipped to
// the raster. Each channel mean is truncated to a whole value so that the
// inclusive legend boxes compare against integer colours.
func (r *Raster) SampleMean(p image.Point, radius int) colorutil.RGB {
	b := r.img.Bounds()
	x1 := clamp(p.X-radius, 0, r.Width()-1)
	x2 := clamp(p.X+radius, 0, r.Width()-1)
	y1 := clamp(p.Y-radius, 0, r.Height()-1)
	y2 := clamp(p.Y+radius, 0, r.Height()-1)

	var sumR, sumG, sumB float64
	var n int
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			cr, cg, cb, _ := r.img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			sumR += float64(cr >> 8)
			sumG += float64(cg >> 8)
			sumB += float64(cb >> 8)
			n++
		}
	}
	if n == 0 {
		return colorutil.RGB{}
	}
	return colorutil.RGB{
		R: math.Floor(sumR / float64(n)),
		G: math.Floor(sumG / float64(n)),
		B: math.Floor(sumB / float64(n)),
	}
}

// SyntheticRaster draws the six-region reference layout (forest, crop land,
// barren, scrub, water, urban) at the given size.
func SyntheticRaster(width, height int, bounds geometry.GeoBounds) (*Raster, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	fx := func(f float64) int { return int(f * float64(width)) }
	fy := func(f float64) int { return int(f * float64(height)) }

	regions := []struct {
		rect image.Rectangle
		c    color.RGBA
	}{
		{image.Rect(0, 0, fx(0.4), fy(0.4)), color.RGBA{R: 60, G: 160, B: 60, A: 255}},
		{image.Rect(fx(0.4), 0, fx(0.7), fy(0.4)), color.RGBA{R: 200, G: 200, B: 0, A: 255}},
		{image.Rect(0, fy(0.4), fx(0.4), fy(0.7)), color.RGBA{R: 180, G: 100, B: 30, A: 255}},
		{image.Rect(fx(0.4), fy(0.4), fx(0.7), fy(0.7)), color.RGBA{R: 200, G: 0, B: 200, A: 255}},
		{image.Rect(0, fy(0.7), fx(0.3), height), color.RGBA{R: 0, G: 100, B: 200, A: 255}},
		{image.Rect(fx(0.3), fy(0.7), width, height), color.RGBA{R: 200, G: 0, B: 0, A: 255}},
	}
	for _, reg := range regions {
		for y := reg.rect.Min.Y; y < reg.rect.Max.Y; y++ {
			for x := reg.rect.Min.X; x < reg.rect.Max.X; x++ {
				img.SetRGBA(x, y, reg.c)
			}
		}
	}

	return NewRaster(img, bounds)
}

func clamp(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
