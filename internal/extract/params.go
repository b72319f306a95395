package extract

import "agrisense/internal/features"

// Params tune the extraction pipeline.
type Params struct {
	// Preprocessing
	MaxDimension int // Longest side after downscaling, in pixels
	BlurKernel   int // Gaussian kernel size, odd

	// Edges and cracks
	CannyLow           float32
	CannyHigh          float32
	HoughRho           float32 // Accumulator distance resolution, pixels
	HoughThetaDeg      float64 // Accumulator angle resolution, degrees
	HoughThreshold     int
	HoughMinLineLength float32
	HoughMaxLineGap    float32

	// Grain detection
	CLAHEClipLimit      float64
	CLAHETileSize       int
	GrainCircularityMin float64 // Exclusive
	GrainCircularityMax float64 // Exclusive
	GrainAreaMin        float64 // Exclusive, pixels
	GrainAreaMax        float64 // Exclusive, pixels
	GrainNorm           float64 // Grain count that saturates the score

	// Segmentation
	MorphKernel int

	// Colour
	RedThreshold float64 // LAB A value at or above which a pixel counts as red-shifted
	Bands        []features.Band
}

// DefaultParams returns the stock extraction parameters.
func DefaultParams() Params {
	return Params{
		MaxDimension: 800,
		BlurKernel:   5,

		CannyLow:           50,
		CannyHigh:          150,
		HoughRho:           1,
		HoughThetaDeg:      1,
		HoughThreshold:     30,
		HoughMinLineLength: 30,
		HoughMaxLineGap:    10,

		CLAHEClipLimit:      2.0,
		CLAHETileSize:       8,
		GrainCircularityMin: 0.3,
		GrainCircularityMax: 1.0,
		GrainAreaMin:        10,
		GrainAreaMax:        1000,
		GrainNorm:           50,

		MorphKernel: 7,

		// OpenCV LAB puts neutral at 128; 140 is a clear shift towards red/purple.
		RedThreshold: 140,
		Bands:        features.DefaultBands(),
	}
}

// WithMaxDimension returns a copy of params with a different resize limit.
// Non-positive values disable resizing.
func (p Params) WithMaxDimension(n int) Params {
	p.MaxDimension = n
	return p
}

// WithBlurKernel returns a copy of params with a different blur kernel.
// Even sizes are rounded up to the next odd size; values below 1 disable
// blurring.
func (p Params) WithBlurKernel(k int) Params {
	if k > 0 && k%2 == 0 {
		k++
	}
	p.BlurKernel = k
	return p
}

// WithBands returns a copy of params with custom colour bands.
func (p Params) WithBands(bands []features.Band) Params {
	p.Bands = bands
	return p
}

// band returns the named band, if configured.
func (p Params) band(name string) (features.Band, bool) {
	for _, b := range p.Bands {
		if b.Name == name {
			return b, true
		}
	}
	return features.Band{}, false
}
