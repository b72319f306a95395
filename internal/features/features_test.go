package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrisense/pkg/colorutil"
)

func fill(w, h int, v uint8) Plane {
	pix := make([]uint8, w*h)
	for i := range pix {
		pix[i] = v
	}
	return Plane{Pix: pix, Width: w, Height: h}
}

func TestLBPUniformPlaneIsAllZeroCodes(t *testing.T) {
	gray := fill(5, 5, 120)
	mask := fill(5, 5, 255)

	hist := LBPHistogram(gray, mask)
	require.Len(t, hist, 256)
	assert.InDelta(t, 1.0, hist[0], 1e-6)

	energy, entropy, uniformity := LBPStats(hist)
	assert.InDelta(t, 1.0, energy, 1e-6)
	assert.InDelta(t, 0.0, entropy, 1e-6)
	assert.InDelta(t, 1.0, uniformity, 1e-6)
}

func TestLBPDarkCentreSetsEveryBit(t *testing.T) {
	gray := fill(3, 3, 100)
	gray.Pix[4] = 50
	mask := fill(3, 3, 255)

	hist := LBPHistogram(gray, mask)
	assert.InDelta(t, 1.0/9, hist[255], 1e-6)
	assert.InDelta(t, 8.0/9, hist[0], 1e-6)
}

func TestLBPIgnoresPixelsOutsideMask(t *testing.T) {
	gray := fill(3, 3, 100)
	gray.Pix[4] = 50
	mask := fill(3, 3, 0)
	mask.Pix[4] = 255

	hist := LBPHistogram(gray, mask)
	assert.InDelta(t, 1.0, hist[255], 1e-6)
}

func TestLBPEmptyMask(t *testing.T) {
	hist := LBPHistogram(fill(4, 4, 10), fill(4, 4, 0))
	energy, entropy, uniformity := LBPStats(hist)
	assert.Zero(t, energy)
	assert.Zero(t, entropy)
	assert.Zero(t, uniformity)
}

func TestGLCMConstantPlane(t *testing.T) {
	s := GLCM(fill(4, 3, 10))
	assert.InDelta(t, 0.0, s.Contrast, 1e-9)
	assert.InDelta(t, 1.0, s.Homogeneity, 1e-9)
	assert.InDelta(t, 1.0, s.Energy, 1e-9)
	assert.Zero(t, s.Correlation)
}

func TestGLCMAlternatingRow(t *testing.T) {
	gray := Plane{Pix: []uint8{10, 20, 10, 20}, Width: 4, Height: 1}
	s := GLCM(gray)
	assert.InDelta(t, 100.0, s.Contrast, 1e-9)
	assert.InDelta(t, 1.0/101, s.Homogeneity, 1e-9)
	assert.InDelta(t, 5.0/9, s.Energy, 1e-9)
	assert.InDelta(t, -1.0, s.Correlation, 1e-9)
}

func TestGLCMSkipsBackgroundPairs(t *testing.T) {
	assert.Equal(t, GLCMStats{}, GLCM(fill(5, 5, 0)))

	gray := Plane{Pix: []uint8{0, 30, 30, 0}, Width: 4, Height: 1}
	s := GLCM(gray)
	assert.InDelta(t, 1.0, s.Energy, 1e-9)
}

func TestMaskedMeanStd(t *testing.T) {
	values := Plane{Pix: []uint8{10, 20, 30, 40}, Width: 2, Height: 2}
	mask := Plane{Pix: []uint8{255, 255, 0, 0}, Width: 2, Height: 2}

	mean, std := MaskedMeanStd(values, mask)
	assert.InDelta(t, 15.0, mean, 1e-9)
	assert.InDelta(t, 5.0, std, 1e-9)

	mean, std = MaskedMeanStd(values, fill(2, 2, 0))
	assert.Zero(t, mean)
	assert.Zero(t, std)
}

func TestHuMomentsSymmetricShape(t *testing.T) {
	hu := HuMoments(0.1, 0, 0.1, 0, 0, 0, 0)
	assert.InDelta(t, 0.2, hu[0], 1e-12)
	for i := 1; i < 7; i++ {
		assert.InDelta(t, 0.0, hu[i], 1e-12, "hu[%d]", i)
	}
}

func TestHuMomentsElongatedShape(t *testing.T) {
	hu := HuMoments(0.3, 0.05, 0.1, 0, 0, 0, 0)
	assert.InDelta(t, 0.4, hu[0], 1e-12)
	// (0.3-0.1)^2 + 4*0.05^2
	assert.InDelta(t, 0.05, hu[1], 1e-12)
}

func TestLogHu(t *testing.T) {
	out := LogHu([7]float64{1e-3, -1e-3, 0})
	assert.InDelta(t, 3.0, out[0], 1e-6)
	assert.InDelta(t, -3.0, out[1], 1e-6)
	assert.InDelta(t, 0.0, out[2], 1e-12)
}

func TestBandsMembership(t *testing.T) {
	bands := map[string]Band{}
	for _, b := range DefaultBands() {
		bands[b.Name] = b
	}
	require.Len(t, bands, 8)

	tests := []struct {
		band string
		hsv  colorutil.HSV
		want bool
	}{
		{BandHealthyGreen, colorutil.HSV{H: 60, S: 200, V: 150}, true},
		{BandHealthyGreen, colorutil.HSV{H: 10, S: 200, V: 150}, false},
		{BandYellowing, colorutil.HSV{H: 25, S: 150, V: 200}, true},
		{BandNecrosisBrown, colorutil.HSV{H: 10, S: 100, V: 80}, true},
		{BandNecrosisBrown, colorutil.HSV{H: 100, S: 100, V: 50}, true},
		{BandNecrosisBrown, colorutil.HSV{H: 100, S: 100, V: 120}, false},
		{BandWhiteMildew, colorutil.HSV{H: 0, S: 10, V: 240}, true},
		{BandWaterSoaked, colorutil.HSV{H: 0, S: 10, V: 240}, false},
		{BandBlackSpots, colorutil.HSV{H: 90, S: 90, V: 20}, true},
	}
	for _, tt := range tests {
		t.Run(tt.band, func(t *testing.T) {
			assert.Equal(t, tt.want, bands[tt.band].Contains(tt.hsv))
		})
	}
}

func TestSetVectorHasFixedKeys(t *testing.T) {
	empty := (&Set{}).Vector()
	full := (&Set{
		SubjectFound: true,
		Leaf: &LeafFeatures{
			Shape: ShapeFeatures{AspectRatio: 2},
			Color: ColorFeatures{Bands: map[string]float64{BandHealthyGreen: 0.7}},
		},
	}).Vector()

	assert.Len(t, empty, 47)
	assert.Equal(t, empty.Keys(), full.Keys())
	assert.Equal(t, 2.0, full["aspect_ratio"])
	assert.Equal(t, 0.7, full[BandHealthyGreen])
	assert.Contains(t, full, "hu_6")
	assert.Contains(t, full, "glcm_correlation")
}

func TestColorFeaturesBandMissing(t *testing.T) {
	assert.Zero(t, ColorFeatures{}.Band(BandOrangeRust))
}
