package extract

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agrisense/internal/features"
	agimage "agrisense/internal/image"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// leaf paints a filled ellipse centred in a white frame.
func leaf(w, h, rx, ry int, c color.RGBA) *image.RGBA {
	img := solid(w, h, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	cx, cy := w/2, h/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := float64(x-cx) / float64(rx)
			dy := float64(y-cy) / float64(ry)
			if dx*dx+dy*dy <= 1 {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}

func newExtractor() *Extractor {
	return NewExtractor(DefaultParams(), zap.NewNop())
}

func TestScaledSize(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{1600, 400, 800, 800, 200},
		{400, 1600, 800, 200, 800},
		{640, 480, 800, 640, 480},
		{800, 800, 800, 800, 800},
		{3000, 2, 800, 800, 1},
		{1000, 500, 0, 1000, 500},
	}
	for _, tt := range tests {
		w, h := scaledSize(tt.w, tt.h, tt.max)
		assert.Equal(t, tt.wantW, w)
		assert.Equal(t, tt.wantH, h)
	}
}

func TestParamsModifiers(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 7, p.WithBlurKernel(6).BlurKernel)
	assert.Equal(t, 5, p.WithBlurKernel(5).BlurKernel)
	assert.Equal(t, 400, p.WithMaxDimension(400).MaxDimension)
	assert.Equal(t, 800, p.MaxDimension, "modifiers must not change the receiver")

	_, ok := p.WithBands(nil).band(features.BandHealthyGreen)
	assert.False(t, ok)
}

func TestExtractRejectsInvalidImages(t *testing.T) {
	e := newExtractor()

	_, err := e.Extract(nil)
	assert.ErrorIs(t, err, agimage.ErrInvalidImage)

	_, err = e.Extract(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	assert.ErrorIs(t, err, agimage.ErrInvalidImage)
}

func TestPreprocessResizesLongestSide(t *testing.T) {
	e := newExtractor()

	m, err := e.Preprocess(solid(1600, 400, color.RGBA{R: 90, G: 60, B: 30, A: 255}))
	require.NoError(t, err)
	defer m.Close()
	assert.Equal(t, 800, m.Cols())
	assert.Equal(t, 200, m.Rows())

	small, err := e.Preprocess(solid(120, 90, color.RGBA{R: 90, G: 60, B: 30, A: 255}))
	require.NoError(t, err)
	defer small.Close()
	assert.Equal(t, 120, small.Cols())
	assert.Equal(t, 90, small.Rows())
}

func TestExtractGreenLeaf(t *testing.T) {
	set, err := newExtractor().Extract(leaf(400, 300, 150, 60, color.RGBA{G: 160, A: 255}))
	require.NoError(t, err)
	require.True(t, set.SubjectFound)
	require.NotNil(t, set.Leaf)

	shape := set.Leaf.Shape
	assert.InDelta(t, 2.5, shape.AspectRatio, 0.2)
	assert.Greater(t, shape.Solidity, 0.95)
	assert.Greater(t, shape.Circularity, 0.5)
	assert.InDelta(t, 0.785, shape.Extent, 0.05)
	assert.InDelta(t, 1-shape.Extent, shape.CurlIndex, 1e-12)
	assert.Greater(t, shape.Eccentricity, 0.8)
	assert.InDelta(t, 0.236, shape.RelativeSize, 0.03)

	c := set.Leaf.Color
	assert.Greater(t, c.Band(features.BandHealthyGreen), 0.9)
	assert.Less(t, c.Band(features.BandYellowing), 0.1)
	assert.Less(t, c.RedIndex, 0.05)
	assert.InDelta(t, c.Band(features.BandNecrosisBrown)+c.Band(features.BandBlackSpots), c.SpotIndex, 1e-12)

	tex := set.Leaf.Texture
	assert.InDelta(t, 60, tex.HueMean, 3)
	assert.GreaterOrEqual(t, tex.EdgeDensity, 0.0)
	assert.LessOrEqual(t, tex.EdgeDensity, 1.0)
}

func TestExtractPurpleLeafIsRedShifted(t *testing.T) {
	set, err := newExtractor().Extract(leaf(300, 300, 100, 100, color.RGBA{R: 150, G: 30, B: 140, A: 255}))
	require.NoError(t, err)
	require.True(t, set.SubjectFound)
	assert.Greater(t, set.Leaf.Color.RedIndex, 0.9)
	assert.Less(t, set.Leaf.Color.Band(features.BandHealthyGreen), 0.05)
}

func TestExtractUniformFrameHasNoSubject(t *testing.T) {
	set, err := newExtractor().Extract(solid(200, 200, color.RGBA{R: 128, G: 128, B: 128, A: 255}))
	require.NoError(t, err)
	assert.False(t, set.SubjectFound)
	assert.Nil(t, set.Leaf)

	assert.InDelta(t, 0, set.Soil.Coarseness, 1e-9)
	assert.InDelta(t, 0, set.Soil.CrackScore, 1e-9)
	assert.InDelta(t, 128, set.Soil.AvgValue, 1)
	assert.InDelta(t, 0, set.Soil.AvgSaturation, 1)

	// Leaf keys are still present.
	assert.Len(t, set.Vector(), 47)
}

func TestExtractCrackedSoil(t *testing.T) {
	img := solid(400, 400, color.RGBA{R: 190, G: 160, B: 120, A: 255})
	for _, row := range []int{100, 200, 300} {
		for y := row - 2; y <= row+2; y++ {
			for x := 0; x < 400; x++ {
				img.SetRGBA(x, y, color.RGBA{R: 30, G: 20, B: 10, A: 255})
			}
		}
	}

	set, err := newExtractor().Extract(img)
	require.NoError(t, err)
	assert.Greater(t, set.Soil.CrackScore, 0.5)
	assert.Greater(t, set.Soil.Coarseness, 0.0)
}

func TestExtractIsDeterministic(t *testing.T) {
	img := leaf(500, 350, 180, 90, color.RGBA{R: 120, G: 170, B: 40, A: 255})
	e := newExtractor()

	a, err := e.Extract(img)
	require.NoError(t, err)
	b, err := e.Extract(img)
	require.NoError(t, err)
	assert.Equal(t, a.Vector(), b.Vector())
}
