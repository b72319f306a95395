package analysis

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agrisense/internal/config"
	"agrisense/internal/disease"
	agimage "agrisense/internal/image"
	"agrisense/internal/landcover"
	"agrisense/internal/soil"
	"agrisense/internal/weather"
	"agrisense/pkg/geometry"
)

var telangana = geometry.GeoBounds{North: 19.9178, South: 15.8361, West: 77.2356, East: 81.3211}

// forest is a coordinate inside the forest block of the synthetic raster.
var forest = &geometry.LatLon{Lat: 19.1, Lon: 78.05}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

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

// soilPhoto is a brown frame with a few dark cracks.
func soilPhoto() *image.RGBA {
	img := solid(300, 300, color.RGBA{R: 140, G: 100, B: 60, A: 255})
	for _, row := range []int{75, 150, 225} {
		for y := row - 1; y <= row+1; y++ {
			for x := 0; x < 300; x++ {
				img.SetRGBA(x, y, color.RGBA{R: 40, G: 30, B: 20, A: 255})
			}
		}
	}
	return img
}

func newAnalyzer(t *testing.T) *Analyzer {
	t.Helper()

	raster, err := landcover.SyntheticRaster(1000, 1000, telangana)
	require.NoError(t, err)

	fixed := time.Date(2026, time.July, 14, 11, 0, 0, 0, time.UTC)
	sim := &weather.Simulator{Now: func() time.Time { return fixed }}

	a, err := New(Components{
		Land:    landcover.NewClassifier(raster, nil, 7, zap.NewNop()),
		Weather: weather.NewAdjuster(sim, weather.DefaultFallback(), time.Second, zap.NewNop()),
	}, zap.NewNop())
	require.NoError(t, err)
	return a
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "no_subject", StatusNoSubject.String())
	b, err := StatusNoSubject.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "no_subject", string(b))
}

func TestInvalidImagesAreInputFaults(t *testing.T) {
	a := newAnalyzer(t)

	_, err := a.ExtractFeatures(nil)
	assert.ErrorIs(t, err, agimage.ErrInvalidImage)

	_, err = a.ClassifySoil(context.Background(), image.NewRGBA(image.Rect(0, 0, 0, 0)), forest)
	assert.ErrorIs(t, err, agimage.ErrInvalidImage)

	_, err = a.DiagnosePlant(nil)
	assert.ErrorIs(t, err, agimage.ErrInvalidImage)
}

func TestClassifySoilWithLocation(t *testing.T) {
	v, err := newAnalyzer(t).ClassifySoil(context.Background(), soilPhoto(), forest)
	require.NoError(t, err)

	assert.Equal(t, "Forest", v.Land.LandClass)
	assert.Equal(t, weather.StatusSimulated, v.Weather.Status)
	require.NotNil(t, v.Weather.Snapshot)
	assert.Equal(t, forest, v.Location)

	var sum float64
	for _, c := range soil.Classes {
		sum += v.FinalScores[c]
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
	assert.Equal(t, v.FinalScores[v.SoilType], v.Confidence)
	assert.NotEmpty(t, v.Reasons)
	assert.NotEmpty(t, v.Recommendations)
}

func TestClassifySoilWithoutLocation(t *testing.T) {
	v, err := newAnalyzer(t).ClassifySoil(context.Background(), soilPhoto(), nil)
	require.NoError(t, err)

	assert.Equal(t, landcover.UnknownLandClass, v.Land.LandClass)
	assert.Equal(t, weather.StatusUnavailable, v.Weather.Status)
	assert.Nil(t, v.Location)
	assert.Contains(t, soil.Classes[:], v.SoilType)
}

func TestClassifySoilIsIdempotent(t *testing.T) {
	a := newAnalyzer(t)
	ctx := context.Background()

	first, err := a.ClassifySoil(ctx, soilPhoto(), forest)
	require.NoError(t, err)
	second, err := a.ClassifySoil(ctx, soilPhoto(), forest)
	require.NoError(t, err)

	assert.Equal(t, first.SoilType, second.SoilType)
	assert.Equal(t, first.FinalScores, second.FinalScores)
	assert.Equal(t, first.Reasons, second.Reasons)
}

func TestClassifySoilWeatherFailureFallsBack(t *testing.T) {
	raster, err := landcover.SyntheticRaster(1000, 1000, telangana)
	require.NoError(t, err)

	a, err := New(Components{
		Land:    landcover.NewClassifier(raster, nil, 7, nil),
		Weather: weather.NewAdjuster(failingProvider{}, weather.DefaultFallback(), time.Second, nil),
	}, nil)
	require.NoError(t, err)

	v, err := a.ClassifySoil(context.Background(), soilPhoto(), forest)
	require.NoError(t, err)
	assert.Equal(t, weather.StatusFallback, v.Weather.Status)
	assert.Contains(t, v.Reasons, "Weather data unavailable, fallback conditions assumed")
}

type failingProvider struct{}

func (failingProvider) Fetch(context.Context, geometry.LatLon) (weather.Snapshot, error) {
	return weather.Snapshot{}, assert.AnError
}

func TestDiagnoseHealthyLeaf(t *testing.T) {
	report, err := newAnalyzer(t).DiagnosePlant(leaf(400, 300, 150, 60, color.RGBA{G: 160, A: 255}))
	require.NoError(t, err)

	assert.Equal(t, StatusOK, report.Status)
	require.NotNil(t, report.Plant)
	require.Len(t, report.Diagnoses, 1)
	assert.Equal(t, disease.TypeHealthy, report.Diagnoses[0].Type)
	assert.True(t, report.Healthy())
	require.Len(t, report.Treatment, 1)
	assert.Nil(t, report.Treatment[0].Treatment)
	require.NotNil(t, report.Features)
	assert.True(t, report.Features.SubjectFound)
}

func TestDiagnoseNoSubject(t *testing.T) {
	report, err := newAnalyzer(t).DiagnosePlant(solid(200, 200, color.RGBA{R: 128, G: 128, B: 128, A: 255}))
	require.NoError(t, err)

	assert.Equal(t, StatusNoSubject, report.Status)
	assert.Nil(t, report.Plant)
	assert.Empty(t, report.Diagnoses)
	assert.Empty(t, report.Treatment)
	require.NotNil(t, report.Features)
}

func TestDiagnoseRedShiftedLeaf(t *testing.T) {
	report, err := newAnalyzer(t).DiagnosePlant(leaf(300, 300, 100, 100, color.RGBA{R: 150, G: 30, B: 140, A: 255}))
	require.NoError(t, err)

	require.Len(t, report.Diagnoses, 1)
	assert.Equal(t, disease.TypeNutritional, report.Diagnoses[0].Type)
	assert.False(t, report.Healthy())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, []string{"No plant detected"}, labels(&PlantReport{Status: StatusNoSubject}))

	got := labels(&PlantReport{
		Status:    StatusOK,
		Diagnoses: []disease.Diagnosis{{Name: "Leaf Spot Disease", Confidence: disease.Medium}},
	})
	assert.Equal(t, []string{"Plant: Unknown", "Disease Analysis:", "- Leaf Spot Disease (Medium)"}, got)
}

func TestRenderKeepsPreprocessedSize(t *testing.T) {
	a := newAnalyzer(t)
	img := leaf(1000, 500, 300, 120, color.RGBA{G: 160, A: 255})

	report, err := a.DiagnosePlant(img)
	require.NoError(t, err)

	out, err := a.Render(img, report)
	require.NoError(t, err)
	assert.Equal(t, 800, out.Bounds().Dx())
	assert.Equal(t, 400, out.Bounds().Dy())
}

// spottedLeaf is a green leaf with a brown lesion, on a brown background
// that also falls in the necrosis band.
func spottedLeaf() *image.RGBA {
	brown := color.RGBA{R: 90, G: 60, B: 40, A: 255}
	img := solid(300, 300, brown)
	for y := 0; y < 300; y++ {
		for x := 0; x < 300; x++ {
			dx := float64(x-150) / 100
			dy := float64(y-150) / 70
			if dx*dx+dy*dy <= 1 {
				img.SetRGBA(x, y, color.RGBA{G: 160, A: 255})
			}
		}
	}
	for y := 135; y < 165; y++ {
		for x := 135; x < 165; x++ {
			img.SetRGBA(x, y, brown)
		}
	}
	return img
}

func TestRenderTintsOnlyTheLeaf(t *testing.T) {
	a := newAnalyzer(t)
	img := spottedLeaf()

	healthy := &PlantReport{
		Status:    StatusOK,
		Diagnoses: []disease.Diagnosis{{Name: "Healthy Plant", Type: disease.TypeHealthy}},
	}
	sick := &PlantReport{
		Status:    StatusOK,
		Diagnoses: []disease.Diagnosis{{Name: "Leaf Spot Disease", Type: disease.TypeFungal}},
	}

	plain, err := a.Render(img, healthy)
	require.NoError(t, err)
	tinted, err := a.Render(img, sick)
	require.NoError(t, err)

	// Background corners away from the labels and the outline.
	for _, p := range []image.Point{{5, 295}, {295, 295}, {295, 150}} {
		assert.Equal(t, plain.At(p.X, p.Y), tinted.At(p.X, p.Y), "background at %v", p)
	}

	// The lesion inside the leaf is pushed towards red.
	pr, _, _, _ := plain.At(150, 150).RGBA()
	tr, _, _, _ := tinted.At(150, 150).RGBA()
	assert.Greater(t, tr, pr)
}

func TestRenderRejectsNilReport(t *testing.T) {
	a := newAnalyzer(t)
	img := leaf(200, 200, 60, 60, color.RGBA{G: 160, A: 255})

	_, err := a.Render(img, nil)
	assert.Error(t, err)
	assert.Error(t, a.Annotate(img, nil, filepath.Join(t.TempDir(), "out.png")))
}

func TestAnnotateWritesFile(t *testing.T) {
	a := newAnalyzer(t)
	img := leaf(300, 300, 100, 100, color.RGBA{R: 150, G: 30, B: 140, A: 255})

	report, err := a.DiagnosePlant(img)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.png")
	require.NoError(t, a.Annotate(img, report, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Weather.Provider = "none"
	cfg.Map.Synthetic = true

	a, err := FromConfig(cfg, zap.NewNop())
	require.NoError(t, err)

	v, err := a.ClassifySoil(context.Background(), soilPhoto(), forest)
	require.NoError(t, err)
	assert.Equal(t, "Forest", v.Land.LandClass)
	assert.Equal(t, weather.StatusUnavailable, v.Weather.Status)
}

func TestFromConfigMissingRasterDegrades(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Weather.Provider = "simulated"
	cfg.Map.RasterPath = filepath.Join(t.TempDir(), "missing.png")

	a, err := FromConfig(cfg, nil)
	require.NoError(t, err)

	v, err := a.ClassifySoil(context.Background(), soilPhoto(), forest)
	require.NoError(t, err)
	assert.Equal(t, landcover.UnknownLandClass, v.Land.LandClass)
}

func TestFromConfigBadCatalog(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Catalog.PlantsPath = filepath.Join(t.TempDir(), "plants.yaml")

	_, err := FromConfig(cfg, nil)
	assert.Error(t, err)
}
