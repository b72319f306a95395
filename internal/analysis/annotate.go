package analysis

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"agrisense/internal/features"
	"agrisense/pkg/colorutil"
)

const (
	tintAlpha  = 0.3
	labelScale = 0.7
	lineHeight = 30
)

// Render draws the plant report over the preprocessed frame: the leaf
// outline in green, the species and diagnoses as text, and, unless the leaf
// is healthy, disease-coloured pixels tinted red.
func (a *Analyzer) Render(img image.Image, report *PlantReport) (image.Image, error) {
	bgr, err := a.render(img, report)
	if err != nil {
		return nil, err
	}
	defer bgr.Close()

	out, err := bgr.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert annotated frame: %w", err)
	}
	return out, nil
}

// Annotate renders the report and writes it to path. The format follows the
// file extension.
func (a *Analyzer) Annotate(img image.Image, report *PlantReport, path string) error {
	bgr, err := a.render(img, report)
	if err != nil {
		return err
	}
	defer bgr.Close()

	if !gocv.IMWrite(path, bgr) {
		return fmt.Errorf("failed to write annotated image to %s", path)
	}
	a.logger.Info("annotated report written", zap.String("path", path))
	return nil
}

func (a *Analyzer) render(img image.Image, report *PlantReport) (gocv.Mat, error) {
	if report == nil {
		return gocv.Mat{}, errors.New("no plant report to render")
	}

	bgr, err := a.extractor.Preprocess(img)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to preprocess image: %w", err)
	}

	if report.Status == StatusOK {
		if seg, ok := a.extractor.Segment(bgr); ok {
			if !report.Healthy() {
				diseased := a.extractor.BandMask(bgr, features.DiseaseBandNames()...)
				gocv.BitwiseAnd(diseased, seg.Mask, &diseased)
				tint(&bgr, diseased)
			}
			contours := gocv.NewPointsVectorFromPoints([][]image.Point{seg.Contour})
			gocv.DrawContours(&bgr, contours, -1, colorutil.Green, 2)
			contours.Close()
			seg.Close()
		}
	}

	for i, line := range labels(report) {
		gocv.PutText(&bgr, line, image.Point{X: 10, Y: lineHeight * (i + 1)},
			gocv.FontHersheySimplex, labelScale, colorutil.White, 2)
	}

	return bgr, nil
}

// tint blends red into bgr wherever mask is set. mask is released.
func tint(bgr *gocv.Mat, mask gocv.Mat) {
	defer mask.Close()

	red := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 255, 0), bgr.Rows(), bgr.Cols(), bgr.Type())
	defer red.Close()

	blended := gocv.NewMat()
	defer blended.Close()
	gocv.AddWeighted(*bgr, 1-tintAlpha, red, tintAlpha, 0, &blended)
	blended.CopyToWithMask(bgr, mask)
}

func labels(report *PlantReport) []string {
	if report.Status != StatusOK {
		return []string{"No plant detected"}
	}

	name := "Unknown"
	if report.Plant != nil && !report.Plant.Unknown {
		name = report.Plant.CommonName
	}
	lines := []string{"Plant: " + name, "Disease Analysis:"}
	for _, d := range report.Diagnoses {
		lines = append(lines, fmt.Sprintf("- %s (%s)", d.Name, d.Confidence))
	}
	return lines
}
