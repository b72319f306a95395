// Command leaftest runs segmentation and feature extraction on a leaf photo
// and prints every intermediate result.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"agrisense/internal/disease"
	"agrisense/internal/extract"
	"agrisense/internal/features"
	agimage "agrisense/internal/image"
	"agrisense/internal/plant"
)

func main() {
	imagePath := flag.String("image", "", "Path to leaf image (PNG, JPEG, BMP or TIFF)")
	maxDim := flag.Int("max", 800, "Longest side after downscaling")
	blur := flag.Int("blur", 5, "Gaussian blur kernel size")
	catalogPath := flag.String("catalog", "", "Alternative plant catalog (YAML)")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: leaftest -image <path> [-max 800] [-blur 5] [-catalog plants.yaml]")
		os.Exit(1)
	}

	img, err := agimage.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s image: %dx%d pixels\n", img.Format, img.Width(), img.Height())

	params := extract.DefaultParams().WithMaxDimension(*maxDim).WithBlurKernel(*blur)
	fmt.Printf("\nExtraction parameters:\n")
	fmt.Printf("  Max dimension: %d, blur %d\n", params.MaxDimension, params.BlurKernel)
	fmt.Printf("  Canny: %.0f/%.0f  Hough: thr=%d minLen=%.0f gap=%.0f\n",
		params.CannyLow, params.CannyHigh, params.HoughThreshold, params.HoughMinLineLength, params.HoughMaxLineGap)
	fmt.Printf("  Morphology kernel: %d  LAB red threshold: %.0f\n", params.MorphKernel, params.RedThreshold)

	set, err := extract.NewExtractor(params, nil).Extract(img.Image)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nWorking frame: %dx%d\n", set.Width, set.Height)

	if !set.SubjectFound {
		fmt.Println("\nNo subject segmented")
		return
	}

	leaf := set.Leaf
	s := leaf.Shape
	fmt.Printf("\nShape:\n")
	fmt.Printf("  area=%.0f perimeter=%.1f relative=%.3f\n", s.Area, s.Perimeter, s.RelativeSize)
	fmt.Printf("  aspect=%.2f circularity=%.3f solidity=%.3f extent=%.3f curl=%.3f\n",
		s.AspectRatio, s.Circularity, s.Solidity, s.Extent, s.CurlIndex)
	fmt.Printf("  eccentricity=%.3f orientation=%.1f compactness=%.2f\n", s.Eccentricity, s.Orientation, s.Compactness)

	tx := leaf.Texture
	fmt.Printf("\nTexture:\n")
	fmt.Printf("  edges=%.3f lbp energy=%.3f entropy=%.3f uniformity=%.3f\n",
		tx.EdgeDensity, tx.LBPEnergy, tx.LBPEntropy, tx.LBPUniformity)
	fmt.Printf("  glcm contrast=%.2f homogeneity=%.3f energy=%.3f correlation=%.3f\n",
		tx.GLCM.Contrast, tx.GLCM.Homogeneity, tx.GLCM.Energy, tx.GLCM.Correlation)

	fmt.Printf("\nColour bands:\n")
	for _, name := range features.BandNames() {
		frac := leaf.Color.Band(name)
		fmt.Printf("  %-15s %6.3f %s\n", name, frac, strings.Repeat("#", int(frac*40)))
	}
	fmt.Printf("  %-15s %6.3f\n", "red_index", leaf.Color.RedIndex)
	fmt.Printf("  %-15s %6.3f\n", "spot_index", leaf.Color.SpotIndex)

	catalog, err := plant.DefaultCatalog()
	if *catalogPath != "" {
		catalog, err = plant.LoadCatalogFile(*catalogPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	id := plant.NewIdentifier(catalog, nil).Identify(s)
	fmt.Printf("\n%-20s %8s\n", "Species", "Score")
	for _, c := range id.Top3 {
		fmt.Printf("%-20s %8.3f\n", c.CommonName, c.Score)
	}
	fmt.Printf("Identified: %s (confidence %.2f, unknown=%v)\n", id.Species, id.Confidence, id.Unknown)

	ix := disease.IndicesFrom(leaf)
	fmt.Printf("\nIndices: %+v\n", ix)
	for _, d := range disease.NewEngine(nil, nil).Diagnose(ix) {
		fmt.Printf("Diagnosis: %s [%s, %s] score %.2f\n", d.Name, d.Type, d.Confidence, d.Score)
	}
}
