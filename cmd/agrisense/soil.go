package main

import (
	"fmt"

	"github.com/spf13/cobra"

	agimage "agrisense/internal/image"
	"agrisense/internal/soil"
	"agrisense/pkg/geometry"
)

var (
	soilLat  float64
	soilLon  float64
	soilCrop string
	soilJSON bool
)

var soilCmd = &cobra.Command{
	Use:   "soil <image>",
	Short: "Classify the soil in a photograph",
	Long: `Classifies a soil photograph as Clay, Loamy or Sandy.

With --lat and --lon the land-use map and current weather at that point are
folded into the verdict. Without them the image evidence decides alone.`,
	Args: cobra.ExactArgs(1),
	RunE: runSoil,
}

func init() {
	soilCmd.Flags().Float64Var(&soilLat, "lat", 0, "Latitude of the photo")
	soilCmd.Flags().Float64Var(&soilLon, "lon", 0, "Longitude of the photo")
	soilCmd.Flags().StringVar(&soilCrop, "crop", "", "Intended crop, for fertilizer advice")
	soilCmd.Flags().BoolVar(&soilJSON, "json", false, "Print the verdict as JSON")
	soilCmd.MarkFlagsRequiredTogether("lat", "lon")
}

func runSoil(cmd *cobra.Command, args []string) error {
	img, err := agimage.Load(args[0])
	if err != nil {
		return err
	}

	a, err := newAnalyzer()
	if err != nil {
		return err
	}

	var loc *geometry.LatLon
	if cmd.Flags().Changed("lat") {
		loc = &geometry.LatLon{Lat: soilLat, Lon: soilLon}
	}

	v, err := a.ClassifySoil(cmd.Context(), img.Image, loc)
	if err != nil {
		return fmt.Errorf("soil analysis failed: %w", err)
	}
	if soilCrop != "" {
		v.Recommendations = soil.Recommend(v.SoilType, soilCrop)
	}

	if soilJSON {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	printVerdict(cmd.OutOrStdout(), v)
	return nil
}
