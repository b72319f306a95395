// Command maptest looks coordinates up on the land-use raster and prints the
// classification and soil prior at each.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"agrisense/internal/config"
	"agrisense/internal/landcover"
	"agrisense/internal/soil"
	"agrisense/pkg/geometry"
)

func main() {
	rasterPath := flag.String("raster", "", "Path to land-use raster (empty uses the synthetic layout)")
	configPath := flag.String("config", "", "Config file supplying the raster bounds")
	lat := flag.Float64("lat", 0, "Latitude")
	lon := flag.Float64("lon", 0, "Longitude")
	stdin := flag.Bool("stdin", false, "Read \"lat,lon\" pairs from stdin")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	bounds := cfg.Map.Bounds

	var raster *landcover.Raster
	if *rasterPath != "" {
		raster, err = landcover.LoadRaster(*rasterPath, bounds)
	} else {
		raster, err = landcover.SyntheticRaster(1000, 1000, bounds)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load raster: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Raster: %dx%d pixels\n", raster.Width(), raster.Height())
	fmt.Printf("Bounds: N %.4f S %.4f W %.4f E %.4f\n\n", bounds.North, bounds.South, bounds.West, bounds.East)

	c := landcover.NewClassifier(raster, landcover.DefaultTable(), cfg.Map.Neighborhood, nil)

	var points []geometry.LatLon
	if *stdin {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			p, err := parseLatLon(sc.Text())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Skipping %q: %v\n", sc.Text(), err)
				continue
			}
			points = append(points, p)
		}
	} else {
		points = append(points, geometry.LatLon{Lat: *lat, Lon: *lon})
	}

	fmt.Printf("%-22s %-10s %-16s %-14s %s\n", "Location", "Pixel", "Land class", "Colour", "Soil prior")
	for _, p := range points {
		cls := c.Classify(&p)
		pixel := "-"
		if cls.Pixel != nil {
			pixel = fmt.Sprintf("%d,%d", cls.Pixel.X, cls.Pixel.Y)
		}
		colour := "-"
		if cls.DetectedColor != nil {
			colour = cls.DetectedColor.String()
		}
		fmt.Printf("%-22s %-10s %-16s %-14s %s\n", p.String(), pixel, cls.LandClass, colour, prior(cls.SoilBias))
	}
}

func parseLatLon(s string) (geometry.LatLon, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return geometry.LatLon{}, fmt.Errorf("want lat,lon")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.LatLon{}, err
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.LatLon{}, err
	}
	return geometry.LatLon{Lat: lat, Lon: lon}, nil
}

// prior renders the bias converted to the three soil classes.
func prior(bias map[string]float64) string {
	d := soil.ConvertBias(bias)
	if n, err := soil.Normalize(d); err == nil {
		d = n
	}
	parts := make([]string, 0, len(d))
	for _, c := range soil.Classes {
		parts = append(parts, fmt.Sprintf("%s %.2f", c, d[c]))
	}
	return strings.Join(parts, " ")
}
