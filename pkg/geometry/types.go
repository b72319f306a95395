// Package geometry provides the planar and geographic primitives shared by the
// feature extractor and the land-cover lookup.
package geometry

import (
	"fmt"
	"image"
	"math"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// FromImagePoints converts contour points to Point2D.
func FromImagePoints(pts []image.Point) []Point2D {
	out := make([]Point2D, len(pts))
	for i, p := range pts {
		out[i] = Point2D{X: float64(p.X), Y: float64(p.Y)}
	}
	return out
}

// LatLon is a WGS84 coordinate in decimal degrees.
type LatLon struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

func (l LatLon) String() string {
	return fmt.Sprintf("%.4f,%.4f", l.Lat, l.Lon)
}

// Valid reports whether the coordinate lies on the globe.
func (l LatLon) Valid() bool {
	return !math.IsNaN(l.Lat) && !math.IsNaN(l.Lon) &&
		l.Lat >= -90 && l.Lat <= 90 && l.Lon >= -180 && l.Lon <= 180
}

// GeoBounds is a north-up geographic bounding box.
type GeoBounds struct {
	North float64 `yaml:"north"`
	South float64 `yaml:"south"`
	West  float64 `yaml:"west"`
	East  float64 `yaml:"east"`
}

// Valid reports whether the box has positive extent on both axes.
func (b GeoBounds) Valid() bool {
	return b.North > b.South && b.East > b.West
}

// Clamp returns loc moved onto the nearest point inside the box.
func (b GeoBounds) Clamp(loc LatLon) LatLon {
	return LatLon{
		Lat: clampF(loc.Lat, b.South, b.North),
		Lon: clampF(loc.Lon, b.West, b.East),
	}
}

// Contains reports whether loc lies inside the box (edges inclusive).
func (b GeoBounds) Contains(loc LatLon) bool {
	return loc.Lat >= b.South && loc.Lat <= b.North &&
		loc.Lon >= b.West && loc.Lon <= b.East
}

func clampF(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
