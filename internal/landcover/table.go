// Package landcover classifies GPS coordinates against a colour-coded land-use
// raster and returns a soil-type prior for the location.
package landcover

import "agrisense/pkg/colorutil"

// Soil vocabulary used by the land-use bias weights. It is finer than the
// three working soil classes; the soil engine converts it.
const (
	BiasSandy     = "Sandy"
	BiasClay      = "Clay"
	BiasLoamy     = "Loamy"
	BiasLoam      = "Loam"
	BiasSandyLoam = "SandyLoam"
	BiasClayLoam  = "ClayLoam"
	BiasGravel    = "Gravel"
	BiasMixed     = "Mixed"
)

// ColorRange is one row of the land-use legend.
type ColorRange struct {
	Key       string             `yaml:"key"`
	Box       colorutil.RGBBox   `yaml:"box"`
	LandClass string             `yaml:"land_class"`
	SoilBias  map[string]float64 `yaml:"soil_bias"`
}

// Table is the ordered legend. Classification walks it top to bottom and the
// first box containing the sampled colour wins.
type Table []ColorRange

// UnknownKey and UnknownLandClass label a sample no legend row matched.
const (
	UnknownKey       = "unknown"
	UnknownLandClass = "Unknown"
)

// DefaultTable returns the legend of the state land-use map.
func DefaultTable() Table {
	return Table{
		{
			Key:       "forest",
			Box:       colorutil.RGBBox{Min: colorutil.RGB{R: 30, G: 120, B: 30}, Max: colorutil.RGB{R: 90, G: 200, B: 90}},
			LandClass: "Forest",
			SoilBias:  map[string]float64{BiasLoamy: 0.8, BiasClay: 0.1, BiasSandy: 0.1},
		},
		{
			Key:       "crop_land",
			Box:       colorutil.RGBBox{Min: colorutil.RGB{R: 180, G: 180, B: 0}, Max: colorutil.RGB{R: 255, G: 255, B: 80}},
			LandClass: "Crop Land",
			SoilBias:  map[string]float64{BiasLoamy: 0.5, BiasClayLoam: 0.4, BiasSandy: 0.1},
		},
		{
			Key:       "barren",
			Box:       colorutil.RGBBox{Min: colorutil.RGB{R: 120, G: 70, B: 0}, Max: colorutil.RGB{R: 200, G: 140, B: 60}},
			LandClass: "Barren/Rocky",
			SoilBias:  map[string]float64{BiasSandy: 0.6, BiasGravel: 0.3, BiasLoamy: 0.1},
		},
		{
			Key:       "scrub",
			Box:       colorutil.RGBBox{Min: colorutil.RGB{R: 200, G: 0, B: 200}, Max: colorutil.RGB{R: 255, G: 200, B: 255}},
			LandClass: "Scrub",
			SoilBias:  map[string]float64{BiasSandyLoam: 0.7, BiasSandy: 0.2, BiasLoamy: 0.1},
		},
		{
			Key:       "water",
			Box:       colorutil.RGBBox{Min: colorutil.RGB{R: 0, G: 0, B: 180}, Max: colorutil.RGB{R: 100, G: 100, B: 255}},
			LandClass: "Water/Wetland",
			SoilBias:  map[string]float64{BiasClay: 0.9, BiasLoamy: 0.1},
		},
		{
			Key:       "urban",
			Box:       colorutil.RGBBox{Min: colorutil.RGB{R: 180, G: 0, B: 0}, Max: colorutil.RGB{R: 255, G: 60, B: 60}},
			LandClass: "Urban/BuiltUp",
			SoilBias:  map[string]float64{BiasMixed: 1.0},
		},
	}
}

// Match returns the first row containing c.
func (t Table) Match(c colorutil.RGB) (ColorRange, bool) {
	for _, r := range t {
		if r.Box.Contains(c) {
			return r, true
		}
	}
	return ColorRange{}, false
}
