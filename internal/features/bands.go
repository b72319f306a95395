package features

import "agrisense/pkg/colorutil"

// Colour band names.
const (
	BandHealthyGreen  = "healthy_green"
	BandYellowing     = "yellowing"
	BandNecrosisBrown = "necrosis_brown"
	BandOrangeRust    = "orange_rust"
	BandWhiteMildew   = "white_mildew"
	BandBlackSpots    = "black_spots"
	BandWaterSoaked   = "water_soaked"
	BandGrayBlight    = "gray_blight"
)

// Band is a named set of HSV boxes in OpenCV convention. A pixel belongs to
// the band if any box contains it.
type Band struct {
	Name   string               `yaml:"name"`
	Ranges []colorutil.HSVRange `yaml:"ranges"`
}

// Contains reports whether c falls in any of the band's boxes.
func (b Band) Contains(c colorutil.HSV) bool {
	for _, r := range b.Ranges {
		if r.Contains(c) {
			return true
		}
	}
	return false
}

func hsvRange(h0, s0, v0, h1, s1, v1 float64) colorutil.HSVRange {
	return colorutil.HSVRange{
		Lower: colorutil.HSV{H: h0, S: s0, V: v0},
		Upper: colorutil.HSV{H: h1, S: s1, V: v1},
	}
}

// DefaultBands returns the symptom colour bands.
func DefaultBands() []Band {
	return []Band{
		{Name: BandHealthyGreen, Ranges: []colorutil.HSVRange{hsvRange(30, 40, 40, 90, 255, 255)}},
		{Name: BandYellowing, Ranges: []colorutil.HSVRange{hsvRange(20, 40, 100, 35, 255, 255)}},
		{Name: BandNecrosisBrown, Ranges: []colorutil.HSVRange{
			hsvRange(0, 30, 20, 20, 150, 100),
			hsvRange(0, 50, 0, 180, 255, 60),
		}},
		{Name: BandOrangeRust, Ranges: []colorutil.HSVRange{hsvRange(5, 100, 100, 20, 255, 255)}},
		{Name: BandWhiteMildew, Ranges: []colorutil.HSVRange{hsvRange(0, 0, 150, 180, 50, 255)}},
		{Name: BandBlackSpots, Ranges: []colorutil.HSVRange{hsvRange(0, 0, 0, 180, 255, 40)}},
		{Name: BandWaterSoaked, Ranges: []colorutil.HSVRange{hsvRange(0, 0, 150, 180, 50, 220)}},
		{Name: BandGrayBlight, Ranges: []colorutil.HSVRange{hsvRange(0, 0, 50, 180, 30, 150)}},
	}
}

// BandNames lists the default band names in declaration order.
func BandNames() []string {
	bands := DefaultBands()
	names := make([]string, len(bands))
	for i, b := range bands {
		names[i] = b.Name
	}
	return names
}

// DiseaseBandNames lists the bands highlighted in annotated reports.
func DiseaseBandNames() []string {
	return []string{BandWhiteMildew, BandOrangeRust, BandNecrosisBrown, BandWaterSoaked}
}
