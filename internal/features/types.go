// Package features holds the numeric descriptors extracted from soil and
// leaf photographs, and the pure computations behind them.
package features

// ShapeFeatures describe the segmented leaf outline.
type ShapeFeatures struct {
	AspectRatio  float64    `json:"aspect_ratio"`
	Solidity     float64    `json:"solidity"`
	Circularity  float64    `json:"circularity"`
	Extent       float64    `json:"extent"`
	CurlIndex    float64    `json:"curl_index"`
	Eccentricity float64    `json:"eccentricity"`
	Orientation  float64    `json:"orientation"`
	Compactness  float64    `json:"compactness"`
	RelativeSize float64    `json:"relative_size"`
	HuMoments    [7]float64 `json:"hu_moments"`
	Area         float64    `json:"area"`
	Perimeter    float64    `json:"perimeter"`
}

// TextureFeatures describe surface texture inside the leaf mask.
type TextureFeatures struct {
	EdgeDensity   float64 `json:"edge_density"`
	LBPEnergy     float64 `json:"lbp_energy"`
	LBPEntropy    float64 `json:"lbp_entropy"`
	LBPUniformity float64 `json:"lbp_uniformity"`

	HueMean        float64 `json:"hue_mean"`
	HueStd         float64 `json:"hue_std"`
	SaturationMean float64 `json:"saturation_mean"`
	SaturationStd  float64 `json:"saturation_std"`
	ValueMean      float64 `json:"value_mean"`
	ValueStd       float64 `json:"value_std"`

	GLCM GLCMStats `json:"glcm"`
}

// ColorFeatures are band coverage fractions inside the leaf mask.
type ColorFeatures struct {
	// Bands maps band name to the fraction of mask pixels inside it.
	Bands     map[string]float64 `json:"bands"`
	RedIndex  float64            `json:"red_index"`
	SpotIndex float64            `json:"spot_index"`
}

// Band returns the coverage of a named band, zero if absent.
func (c ColorFeatures) Band(name string) float64 {
	return c.Bands[name]
}

// SoilFeatures are whole-frame statistics of a soil photograph.
type SoilFeatures struct {
	AvgHue        float64 `json:"avg_hue"`
	AvgSaturation float64 `json:"avg_saturation"`
	AvgValue      float64 `json:"avg_value"`
	Coarseness    float64 `json:"coarseness"`
	Homogeneity   float64 `json:"homogeneity"`
	CrackScore    float64 `json:"crack_score"`
	GrainScore    float64 `json:"grain_score"`
}

// LeafFeatures group the per-subject descriptors.
type LeafFeatures struct {
	Shape   ShapeFeatures   `json:"shape"`
	Texture TextureFeatures `json:"texture"`
	Color   ColorFeatures   `json:"color"`
}

// Set is everything extracted from one image. Leaf is nil when no subject
// was segmented.
type Set struct {
	Soil         SoilFeatures  `json:"soil"`
	Leaf         *LeafFeatures `json:"leaf,omitempty"`
	SubjectFound bool          `json:"subject_found"`
	Width        int           `json:"width"`
	Height       int           `json:"height"`
}
