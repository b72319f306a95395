package features

import (
	"fmt"
	"sort"
)

// Vector is the flat name to value view of a feature set. Key names are
// stable across releases.
type Vector map[string]float64

// Keys returns the vector's keys in sorted order.
func (v Vector) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Vector flattens soil features.
func (s SoilFeatures) Vector() Vector {
	return Vector{
		"avg_hue":        s.AvgHue,
		"avg_saturation": s.AvgSaturation,
		"avg_value":      s.AvgValue,
		"coarseness":     s.Coarseness,
		"homogeneity":    s.Homogeneity,
		"crack_score":    s.CrackScore,
		"grain_score":    s.GrainScore,
	}
}

// Vector flattens shape features.
func (s ShapeFeatures) Vector() Vector {
	v := Vector{
		"aspect_ratio":  s.AspectRatio,
		"solidity":      s.Solidity,
		"circularity":   s.Circularity,
		"extent":        s.Extent,
		"curl_index":    s.CurlIndex,
		"eccentricity":  s.Eccentricity,
		"orientation":   s.Orientation,
		"compactness":   s.Compactness,
		"relative_size": s.RelativeSize,
	}
	for i, h := range s.HuMoments {
		v[fmt.Sprintf("hu_%d", i)] = h
	}
	return v
}

// Vector flattens texture features.
func (t TextureFeatures) Vector() Vector {
	return Vector{
		"edge_density":     t.EdgeDensity,
		"lbp_energy":       t.LBPEnergy,
		"lbp_entropy":      t.LBPEntropy,
		"lbp_uniformity":   t.LBPUniformity,
		"hue_mean":         t.HueMean,
		"hue_std":          t.HueStd,
		"saturation_mean":  t.SaturationMean,
		"saturation_std":   t.SaturationStd,
		"value_mean":       t.ValueMean,
		"value_std":        t.ValueStd,
		"glcm_contrast":    t.GLCM.Contrast,
		"glcm_homogeneity": t.GLCM.Homogeneity,
		"glcm_energy":      t.GLCM.Energy,
		"glcm_correlation": t.GLCM.Correlation,
	}
}

// Vector flattens colour features. Every default band is present even when
// the map lacks it.
func (c ColorFeatures) Vector() Vector {
	v := Vector{
		"red_index":  c.RedIndex,
		"spot_index": c.SpotIndex,
	}
	for _, name := range BandNames() {
		v[name] = c.Bands[name]
	}
	return v
}

// Vector merges every group into one vector. Leaf keys are present with
// zero values when no subject was found, so the key set is fixed.
func (s *Set) Vector() Vector {
	leaf := LeafFeatures{}
	if s.Leaf != nil {
		leaf = *s.Leaf
	}
	out := s.Soil.Vector()
	for _, part := range []Vector{leaf.Shape.Vector(), leaf.Texture.Vector(), leaf.Color.Vector()} {
		for k, x := range part {
			out[k] = x
		}
	}
	return out
}
