// Package plant guesses the crop species from leaf shape against a static
// catalog of leaf profiles.
package plant

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Size categories.
const (
	SizeNarrow = "narrow"
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Range is an inclusive numeric interval written as a two-element list.
type Range [2]float64

// Contains reports whether v lies inside the interval.
func (r Range) Contains(v float64) bool {
	return v >= r[0] && v <= r[1]
}

// Leaf describes the expected leaf of a species.
type Leaf struct {
	Shape       string `yaml:"shape" json:"shape"`
	AspectRatio Range  `yaml:"aspect_ratio" json:"aspect_ratio"`
	Margin      string `yaml:"margin" json:"margin"`
	Venation    string `yaml:"venation" json:"venation"`
	HueRange    Range  `yaml:"hue_range" json:"hue_range"`
	Texture     string `yaml:"texture" json:"texture"`
	Size        string `yaml:"size" json:"size"`
}

// KnownDisease is a disease the species is susceptible to.
type KnownDisease struct {
	Key            string   `yaml:"key" json:"key"`
	Type           string   `yaml:"type" json:"type"`
	Symptoms       []string `yaml:"symptoms" json:"symptoms,omitempty"`
	ColorSignature []string `yaml:"color_signature" json:"color_signature,omitempty"`
	Pattern        string   `yaml:"pattern" json:"pattern,omitempty"`
}

// Profile is one catalog entry.
type Profile struct {
	Key        string         `yaml:"key" json:"key"`
	CommonName string         `yaml:"common_name" json:"common_name"`
	Leaf       Leaf           `yaml:"leaf" json:"leaf"`
	Diseases   []KnownDisease `yaml:"diseases" json:"diseases"`
}

type cropEntry struct {
	Name     string   `yaml:"name"`
	Family   string   `yaml:"family"`
	Diseases []string `yaml:"diseases"`
}

type catalogFile struct {
	Circularity        map[string]float64 `yaml:"circularity"`
	DefaultCircularity float64            `yaml:"default_circularity"`
	Profiles           []Profile          `yaml:"profiles"`
	Families           map[string]Leaf    `yaml:"families"`
	Crops              []cropEntry        `yaml:"crops"`
}

// Catalog is the ordered, read-only set of profiles. Order matters: it is
// the tie-break when two species score the same.
type Catalog struct {
	profiles           []Profile
	circularity        map[string]float64
	defaultCircularity float64
}

// fallbackFamily is used for crops whose family is not defined.
const fallbackFamily = "generic_herb"

// LoadCatalog parses a catalog document.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse plant catalog: %w", err)
	}

	c := &Catalog{
		circularity:        f.Circularity,
		defaultCircularity: f.DefaultCircularity,
	}
	if c.circularity == nil {
		c.circularity = map[string]float64{}
	}

	seen := make(map[string]bool)
	add := func(p Profile) error {
		if p.Key == "" {
			return errors.New("profile without key")
		}
		if seen[p.Key] {
			return fmt.Errorf("duplicate profile %q", p.Key)
		}
		seen[p.Key] = true
		c.profiles = append(c.profiles, p)
		return nil
	}

	for _, p := range f.Profiles {
		if err := add(p); err != nil {
			return nil, fmt.Errorf("invalid plant catalog: %w", err)
		}
	}
	for _, crop := range f.Crops {
		leaf, ok := f.Families[crop.Family]
		if !ok {
			leaf = f.Families[fallbackFamily]
		}
		p := Profile{
			Key:        cropKey(crop.Name),
			CommonName: crop.Name,
			Leaf:       leaf,
		}
		for _, d := range crop.Diseases {
			p.Diseases = append(p.Diseases, templateDisease(d))
		}
		if err := add(p); err != nil {
			return nil, fmt.Errorf("invalid plant catalog: %w", err)
		}
	}

	if len(c.profiles) == 0 {
		return nil, errors.New("invalid plant catalog: no profiles")
	}
	return c, nil
}

// LoadCatalogFile reads a catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plant catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(strings.NewReader(string(defaultCatalog)))
}

// Profiles returns the profiles in catalog order. The slice must not be
// modified.
func (c *Catalog) Profiles() []Profile {
	return c.profiles
}

// Len returns the number of profiles.
func (c *Catalog) Len() int {
	return len(c.profiles)
}

// Lookup finds a profile by key.
func (c *Catalog) Lookup(key string) (Profile, bool) {
	for _, p := range c.profiles {
		if p.Key == key {
			return p, true
		}
	}
	return Profile{}, false
}

// ExpectedCircularity returns the typical circularity of a leaf shape.
func (c *Catalog) ExpectedCircularity(shape string) float64 {
	if v, ok := c.circularity[shape]; ok {
		return v
	}
	return c.defaultCircularity
}

func cropKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// templateDisease fills in a disease of a template crop from keywords in its
// name.
func templateDisease(name string) KnownDisease {
	key := cropKey(name)
	d := KnownDisease{Key: key, Pattern: "variable"}
	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(key, w) {
				return true
			}
		}
		return false
	}

	switch {
	case has("mildew") && !has("downy"):
		d.Type = "fungal"
		d.Symptoms = []string{"white_powdery_patches", "leaf_distortion"}
		d.ColorSignature = []string{"white_mildew"}
	case has("downy"):
		d.Type = "fungal"
		d.Symptoms = []string{"yellow_patches", "gray_fuzz_underside"}
		d.ColorSignature = []string{"yellowing", "gray_blight"}
	case has("mosaic", "virus", "curl"):
		d.Type = "viral"
		d.Symptoms = []string{"mottled_pattern", "curled_leaves", "stunting"}
		d.ColorSignature = []string{"yellowing"}
	case has("wilt", "rot", "damping"):
		d.Type = "fungal/bacterial"
		d.Symptoms = []string{"wilting", "soft_decay", "yellowing"}
		d.ColorSignature = []string{"necrosis_brown", "yellowing"}
	case has("rust"):
		d.Type = "fungal"
		d.Symptoms = []string{"orange_pustules", "leaf_spots"}
		d.ColorSignature = []string{"orange_rust"}
	case has("anthracnose", "blight", "spot"):
		d.Type = "fungal"
		d.Symptoms = []string{"dark_lesions", "concentric_rings"}
		d.ColorSignature = []string{"necrosis_brown", "black_spots"}
	case has("bacterial", "canker"):
		d.Type = "bacterial"
		d.Symptoms = []string{"water_soaked_spots", "yellow_halos"}
		d.ColorSignature = []string{"water_soaked"}
	default:
		d.Type = "unknown"
		d.Symptoms = []string{"discoloration", "lesions"}
		d.ColorSignature = []string{"necrosis_brown"}
	}
	return d
}
