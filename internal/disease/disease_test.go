package disease

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agrisense/internal/features"
)

func diagnose(t *testing.T, ix Indices) Diagnosis {
	t.Helper()
	out := NewEngine(nil, zap.NewNop()).Diagnose(ix)
	require.Len(t, out, 1)
	return out[0]
}

func TestCascade(t *testing.T) {
	tests := []struct {
		name     string
		ix       Indices
		wantName string
		wantType Type
		wantConf Confidence
		score    float64
	}{
		{"red stress", Indices{Red: 0.2, Spot: 0.05, Curl: 0.1},
			"Nutrient Deficiency (Phos/Potassium)", TypeNutritional, High, 0.2},
		{"red stress blocked by spots", Indices{Red: 0.2, Spot: 0.12, Curl: 0.1, HealthyGreen: 0.7},
			"Healthy Plant", TypeHealthy, High, 0.9},
		{"powdery mildew", Indices{White: 0.2},
			"Powdery Mildew", TypeFungal, High, 0.2},
		{"curl virus high", Indices{Curl: 0.45, Yellow: 0.12, EdgeDensity: 0.25},
			"Leaf Curl Virus", TypeViral, High, 0.45},
		{"curl virus medium", Indices{Curl: 0.3, Yellow: 0.12, EdgeDensity: 0.25},
			"Leaf Curl Virus", TypeViral, Medium, 0.3},
		{"curl without enough signs falls through", Indices{Curl: 0.3, Yellow: 0.12, White: 0.2},
			"Powdery Mildew", TypeFungal, High, 0.2},
		{"fungal spots", Indices{Spot: 0.3, WaterSoaked: 0.1},
			"Leaf Spot / Fungal Blight", TypeFungal, High, 0.3},
		{"bacterial blight", Indices{Spot: 0.1, WaterSoaked: 0.2},
			"Bacterial Blight", TypeBacterial, Medium, 0.2},
		{"equal spot and water is fungal", Indices{Spot: 0.2, WaterSoaked: 0.2},
			"Leaf Spot / Fungal Blight", TypeFungal, Medium, 0.2},
		{"mildew outranks spots", Indices{White: 0.16, Spot: 0.5},
			"Powdery Mildew", TypeFungal, High, 0.16},
		{"nitrogen deficiency", Indices{Yellow: 0.3, Curl: 0.1},
			"Nitrogen Deficiency", TypeNutritional, Medium, 0.3},
		{"yellow but curled is unclear", Indices{Yellow: 0.3, Curl: 0.22},
			"Early Stage Stress / Unclear", TypeUnknown, Low, 0.3},
		{"healthy", Indices{HealthyGreen: 0.8},
			"Healthy Plant", TypeHealthy, High, 0.9},
		{"unclear", Indices{HealthyGreen: 0.5},
			"Early Stage Stress / Unclear", TypeUnknown, Low, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := diagnose(t, tt.ix)
			assert.Equal(t, tt.wantName, d.Name)
			assert.Equal(t, tt.wantType, d.Type)
			assert.Equal(t, tt.wantConf, d.Confidence)
			assert.InDelta(t, tt.score, d.Score, 1e-12)
			assert.NotEmpty(t, d.Symptoms)
		})
	}
}

func TestNutrientRuleHasPriority(t *testing.T) {
	d := diagnose(t, Indices{Red: 0.5, White: 0.9, Yellow: 0.9, HealthyGreen: 0.9})
	assert.Equal(t, "Nutrient Deficiency (Phos/Potassium)", d.Name)
	assert.Equal(t, []string{"Purple/Red discoloration", "No major spots", "Stunted growth"}, d.Symptoms)
}

func TestViralGateIsStrict(t *testing.T) {
	for _, curl := range []float64{0.24, 0.25} {
		d := diagnose(t, Indices{Curl: curl, Yellow: 0.9, EdgeDensity: 0.9})
		assert.NotEqual(t, TypeViral, d.Type, "curl %.2f", curl)
	}

	d := diagnose(t, Indices{Curl: 0.26, Yellow: 0.9, EdgeDensity: 0.9})
	assert.Equal(t, TypeViral, d.Type)
}

func TestCustomRules(t *testing.T) {
	never := Rule{Name: "never", Match: func(Indices) (Diagnosis, bool) { return Diagnosis{}, false }}
	assert.Empty(t, NewEngine([]Rule{never}, nil).Diagnose(Indices{}))
}

func TestIndicesFrom(t *testing.T) {
	assert.Equal(t, Indices{}, IndicesFrom(nil))

	leaf := &features.LeafFeatures{
		Shape:   features.ShapeFeatures{CurlIndex: 0.3},
		Texture: features.TextureFeatures{EdgeDensity: 0.4},
		Color: features.ColorFeatures{
			RedIndex:  0.1,
			SpotIndex: 0.2,
			Bands: map[string]float64{
				features.BandYellowing:    0.5,
				features.BandWhiteMildew:  0.6,
				features.BandWaterSoaked:  0.7,
				features.BandHealthyGreen: 0.8,
			},
		},
	}
	assert.Equal(t, Indices{
		Red: 0.1, Spot: 0.2, Curl: 0.3, Yellow: 0.5, White: 0.6,
		WaterSoaked: 0.7, HealthyGreen: 0.8, EdgeDensity: 0.4,
	}, IndicesFrom(leaf))
}

func TestTreatment(t *testing.T) {
	for _, typ := range []Type{TypeFungal, TypeBacterial, TypeViral} {
		tr, ok := TreatmentFor(typ)
		require.True(t, ok, typ)
		assert.NotEmpty(t, tr.Immediate)
		assert.NotEmpty(t, tr.Preventive)
		assert.NotEmpty(t, tr.Organic)
		assert.NotEmpty(t, tr.Chemical)
	}
	_, ok := TreatmentFor(TypeHealthy)
	assert.False(t, ok)

	tr, _ := TreatmentFor(TypeViral)
	assert.Equal(t, "No cure, vector management only", tr.Chemical)
	assert.Len(t, GeneralAdvice(), 6)
}

func TestAdvice(t *testing.T) {
	plans := Advice([]Diagnosis{
		{Name: "Powdery Mildew", Type: TypeFungal},
		{Name: "Healthy Plant", Type: TypeHealthy},
	})
	require.Len(t, plans, 2)
	require.NotNil(t, plans[0].Treatment)
	assert.Equal(t, "Neem oil 2-3%, copper-based fungicides", plans[0].Treatment.Organic)
	assert.Nil(t, plans[1].Treatment)
}
