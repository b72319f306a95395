package colorutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
		h, s, v float64
	}{
		{"black", 0, 0, 0, 0, 0, 0},
		{"white", 255, 255, 255, 0, 0, 255},
		{"red", 255, 0, 0, 0, 255, 255},
		{"green", 0, 255, 0, 60, 255, 255},
		{"blue", 0, 0, 255, 120, 255, 255},
		{"dark yellow", 128, 128, 0, 30, 255, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := RGBToHSV(tt.r, tt.g, tt.b)
			assert.InDelta(t, tt.h, h, 0.01)
			assert.InDelta(t, tt.s, s, 0.01)
			assert.InDelta(t, tt.v, v, 0.01)
		})
	}
}

func TestRGBBoxInclusive(t *testing.T) {
	box := RGBBox{Min: RGB{30, 120, 30}, Max: RGB{90, 200, 90}}
	assert.True(t, box.Contains(RGB{30, 120, 30}))
	assert.True(t, box.Contains(RGB{90, 200, 90}))
	assert.True(t, box.Contains(RGB{60, 160, 60}))
	assert.False(t, box.Contains(RGB{29.9, 160, 60}))
	assert.False(t, box.Contains(RGB{60, 200.5, 60}))
}

func TestHSVRangeContains(t *testing.T) {
	green := HSVRange{Lower: HSV{30, 40, 40}, Upper: HSV{90, 255, 255}}
	assert.True(t, green.Contains(RGB{0, 200, 0}.ToHSV()))
	assert.False(t, green.Contains(RGB{200, 0, 0}.ToHSV()))
}
