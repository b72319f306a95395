// Package soil fuses image, land-use and weather evidence into a soil-type
// verdict.
package soil

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Class is one of the working soil classes.
type Class string

const (
	Clay  Class = "Clay"
	Loamy Class = "Loamy"
	Sandy Class = "Sandy"
)

// Classes is the fixed iteration order. It is alphabetical and it is the
// tie-break: on equal scores the earlier class wins.
var Classes = [...]Class{Clay, Loamy, Sandy}

// ErrDegenerateScores reports a distribution that cannot be normalized
// because its total is zero, negative or not finite.
var ErrDegenerateScores = errors.New("degenerate score distribution")

// Distribution maps each class to a non-negative score.
type Distribution map[Class]float64

// Uniform returns the flat distribution.
func Uniform() Distribution {
	d := make(Distribution, len(Classes))
	for _, c := range Classes {
		d[c] = 1.0 / float64(len(Classes))
	}
	return d
}

// values returns the scores in Classes order, with negatives and NaN
// treated as zero.
func (d Distribution) values() []float64 {
	v := make([]float64, len(Classes))
	for i, c := range Classes {
		x := d[c]
		if x > 0 && !math.IsNaN(x) {
			v[i] = x
		}
	}
	return v
}

func fromValues(v []float64) Distribution {
	d := make(Distribution, len(Classes))
	for i, c := range Classes {
		d[c] = v[i]
	}
	return d
}

// Sum returns the total over the working classes.
func (d Distribution) Sum() float64 {
	return floats.Sum(d.values())
}

// Normalize rescales d to sum to 1. Keys outside Classes are dropped.
func Normalize(d Distribution) (Distribution, error) {
	v := d.values()
	total := floats.Sum(v)
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, ErrDegenerateScores
	}
	floats.Scale(1/total, v)
	return fromValues(v), nil
}

// Top returns the highest-scoring class, earliest in Classes on ties.
func (d Distribution) Top() (Class, float64) {
	v := d.values()
	i := floats.MaxIdx(v)
	return Classes[i], v[i]
}

// Ranking returns the classes ordered by descending score, stable on ties.
func (d Distribution) Ranking() []Class {
	v := d.values()
	out := make([]Class, len(Classes))
	copy(out, Classes[:])
	sort.SliceStable(out, func(i, j int) bool {
		return v[classIndex(out[i])] > v[classIndex(out[j])]
	})
	return out
}

func classIndex(c Class) int {
	for i, k := range Classes {
		if k == c {
			return i
		}
	}
	return -1
}
