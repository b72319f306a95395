package features

import "math"

// HuMoments computes the seven Hu invariants from normalized central
// moments.
func HuMoments(nu20, nu11, nu02, nu30, nu21, nu12, nu03 float64) [7]float64 {
	t0 := nu30 + nu12
	t1 := nu21 + nu03
	q0 := t0 * t0
	q1 := t1 * t1
	n4 := 4 * nu11
	s := nu20 + nu02
	d := nu20 - nu02

	var hu [7]float64
	hu[0] = s
	hu[1] = d*d + n4*nu11
	hu[3] = q0 + q1
	hu[5] = d*(q0-q1) + n4*t0*t1

	t0 *= q0 - 3*q1
	t1 *= 3*q0 - q1

	q0 = nu30 - 3*nu12
	q1 = 3*nu21 - nu03

	hu[2] = q0*q0 + q1*q1
	hu[4] = q0*t0 + q1*t1
	hu[6] = q1*t0 - q0*t1
	return hu
}

// LogHu maps each invariant to -sign(h)*log10(|h|+1e-10), bringing them
// onto a comparable scale.
func LogHu(hu [7]float64) [7]float64 {
	var out [7]float64
	for i, h := range hu {
		sign := 0.0
		switch {
		case h > 0:
			sign = 1
		case h < 0:
			sign = -1
		}
		out[i] = -sign * math.Log10(math.Abs(h)+1e-10)
	}
	return out
}
