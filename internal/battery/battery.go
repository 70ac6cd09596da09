// Package battery converts raw voltage readings into charge percentages.
//
// Wireless headsets that report a terminal voltage instead of a percentage
// need a per-model conversion. Two estimators cover the observed firmwares:
// piecewise-linear interpolation over a measured discharge table, and a
// fitted polynomial.
package battery

import "math"

// Estimator converts a voltage in millivolts to a charge percentage.
type Estimator interface {
	Estimate(milliVolts uint16) int
}

// Point pairs a charge percentage with the terminal voltage measured at
// that charge, in millivolts.
type Point struct {
	Percent    int
	MilliVolts uint16
}

// Calibration is a per-model discharge table, strictly decreasing in both
// fields from index 0.
type Calibration []Point

// Estimate walks the table from the highest voltage down and interpolates
// linearly inside the bracketing pair. Voltages beyond either end of the
// table clamp to that end's percentage.
func (c Calibration) Estimate(milliVolts uint16) int {
	if len(c) == 0 {
		return 0
	}
	if milliVolts >= c[0].MilliVolts {
		return c[0].Percent
	}
	for i := 0; i < len(c)-1; i++ {
		hi, lo := c[i], c[i+1]
		if milliVolts < lo.MilliVolts {
			continue
		}
		span := int(hi.MilliVolts) - int(lo.MilliVolts)
		if span <= 0 {
			return lo.Percent
		}
		return lo.Percent + (int(milliVolts)-int(lo.MilliVolts))*(hi.Percent-lo.Percent)/span
	}
	return c[len(c)-1].Percent
}

// Polynomial holds fitted coefficients, lowest degree first.
type Polynomial []float64

// Estimate evaluates the polynomial at the measured voltage and clamps the
// result to [0, 100].
func (p Polynomial) Estimate(milliVolts uint16) int {
	x := float64(milliVolts)
	sum, pow := 0.0, 1.0
	for _, coeff := range p {
		sum += coeff * pow
		pow *= x
	}
	n := int(math.Round(sum))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
