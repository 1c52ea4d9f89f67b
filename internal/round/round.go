// Package round provides the decimal rounding convention shared by the
// encoders and the evaluator.
package round

import "strconv"

// To4 rounds v to 4 decimal places by formatting through the correctly
// rounded decimal representation. This matches the reference pipeline, which
// quantizes both timestamps and metrics via 4-digit decimal formatting
// rather than binary-scaled arithmetic; the two disagree on values such as
// 0.99995 where scaling overshoots.
func To4(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 4, 64), 64)
	return r
}
