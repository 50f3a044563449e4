// File: format.go
// Title: Number Formatting
// Description: Renders values for display.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package executor

import (
	"math"
	"strconv"
)

// FormatNumber renders v for display. With precision <= 0 the shortest
// representation that round-trips is used, in plain decimal for magnitudes
// in [1e-4, 1e16) and in exponent notation otherwise. A positive precision
// gives that many significant digits.
func FormatNumber(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	if precision > 0 {
		return strconv.FormatFloat(v, 'g', precision, 64)
	}
	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-4 && abs < 1e16) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'e', -1, 64)
}
