package models

import "strconv"

// Round rounds v to the given number of decimal places. The decimal
// expansion of v is rounded once, ties to even, so a value just below a
// threshold never rounds onto it through an intermediate product.
func Round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
