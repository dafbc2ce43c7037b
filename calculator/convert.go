package calculator

import (
	"spicetracker/apperr"
)

// Convert turns raw sand into melange at the given sand-per-melange rate.
// Melange is floor(sand/rate); the leftover sand is returned as remainder.
// Pure function, safe for concurrent use.
func Convert(sandAmount, rate int64) (melange, remainderSand int64, err error) {
	if sandAmount < 0 {
		return 0, 0, apperr.InvalidInputf("sand amount must be non-negative, got %d", sandAmount)
	}
	if rate <= 0 {
		return 0, 0, apperr.InvalidInputf("conversion rate must be positive, got %d", rate)
	}
	return sandAmount / rate, sandAmount % rate, nil
}
