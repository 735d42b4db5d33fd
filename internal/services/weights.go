package services

import (
	"math"

	"github.com/kjdelacruz/stagetally/internal/errors"
)

// NormalizeWeight converts a raw weight entry to a fraction in [0,1].
//
// Operators enter weights as percent-like numbers: "50" and "0.5" both mean
// 50%. Anything above 1.0 is divided by 100, anything at or below 1.0 is
// taken as an already-normalized fraction.
func NormalizeWeight(raw float64) (float64, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, errors.Validation("weight must be a number")
	}
	if raw < 0 {
		return 0, errors.Validation("weight cannot be negative")
	}
	if raw > 1.0 {
		return raw / 100.0, nil
	}
	return raw, nil
}
