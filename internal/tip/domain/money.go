package domain

import (
	"fmt"
	"math"
)

// ToMinorUnits converts a major-unit amount (dollars) to minor units (cents)
// with round-half-up. All arithmetic and storage use minor units; conversion
// happens only at input/output boundaries.
func ToMinorUnits(major float64) int64 {
	return int64(math.Floor(major*100 + 0.5))
}

// FromMinorUnits converts minor units back to major units.
func FromMinorUnits(minor int64) float64 {
	return float64(minor) / 100
}

// FormatMajor renders minor units as a fixed two-decimal string.
func FormatMajor(minor int64) string {
	return fmt.Sprintf("%.2f", FromMinorUnits(minor))
}
