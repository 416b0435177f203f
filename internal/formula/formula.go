// Package formula implements the gravity, ABV and delle calculations used by
// the chat commands.
package formula

import "math"

// StableDelle is the delle unit count at or above which a finished brew is
// considered stable without chemical stabilizers.
const StableDelle = 73

// Gravity bounds accepted by the ABV command.
const (
	MinGravity = 0.98
	MaxGravity = 1.2
	// HardMaxGravity is the upper bound checked after option parsing.
	HardMaxGravity = 1.22
	// MaxGravityDrop caps OG-FG at roughly 23% ABV.
	MaxGravityDrop = 0.165
	// DefaultFG is used when the final gravity is omitted.
	DefaultFG = 0.996
)

// ABV bounds accepted by the delle command.
const (
	MinABV = 0.0
	MaxABV = 23.0
)

// ToBrix converts a specific gravity reading to degrees Brix.
func ToBrix(sg float64) float64 {
	return -668.962 + 1262.45*sg - 776.43*sg*sg + 182.94*sg*sg*sg
}

// Result is the outcome of an ABV calculation.
type Result struct {
	// ABV is the alcohol by volume percentage rounded to two decimals.
	ABV float64
	// Delle is the rounded delle unit count for the final gravity and ABV.
	Delle int
}

// ComputeABV derives ABV and delle units from original and final gravity.
// It uses the refractometer-free Balling style estimate: real extract from
// apparent extract, alcohol by weight, then by volume.
func ComputeABV(og, fg float64) Result {
	oe := ToBrix(og)
	ae := ToBrix(fg)
	q := 0.22 + 0.001*oe
	re := (q*oe + ae) / (1 + q)
	abw := (oe - re) / (2.0665 - 0.010665*oe)
	abv := round2(abw * (fg / 0.794))

	return Result{ABV: abv, Delle: DelleFromABV(abv, fg)}
}

// DelleFromABV returns delle units for an ABV percentage and final gravity.
func DelleFromABV(abv, fg float64) int {
	return int(math.Round(ToBrix(fg) + 4.5*abv))
}

// ValidGravities reports whether og and fg are usable inputs for ComputeABV.
func ValidGravities(og, fg float64) bool {
	switch {
	case math.IsNaN(og), math.IsNaN(fg):
		return false
	case og < fg:
		return false
	case og > HardMaxGravity, fg > HardMaxGravity:
		return false
	case og-fg > MaxGravityDrop:
		return false
	}
	return true
}

// ValidDelleInputs reports whether abv and fg are within the delle command bounds.
func ValidDelleInputs(abv, fg float64) bool {
	if math.IsNaN(abv) || math.IsNaN(fg) {
		return false
	}
	return abv >= MinABV && abv <= MaxABV && fg >= MinGravity && fg <= MaxGravity
}

// IsStable reports whether a delle count indicates a stable brew.
func IsStable(delle int) bool {
	return delle >= StableDelle
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
