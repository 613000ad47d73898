// Package variation derives stable pseudo-random values from identity strings.
//
// Values are a pure function of the id, so procedural scale or yaw jitter
// computed from them never changes between frames.
package variation

import "unicode/utf16"

// modulus is 2^31, the magnitude bound of a signed 32-bit accumulator.
const modulus = 1 << 31

// Of folds id into a signed 32-bit accumulator (acc = acc*31 + unit, wrapping)
// and returns its magnitude normalized into [0, 1).
//
// The string is folded by UTF-16 code unit so ids hash the same way the
// level tooling hashes them.
func Of(id string) float64 {
	var acc int32
	for _, unit := range utf16.Encode([]rune(id)) {
		acc = acc*31 + int32(unit)
	}
	mag := int64(acc)
	if mag < 0 {
		mag = -mag
	}
	// |MinInt32| == modulus; fold it to 0 to stay below 1.
	return float64(mag%modulus) / modulus
}

// Between maps the id's variation linearly into [base, base+span).
func Between(id string, base, span float64) float64 {
	return base + Of(id)*span
}

// Signed maps the id's variation into [-amplitude, amplitude).
func Signed(id string, amplitude float64) float64 {
	return (Of(id)*2 - 1) * amplitude
}
