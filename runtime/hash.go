package runtime

import "math"

// Hash mixers used by generated HashCode methods. Each model starts from 1
// and mixes every field in declaration order with the polynomial-31 scheme
// (absent values mix as zero, repeated fields fold element-wise), then runs
// the result through FinalizeHash.
//
// Equal model values built in different processes must hash identically,
// so both the mixers and the FinalizeHash shift sequence are frozen.

// MixNil mixes an absent value.
func MixNil(h int32) int32 {
	return 31 * h
}

// MixInt32 mixes a signed 32-bit value.
func MixInt32(h, v int32) int32 {
	return 31*h + v
}

// MixUint32 mixes an unsigned 32-bit value.
func MixUint32(h int32, v uint32) int32 {
	return 31*h + int32(v)
}

// MixInt64 mixes a signed 64-bit value by folding its halves.
func MixInt64(h int32, v int64) int32 {
	return 31*h + int32(v^int64(uint64(v)>>32))
}

// MixUint64 mixes an unsigned 64-bit value by folding its halves.
func MixUint64(h int32, v uint64) int32 {
	return 31*h + int32(v^(v>>32))
}

// MixFloat mixes a float by its bit pattern, so NaN and -0.0 hash
// consistently.
func MixFloat(h int32, v float32) int32 {
	return MixUint32(h, math.Float32bits(v))
}

// MixDouble mixes a double by its bit pattern.
func MixDouble(h int32, v float64) int32 {
	return MixUint64(h, math.Float64bits(v))
}

// MixBool mixes a bool.
func MixBool(h int32, v bool) int32 {
	if v {
		return 31*h + 1231
	}
	return 31*h + 1237
}

// MixString mixes a string by folding its bytes.
func MixString(h int32, s string) int32 {
	var inner int32
	for i := 0; i < len(s); i++ {
		inner = 31*inner + int32(s[i])
	}
	return 31*h + inner
}

// MixBytes mixes an immutable byte sequence.
func MixBytes(h int32, b Bytes) int32 {
	return 31*h + b.HashCode()
}

// FinalizeHash widens the mixed result to 64 bits and applies the fixed
// avalanche sequence, returned as the 32-bit truncation.
//
// Shifts: 30, 27, 16, 20, 5, 18, 10, 24, 30. The constants are part of the
// hash contract and are not tunable.
func FinalizeHash(h int32) int32 {
	hc := int64(h)
	hc += hc << 30
	hc ^= int64(uint64(hc) >> 27)
	hc += hc << 16
	hc ^= int64(uint64(hc) >> 20)
	hc += hc << 5
	hc ^= int64(uint64(hc) >> 18)
	hc += hc << 10
	hc ^= int64(uint64(hc) >> 24)
	hc += hc << 30
	return int32(hc)
}
