package decimal

import "github.com/shopspring/decimal"

// Pack/Unpack give a densely-packed-compatible 64-bit encoding: an
// 8-bit signed scale (the base-10 exponent, negated) in the top byte,
// and a 56-bit two's-complement coefficient in the remaining bits.
// This is not bit-identical to IEEE 754-2008 Decimal64 DPD; the only
// contract required of it is that Pack and Unpack are mutual inverses
// on the representable domain (coefficients fitting 56 bits, i.e. up
// to 16 significant digits, with scale in [-128,127]).
const (
	scaleBits       = 8
	coefficientBits = 64 - scaleBits
	coefficientMax  = int64(1) << (coefficientBits - 1)
)

// Pack encodes a Decimal into a round-trippable uint64.
func Pack(x Decimal) uint64 {
	coeff := x.d.Coefficient().Int64()
	if x.d.Sign() < 0 && coeff > 0 {
		coeff = -coeff
	}
	scale := -x.d.Exponent()

	scaleByte := uint64(int8(scale)) & 0xFF
	coeffBits := uint64(coeff) & ((uint64(1) << coefficientBits) - 1)

	return (scaleByte << coefficientBits) | coeffBits
}

// Unpack decodes a uint64 produced by Pack back into a Decimal.
func Unpack(packed uint64) Decimal {
	scaleByte := int8(packed >> coefficientBits)
	coeffBits := packed & ((uint64(1) << coefficientBits) - 1)

	// Sign-extend the coefficient from coefficientBits to 64 bits.
	signBit := uint64(1) << (coefficientBits - 1)
	var coeff int64
	if coeffBits&signBit != 0 {
		coeff = int64(coeffBits | ^((uint64(1) << coefficientBits) - 1))
	} else {
		coeff = int64(coeffBits)
	}

	exponent := -int32(scaleByte)
	return Decimal{d: decimal.New(coeff, exponent)}
}
