package signed

import "math"

const (
	// signBit is bit 63, the sign flag of the encoding.
	signBit = uint64(1) << 63

	// MaxMagnitude is the largest representable magnitude, 2^63-1.
	MaxMagnitude = signBit - 1
)

// Int64 is a signed 64-bit integer in sign-magnitude encoding.
// The zero value is the canonical zero.
type Int64 struct {
	bits uint64
}

// normalize collapses negative zero to the canonical zero pattern.
func normalize(b uint64) uint64 {
	if b == signBit {
		return 0
	}
	return b
}

// compose builds a value from a sign and a magnitude.
// mag must not exceed MaxMagnitude.
func compose(negative bool, mag uint64) Int64 {
	if negative {
		return Int64{bits: normalize(mag | signBit)}
	}
	return Int64{bits: mag}
}

// parts splits x into its sign and magnitude.
func (x Int64) parts() (negative bool, mag uint64) {
	if x.bits > signBit {
		return true, x.bits - signBit
	}
	return false, x.bits
}

// FromBits builds an Int64 from a raw sign-magnitude word.
// Negative zero is normalized to zero.
func FromBits(b uint64) Int64 {
	return Int64{bits: normalize(b)}
}

// Bits returns the raw sign-magnitude word.
func (x Int64) Bits() uint64 {
	return x.bits
}

// Zero returns the canonical zero.
func Zero() Int64 {
	return Int64{}
}

// One returns the canonical one.
func One() Int64 {
	return Int64{bits: 1}
}

// FromUint64 converts u to a non-negative Int64.
// Returns ErrConversionOverflow if u exceeds MaxMagnitude.
func FromUint64(u uint64) (Int64, error) {
	return fromUint64(u, opFromUint64)
}

// NegFromUint64 converts u and negates it. NegFromUint64(0) is zero.
// Returns ErrConversionOverflow if u exceeds MaxMagnitude.
func NegFromUint64(u uint64) (Int64, error) {
	x, err := fromUint64(u, opNegFromUint64)
	if err != nil {
		return Int64{}, err
	}
	return x.Neg(), nil
}

// MustFromUint64 is like FromUint64 but panics on error.
// Use only in tests or when u is known to be in range.
func MustFromUint64(u uint64) Int64 {
	x, err := FromUint64(u)
	if err != nil {
		panic(err)
	}
	return x
}

// MustNegFromUint64 is like NegFromUint64 but panics on error.
// Use only in tests or when u is known to be in range.
func MustNegFromUint64(u uint64) Int64 {
	x, err := NegFromUint64(u)
	if err != nil {
		panic(err)
	}
	return x
}

func fromUint64(u uint64, op string) (Int64, error) {
	if u > MaxMagnitude {
		return Int64{}, newError(CodeConversionOverflow, op)
	}
	return Int64{bits: u}, nil
}

// FromInt64 converts a native int64.
// Every int64 converts except math.MinInt64, which has no sign-magnitude
// counterpart and returns ErrConversionOverflow.
func FromInt64(i int64) (Int64, error) {
	if i == math.MinInt64 {
		return Int64{}, newError(CodeConversionOverflow, opFromInt64)
	}
	if i < 0 {
		return compose(true, uint64(-i)), nil
	}
	return Int64{bits: uint64(i)}, nil
}

// Uint64 returns x as an unsigned integer.
// Returns ErrConversionUnderflow if x is negative.
func (x Int64) Uint64() (uint64, error) {
	if x.IsNegative() {
		return 0, newError(CodeConversionUnderflow, opToUint64)
	}
	return x.bits, nil
}

// Int64 returns x as a native int64. The conversion is always exact.
func (x Int64) Int64() int64 {
	negative, mag := x.parts()
	if negative {
		return -int64(mag)
	}
	return int64(mag)
}

// IsZero reports whether x is zero.
func (x Int64) IsZero() bool {
	return x.bits == 0
}

// IsNegative reports whether x is strictly less than zero.
func (x Int64) IsNegative() bool {
	return x.bits > signBit
}

// Sign returns -1, 0 or +1.
func (x Int64) Sign() int {
	switch {
	case x.bits == 0:
		return 0
	case x.IsNegative():
		return -1
	default:
		return 1
	}
}

// Magnitude returns the absolute value of x as an unsigned integer.
func (x Int64) Magnitude() uint64 {
	_, mag := x.parts()
	return mag
}

// Neg returns -x. The negation of zero is zero.
func (x Int64) Neg() Int64 {
	if x.bits == 0 {
		return x
	}
	if x.bits < signBit {
		return Int64{bits: normalize(x.bits + signBit)}
	}
	return Int64{bits: normalize(x.bits - signBit)}
}

// Abs returns |x|. It never overflows since -2^63 is not representable.
func (x Int64) Abs() Int64 {
	if x.IsNegative() {
		return Int64{bits: x.bits - signBit}
	}
	return x
}
