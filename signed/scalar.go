package signed

// AddUint64 returns a + s.
//
// A non-negative a fails with ErrAddOverflow when the sum exceeds
// MaxMagnitude. A negative a crosses to a non-negative result when its
// magnitude is at most s; that result can only overflow if s itself is out
// of range.
func AddUint64(a Int64, s uint64) (Int64, error) {
	negative, m := a.parts()
	if !negative {
		if s > MaxMagnitude || m > MaxMagnitude-s {
			return Int64{}, newError(CodeAddOverflow, opAddUint64)
		}
		return compose(false, m+s), nil
	}

	if m <= s {
		d := s - m
		if d > MaxMagnitude {
			return Int64{}, newError(CodeAddOverflow, opAddUint64)
		}
		return compose(false, d), nil
	}
	return compose(true, m-s), nil
}

// SubUint64 returns a - s.
//
// Fails with ErrSubUnderflow when the result magnitude on the negative side
// exceeds MaxMagnitude.
func SubUint64(a Int64, s uint64) (Int64, error) {
	negative, m := a.parts()
	if !negative {
		if m >= s {
			return compose(false, m-s), nil
		}
		d := s - m
		if d > MaxMagnitude {
			return Int64{}, newError(CodeSubUnderflow, opSubUint64)
		}
		return compose(true, d), nil
	}

	if s > MaxMagnitude || m > MaxMagnitude-s {
		return Int64{}, newError(CodeSubUnderflow, opSubUint64)
	}
	return compose(true, m+s), nil
}

// MulUint64 returns a * s with the sign of a.
//
// The range check divides before multiplying: m == 0 || s <= MaxMagnitude/m,
// otherwise ErrMulOverflow.
func MulUint64(a Int64, s uint64) (Int64, error) {
	negative, m := a.parts()
	if m != 0 && s > MaxMagnitude/m {
		return Int64{}, newError(CodeMulOverflow, opMulUint64)
	}
	return compose(negative, m*s), nil
}

// DivUint64 returns a / s truncated toward zero, with the sign of a.
// Fails with ErrDivideByZero when s is zero.
func DivUint64(a Int64, s uint64) (Int64, error) {
	if s == 0 {
		return Int64{}, newError(CodeDivideByZero, opDivUint64)
	}
	negative, m := a.parts()
	return compose(negative, m/s), nil
}
