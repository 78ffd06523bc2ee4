package signed

// Add returns a + b.
//
// Same-sign operands add magnitudes: two non-negatives fail with
// ErrAddOverflow, two negatives fail with ErrSubUnderflow. Mixed signs
// subtract the smaller magnitude from the larger and take the sign of the
// larger.
func Add(a, b Int64) (Int64, error) {
	an, am := a.parts()
	bn, bm := b.parts()
	return combine(opAdd, an, am, bn, bm)
}

// Sub returns a - b, computed as a + (-b).
//
// A non-negative a minus a negative b fails with ErrAddOverflow; a negative
// a minus a non-negative b fails with ErrSubUnderflow.
func Sub(a, b Int64) (Int64, error) {
	an, am := a.parts()
	bn, bm := b.parts()
	return combine(opSub, an, am, !bn, bm)
}

// combine adds two sign-magnitude operands.
// bn may describe a flipped zero; the mixed-sign branch handles it.
func combine(op string, an bool, am uint64, bn bool, bm uint64) (Int64, error) {
	if an == bn {
		if am > MaxMagnitude-bm {
			if an {
				return Int64{}, newError(CodeSubUnderflow, op)
			}
			return Int64{}, newError(CodeAddOverflow, op)
		}
		return compose(an, am+bm), nil
	}

	if am >= bm {
		return compose(an, am-bm), nil
	}
	return compose(bn, bm-am), nil
}

// Mul returns a * b.
//
// Fails with ErrMulOverflow unless am == 0 || bm <= MaxMagnitude/am. The
// sign is the XOR of the operand signs; a zero product is always the
// canonical zero.
func Mul(a, b Int64) (Int64, error) {
	an, am := a.parts()
	bn, bm := b.parts()
	if am != 0 && bm > MaxMagnitude/am {
		return Int64{}, newError(CodeMulOverflow, opMul)
	}
	return compose(an != bn, am*bm), nil
}

// Div returns a / b truncated toward zero.
// Fails with ErrDivideByZero when b is zero.
func Div(a, b Int64) (Int64, error) {
	if b.bits == 0 {
		return Int64{}, newError(CodeDivideByZero, opDiv)
	}
	an, am := a.parts()
	bn, bm := b.parts()
	return compose(an != bn, am/bm), nil
}
