package harness

import (
	"fmt"

	"github.com/roach88/signed64/signed"
)

// Property names.
const (
	PropCommutativeAdd   = "commutative_add"
	PropCommutativeMul   = "commutative_mul"
	PropAdditiveInverse  = "additive_inverse"
	PropInvolution       = "involution"
	PropAbsNonNegative   = "abs_non_negative"
	PropRoundTrip        = "round_trip"
	PropOrderingTotality = "ordering_totality"
)

// propertyFunc checks one property over values and returns a description
// of each violation.
type propertyFunc func(values []signed.Int64) []string

var properties = map[string]propertyFunc{
	PropCommutativeAdd:   pairwise(commutes("add", signed.Add)),
	PropCommutativeMul:   pairwise(commutes("mul", signed.Mul)),
	PropAdditiveInverse:  each(additiveInverse),
	PropInvolution:       each(involution),
	PropAbsNonNegative:   each(absNonNegative),
	PropRoundTrip:        each(roundTrip),
	PropOrderingTotality: pairwise(orderingTotal),
}

// CheckProperty parses values and checks the named property over them.
// Returns the number of cases checked and any violations.
func CheckProperty(p PropertyCheck) (int, []string, error) {
	check, ok := properties[p.Type]
	if !ok {
		return 0, nil, fmt.Errorf("unknown property %q", p.Type)
	}

	values := make([]signed.Int64, len(p.Values))
	for i, s := range p.Values {
		x, err := signed.Parse(s)
		if err != nil {
			return 0, nil, fmt.Errorf("property %s: value %d: %w", p.Type, i, err)
		}
		values[i] = x
	}

	cases := len(values)
	if p.Type == PropCommutativeAdd || p.Type == PropCommutativeMul || p.Type == PropOrderingTotality {
		cases *= len(values)
	}
	return cases, check(values), nil
}

func each(f func(a signed.Int64) string) propertyFunc {
	return func(values []signed.Int64) []string {
		var violations []string
		for _, a := range values {
			if v := f(a); v != "" {
				violations = append(violations, v)
			}
		}
		return violations
	}
}

func pairwise(f func(a, b signed.Int64) string) propertyFunc {
	return func(values []signed.Int64) []string {
		var violations []string
		for _, a := range values {
			for _, b := range values {
				if v := f(a, b); v != "" {
					violations = append(violations, v)
				}
			}
		}
		return violations
	}
}

// outcome renders a result the way the engine does: the value or the code.
func outcome(x signed.Int64, err error) string {
	if err != nil {
		if code, ok := signed.CodeOf(err); ok {
			return string(code)
		}
		return err.Error()
	}
	return x.String()
}

func commutes(name string, op func(a, b signed.Int64) (signed.Int64, error)) func(a, b signed.Int64) string {
	return func(a, b signed.Int64) string {
		ab := outcome(op(a, b))
		ba := outcome(op(b, a))
		if ab != ba {
			return fmt.Sprintf("%s(%s, %s) = %s but %s(%s, %s) = %s", name, a, b, ab, name, b, a, ba)
		}
		return ""
	}
}

func additiveInverse(a signed.Int64) string {
	sum, err := signed.Add(a, a.Neg())
	if err != nil || !sum.IsZero() || sum.Bits() != 0 {
		return fmt.Sprintf("add(%s, neg(%s)) = %s, want 0", a, a, outcome(sum, err))
	}
	return ""
}

func involution(a signed.Int64) string {
	if got := a.Neg().Neg(); !got.Eq(a) {
		return fmt.Sprintf("neg(neg(%s)) = %s", a, got)
	}
	return ""
}

func absNonNegative(a signed.Int64) string {
	abs := a.Abs()
	if abs.IsNegative() || abs.Magnitude() != a.Magnitude() {
		return fmt.Sprintf("abs(%s) = %s", a, abs)
	}
	return ""
}

func roundTrip(a signed.Int64) string {
	if got, err := signed.Parse(a.String()); err != nil || !got.Eq(a) {
		return fmt.Sprintf("parse(string(%s)) = %s", a, outcome(got, err))
	}
	if got := signed.FromBits(a.Bits()); !got.Eq(a) {
		return fmt.Sprintf("from_bits(bits(%s)) = %s", a, got)
	}
	if got, err := signed.FromInt64(a.Int64()); err != nil || !got.Eq(a) {
		return fmt.Sprintf("from_i64(i64(%s)) = %s", a, outcome(got, err))
	}
	if a.IsNegative() {
		if _, err := a.Uint64(); err == nil {
			return fmt.Sprintf("to_u64(%s) succeeded on a negative value", a)
		}
		return ""
	}
	u, err := a.Uint64()
	if err != nil {
		return fmt.Sprintf("to_u64(%s): %v", a, err)
	}
	if got, err := signed.FromUint64(u); err != nil || !got.Eq(a) {
		return fmt.Sprintf("from_u64(to_u64(%s)) = %s", a, outcome(got, err))
	}
	return ""
}

func orderingTotal(a, b signed.Int64) string {
	n := 0
	for _, holds := range []bool{a.Lt(b), a.Eq(b), a.Gt(b)} {
		if holds {
			n++
		}
	}
	if n != 1 {
		return fmt.Sprintf("%s vs %s: %d of lt/eq/gt hold", a, b, n)
	}

	ab, ba := signed.Compare(a, b), signed.Compare(b, a)
	switch {
	case ab == signed.Equal && ba != signed.Equal,
		ab == signed.Less && ba != signed.Greater,
		ab == signed.Greater && ba != signed.Less:
		return fmt.Sprintf("compare(%s, %s) = %s but compare(%s, %s) = %s", a, b, ab, b, a, ba)
	}
	if a.Cmp(b) != -b.Cmp(a) {
		return fmt.Sprintf("cmp(%s, %s) is not antisymmetric", a, b)
	}
	return ""
}
