package signed

// Ordering is the three-valued result of Compare.
// The numeric values are stable and part of the public contract.
type Ordering uint8

const (
	Equal   Ordering = 0
	Less    Ordering = 1
	Greater Ordering = 2
)

// String returns "equal", "less" or "greater".
func (o Ordering) String() string {
	switch o {
	case Equal:
		return "equal"
	case Less:
		return "less"
	case Greater:
		return "greater"
	default:
		return "unknown"
	}
}

// Compare orders a against b.
// Both operands are normalized, so bit equality is numeric equality.
func Compare(a, b Int64) Ordering {
	if a.bits == b.bits {
		return Equal
	}

	an, bn := a.IsNegative(), b.IsNegative()
	switch {
	case !an && !bn:
		if a.bits < b.bits {
			return Less
		}
		return Greater
	case an && bn:
		// Larger pattern means larger magnitude, which is more negative.
		if a.bits > b.bits {
			return Less
		}
		return Greater
	case an:
		return Less
	default:
		return Greater
	}
}

// Cmp returns -1, 0 or +1, for use with slices.SortFunc and friends.
func (x Int64) Cmp(y Int64) int {
	switch Compare(x, y) {
	case Less:
		return -1
	case Greater:
		return 1
	default:
		return 0
	}
}

// Eq reports x == y.
func (x Int64) Eq(y Int64) bool { return x.bits == y.bits }

// Lt reports x < y.
func (x Int64) Lt(y Int64) bool { return Compare(x, y) == Less }

// Gt reports x > y.
func (x Int64) Gt(y Int64) bool { return Compare(x, y) == Greater }

// Lte reports x <= y.
func (x Int64) Lte(y Int64) bool { return Compare(x, y) != Greater }

// Gte reports x >= y.
func (x Int64) Gte(y Int64) bool { return Compare(x, y) != Less }
