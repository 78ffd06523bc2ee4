package engine

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/roach88/signed64/internal/ir"
	"github.com/roach88/signed64/signed"
)

// Op names an operation in the catalogue.
type Op string

const (
	OpAdd Op = "add"
	OpSub Op = "sub"
	OpMul Op = "mul"
	OpDiv Op = "div"

	OpAddUint64 Op = "add_u64"
	OpSubUint64 Op = "sub_u64"
	OpMulUint64 Op = "mul_u64"
	OpDivUint64 Op = "div_u64"

	OpNeg Op = "neg"
	OpAbs Op = "abs"
	OpCmp Op = "cmp"

	OpFromUint64    Op = "from_u64"
	OpNegFromUint64 Op = "neg_from_u64"
	OpToUint64      Op = "to_u64"
)

// OperandKind says how an operand string is parsed.
type OperandKind int

const (
	// KindSigned operands parse with signed.Parse.
	KindSigned OperandKind = iota
	// KindUnsigned operands parse as decimal uint64.
	KindUnsigned
)

func (k OperandKind) String() string {
	if k == KindUnsigned {
		return "u64"
	}
	return "i64"
}

// operand holds one parsed operand; only the field matching its kind is set.
type operand struct {
	s signed.Int64
	u uint64
}

type opSpec struct {
	kinds []OperandKind
	apply func(v []operand) (string, error)
}

var catalogue = map[Op]opSpec{
	OpAdd: pairOp(signed.Add),
	OpSub: pairOp(signed.Sub),
	OpMul: pairOp(signed.Mul),
	OpDiv: pairOp(signed.Div),

	OpAddUint64: scalarOp(signed.AddUint64),
	OpSubUint64: scalarOp(signed.SubUint64),
	OpMulUint64: scalarOp(signed.MulUint64),
	OpDivUint64: scalarOp(signed.DivUint64),

	OpNeg: unaryOp(signed.Int64.Neg),
	OpAbs: unaryOp(signed.Int64.Abs),
	OpCmp: {
		kinds: []OperandKind{KindSigned, KindSigned},
		apply: func(v []operand) (string, error) {
			return signed.Compare(v[0].s, v[1].s).String(), nil
		},
	},

	OpFromUint64:    conversionOp(signed.FromUint64),
	OpNegFromUint64: conversionOp(signed.NegFromUint64),
	OpToUint64: {
		kinds: []OperandKind{KindSigned},
		apply: func(v []operand) (string, error) {
			u, err := v[0].s.Uint64()
			if err != nil {
				return "", err
			}
			return strconv.FormatUint(u, 10), nil
		},
	},
}

func pairOp(f func(a, b signed.Int64) (signed.Int64, error)) opSpec {
	return opSpec{
		kinds: []OperandKind{KindSigned, KindSigned},
		apply: func(v []operand) (string, error) {
			return valueString(f(v[0].s, v[1].s))
		},
	}
}

func scalarOp(f func(a signed.Int64, s uint64) (signed.Int64, error)) opSpec {
	return opSpec{
		kinds: []OperandKind{KindSigned, KindUnsigned},
		apply: func(v []operand) (string, error) {
			return valueString(f(v[0].s, v[1].u))
		},
	}
}

func unaryOp(f func(signed.Int64) signed.Int64) opSpec {
	return opSpec{
		kinds: []OperandKind{KindSigned},
		apply: func(v []operand) (string, error) {
			return f(v[0].s).String(), nil
		},
	}
}

func conversionOp(f func(u uint64) (signed.Int64, error)) opSpec {
	return opSpec{
		kinds: []OperandKind{KindUnsigned},
		apply: func(v []operand) (string, error) {
			return valueString(f(v[0].u))
		},
	}
}

func valueString(x signed.Int64, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return x.String(), nil
}

// ParseOp validates an op name against the catalogue.
func ParseOp(name string) (Op, error) {
	op := Op(name)
	if _, ok := catalogue[op]; !ok {
		return "", NewUnknownOpError(name)
	}
	return op, nil
}

// Ops returns every op name in sorted order.
func Ops() []Op {
	ops := make([]Op, 0, len(catalogue))
	for op := range catalogue {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// Signature returns the operand kinds of op, e.g. [i64 u64] for add_u64.
func Signature(op Op) []OperandKind {
	return append([]OperandKind(nil), catalogue[op].kinds...)
}

// Result is the pure result of applying an op.
type Result struct {
	// Case is ir.CaseOK or a signed.ErrorCode string.
	Case string `json:"case"`

	// Value is the decimal result, or "less"/"equal"/"greater" for cmp.
	// Empty unless Case is ir.CaseOK.
	Value string `json:"value,omitempty"`
}

func (r Result) String() string {
	if r.Case == ir.CaseOK {
		return r.Value
	}
	return r.Case
}

// Apply runs op over operands without recording anything.
// Arithmetic failures come back as a Result with an error case; the
// returned error is always a *RuntimeError.
func Apply(name string, operands []string) (Result, error) {
	op, err := ParseOp(name)
	if err != nil {
		return Result{}, err
	}
	spec := catalogue[op]

	if len(operands) != len(spec.kinds) {
		return Result{}, NewArityError(name, len(operands), len(spec.kinds))
	}

	values := make([]operand, len(operands))
	for i, kind := range spec.kinds {
		switch kind {
		case KindUnsigned:
			u, err := strconv.ParseUint(operands[i], 10, 64)
			if err != nil {
				return Result{}, NewOperandError(name, i, operands[i], err)
			}
			values[i].u = u
		default:
			s, err := signed.Parse(operands[i])
			if err != nil {
				return Result{}, NewOperandError(name, i, operands[i], err)
			}
			values[i].s = s
		}
	}

	value, err := spec.apply(values)
	if err != nil {
		code, ok := signed.CodeOf(err)
		if !ok {
			return Result{}, fmt.Errorf("apply %s: %w", name, err)
		}
		return Result{Case: string(code)}, nil
	}
	return Result{Case: ir.CaseOK, Value: value}, nil
}
