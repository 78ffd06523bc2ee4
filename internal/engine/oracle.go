package engine

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/roach88/signed64/internal/ir"
	"github.com/roach88/signed64/signed"
)

var (
	decMax = decimal.NewFromInt(int64(signed.MaxMagnitude))
	decMin = decMax.Neg()
)

// Oracle recomputes an op in arbitrary precision and says what the
// sign-magnitude result must be.
type Oracle struct{}

// Expect returns the result op must produce for operands.
// Operands are assumed to have passed Apply's validation.
func (Oracle) Expect(op Op, operands []string) (Result, error) {
	kinds := catalogue[op].kinds
	if len(kinds) != len(operands) {
		return Result{}, NewArityError(string(op), len(operands), len(kinds))
	}

	v := make([]decimal.Decimal, len(operands))
	for i, kind := range kinds {
		d, err := toDecimal(kind, operands[i])
		if err != nil {
			return Result{}, NewOperandError(string(op), i, operands[i], err)
		}
		v[i] = d
	}

	switch op {
	case OpAdd, OpAddUint64, OpSub, OpSubUint64:
		var r decimal.Decimal
		if op == OpAdd || op == OpAddUint64 {
			r = v[0].Add(v[1])
		} else {
			r = v[0].Sub(v[1])
		}
		switch {
		case r.GreaterThan(decMax):
			return errResult(signed.CodeAddOverflow), nil
		case r.LessThan(decMin):
			return errResult(signed.CodeSubUnderflow), nil
		}
		return okResult(r), nil

	case OpMul, OpMulUint64:
		r := v[0].Mul(v[1])
		if !inRange(r) {
			return errResult(signed.CodeMulOverflow), nil
		}
		return okResult(r), nil

	case OpDiv, OpDivUint64:
		if v[1].IsZero() {
			return errResult(signed.CodeDivideByZero), nil
		}
		q, _ := v[0].QuoRem(v[1], 0)
		return okResult(q), nil

	case OpNeg:
		return okResult(v[0].Neg()), nil

	case OpAbs:
		return okResult(v[0].Abs()), nil

	case OpCmp:
		ord := signed.Equal
		switch v[0].Cmp(v[1]) {
		case -1:
			ord = signed.Less
		case 1:
			ord = signed.Greater
		}
		return Result{Case: ir.CaseOK, Value: ord.String()}, nil

	case OpFromUint64, OpNegFromUint64:
		if v[0].GreaterThan(decMax) {
			return errResult(signed.CodeConversionOverflow), nil
		}
		if op == OpNegFromUint64 {
			return okResult(v[0].Neg()), nil
		}
		return okResult(v[0]), nil

	case OpToUint64:
		if v[0].IsNegative() {
			return errResult(signed.CodeConversionUnderflow), nil
		}
		return okResult(v[0]), nil
	}

	return Result{}, NewUnknownOpError(string(op))
}

// Verify checks got against the expected result.
func (o Oracle) Verify(op Op, operands []string, got Result) error {
	want, err := o.Expect(op, operands)
	if err != nil {
		return err
	}
	if got != want {
		return NewOracleMismatchError(string(op), operands, got, want)
	}
	return nil
}

// toDecimal reads an operand through its canonical digits so that sign
// spellings like "+5" and "-0" reach the decimal package in one form.
func toDecimal(kind OperandKind, s string) (decimal.Decimal, error) {
	if kind == KindUnsigned {
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return decimal.NewFromString(strconv.FormatUint(u, 10))
	}
	x, err := signed.Parse(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(x.String())
}

func inRange(d decimal.Decimal) bool {
	return !d.GreaterThan(decMax) && !d.LessThan(decMin)
}

func okResult(d decimal.Decimal) Result {
	return Result{Case: ir.CaseOK, Value: d.String()}
}

func errResult(code signed.ErrorCode) Result {
	return Result{Case: string(code)}
}
