package signed

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcreteScenarios(t *testing.T) {
	got, err := AddUint64(MustFromUint64(123), 234)
	require.NoError(t, err)
	assert.Equal(t, MustFromUint64(357), got)

	got, err = SubUint64(MustFromUint64(123), 234)
	require.NoError(t, err)
	assert.Equal(t, MustNegFromUint64(111), got)

	got, err = MulUint64(MustNegFromUint64(123), 234)
	require.NoError(t, err)
	assert.Equal(t, MustNegFromUint64(28782), got)

	got, err = DivUint64(MustNegFromUint64(28781), 123)
	require.NoError(t, err)
	assert.Equal(t, MustNegFromUint64(233), got)

	_, err = MulUint64(MustFromUint64(2), math.MaxInt64-1)
	assert.ErrorIs(t, err, ErrMulOverflow)

	_, err = DivUint64(MustFromUint64(1), 0)
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestAddUint64(t *testing.T) {
	tests := []struct {
		name    string
		a       Int64
		s       uint64
		want    Int64
		wantErr error
	}{
		{"positive", MustFromUint64(1), 2, MustFromUint64(3), nil},
		{"to max", MustFromUint64(MaxMagnitude - 1), 1, MustFromUint64(MaxMagnitude), nil},
		{"past max", MustFromUint64(MaxMagnitude), 1, Int64{}, ErrAddOverflow},
		{"scalar out of range", Zero(), signBit, Int64{}, ErrAddOverflow},
		{"negative crosses zero", MustNegFromUint64(5), 8, MustFromUint64(3), nil},
		{"negative lands on zero", MustNegFromUint64(5), 5, Zero(), nil},
		{"negative stays negative", MustNegFromUint64(8), 5, MustNegFromUint64(3), nil},
		{"negative with huge scalar", MustNegFromUint64(MaxMagnitude), signBit, One(), nil},
		{"negative crossing past max", MustNegFromUint64(1), math.MaxUint64, Int64{}, ErrAddOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddUint64(tt.a, tt.s)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, Zero(), got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubUint64(t *testing.T) {
	tests := []struct {
		name    string
		a       Int64
		s       uint64
		want    Int64
		wantErr error
	}{
		{"positive", MustFromUint64(5), 2, MustFromUint64(3), nil},
		{"lands on zero", MustFromUint64(5), 5, Zero(), nil},
		{"crosses zero", MustFromUint64(2), 5, MustNegFromUint64(3), nil},
		{"negative grows", MustNegFromUint64(2), 5, MustNegFromUint64(7), nil},
		{"to min", MustNegFromUint64(MaxMagnitude - 1), 1, MustNegFromUint64(MaxMagnitude), nil},
		{"past min", MustNegFromUint64(MaxMagnitude), 1, Int64{}, ErrSubUnderflow},
		{"zero minus out of range", Zero(), signBit, Int64{}, ErrSubUnderflow},
		{"max minus out of range", MustFromUint64(MaxMagnitude), signBit, MustNegFromUint64(1), nil},
		{"negative minus out of range", MustNegFromUint64(1), signBit, Int64{}, ErrSubUnderflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SubUint64(tt.a, tt.s)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMulUint64(t *testing.T) {
	got, err := MulUint64(Zero(), math.MaxUint64)
	require.NoError(t, err)
	assert.Equal(t, Zero(), got)

	got, err = MulUint64(MustNegFromUint64(5), 0)
	require.NoError(t, err)
	assert.Equal(t, Zero(), got)
	assert.False(t, got.IsNegative())

	got, err = MulUint64(MustNegFromUint64(1), MaxMagnitude)
	require.NoError(t, err)
	assert.Equal(t, MustNegFromUint64(MaxMagnitude), got)

	_, err = MulUint64(One(), signBit)
	assert.ErrorIs(t, err, ErrMulOverflow)

	_, err = MulUint64(MustNegFromUint64(1<<32), 1<<31)
	assert.ErrorIs(t, err, ErrMulOverflow)
}

func TestDivUint64(t *testing.T) {
	got, err := DivUint64(MustNegFromUint64(3), 5)
	require.NoError(t, err)
	assert.Equal(t, Zero(), got, "negative magnitude below divisor must normalize")

	got, err = DivUint64(MustFromUint64(MaxMagnitude), math.MaxUint64)
	require.NoError(t, err)
	assert.Equal(t, Zero(), got)

	got, err = DivUint64(MustNegFromUint64(7), 2)
	require.NoError(t, err)
	assert.Equal(t, MustNegFromUint64(3), got)
}

func TestPairNegativeOverflowUsesSubUnderflow(t *testing.T) {
	_, err := Add(MustNegFromUint64(MaxMagnitude), MustNegFromUint64(1))
	assert.ErrorIs(t, err, ErrSubUnderflow)

	_, err = Add(MustFromUint64(MaxMagnitude), One())
	assert.ErrorIs(t, err, ErrAddOverflow)

	_, err = Sub(MustFromUint64(MaxMagnitude), MustNegFromUint64(1))
	assert.ErrorIs(t, err, ErrAddOverflow)

	_, err = Sub(MustNegFromUint64(MaxMagnitude), One())
	assert.ErrorIs(t, err, ErrSubUnderflow)
}

func TestPairMulAndDiv(t *testing.T) {
	got, err := Mul(MustNegFromUint64(3), MustNegFromUint64(4))
	require.NoError(t, err)
	assert.Equal(t, MustFromUint64(12), got)

	got, err = Mul(MustNegFromUint64(3), Zero())
	require.NoError(t, err)
	assert.Equal(t, Zero(), got)

	_, err = Mul(MustFromUint64(2), MustNegFromUint64(math.MaxInt64-1))
	assert.ErrorIs(t, err, ErrMulOverflow)

	got, err = Div(MustFromUint64(7), MustNegFromUint64(2))
	require.NoError(t, err)
	assert.Equal(t, MustNegFromUint64(3), got)

	got, err = Div(MustNegFromUint64(1), MustFromUint64(2))
	require.NoError(t, err)
	assert.Equal(t, Zero(), got)

	_, err = Div(One(), FromBits(signBit))
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestErrorReportsOperation(t *testing.T) {
	_, err := Mul(MustFromUint64(MaxMagnitude), MustFromUint64(2))
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, CodeMulOverflow, se.Code)
	assert.Equal(t, "mul", se.Op)
	assert.Equal(t, "signed: mul: multiplication overflow", err.Error())

	assert.ErrorIs(t, err, &Error{Code: CodeMulOverflow, Op: "mul"})
	assert.NotErrorIs(t, err, &Error{Code: CodeMulOverflow, Op: "mul_u64"})
	assert.NotErrorIs(t, err, ErrAddOverflow)
}

func TestCommutativity(t *testing.T) {
	values := sampleValues()
	for _, a := range values {
		for _, b := range values {
			ab, errAB := Add(a, b)
			ba, errBA := Add(b, a)
			if errAB == nil {
				require.NoError(t, errBA)
				assert.Equal(t, ab, ba, "add a=%s b=%s", a, b)
			}

			ab, errAB = Mul(a, b)
			ba, errBA = Mul(b, a)
			if errAB == nil {
				require.NoError(t, errBA)
				assert.Equal(t, ab, ba, "mul a=%s b=%s", a, b)
			}
		}
	}
}

func TestAdditiveInverse(t *testing.T) {
	for _, a := range sampleValues() {
		got, err := Add(a, a.Neg())
		require.NoError(t, err)
		assert.Equal(t, Zero(), got, "a=%s", a)
	}
}

// The remaining tests check every operation against math/big over the
// sample grid: in-range results must match exactly and out-of-range results
// must fail with the expected code.

var (
	bigMax = new(big.Int).SetUint64(MaxMagnitude)
	bigMin = new(big.Int).Neg(bigMax)
)

func toBig(x Int64) *big.Int {
	return big.NewInt(x.Int64())
}

// rangeCode returns the code expected for an exact result, or "" when the
// result is representable.
func rangeCode(exact *big.Int, over, under ErrorCode) ErrorCode {
	switch {
	case exact.Cmp(bigMax) > 0:
		return over
	case exact.Cmp(bigMin) < 0:
		return under
	default:
		return ""
	}
}

func checkAgainstBig(t *testing.T, label string, got Int64, err error, exact *big.Int, wantCode ErrorCode) {
	t.Helper()
	if wantCode != "" {
		code, ok := CodeOf(err)
		require.True(t, ok, "%s: expected %s, got value %s", label, wantCode, got)
		assert.Equal(t, wantCode, code, label)
		assert.Equal(t, Zero(), got, label)
		return
	}
	require.NoError(t, err, label)
	assert.Equal(t, exact.String(), got.String(), label)
	assert.False(t, got.Bits() == signBit, "%s: negative zero leaked", label)
}

func scalarSamples() []uint64 {
	return []uint64{0, 1, 2, 5, 123, 1 << 31, 1 << 32, 1 << 62, MaxMagnitude - 1, MaxMagnitude, signBit, signBit + 1, math.MaxUint64}
}

func TestScalarOpsAgainstBig(t *testing.T) {
	for _, a := range sampleValues() {
		for _, s := range scalarSamples() {
			bs := new(big.Int).SetUint64(s)

			exact := new(big.Int).Add(toBig(a), bs)
			got, err := AddUint64(a, s)
			checkAgainstBig(t, "add_u64 "+a.String(), got, err, exact, rangeCode(exact, CodeAddOverflow, CodeAddOverflow))

			exact = new(big.Int).Sub(toBig(a), bs)
			got, err = SubUint64(a, s)
			checkAgainstBig(t, "sub_u64 "+a.String(), got, err, exact, rangeCode(exact, CodeSubUnderflow, CodeSubUnderflow))

			exact = new(big.Int).Mul(toBig(a), bs)
			got, err = MulUint64(a, s)
			checkAgainstBig(t, "mul_u64 "+a.String(), got, err, exact, rangeCode(exact, CodeMulOverflow, CodeMulOverflow))

			got, err = DivUint64(a, s)
			if s == 0 {
				assert.ErrorIs(t, err, ErrDivideByZero)
				continue
			}
			exact = new(big.Int).Quo(toBig(a), bs)
			checkAgainstBig(t, "div_u64 "+a.String(), got, err, exact, "")
		}
	}
}

func TestPairOpsAgainstBig(t *testing.T) {
	for _, a := range sampleValues() {
		for _, b := range sampleValues() {
			label := a.String() + " " + b.String()

			exact := new(big.Int).Add(toBig(a), toBig(b))
			got, err := Add(a, b)
			checkAgainstBig(t, "add "+label, got, err, exact, rangeCode(exact, CodeAddOverflow, CodeSubUnderflow))

			exact = new(big.Int).Sub(toBig(a), toBig(b))
			got, err = Sub(a, b)
			checkAgainstBig(t, "sub "+label, got, err, exact, rangeCode(exact, CodeAddOverflow, CodeSubUnderflow))

			exact = new(big.Int).Mul(toBig(a), toBig(b))
			got, err = Mul(a, b)
			checkAgainstBig(t, "mul "+label, got, err, exact, rangeCode(exact, CodeMulOverflow, CodeMulOverflow))

			got, err = Div(a, b)
			if b.IsZero() {
				assert.ErrorIs(t, err, ErrDivideByZero)
				continue
			}
			exact = new(big.Int).Quo(toBig(a), toBig(b))
			checkAgainstBig(t, "div "+label, got, err, exact, "")
		}
	}
}
