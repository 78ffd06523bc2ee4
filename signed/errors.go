package signed

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes arithmetic and conversion failures.
type ErrorCode string

const (
	// CodeConversionOverflow indicates an unsigned input above MaxMagnitude.
	CodeConversionOverflow ErrorCode = "CONVERSION_OVERFLOW"

	// CodeConversionUnderflow indicates extracting an unsigned value from a
	// negative one.
	CodeConversionUnderflow ErrorCode = "CONVERSION_UNDERFLOW"

	// CodeAddOverflow indicates an addition result above the range.
	CodeAddOverflow ErrorCode = "ADD_OVERFLOW"

	// CodeSubUnderflow indicates a subtraction result below the range.
	// Pairwise addition of two negatives also reports this code.
	CodeSubUnderflow ErrorCode = "SUB_UNDERFLOW"

	// CodeMulOverflow indicates a product magnitude above MaxMagnitude.
	CodeMulOverflow ErrorCode = "MUL_OVERFLOW"

	// CodeDivideByZero indicates a zero divisor.
	CodeDivideByZero ErrorCode = "DIVIDE_BY_ZERO"
)

// Codes lists every ErrorCode in declaration order.
var Codes = []ErrorCode{
	CodeConversionOverflow,
	CodeConversionUnderflow,
	CodeAddOverflow,
	CodeSubUnderflow,
	CodeMulOverflow,
	CodeDivideByZero,
}

var codeMessages = map[ErrorCode]string{
	CodeConversionOverflow:  "value exceeds maximum magnitude",
	CodeConversionUnderflow: "negative value has no unsigned form",
	CodeAddOverflow:         "addition overflow",
	CodeSubUnderflow:        "subtraction underflow",
	CodeMulOverflow:         "multiplication overflow",
	CodeDivideByZero:        "division by zero",
}

// Sentinels for errors.Is. They match any *Error with the same code,
// whatever operation produced it.
var (
	ErrConversionOverflow  = &Error{Code: CodeConversionOverflow}
	ErrConversionUnderflow = &Error{Code: CodeConversionUnderflow}
	ErrAddOverflow         = &Error{Code: CodeAddOverflow}
	ErrSubUnderflow        = &Error{Code: CodeSubUnderflow}
	ErrMulOverflow         = &Error{Code: CodeMulOverflow}
	ErrDivideByZero        = &Error{Code: CodeDivideByZero}
)

// Operation names recorded on *Error.
const (
	opFromUint64    = "from_u64"
	opNegFromUint64 = "neg_from_u64"
	opFromInt64     = "from_i64"
	opToUint64      = "to_u64"
	opParse         = "parse"
	opAddUint64     = "add_u64"
	opSubUint64     = "sub_u64"
	opMulUint64     = "mul_u64"
	opDivUint64     = "div_u64"
	opAdd           = "add"
	opSub           = "sub"
	opMul           = "mul"
	opDiv           = "div"
)

// Error is a failed arithmetic or conversion operation.
type Error struct {
	// Code identifies the failure kind.
	Code ErrorCode

	// Op names the operation that failed (e.g. "mul_u64").
	// Empty on the package sentinels.
	Op string
}

func newError(code ErrorCode, op string) *Error {
	return &Error{Code: code, Op: op}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg, ok := codeMessages[e.Code]
	if !ok {
		msg = string(e.Code)
	}
	if e.Op == "" {
		return "signed: " + msg
	}
	return fmt.Sprintf("signed: %s: %s", e.Op, msg)
}

// Is matches another *Error with the same code. A target without an Op
// matches any operation.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Op == "" || t.Op == e.Op)
}

// CodeOf extracts the ErrorCode from err, looking through wrapping.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

// ParseError reports malformed decimal input.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("signed: parsing %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
