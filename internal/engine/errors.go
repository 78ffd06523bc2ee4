package engine

import (
	"errors"
	"fmt"
)

// RuntimeError is a request the engine could not evaluate.
//
// Runtime errors include:
//   - Unknown op: the op name is not in the catalogue
//   - Bad operand: wrong operand count, or an operand that does not parse
//   - Oracle mismatch: the outcome disagrees with decimal arithmetic
//
// Arithmetic failures (overflow, division by zero) are NOT runtime errors;
// they are recorded as outcomes.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Op is the requested operation.
	Op string

	// Details contains additional context.
	Details map[string]string
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeUnknownOp indicates an op name outside the catalogue.
	ErrCodeUnknownOp RuntimeErrorCode = "UNKNOWN_OP"

	// ErrCodeBadOperand indicates a wrong operand count or unparsable operand.
	ErrCodeBadOperand RuntimeErrorCode = "BAD_OPERAND"

	// ErrCodeOracleMismatch indicates an outcome that disagrees with the
	// decimal oracle.
	ErrCodeOracleMismatch RuntimeErrorCode = "ORACLE_MISMATCH"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s (op=%s)", e.Code, e.Message, e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func hasCode(err error, code RuntimeErrorCode) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// IsUnknownOp reports whether err is an unknown-op error.
func IsUnknownOp(err error) bool { return hasCode(err, ErrCodeUnknownOp) }

// IsBadOperand reports whether err is a bad-operand error.
func IsBadOperand(err error) bool { return hasCode(err, ErrCodeBadOperand) }

// IsOracleMismatch reports whether err is an oracle disagreement.
func IsOracleMismatch(err error) bool { return hasCode(err, ErrCodeOracleMismatch) }

// NewUnknownOpError creates a RuntimeError for an unknown op.
func NewUnknownOpError(op string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeUnknownOp,
		Message: "no such operation",
		Op:      op,
	}
}

// NewArityError creates a RuntimeError for a wrong operand count.
func NewArityError(op string, got, want int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeBadOperand,
		Message: fmt.Sprintf("expected %d operands, got %d", want, got),
		Op:      op,
		Details: map[string]string{
			"got":  fmt.Sprintf("%d", got),
			"want": fmt.Sprintf("%d", want),
		},
	}
}

// NewOperandError creates a RuntimeError for an operand that does not parse.
func NewOperandError(op string, index int, operand string, err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeBadOperand,
		Message: fmt.Sprintf("operand %d %q: %v", index, operand, err),
		Op:      op,
		Details: map[string]string{
			"index":   fmt.Sprintf("%d", index),
			"operand": operand,
		},
	}
}

// NewOracleMismatchError creates a RuntimeError for an oracle disagreement.
func NewOracleMismatchError(op string, operands []string, got, want Result) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeOracleMismatch,
		Message: fmt.Sprintf("got %s, oracle expects %s", got, want),
		Op:      op,
		Details: map[string]string{
			"operands": fmt.Sprintf("%v", operands),
		},
	}
}
