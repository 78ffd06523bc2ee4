// Package signed provides a checked signed 64-bit integer built on an
// unsigned 64-bit word in sign-magnitude form.
//
// Bit 63 of the word is the sign flag and bits 0-62 hold the magnitude.
// This is NOT two's complement: the representable range is
// [-(2^63-1), 2^63-1], one value short of int64 on the negative side.
//
// Key invariants:
//   - The "negative zero" pattern (sign bit set, magnitude zero) is never
//     observable. Every constructor and operation normalizes it to zero, so
//     Go's == on two Int64 values is numeric equality.
//   - Values are immutable. Every operation returns a new value.
//   - No operation wraps. Overflow, underflow and division by zero are
//     reported as *Error values carrying an ErrorCode, and the returned
//     Int64 is zero.
//
// Arithmetic comes in two forms: value op uint64 (AddUint64, SubUint64,
// MulUint64, DivUint64) and value op value (Add, Sub, Mul, Div). Range checks
// always happen before the unsigned operation is performed.
//
// This package depends only on the standard library and is safe for
// concurrent use.
package signed
