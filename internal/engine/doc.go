// Package engine evaluates signed64 operations and records them.
//
// An evaluation names an Op and its operands as decimal strings. The engine
// parses the operands, runs the matching signed operation, and produces an
// ir.Outcome whose case is ir.CaseOK or the signed.ErrorCode of the failure.
// Arithmetic failures are outcomes, not Go errors; Go errors are reserved for
// requests the engine cannot run at all (see RuntimeError).
//
// Every evaluation and outcome is stamped from a monotonic logical clock and
// given a content-addressed id, then appended to the store when one is
// configured. With the oracle enabled each outcome is cross-checked against
// arbitrary precision decimal arithmetic before it is recorded.
package engine
