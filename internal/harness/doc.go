// Package harness provides conformance testing for signed64.
//
// The harness loads scenario files, evaluates their steps through a real
// engine, and checks algebraic properties of the signed package.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: overflow_edges
//	description: "Range boundaries of the pairwise operations"
//	session: "test-session-overflow"
//	steps:
//	  - op: add
//	    operands: ["9223372036854775807", "1"]
//	    expect:
//	      error: ADD_OVERFLOW
//	  - op: sub
//	    operands: ["3", "10"]
//	    expect:
//	      value: "-7"
//	properties:
//	  - type: commutative_add
//	    values: ["0", "-1", "9223372036854775807"]
//
// Files are decoded with unknown fields rejected, then checked against
// an embedded CUE schema (schema.cue).
//
// # Properties
//
//   - commutative_add, commutative_mul: op(a, b) and op(b, a) agree,
//     including on the error code
//   - additive_inverse: a + (-a) is zero
//   - involution: -(-a) is a
//   - abs_non_negative: |a| is non-negative with the magnitude of a
//   - round_trip: text, bits, int64 and uint64 conversions return a
//   - ordering_totality: exactly one of a < b, a == b, a > b holds
//
// # Deterministic Testing
//
// The harness uses:
//   - Fixed session ids (from scenario.session, else "test-session-default")
//   - Deterministic logical clock (testutil.DeterministicClock)
//   - In-memory SQLite database (isolated per run)
//   - The decimal oracle, so a wrong expectation and a wrong engine are
//     told apart
//
// The trace is read back from the store, so golden files record what was
// persisted.
package harness
