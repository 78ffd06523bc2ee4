// Package store provides SQLite-backed durable storage for signed64
// evaluation logs.
//
// The store is an append-only log with:
//   - Evaluations: an op, its operands and the session that ran it
//   - Outcomes: exactly one per evaluation, either "OK" with a result or
//     the error code the arithmetic reported
//
// # Ordering
//
// All reads order by the logical seq column, then id COLLATE BINARY, so
// two reads of the same log always agree. Wall time is never stored.
//
// # Idempotency
//
// Writes use ON CONFLICT DO NOTHING. Ids are content-addressed
// (internal/ir/hash.go), so writing the same record twice is a no-op, and
// the UNIQUE evaluation_id on outcomes keeps a second outcome out.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Outcomes must reference a stored evaluation
package store
