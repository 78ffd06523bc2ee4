// Package ir provides the record types and canonical encoding shared by the
// signed64 tooling.
//
// This package contains type definitions and encoding only. Every other
// internal package imports ir; ir imports nothing internal.
//
// Key design constraints:
//   - NO float types anywhere - numbers are int64, signed operands travel as
//     decimal strings
//   - Content-addressed ids use RFC 8785 canonical JSON and SHA-256 with
//     domain separation
//   - All JSON tags use snake_case
//   - Ordering uses logical clocks (seq), never wall-clock timestamps
package ir
