package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed ids.
// The version suffix allows a future algorithm migration.
const (
	DomainEvaluation = "signed64/evaluation/v1"
	DomainOutcome    = "signed64/outcome/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// EvaluationID computes the content-addressed id of an evaluation.
// The id is stable across runs and replays given the same inputs.
func EvaluationID(session, op string, operands []string, seq int64) (string, error) {
	obj := IRObject{
		"session":  IRString(session),
		"op":       IRString(op),
		"operands": Strings(operands),
		"seq":      IRInt(seq),
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("EvaluationID: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainEvaluation, canonical), nil
}

// OutcomeID computes the content-addressed id of an outcome.
// It links to the evaluation it completes via evaluationID.
func OutcomeID(evaluationID, outputCase, result string, seq int64) (string, error) {
	obj := IRObject{
		"evaluation_id": IRString(evaluationID),
		"case":          IRString(outputCase),
		"result":        IRString(result),
		"seq":           IRInt(seq),
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("OutcomeID: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainOutcome, canonical), nil
}

// MustEvaluationID is like EvaluationID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustEvaluationID(session, op string, operands []string, seq int64) string {
	id, err := EvaluationID(session, op, operands, seq)
	if err != nil {
		panic(err)
	}
	return id
}
