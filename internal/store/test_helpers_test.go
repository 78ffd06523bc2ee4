package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/signed64/internal/ir"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestEvaluation creates an evaluation with a real content-addressed id.
func createTestEvaluation(session, op string, operands []string, seq int64) ir.Evaluation {
	return ir.Evaluation{
		ID:            ir.MustEvaluationID(session, op, operands, seq),
		Session:       session,
		Op:            op,
		Operands:      operands,
		Seq:           seq,
		EngineVersion: ir.EngineVersion,
	}
}

// createTestOutcome creates the outcome of eval at seq eval.Seq+1.
func createTestOutcome(t *testing.T, eval ir.Evaluation, outputCase, result string) ir.Outcome {
	t.Helper()
	seq := eval.Seq + 1
	id, err := ir.OutcomeID(eval.ID, outputCase, result, seq)
	if err != nil {
		t.Fatalf("OutcomeID() failed: %v", err)
	}
	return ir.Outcome{
		ID:           id,
		EvaluationID: eval.ID,
		Case:         outputCase,
		Result:       result,
		Seq:          seq,
	}
}

// writeTestRecord writes an evaluation and its outcome.
func writeTestRecord(t *testing.T, s *Store, eval ir.Evaluation, outputCase, result string) ir.Outcome {
	t.Helper()
	out := createTestOutcome(t, eval, outputCase, result)
	if err := s.WriteRecord(context.Background(), Record{Evaluation: eval, Outcome: &out}); err != nil {
		t.Fatalf("WriteRecord() failed: %v", err)
	}
	return out
}
