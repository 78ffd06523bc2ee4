package store

import (
	"context"
	"fmt"

	"github.com/roach88/signed64/internal/ir"
)

// WriteEvaluation inserts an evaluation record into the store.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
// Other constraint violations (e.g., NOT NULL) will still return errors.
func (s *Store) WriteEvaluation(ctx context.Context, eval ir.Evaluation) error {
	operandsJSON, err := marshalOperands(eval.Operands)
	if err != nil {
		return fmt.Errorf("write evaluation: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO evaluations
		(id, session, op, operands, seq, engine_version, ir_version)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		eval.ID,
		eval.Session,
		eval.Op,
		operandsJSON,
		eval.Seq,
		eval.EngineVersion,
		ir.IRVersion,
	)
	if err != nil {
		return fmt.Errorf("write evaluation: %w", err)
	}

	return nil
}

// WriteOutcome inserts an outcome record into the store.
// Uses ON CONFLICT DO NOTHING for idempotency - duplicate writes are silently ignored.
// Each evaluation can have exactly ONE outcome (UNIQUE evaluation_id).
//
// Note: The evaluation referenced by EvaluationID must exist (foreign key constraint).
func (s *Store) WriteOutcome(ctx context.Context, out ir.Outcome) error {
	// ON CONFLICT DO NOTHING covers both a repeated outcome id and a
	// second outcome for the same evaluation.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO outcomes
		(id, evaluation_id, output_case, result, seq)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		out.ID,
		out.EvaluationID,
		out.Case,
		out.Result,
		out.Seq,
	)
	if err != nil {
		return fmt.Errorf("write outcome: %w", err)
	}

	return nil
}

// WriteRecord writes an evaluation and its outcome in one transaction.
func (s *Store) WriteRecord(ctx context.Context, rec Record) error {
	if rec.Outcome == nil {
		return fmt.Errorf("write record %s: missing outcome", rec.Evaluation.ID)
	}
	if rec.Outcome.EvaluationID != rec.Evaluation.ID {
		return fmt.Errorf("write record %s: outcome belongs to %s",
			rec.Evaluation.ID, rec.Outcome.EvaluationID)
	}

	operandsJSON, err := marshalOperands(rec.Evaluation.Operands)
	if err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write record: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	eval := rec.Evaluation
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO evaluations
		(id, session, op, operands, seq, engine_version, ir_version)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, eval.ID, eval.Session, eval.Op, operandsJSON, eval.Seq, eval.EngineVersion, ir.IRVersion); err != nil {
		return fmt.Errorf("write record: evaluation: %w", err)
	}

	out := rec.Outcome
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO outcomes
		(id, evaluation_id, output_case, result, seq)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, out.ID, out.EvaluationID, out.Case, out.Result, out.Seq); err != nil {
		return fmt.Errorf("write record: outcome: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write record: commit: %w", err)
	}
	return nil
}
