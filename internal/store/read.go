package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/signed64/internal/ir"
)

const evaluationColumns = `id, session, op, operands, seq, engine_version`

const outcomeColumns = `id, evaluation_id, output_case, result, seq`

// ReadSession returns all evaluations and outcomes for a session.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns empty slices (not nil) if no records exist for the session.
func (s *Store) ReadSession(ctx context.Context, session string) ([]ir.Evaluation, []ir.Outcome, error) {
	evaluations, err := s.readSessionEvaluations(ctx, session)
	if err != nil {
		return nil, nil, err
	}

	outcomes, err := s.readSessionOutcomes(ctx, session)
	if err != nil {
		return nil, nil, err
	}

	return evaluations, outcomes, nil
}

func (s *Store) readSessionEvaluations(ctx context.Context, session string) ([]ir.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+evaluationColumns+`
		FROM evaluations
		WHERE session = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, session)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	return collectEvaluations(rows)
}

func (s *Store) readSessionOutcomes(ctx context.Context, session string) ([]ir.Outcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.evaluation_id, o.output_case, o.result, o.seq
		FROM outcomes o
		JOIN evaluations e ON o.evaluation_id = e.id
		WHERE e.session = ?
		ORDER BY o.seq ASC, o.id COLLATE BINARY ASC
	`, session)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	return collectOutcomes(rows)
}

// ReadEvaluation retrieves a single evaluation by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadEvaluation(ctx context.Context, id string) (ir.Evaluation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+evaluationColumns+`
		FROM evaluations
		WHERE id = ?
	`, id)
	return scanEvaluation(row)
}

// ReadOutcome retrieves the outcome of an evaluation.
// Returns sql.ErrNoRows if the evaluation has no outcome.
func (s *Store) ReadOutcome(ctx context.Context, evaluationID string) (ir.Outcome, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+outcomeColumns+`
		FROM outcomes
		WHERE evaluation_id = ?
	`, evaluationID)
	return scanOutcome(row)
}

// ReadAllEvaluations returns every evaluation with deterministic ordering.
func (s *Store) ReadAllEvaluations(ctx context.Context) ([]ir.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+evaluationColumns+`
		FROM evaluations
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query all evaluations: %w", err)
	}
	return collectEvaluations(rows)
}

// ListSessions returns every session id ordered by its first seq.
func (s *Store) ListSessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session
		FROM evaluations
		GROUP BY session
		ORDER BY MIN(seq) ASC, session COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []string{}
	for rows.Next() {
		var session string
		if err := rows.Scan(&session); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// LastSeq returns the highest seq across evaluations and outcomes,
// or 0 for an empty log.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(seq) FROM (
			SELECT seq FROM evaluations
			UNION ALL
			SELECT seq FROM outcomes
		)
	`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq.Int64, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(row scanner) (ir.Evaluation, error) {
	var eval ir.Evaluation
	var operandsJSON string
	if err := row.Scan(
		&eval.ID,
		&eval.Session,
		&eval.Op,
		&operandsJSON,
		&eval.Seq,
		&eval.EngineVersion,
	); err != nil {
		return ir.Evaluation{}, err
	}

	operands, err := unmarshalOperands(operandsJSON)
	if err != nil {
		return ir.Evaluation{}, fmt.Errorf("evaluation %s: %w", eval.ID, err)
	}
	eval.Operands = operands
	return eval, nil
}

func scanOutcome(row scanner) (ir.Outcome, error) {
	var out ir.Outcome
	if err := row.Scan(
		&out.ID,
		&out.EvaluationID,
		&out.Case,
		&out.Result,
		&out.Seq,
	); err != nil {
		return ir.Outcome{}, err
	}
	return out, nil
}

func collectEvaluations(rows *sql.Rows) ([]ir.Evaluation, error) {
	defer rows.Close()

	evaluations := []ir.Evaluation{}
	for rows.Next() {
		eval, err := scanEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		evaluations = append(evaluations, eval)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}
	return evaluations, nil
}

func collectOutcomes(rows *sql.Rows) ([]ir.Outcome, error) {
	defer rows.Close()

	outcomes := []ir.Outcome{}
	for rows.Next() {
		out, err := scanOutcome(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		outcomes = append(outcomes, out)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return outcomes, nil
}
