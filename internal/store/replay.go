package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/roach88/signed64/internal/ir"
)

// Record pairs an evaluation with its outcome.
// Outcome is nil when the log holds an evaluation with no outcome, which
// only happens if a writer crashed between the two inserts.
type Record struct {
	Evaluation ir.Evaluation
	Outcome    *ir.Outcome
}

// ReplaySession returns the session's records in seq order, ready to be
// re-evaluated and compared.
func (s *Store) ReplaySession(ctx context.Context, session string) ([]Record, error) {
	evaluations, outcomes, err := s.ReadSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("replay session %s: %w", session, err)
	}

	byEval := make(map[string]ir.Outcome, len(outcomes))
	for _, out := range outcomes {
		byEval[out.EvaluationID] = out
	}

	records := make([]Record, 0, len(evaluations))
	for _, eval := range evaluations {
		rec := Record{Evaluation: eval}
		if out, ok := byEval[eval.ID]; ok {
			rec.Outcome = &out
		}
		records = append(records, rec)
	}
	return records, nil
}

// SessionStats summarizes one session.
type SessionStats struct {
	Session     string
	Evaluations int
	Pending     int            // evaluations without an outcome
	FirstSeq    int64
	LastSeq     int64
	Cases       map[string]int // outcome case -> count
	Ops         map[string]int // op -> count
}

// Errors returns the number of outcomes whose case is not OK.
func (st SessionStats) Errors() int {
	n := 0
	for c, count := range st.Cases {
		if c != ir.CaseOK {
			n += count
		}
	}
	return n
}

// CaseNames returns the outcome cases in sorted order.
func (st SessionStats) CaseNames() []string {
	names := make([]string, 0, len(st.Cases))
	for c := range st.Cases {
		names = append(names, c)
	}
	sort.Strings(names)
	return names
}

// GetSessionStats computes SessionStats from the session's records.
func (s *Store) GetSessionStats(ctx context.Context, session string) (SessionStats, error) {
	records, err := s.ReplaySession(ctx, session)
	if err != nil {
		return SessionStats{}, err
	}

	st := SessionStats{
		Session: session,
		Cases:   make(map[string]int),
		Ops:     make(map[string]int),
	}
	for _, rec := range records {
		st.Evaluations++
		st.Ops[rec.Evaluation.Op]++
		if st.FirstSeq == 0 || rec.Evaluation.Seq < st.FirstSeq {
			st.FirstSeq = rec.Evaluation.Seq
		}
		st.LastSeq = max(st.LastSeq, rec.Evaluation.Seq)
		if rec.Outcome == nil {
			st.Pending++
			continue
		}
		st.Cases[rec.Outcome.Case]++
		st.LastSeq = max(st.LastSeq, rec.Outcome.Seq)
	}
	return st, nil
}

// FindPendingEvaluations returns evaluations that have no outcome.
// A healthy log returns none.
func (s *Store) FindPendingEvaluations(ctx context.Context) ([]ir.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.session, e.op, e.operands, e.seq, e.engine_version
		FROM evaluations e
		LEFT JOIN outcomes o ON e.id = o.evaluation_id
		WHERE o.id IS NULL
		ORDER BY e.seq ASC, e.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("find pending evaluations: %w", err)
	}
	return collectEvaluations(rows)
}
