package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/roach88/signed64/internal/ir"
)

// Field names a filterable column of the joined evaluation/outcome rows.
type Field string

const (
	FieldSession Field = "session"
	FieldOp      Field = "op"
	FieldCase    Field = "output_case"
	FieldResult  Field = "result"
)

// columns maps each Field to its qualified column. Only these names are
// ever written into SQL text.
var columns = map[Field]string{
	FieldSession: "e.session",
	FieldOp:      "e.op",
	FieldCase:    "o.output_case",
	FieldResult:  "o.result",
}

// Predicate is a filter condition over log rows.
//
// This is a sealed interface - only Equals and And implement it, so the
// compiler below can switch over every case.
type Predicate interface {
	predicateNode()
}

// Equals matches rows where Field = Value.
type Equals struct {
	Field Field
	Value string
}

func (Equals) predicateNode() {}

// And matches rows satisfying every predicate. An empty And matches all rows.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Query selects records from the whole log.
type Query struct {
	Filter Predicate // nil matches everything
	Limit  int       // 0 means no limit
}

// compileQuery converts q to parameterized SQL.
// Values are always bound as parameters, never interpolated, and every
// query is ordered by seq with id as the tiebreaker.
func compileQuery(q Query) (string, []any, error) {
	var b strings.Builder
	b.WriteString(`
		SELECT e.id, e.session, e.op, e.operands, e.seq, e.engine_version,
		       o.id, o.output_case, o.result, o.seq
		FROM evaluations e
		LEFT JOIN outcomes o ON e.id = o.evaluation_id`)

	var params []any
	if q.Filter != nil {
		where, p, err := compilePredicate(q.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		b.WriteString("\n\t\tWHERE ")
		b.WriteString(where)
		params = p
	}

	b.WriteString("\n\t\tORDER BY e.seq ASC, e.id COLLATE BINARY ASC")

	if q.Limit < 0 {
		return "", nil, fmt.Errorf("negative limit %d", q.Limit)
	}
	if q.Limit > 0 {
		b.WriteString("\n\t\tLIMIT ?")
		params = append(params, q.Limit)
	}
	return b.String(), params, nil
}

func compilePredicate(p Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case Equals:
		col, ok := columns[pred.Field]
		if !ok {
			return "", nil, fmt.Errorf("unknown field %q", pred.Field)
		}
		return col + " = ?", []any{pred.Value}, nil

	case And:
		if len(pred.Predicates) == 0 {
			return "1 = 1", nil, nil
		}
		parts := make([]string, 0, len(pred.Predicates))
		var params []any
		for _, sub := range pred.Predicates {
			s, p, err := compilePredicate(sub)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, s)
			params = append(params, p...)
		}
		return "(" + strings.Join(parts, " AND ") + ")", params, nil

	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// FindRecords returns the records matching q across all sessions, in seq
// order. Records whose outcome is missing only match filters on
// evaluation fields.
func (s *Store) FindRecords(ctx context.Context, q Query) ([]Record, error) {
	query, params, err := compileQuery(q)
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			eval         ir.Evaluation
			operandsJSON string
			outID        sql.NullString
			outCase      sql.NullString
			outResult    sql.NullString
			outSeq       sql.NullInt64
		)
		if err := rows.Scan(
			&eval.ID, &eval.Session, &eval.Op, &operandsJSON, &eval.Seq, &eval.EngineVersion,
			&outID, &outCase, &outResult, &outSeq,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}

		operands, err := unmarshalOperands(operandsJSON)
		if err != nil {
			return nil, fmt.Errorf("evaluation %s: %w", eval.ID, err)
		}
		eval.Operands = operands

		rec := Record{Evaluation: eval}
		if outID.Valid {
			rec.Outcome = &ir.Outcome{
				ID:           outID.String,
				EvaluationID: eval.ID,
				Case:         outCase.String,
				Result:       outResult.String,
				Seq:          outSeq.Int64,
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}
