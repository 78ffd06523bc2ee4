package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/signed64/internal/ir"
)

func TestReadSession_Ordered(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// Written out of seq order on purpose
	e3 := createTestEvaluation("s1", "sub", []string{"0", "1"}, 5)
	e1 := createTestEvaluation("s1", "add", []string{"1", "2"}, 1)
	e2 := createTestEvaluation("s1", "mul", []string{"-3", "4"}, 3)
	writeTestRecord(t, s, e3, ir.CaseOK, "-1")
	writeTestRecord(t, s, e1, ir.CaseOK, "3")
	writeTestRecord(t, s, e2, ir.CaseOK, "-12")

	evals, outs, err := s.ReadSession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, evals, 3)
	require.Len(t, outs, 3)

	assert.Equal(t, []int64{1, 3, 5}, []int64{evals[0].Seq, evals[1].Seq, evals[2].Seq})
	assert.Equal(t, []int64{2, 4, 6}, []int64{outs[0].Seq, outs[1].Seq, outs[2].Seq})
	assert.Equal(t, []string{"-3", "4"}, evals[1].Operands)
	assert.Equal(t, ir.EngineVersion, evals[0].EngineVersion)
}

func TestReadSession_FiltersBySession(t *testing.T) {
	s := createTestStore(t)

	writeTestRecord(t, s, createTestEvaluation("s1", "neg", []string{"1"}, 1), ir.CaseOK, "-1")
	writeTestRecord(t, s, createTestEvaluation("s2", "neg", []string{"2"}, 3), ir.CaseOK, "-2")

	evals, outs, err := s.ReadSession(context.Background(), "s2")
	require.NoError(t, err)
	require.Len(t, evals, 1)
	require.Len(t, outs, 1)
	assert.Equal(t, "s2", evals[0].Session)
	assert.Equal(t, "-2", outs[0].Result)
}

func TestReadSession_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	evals, outs, err := s.ReadSession(context.Background(), "missing")
	require.NoError(t, err)
	assert.NotNil(t, evals)
	assert.NotNil(t, outs)
	assert.Empty(t, evals)
	assert.Empty(t, outs)
}

func TestReadEvaluation_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadEvaluation(context.Background(), "nope")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestReadEvaluation_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	eval := createTestEvaluation("s1", "add_u64", []string{"-9223372036854775807", "18446744073709551615"}, 1)
	writeTestRecord(t, s, eval, "ADD_OVERFLOW", "")

	got, err := s.ReadEvaluation(context.Background(), eval.ID)
	require.NoError(t, err)
	assert.Equal(t, eval, got)
}

func TestReadOutcome_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadOutcome(context.Background(), "nope")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestReadAllEvaluations(t *testing.T) {
	s := createTestStore(t)

	writeTestRecord(t, s, createTestEvaluation("b", "neg", []string{"1"}, 3), ir.CaseOK, "-1")
	writeTestRecord(t, s, createTestEvaluation("a", "neg", []string{"2"}, 1), ir.CaseOK, "-2")

	evals, err := s.ReadAllEvaluations(context.Background())
	require.NoError(t, err)
	require.Len(t, evals, 2)
	assert.Equal(t, "a", evals[0].Session)
	assert.Equal(t, "b", evals[1].Session)
}

func TestListSessions_OrderedByFirstSeq(t *testing.T) {
	s := createTestStore(t)

	writeTestRecord(t, s, createTestEvaluation("zeta", "neg", []string{"1"}, 1), ir.CaseOK, "-1")
	writeTestRecord(t, s, createTestEvaluation("alpha", "neg", []string{"2"}, 3), ir.CaseOK, "-2")
	writeTestRecord(t, s, createTestEvaluation("zeta", "neg", []string{"3"}, 5), ir.CaseOK, "-3")

	sessions, err := s.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha"}, sessions)
}

func TestListSessions_Empty(t *testing.T) {
	s := createTestStore(t)

	sessions, err := s.ListSessions(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestLastSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq, err := s.LastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq)

	writeTestRecord(t, s, createTestEvaluation("s1", "neg", []string{"1"}, 41), ir.CaseOK, "-1")

	seq, err = s.LastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), seq, "outcome seq counts")
}
