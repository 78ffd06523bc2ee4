package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/roach88/signed64/internal/ir"
	"github.com/roach88/signed64/internal/store"
)

// Request asks the engine to evaluate one op.
type Request struct {
	Op       string
	Operands []string
}

// Engine evaluates requests against the signed package and records each
// evaluation and its outcome.
//
// Thread-safety model:
//   - Evaluate(): safe from any goroutine; evaluations are serialized so
//     seq numbers and store writes stay in one order
//   - Session(): safe from any goroutine
//
// INVARIANTS:
//   - Every recorded evaluation has exactly one outcome
//   - The outcome seq is always evaluation seq + 1
//   - Requests that fail validation are never recorded
type Engine struct {
	mu      sync.Mutex
	store   *store.Store // nil disables recording
	clock   Sequencer
	gen     SessionGenerator
	session string
	oracle  bool
	logger  *slog.Logger
}

// EngineOption allows configuration of engine parameters.
type EngineOption func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithOracle turns the decimal cross-check on or off.
func WithOracle(on bool) EngineOption {
	return func(e *Engine) {
		e.oracle = on
	}
}

// WithClock sets the sequencer. Used for replay to resume numbering.
func WithClock(c Sequencer) EngineOption {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithSession pins the session id instead of asking the generator.
func WithSession(session string) EngineOption {
	return func(e *Engine) {
		e.session = session
	}
}

// New creates an Engine that records into s (which may be nil) under a
// session drawn from gen.
func New(s *store.Store, gen SessionGenerator, opts ...EngineOption) *Engine {
	e := &Engine{
		store:  s,
		clock:  NewClock(),
		gen:    gen,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.session == "" {
		e.session = gen.Generate()
	}
	return e
}

// NewResuming creates an Engine whose clock continues after the highest
// seq already in s.
func NewResuming(ctx context.Context, s *store.Store, gen SessionGenerator, opts ...EngineOption) (*Engine, error) {
	last, err := s.LastSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("read last seq: %w", err)
	}
	opts = append([]EngineOption{WithClock(NewClockAt(last))}, opts...)
	return New(s, gen, opts...), nil
}

// Session returns the session id stamped on every evaluation.
func (e *Engine) Session() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// NewSession switches to a fresh session from the generator and returns it.
func (e *Engine) NewSession() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session = e.gen.Generate()
	return e.session
}

// Evaluate runs req and records the evaluation and outcome.
//
// Arithmetic failures are successful evaluations with an error case; the
// returned error is reserved for requests that cannot be evaluated
// (RuntimeError) and store failures.
func (e *Engine) Evaluate(ctx context.Context, req Request) (ir.Outcome, error) {
	res, err := Apply(req.Op, req.Operands)
	if err != nil {
		e.logger.Warn("evaluation rejected",
			"op", req.Op,
			"operands", req.Operands,
			"error", err,
		)
		return ir.Outcome{}, err
	}

	if e.oracle {
		if err := (Oracle{}).Verify(Op(req.Op), req.Operands, res); err != nil {
			e.logger.Error("oracle mismatch",
				"op", req.Op,
				"operands", req.Operands,
				"error", err,
			)
			return ir.Outcome{}, err
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	operands := append([]string{}, req.Operands...)
	eval := ir.Evaluation{
		Session:       e.session,
		Op:            req.Op,
		Operands:      operands,
		Seq:           e.clock.Next(),
		EngineVersion: ir.EngineVersion,
	}
	eval.ID, err = ir.EvaluationID(eval.Session, eval.Op, eval.Operands, eval.Seq)
	if err != nil {
		return ir.Outcome{}, err
	}

	out := ir.Outcome{
		EvaluationID: eval.ID,
		Case:         res.Case,
		Result:       res.Value,
		Seq:          e.clock.Next(),
	}
	out.ID, err = ir.OutcomeID(out.EvaluationID, out.Case, out.Result, out.Seq)
	if err != nil {
		return ir.Outcome{}, err
	}

	if e.store != nil {
		if err := e.store.WriteRecord(ctx, store.Record{Evaluation: eval, Outcome: &out}); err != nil {
			return ir.Outcome{}, fmt.Errorf("record evaluation %s: %w", eval.ID, err)
		}
	}

	e.logger.Debug("evaluation recorded",
		"evaluation_id", eval.ID,
		"session", eval.Session,
		"op", eval.Op,
		"seq", eval.Seq,
		"output_case", out.Case,
		"result", out.Result,
	)

	return out, nil
}
