package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/signed64/internal/engine"
	"github.com/roach88/signed64/internal/store"
	"github.com/roach88/signed64/internal/testutil"
)

// Harness runs scenarios against a real engine.
// It uses a deterministic clock and session so traces are reproducible.
type Harness struct {
	store  *store.Store
	engine *engine.Engine
	clock  *testutil.DeterministicClock
	logger *slog.Logger
}

// Option configures a scenario run.
type Option func(*Harness)

// WithLogger routes engine logs to l. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.logger = l
		}
	}
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
//  1. Create fresh in-memory store and an engine with the oracle on
//  2. Evaluate each step and compare against its expectation
//  3. Read the trace back from the store
//  4. Check each property over its sample values
//
// Step failures and property violations are reported in Result.Errors.
// The returned error is reserved for infrastructure failures.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	st, err := store.OpenMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		clock:  testutil.NewDeterministicClock(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.engine = engine.New(st,
		testutil.NewFixedSessionGenerator(scenario.Session),
		engine.WithClock(h.clock),
		engine.WithOracle(true),
		engine.WithLogger(h.logger),
	)

	ctx := context.Background()
	result := NewResult()
	result.Session = h.engine.Session()

	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	h.checkProperties(scenario.Properties, result)

	return result, nil
}

// executeSteps evaluates steps in order. The trace is rebuilt from the
// store after every step so that it reflects what was recorded, not what
// the engine returned.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		out, err := h.engine.Evaluate(ctx, engine.Request{Op: step.Op, Operands: step.Operands})
		if err != nil {
			var re *engine.RuntimeError
			if errors.As(err, &re) {
				result.AddError(fmt.Sprintf("steps[%d]: %v", i, err))
				continue
			}
			return fmt.Errorf("steps[%d]: %w", i, err)
		}

		trace, err := h.readTrace(ctx, result.Session)
		if err != nil {
			return err
		}
		result.Trace = trace

		if err := assertStep(i, step, out, trace); err != nil {
			result.AddError(err.Error())
		}
	}

	pending, err := h.store.FindPendingEvaluations(ctx)
	if err != nil {
		return err
	}
	for _, eval := range pending {
		result.AddError(fmt.Sprintf("evaluation %s (seq %d) has no outcome", eval.ID, eval.Seq))
	}
	return nil
}

func (h *Harness) readTrace(ctx context.Context, session string) ([]TraceEvent, error) {
	records, err := h.store.ReplaySession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}

	trace := make([]TraceEvent, 0, len(records))
	for _, rec := range records {
		ev := TraceEvent{
			Op:       rec.Evaluation.Op,
			Operands: rec.Evaluation.Operands,
			Seq:      rec.Evaluation.Seq,
		}
		if rec.Outcome != nil {
			ev.Case = rec.Outcome.Case
			ev.Result = rec.Outcome.Result
		}
		trace = append(trace, ev)
	}
	return trace, nil
}

func (h *Harness) checkProperties(props []PropertyCheck, result *Result) {
	for i, p := range props {
		cases, violations, err := CheckProperty(p)
		if err != nil {
			result.AddError(fmt.Sprintf("properties[%d]: %v", i, err))
			continue
		}
		result.PropertyCases += cases
		for _, v := range violations {
			result.AddError(fmt.Sprintf("properties[%d] %s: %s", i, p.Type, v))
		}
		h.logger.Debug("property checked",
			"type", p.Type,
			"cases", cases,
			"violations", len(violations),
		)
	}
}
