package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/signed64/internal/ir"
)

// AssertionError is returned when a step's outcome does not match its
// expectation. It includes the trace so far to help debug the failure.
type AssertionError struct {
	Step     int          // Index into Scenario.Steps
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Trace up to and including the failing step
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: steps[%d]\n", e.Step)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nTrace:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %v -> %s\n", ev.Seq, ev.Op, ev.Operands, describe(ev.Case, ev.Result))
		}
	}

	return buf.String()
}

// describe renders an outcome as "ok <value>" or "error <CODE>".
func describe(outputCase, result string) string {
	if outputCase == ir.CaseOK {
		return "ok " + result
	}
	return "error " + outputCase
}

// String renders an Expect the same way describe renders an outcome.
func (e *Expect) String() string {
	if e.Error != "" {
		return describe(e.Error, "")
	}
	return describe(ir.CaseOK, e.Value)
}

// assertStep compares a recorded outcome with the step's expectation.
// A step without an expectation always passes.
func assertStep(index int, step Step, out ir.Outcome, trace []TraceEvent) error {
	if step.Expect == nil {
		return nil
	}

	matched := false
	if step.Expect.Error != "" {
		matched = out.Case == step.Expect.Error
	} else {
		matched = out.OK() && out.Result == step.Expect.Value
	}
	if matched {
		return nil
	}

	return &AssertionError{
		Step:     index,
		Expected: fmt.Sprintf("%s %v -> %s", step.Op, step.Operands, step.Expect),
		Actual:   describe(out.Case, out.Result),
		Trace:    trace,
	}
}
