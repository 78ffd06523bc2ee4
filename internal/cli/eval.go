package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/signed64/internal/engine"
	"github.com/roach88/signed64/internal/ir"
	"github.com/roach88/signed64/internal/store"
)

// EvalResult is the data payload of a successful or failed evaluation.
type EvalResult struct {
	Op           string   `json:"op"`
	Operands     []string `json:"operands"`
	Case         string   `json:"case"`
	Result       string   `json:"result,omitempty"`
	Session      string   `json:"session"`
	Seq          int64    `json:"seq"`
	EvaluationID string   `json:"evaluation_id"`
	Recorded     bool     `json:"recorded"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <op> <operand>...",
		Short: "Evaluate one operation",
		Long: `Evaluate one sign-magnitude operation.

Operands are decimal integers; signed operands may carry a leading + or -.
Scalar (_u64) and conversion ops take unsigned operands where their
signature says u64. Run "signed64 ops" for the catalogue.

With --db the evaluation and its outcome are appended to the log, and
sequence numbers continue after the last recorded one.

Exit codes:
  0 - The operation produced a value
  1 - The operation failed with an error code (overflow, division by zero)
  2 - Command error (unknown op, bad operand, database error)

Examples:
  signed64 eval add -5 3
  signed64 eval mul_u64 -3 7 --format json
  signed64 --db ./signed64.db eval div 9223372036854775807 0`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd.Context(), rootOpts, args[0], args[1:], cmd)
		},
	}

	// Everything after the op is an operand, including "-5".
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runEval(ctx context.Context, opts *RootOptions, op string, operands []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := newFormatter(cmd, opts)

	engineOpts := []engine.EngineOption{
		engine.WithOracle(opts.Oracle),
		engine.WithLogger(opts.logger()),
	}
	if opts.Session != "" {
		engineOpts = append(engineOpts, engine.WithSession(opts.Session))
	}

	var eng *engine.Engine
	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()

		eng, err = engine.NewResuming(ctx, st, engine.UUIDv7Generator{}, engineOpts...)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to resume log", err)
		}
	} else {
		eng = engine.New(nil, engine.UUIDv7Generator{}, engineOpts...)
	}

	outcome, err := eng.Evaluate(ctx, engine.Request{Op: op, Operands: operands})
	if err != nil {
		var re *engine.RuntimeError
		if errors.As(err, &re) {
			if err := out.Error(string(re.Code), re.Message, re.Details); err != nil {
				return err
			}
			if re.Code == engine.ErrCodeOracleMismatch {
				return WrapExitError(ExitFailure, "oracle mismatch", err)
			}
			return WrapExitError(ExitCommandError, "evaluation rejected", err)
		}
		return WrapExitError(ExitCommandError, "evaluation failed", err)
	}

	result := EvalResult{
		Op:           op,
		Operands:     operands,
		Case:         outcome.Case,
		Result:       outcome.Result,
		Session:      eng.Session(),
		Seq:          outcome.Seq - 1, // outcome seq is evaluation seq + 1
		EvaluationID: outcome.EvaluationID,
		Recorded:     opts.Database != "",
	}
	out.VerboseLog("session %s seq %d evaluation %s", result.Session, result.Seq, result.EvaluationID)

	if outcome.OK() {
		if out.JSON() {
			return out.Respond(CLIResponse{Status: "ok", Data: result, Session: result.Session})
		}
		return out.Success(outcome.Result)
	}

	message := fmt.Sprintf("%s %s", op, strings.Join(operands, " "))
	if out.JSON() {
		err = out.Respond(CLIResponse{
			Status:  "error",
			Data:    result,
			Error:   &CLIError{Code: outcome.Case, Message: message},
			Session: result.Session,
		})
	} else {
		err = out.Error(outcome.Case, message, nil)
	}
	if err != nil {
		return err
	}
	return NewExitError(ExitFailure, outcome.Case)
}

// OpInfo describes one catalogue entry.
type OpInfo struct {
	Op        string   `json:"op"`
	Signature []string `json:"signature"`
}

// NewOpsCommand creates the ops command.
func NewOpsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the operation catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(cmd, rootOpts)

			infos := make([]OpInfo, 0, len(engine.Ops()))
			for _, op := range engine.Ops() {
				kinds := engine.Signature(op)
				sig := make([]string, len(kinds))
				for i, k := range kinds {
					sig[i] = k.String()
				}
				infos = append(infos, OpInfo{Op: string(op), Signature: sig})
			}

			if out.JSON() {
				return out.Success(infos)
			}
			for _, info := range infos {
				fmt.Fprintf(out.Writer, "%-14s %s\n", info.Op, strings.Join(info.Signature, " "))
			}
			return nil
		},
	}
}

// describeOutcome renders an outcome as "ok <value>" or "error <CODE>".
func describeOutcome(outputCase, result string) string {
	if outputCase == ir.CaseOK {
		return "ok " + result
	}
	return "error " + outputCase
}
