package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/signed64/internal/engine"
	"github.com/roach88/signed64/internal/ir"
	"github.com/roach88/signed64/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Only string // replay a single session
}

// ReplayMismatch is a logged evaluation whose outcome cannot be reproduced.
type ReplayMismatch struct {
	Seq      int64    `json:"seq"`
	Op       string   `json:"op"`
	Operands []string `json:"operands"`
	Recorded string   `json:"recorded"`
	Replayed string   `json:"replayed"`
}

// ReplaySessionResult holds the replay result for a single session.
type ReplaySessionResult struct {
	Session     string           `json:"session"`
	Evaluations int              `json:"evaluations"`
	Mismatches  []ReplayMismatch `json:"mismatches,omitempty"`
}

// Consistent reports whether every evaluation reproduced.
func (r ReplaySessionResult) Consistent() bool {
	return len(r.Mismatches) == 0
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Sessions      []ReplaySessionResult `json:"sessions"`
	TotalSessions int                   `json:"total_sessions"`
	Mismatches    int                   `json:"mismatches"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-evaluate the log and verify every outcome",
		Long: `Re-evaluate every logged evaluation and compare with its recorded outcome.

Each evaluation is run again through the engine's pure path (and the
oracle, unless --oracle=false). A mismatch is reported when the replayed
outcome differs from the recorded one, when the record's content id does
not match its fields, or when an evaluation has no outcome.

Exit codes:
  0 - Every outcome reproduced
  1 - One or more mismatches
  2 - Command error (database not found, etc.)

Examples:
  signed64 replay --db ./signed64.db
  signed64 replay --db ./signed64.db --only 0190a1b2-...
  signed64 replay --db ./signed64.db --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Only, "only", "", "replay this session only")

	return cmd
}

// openExisting opens the log at path, refusing to create a new one.
func openExisting(path string) (*store.Store, error) {
	if path == "" {
		return nil, NewExitError(ExitCommandError, "database required (--db or config database)")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, WrapExitError(ExitCommandError, "database not found", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func runReplay(ctx context.Context, opts *ReplayOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openExisting(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	var sessions []string
	if opts.Only != "" {
		sessions = []string{opts.Only}
	} else {
		sessions, err = st.ListSessions(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
	}

	result := ReplayResult{
		Sessions:      make([]ReplaySessionResult, 0, len(sessions)),
		TotalSessions: len(sessions),
	}
	for _, session := range sessions {
		sr, err := replaySession(ctx, st, session, opts.Oracle)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay session %s", session), err)
		}
		for _, m := range sr.Mismatches {
			opts.logger().Warn("replay mismatch",
				"session", session,
				"seq", m.Seq,
				"op", m.Op,
				"recorded", m.Recorded,
				"replayed", m.Replayed,
			)
		}
		result.Mismatches += len(sr.Mismatches)
		result.Sessions = append(result.Sessions, sr)
	}

	out := newFormatter(cmd, opts.RootOptions)
	if out.JSON() {
		resp := CLIResponse{Status: "ok", Data: result}
		if result.Mismatches > 0 {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    "REPLAY_MISMATCH",
				Message: fmt.Sprintf("%d outcome(s) did not reproduce", result.Mismatches),
			}
		}
		if err := out.Respond(resp); err != nil {
			return err
		}
	} else {
		outputReplayText(out, result)
	}

	if result.Mismatches > 0 {
		return NewExitError(ExitFailure, "replay verification failed")
	}
	return nil
}

// replaySession re-applies each record in seq order.
func replaySession(ctx context.Context, st *store.Store, session string, oracle bool) (ReplaySessionResult, error) {
	records, err := st.ReplaySession(ctx, session)
	if err != nil {
		return ReplaySessionResult{}, err
	}

	sr := ReplaySessionResult{Session: session, Evaluations: len(records)}
	for _, rec := range records {
		if m, ok := verifyRecord(rec, oracle); !ok {
			sr.Mismatches = append(sr.Mismatches, m)
		}
	}
	return sr, nil
}

func verifyRecord(rec store.Record, oracle bool) (ReplayMismatch, bool) {
	eval := rec.Evaluation
	m := ReplayMismatch{Seq: eval.Seq, Op: eval.Op, Operands: eval.Operands}

	if rec.Outcome == nil {
		m.Recorded = "no outcome"
		m.Replayed = "-"
		return m, false
	}
	out := *rec.Outcome
	m.Recorded = describeOutcome(out.Case, out.Result)

	if id, err := ir.EvaluationID(eval.Session, eval.Op, eval.Operands, eval.Seq); err != nil || id != eval.ID {
		m.Replayed = "evaluation id mismatch"
		return m, false
	}
	if id, err := ir.OutcomeID(out.EvaluationID, out.Case, out.Result, out.Seq); err != nil || id != out.ID {
		m.Replayed = "outcome id mismatch"
		return m, false
	}

	res, err := engine.Apply(eval.Op, eval.Operands)
	if err != nil {
		m.Replayed = err.Error()
		return m, false
	}
	if oracle {
		if err := (engine.Oracle{}).Verify(engine.Op(eval.Op), eval.Operands, res); err != nil {
			m.Replayed = err.Error()
			return m, false
		}
	}

	m.Replayed = describeOutcome(res.Case, res.Value)
	return m, res.Case == out.Case && res.Value == out.Result
}

func outputReplayText(out *OutputFormatter, result ReplayResult) {
	w := out.Writer

	if result.TotalSessions == 0 {
		fmt.Fprintln(w, "No sessions found in database.")
		return
	}

	fmt.Fprintf(w, "Replay Summary: %d session(s)\n\n", result.TotalSessions)
	for _, s := range result.Sessions {
		status := "✓"
		if !s.Consistent() {
			status = "✗"
		}
		fmt.Fprintf(w, "%s Session: %s (%d evaluations)\n", status, s.Session, s.Evaluations)
		for _, m := range s.Mismatches {
			fmt.Fprintf(w, "  [%d] %s %v: recorded %s, replayed %s\n", m.Seq, m.Op, m.Operands, m.Recorded, m.Replayed)
		}
	}
	fmt.Fprintln(w)

	if result.Mismatches == 0 {
		fmt.Fprintln(w, "✓ All outcomes reproduced")
		return
	}
	fmt.Fprintf(w, "✗ %d outcome(s) did not reproduce\n", result.Mismatches)
}
