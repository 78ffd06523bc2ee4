package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/signed64/internal/store"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	*RootOptions
	Show  string // print one session's records
	Op    string // search: only this op
	Case  string // search: only this outcome case
	Limit int    // search: at most this many records
}

// SessionSummary is one line of the session listing.
type SessionSummary struct {
	Session     string         `json:"session"`
	Evaluations int            `json:"evaluations"`
	Errors      int            `json:"errors"`
	Pending     int            `json:"pending"`
	FirstSeq    int64          `json:"first_seq"`
	LastSeq     int64          `json:"last_seq"`
	Cases       map[string]int `json:"cases"`
	Ops         map[string]int `json:"ops"`
}

// LogEntry is one evaluation and its outcome.
type LogEntry struct {
	Seq          int64    `json:"seq"`
	EvaluationID string   `json:"evaluation_id"`
	Session      string   `json:"session"`
	Op           string   `json:"op"`
	Operands     []string `json:"operands"`
	Case         string   `json:"case,omitempty"`
	Result       string   `json:"result,omitempty"`
}

// SessionLog is the detailed view of one session.
type SessionLog struct {
	Summary SessionSummary `json:"summary"`
	Entries []LogEntry     `json:"entries"`
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect the evaluation log",
		Long: `List the sessions in the evaluation log, or show one session's records.

Sessions are listed in the order they started. With --show, every
evaluation of that session is printed in seq order with its outcome.

--op, --case and --limit search records across all sessions (or within
the --show session).

Examples:
  signed64 log --db ./signed64.db
  signed64 log --db ./signed64.db --show 0190a1b2-...
  signed64 log --db ./signed64.db --case ADD_OVERFLOW --limit 20
  signed64 log --db ./signed64.db --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Show, "show", "", "show the records of this session")
	cmd.Flags().StringVar(&opts.Op, "op", "", "search records with this op")
	cmd.Flags().StringVar(&opts.Case, "case", "", "search records with this outcome case (OK or an error code)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "search at most this many records")

	return cmd
}

func runLog(ctx context.Context, opts *LogOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openExisting(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	out := newFormatter(cmd, opts.RootOptions)
	if opts.Op != "" || opts.Case != "" || opts.Limit != 0 {
		return searchLog(ctx, st, opts, out)
	}
	if opts.Show != "" {
		return showSession(ctx, st, opts.Show, out)
	}

	sessions, err := st.ListSessions(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list sessions", err)
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		stats, err := st.GetSessionStats(ctx, session)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read session %s", session), err)
		}
		summaries = append(summaries, summarize(stats))
	}

	if out.JSON() {
		return out.Success(summaries)
	}

	w := out.Writer
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No sessions found in database.")
		return nil
	}
	for _, s := range summaries {
		fmt.Fprintf(w, "%s  seq %d-%d  %d evaluations, %d errors",
			s.Session, s.FirstSeq, s.LastSeq, s.Evaluations, s.Errors)
		if s.Pending > 0 {
			fmt.Fprintf(w, ", %d pending", s.Pending)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func showSession(ctx context.Context, st *store.Store, session string, out *OutputFormatter) error {
	records, err := st.ReplaySession(ctx, session)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}
	if len(records) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", session))
	}

	stats, err := st.GetSessionStats(ctx, session)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session stats", err)
	}

	sl := SessionLog{Summary: summarize(stats), Entries: entries(records)}

	if out.JSON() {
		return out.Respond(CLIResponse{Status: "ok", Data: sl, Session: session})
	}

	w := out.Writer
	fmt.Fprintf(w, "Session: %s\n\n", session)
	printEntries(out, sl.Entries)

	fmt.Fprintf(w, "\n%d evaluations", sl.Summary.Evaluations)
	for _, c := range stats.CaseNames() {
		fmt.Fprintf(w, ", %s %d", c, stats.Cases[c])
	}
	fmt.Fprintln(w)
	return nil
}

func summarize(stats store.SessionStats) SessionSummary {
	return SessionSummary{
		Session:     stats.Session,
		Evaluations: stats.Evaluations,
		Errors:      stats.Errors(),
		Pending:     stats.Pending,
		FirstSeq:    stats.FirstSeq,
		LastSeq:     stats.LastSeq,
		Cases:       stats.Cases,
		Ops:         stats.Ops,
	}
}

// searchLog prints the records matching the search flags.
func searchLog(ctx context.Context, st *store.Store, opts *LogOptions, out *OutputFormatter) error {
	var preds []store.Predicate
	if opts.Show != "" {
		preds = append(preds, store.Equals{Field: store.FieldSession, Value: opts.Show})
	}
	if opts.Op != "" {
		preds = append(preds, store.Equals{Field: store.FieldOp, Value: opts.Op})
	}
	if opts.Case != "" {
		preds = append(preds, store.Equals{Field: store.FieldCase, Value: opts.Case})
	}

	records, err := st.FindRecords(ctx, store.Query{Filter: store.And{Predicates: preds}, Limit: opts.Limit})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to search log", err)
	}

	found := entries(records)
	if out.JSON() {
		return out.Success(found)
	}
	if len(found) == 0 {
		fmt.Fprintln(out.Writer, "No matching records.")
		return nil
	}
	printEntries(out, found)
	return nil
}

func entries(records []store.Record) []LogEntry {
	list := make([]LogEntry, 0, len(records))
	for _, rec := range records {
		e := LogEntry{
			Seq:          rec.Evaluation.Seq,
			EvaluationID: rec.Evaluation.ID,
			Session:      rec.Evaluation.Session,
			Op:           rec.Evaluation.Op,
			Operands:     rec.Evaluation.Operands,
		}
		if rec.Outcome != nil {
			e.Case = rec.Outcome.Case
			e.Result = rec.Outcome.Result
		}
		list = append(list, e)
	}
	return list
}

func printEntries(out *OutputFormatter, list []LogEntry) {
	for _, e := range list {
		outcome := "pending"
		if e.Case != "" {
			outcome = describeOutcome(e.Case, e.Result)
		}
		fmt.Fprintf(out.Writer, "[%d] %s %s -> %s\n", e.Seq, e.Op, strings.Join(e.Operands, " "), outcome)
		out.VerboseLog("  session %s evaluation %s", e.Session, e.EvaluationID)
	}
}
