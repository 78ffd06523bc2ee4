package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Config   string // optional TOML file with defaults
	Database string // SQLite evaluation log
	Session  string // pinned session id for eval
	Oracle   bool   // cross-check eval against decimal arithmetic

	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the signed64 CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "signed64",
		Short: "signed64 - sign-magnitude 64-bit integer arithmetic",
		Long: `Evaluate and audit checked sign-magnitude 64-bit arithmetic.

Values carry a sign bit and a 63-bit magnitude, so the range is symmetric:
[-9223372036854775807, 9223372036854775807]. Every operation either
returns an in-range value or fails with an error code.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Config != "" {
				cfg, err := LoadConfig(opts.Config)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to load config", err)
				}
				cfg.Apply(opts, cmd.Flags().Changed)
			}

			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			opts.Logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "TOML config file with defaults")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite evaluation log")
	cmd.PersistentFlags().StringVar(&opts.Session, "session", "", "session id for recorded evaluations (default: new UUIDv7)")
	cmd.PersistentFlags().BoolVar(&opts.Oracle, "oracle", true, "cross-check results against decimal arithmetic")

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewOpsCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewLogCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// newLogger logs text to w: Debug and up when verbose, Warn and up otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// logger returns the configured logger, or a discard logger when the
// command runs without the root's pre-run hook (as in unit tests).
func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}
