package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags
var version = "dev"

// Exit codes besides 0 and the listing command's own status.
const (
	exitFailure     = 1
	exitInterrupted = 130
	exitIOError     = 141
)

func main() {
	// Writes to a closed pipe should fail with EPIPE rather than kill the
	// process, so the exit status can be chosen below.
	signal.Notify(make(chan os.Signal, 1), syscall.SIGPIPE)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCommand().ExecuteContext(ctx)
	stop()

	code := exitCode(err)
	if err != nil && code != exitInterrupted {
		fmt.Fprintf(os.Stderr, "jtop: %v\n", err)
	}
	os.Exit(code)
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jtop",
		Short: "top for Java threads",
		Long: `jtop lists the busiest threads of running Java processes, as reported by
top, and labels each one with the thread name jstack reports for it.

Without --batch it takes over the terminal and refreshes every --delay
seconds until q is pressed.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	addFlags(cmd.Flags())
	return cmd
}

// run wires the components for cfg and drives one controller run.
func run(ctx context.Context, cfg *Config) error {
	logger := newLogger(cfg)
	runner := execRunner{}

	c := &Controller{
		Lister: &ProcessLister{
			Runner: runner,
			Tgids:  procStatusResolver{},
			TopCmd: cfg.TopCmd,
			Target: cfg.Comm,
			Log:    logger,
		},
		Names: &JstackResolver{
			Runner:    runner,
			JstackCmd: cfg.JstackCmd,
			Log:       logger,
		},
		Out:         os.Stdout,
		Batch:       cfg.Batch,
		Delay:       cfg.DelayDuration(),
		Log:         logger,
		OpenDisplay: openDisplay,
		Now:         time.Now,
	}

	err := c.Run(ctx)
	// main reports the error on stderr; only a log file needs its own copy.
	if err != nil && !errors.Is(err, ErrInterrupted) && cfg.LogFile != "" {
		logger.Error().Err(err).Msg("jtop failed")
	}
	return err
}

// exitCode maps the outcome of a run to the process exit status.
func exitCode(err error) int {
	var cmdErr *CommandExecutionError
	var outErr *OutputError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInterrupted), errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.As(err, &outErr), errors.Is(err, syscall.EPIPE):
		return exitIOError
	case errors.As(err, &cmdErr) && cmdErr.ExitCode > 0:
		return cmdErr.ExitCode
	default:
		return exitFailure
	}
}
