package main

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInterrupted is returned when the run is aborted by SIGINT or Ctrl-C.
var ErrInterrupted = errors.New("interrupted")

// CommandExecutionError reports an external command that could not be
// started or exited with a non-zero status.
type CommandExecutionError struct {
	Command  []string
	ExitCode int // -1 if the command never ran to completion
	Stderr   string
	Err      error
}

func (e *CommandExecutionError) Error() string {
	msg := fmt.Sprintf("command %q failed", strings.Join(e.Command, " "))
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandExecutionError) Unwrap() error { return e.Err }

// HeaderNotFoundError is returned when a column stream ends before a line
// containing every expected header token was seen.
type HeaderNotFoundError struct {
	Expected []string
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("header with columns %s not found", strings.Join(e.Expected, ", "))
}

// MalformedRowError reports a data line that cannot be mapped onto the
// header layout or whose fields do not parse.
type MalformedRowError struct {
	Line   int // 0 when the position is unknown
	Text   string
	Reason string
}

func (e *MalformedRowError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed row at line %d (%s): %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("malformed row (%s): %q", e.Reason, e.Text)
}

// PidResolutionError is returned when a thread's owning process id cannot
// be read from its status file.
type PidResolutionError struct {
	TID int
	Err error
}

func (e *PidResolutionError) Error() string {
	return fmt.Sprintf("resolve pid of thread %d: %v", e.TID, e.Err)
}

func (e *PidResolutionError) Unwrap() error { return e.Err }

// TerminalTooSmallError is returned when the terminal leaves no room for
// the thread name column.
type TerminalTooSmallError struct {
	Width int
	Need  int
}

func (e *TerminalTooSmallError) Error() string {
	return fmt.Sprintf("terminal too small: width %d, need more than %d columns", e.Width, e.Need)
}

// OutputError wraps a failed write to the output stream.
type OutputError struct {
	Err error
}

func (e *OutputError) Error() string { return "write output: " + e.Err.Error() }

func (e *OutputError) Unwrap() error { return e.Err }
