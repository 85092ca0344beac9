package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

// CommandRunner runs an external command and returns its standard output.
// A non-zero exit is reported as *CommandExecutionError alongside whatever
// output the command produced.
type CommandRunner interface {
	Output(ctx context.Context, name string, arg ...string) ([]byte, error)
}

// execRunner runs commands with os/exec under the C locale so numeric and
// column formatting does not depend on the user's environment.
type execRunner struct{}

func (execRunner) Output(ctx context.Context, name string, arg ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, arg...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	cmdErr := &CommandExecutionError{
		Command:  append([]string{name}, arg...),
		ExitCode: -1,
		Stderr:   stderr.String(),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}
	return stdout.Bytes(), cmdErr
}
