package utils

import (
	"bytes"
	"context"
	"os/exec"
)

// Exec runs a command and returns its stdout. On failure the returned
// string holds stderr so callers can surface the tool's diagnostics.
func Exec(command ...string) (string, error) {
	return ExecContext(context.Background(), command...)
}

// ExecContext is Exec with cancellation.
func ExecContext(ctx context.Context, command ...string) (string, error) {
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)

	var out bytes.Buffer
	var errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	if err := cmd.Run(); err != nil {
		return errOut.String(), err
	}

	return out.String(), nil
}
