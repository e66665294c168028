package exec

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// StartError reports a process that could not be started at all.
type StartError struct {
	Name string
	Args []string
	Err  error
}

func (e *StartError) Error() string {
	cmd := strings.TrimSpace(e.Name + " " + strings.Join(e.Args, " "))
	return fmt.Sprintf("unable to start `%s`: %v", cmd, e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

// Output runs name with args and returns whatever the process wrote
// to stdout.
//
// Stderr is discarded and the exit status is not checked: a process that
// exits non-zero still returns its stdout and a nil error.
// Only a failure to start the process is reported, as a *StartError.
func Output(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	// If Env is nil, the new process uses the current process's environment.
	cmd.Env = os.Environ()

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = io.Discard

	if err := cmd.Start(); err != nil {
		return nil, &StartError{Name: name, Args: args, Err: err}
	}

	// exit status and wait errors are ignored, stdout is all we need
	_ = cmd.Wait()

	return stdout.Bytes(), nil
}
