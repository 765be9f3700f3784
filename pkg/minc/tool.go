package minc

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// ToolError describes a toolkit invocation that could not run or exited
// unsuccessfully. Stderr carries whatever the program printed before dying,
// trimmed of trailing whitespace.
type ToolError struct {
	Command string
	Args    []string
	Stderr  string
	Err     error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Command, strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit status of the failed program, or -1 if it never
// ran.
func (e *ToolError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// output runs one toolkit program and returns its stdout trimmed of
// surrounding whitespace.
func output(name string, args ...string) (string, error) {
	log.Debug().Str("command", name).Strs("args", args).Msg("running")
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &ToolError{
			Command: name,
			Args:    args,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return strings.TrimSpace(stdout.String()), nil
}

// run runs one toolkit program for its side effects. With passthrough set the
// program inherits this process's stderr, so its progress output stays
// visible; otherwise stderr is captured into the returned error.
func run(passthrough bool, name string, args ...string) error {
	log.Debug().Str("command", name).Strs("args", args).Msg("running")
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	if passthrough {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stderr = &stderr
	}
	if err := cmd.Run(); err != nil {
		return &ToolError{
			Command: name,
			Args:    args,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return nil
}
