package binstall

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/fatih/color"
)

// ExecResult captures the outcome of a single external process invocation.
// It is produced by every command the pipeline runs and inspected immediately
// by the calling stage.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// TaskRunner holds the metadata for a specific command.
type TaskRunner struct {
	Executable string
	Arguments  []string

	cmd    *exec.Cmd
	stdout bytes.Buffer
	stderr bytes.Buffer
	quiet  bool
}

// Cmd builds a command runner for a specific Executable.
// Stdout and stderr are always captured into the returned [ExecResult]; unless
// silenced, they are also forwarded to the terminal.
func Cmd(ctx context.Context, executable string, opts ...RunnerOpt) (*TaskRunner, error) {
	r := TaskRunner{
		Executable: executable,
		cmd:        exec.CommandContext(ctx, executable),
	}

	for _, opt := range opts {
		if err := opt(&r); err != nil {
			return nil, err
		}
	}

	r.cmd.Args = append([]string{executable}, r.Arguments...)

	if r.quiet {
		r.cmd.Stdout = &r.stdout
		r.cmd.Stderr = &r.stderr
	} else {
		r.cmd.Stdout = io.MultiWriter(os.Stdout, &r.stdout)
		r.cmd.Stderr = io.MultiWriter(os.Stderr, &r.stderr)
	}

	return &r, nil
}

// Exec runs the command, waits for it to exit and returns the captured result.
// A non-zero exit is reported both through the result's ExitCode and through
// the returned error.
func (r *TaskRunner) Exec() (ExecResult, error) {
	var err error

	start := time.Now()
	defer func() {
		if r.quiet {
			return
		}
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			color.Red(" ✘ %s\n\n", elapsed)
			return
		}
		color.Green(" ✔ %s\n\n", elapsed)
	}()

	if !r.quiet {
		LogStep(fmt.Sprint(r.Executable, " ", strings.Join(r.Arguments, " ")))
	}

	err = r.cmd.Run()

	result := ExecResult{
		Stdout: r.stdout.String(),
		Stderr: r.stderr.String(),
	}

	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, fmt.Errorf("%s: %w", r.Executable, err)
	}

	return result, nil
}

// Run is a helper function to avoid repetition while gracefully handling errors.
func Run(ctx context.Context, program string, opts ...RunnerOpt) (ExecResult, error) {
	rnr, err := Cmd(ctx, program, opts...)
	if err != nil {
		return ExecResult{}, err
	}

	return rnr.Exec()
}

// LogStep prints a fancy-ish log line for a pipeline step.
func LogStep(text string) {
	fmt.Println(
		color.MagentaString(" ⌘"),
		color.New(color.Bold).Sprint(text),
	)
}

// LogDetail prints a dimmed continuation line under a step.
func LogDetail(text string) {
	fmt.Println(
		color.New(color.FgHiBlack).Sprint("   └"),
		color.New(color.FgHiBlack).Sprint(text),
	)
}

// RunnerOpt allows customizing the behavior of the command runner.
type RunnerOpt func(r *TaskRunner) error

// WithEnv sets up environment variables for the command.
func WithEnv(vars ...string) RunnerOpt {
	return func(r *TaskRunner) error {
		r.cmd.Env = os.Environ()
		for _, vrb := range vars {
			items := strings.SplitN(vrb, "=", 2)
			if len(items) != 2 {
				return fmt.Errorf("invalid env format; %s doesn't match NAME=value expectation", vrb)
			}
			r.cmd.Env = append(r.cmd.Env, vrb)
		}
		return nil
	}
}

// WithArgs command arguments.
func WithArgs(args ...string) RunnerOpt {
	return func(r *TaskRunner) error {
		r.Arguments = args
		return nil
	}
}

// WithDir sets the directory where the command should be run inside.
func WithDir(dir string) RunnerOpt {
	return func(r *TaskRunner) error {
		r.cmd.Dir = dir
		return nil
	}
}

// WithStdIn set up stdin reader.
func WithStdIn(read io.Reader) RunnerOpt {
	return func(r *TaskRunner) error {
		r.cmd.Stdin = read
		return nil
	}
}

// WithoutNoise silences terminal output for the command; the output is still
// captured in the [ExecResult] for the caller to inspect.
func WithoutNoise() RunnerOpt {
	return func(r *TaskRunner) error {
		r.quiet = true
		return nil
	}
}
