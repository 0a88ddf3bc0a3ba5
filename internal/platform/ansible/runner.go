// Package ansible runs the OpenVPN playbook against a provisioned host by
// invoking the ansible-playbook binary.
package ansible

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
)

// DefaultBinary is looked up in PATH.
const DefaultBinary = "ansible-playbook"

// Target describes one playbook run.
type Target struct {
	// Address is the host to configure.
	Address string
	// ClientIP is passed as client_ip.
	ClientIP string
	// Email is passed as client_email when set.
	Email string
	// PrivateKeyPath is used for the root login.
	PrivateKeyPath string
	// Playbook is the playbook file.
	Playbook string
	// ExtraVars are appended as additional -e key=value pairs.
	ExtraVars map[string]string
}

// RunError reports a playbook that ran but did not succeed.
type RunError struct {
	ExitCode int
	Err      error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("ansible-playbook exited with status %d", e.ExitCode)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Runner invokes ansible-playbook.
type Runner struct {
	binary string
	stdout io.Writer
	stderr io.Writer
	env    []string
}

// Option configures a Runner.
type Option func(*Runner)

// WithBinary overrides the ansible-playbook executable.
func WithBinary(path string) Option {
	return func(r *Runner) {
		r.binary = path
	}
}

// WithOutput sends the playbook output to stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithEnv adds KEY=VALUE entries to the child environment.
func WithEnv(env ...string) Option {
	return func(r *Runner) {
		r.env = append(r.env, env...)
	}
}

// NewRunner returns a Runner that writes playbook output to the process
// stdout and stderr.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		binary: DefaultBinary,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Args returns the ansible-playbook arguments for t. The trailing comma in
// the inventory makes ansible treat it as a host list rather than a file.
func (r *Runner) Args(t Target) []string {
	args := []string{
		"-i", t.Address + ",",
		"-u", "root",
		"--private-key", t.PrivateKeyPath,
		"-e", "client_ip=" + t.ClientIP,
	}
	if t.Email != "" {
		args = append(args, "-e", "client_email="+t.Email)
	}

	keys := make([]string, 0, len(t.ExtraVars))
	for k := range t.ExtraVars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-e", k+"="+t.ExtraVars[k])
	}

	return append(args, t.Playbook)
}

// Env returns the child environment: the parent's plus host key checking
// disabled for this run only.
func (r *Runner) Env() []string {
	env := append(os.Environ(), "ANSIBLE_HOST_KEY_CHECKING=False")
	return append(env, r.env...)
}

// RunPlaybook runs the playbook and waits for it to finish.
func (r *Runner) RunPlaybook(ctx context.Context, t Target) error {
	if t.Address == "" {
		return errors.New("playbook target address is empty")
	}
	if _, err := os.Stat(t.Playbook); err != nil {
		return fmt.Errorf("playbook not found: %w", err)
	}

	// #nosec G204 - binary is configured by the operator, args are not shell-interpreted
	cmd := exec.CommandContext(ctx, r.binary, r.Args(t)...)
	cmd.Env = r.Env()
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &RunError{ExitCode: exitErr.ExitCode(), Err: err}
		}
		return fmt.Errorf("failed to run %s: %w", r.binary, err)
	}
	return nil
}
