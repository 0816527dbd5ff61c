package system

import (
	"context"
	"os"
	"os/exec"
	"syscall"
)

// osExecutor implements CommandExecutor using real OS operations.
type osExecutor struct{}

func (e *osExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (e *osExecutor) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (e *osExecutor) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	// Detach from our session so closing the picker does not kill it.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

func (e *osExecutor) Exec(name string, args ...string) error {
	binary, err := exec.LookPath(name)
	if err != nil {
		return err
	}

	// Build argv with program name as first element
	argv := append([]string{name}, args...)

	return syscall.Exec(binary, argv, os.Environ())
}

func (e *osExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
