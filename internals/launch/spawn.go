package launch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// SpawnOptions configure the started process
type SpawnOptions struct {
	// Dir is the working directory
	Dir string
	// Env is appended to the environment of the current process
	Env []string
	// Detached starts the process in its own process group so it survives the launcher.
	// The output of detached processes is discarded
	Detached bool
}

// Process is a started game
type Process interface {
	Pid() int
	Stdout() io.Reader
	Stderr() io.Reader
	// Wait blocks until the process exited and returns its exit code.
	// The error is only set if waiting itself failed
	Wait() (int, error)
	Signal(sig os.Signal) error
}

// Spawner starts processes
type Spawner interface {
	Spawn(ctx context.Context, program string, args []string, opts SpawnOptions) (Process, error)
}

// ExecSpawner starts processes using os/exec
type ExecSpawner struct{}

// Spawn starts program. A canceled ctx kills the process unless it is detached
func (ExecSpawner) Spawn(ctx context.Context, program string, args []string, opts SpawnOptions) (Process, error) {
	var cmd *exec.Cmd
	if opts.Detached {
		cmd = exec.Command(program, args...)
		detach(cmd)
	} else {
		cmd = exec.CommandContext(ctx, program, args...)
	}

	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), opts.Env...)
	if opts.Dir != "" {
		// some things may rely on PWD
		cmd.Env = append(cmd.Env, "PWD="+opts.Dir)
	}

	if opts.Detached {
		// a detached process must not write into pipes nobody reads anymore
		if err := cmd.Start(); err != nil {
			return nil, err
		}
		return &execProcess{cmd: cmd, stdout: bytes.NewReader(nil), stderr: bytes.NewReader(nil)}, nil
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &execProcess{cmd: cmd, stdout: stdout, stderr: stderr}, nil
}

type execProcess struct {
	cmd    *exec.Cmd
	stdout io.Reader
	stderr io.Reader
}

func (p *execProcess) Pid() int          { return p.cmd.Process.Pid }
func (p *execProcess) Stdout() io.Reader { return p.stdout }
func (p *execProcess) Stderr() io.Reader { return p.stderr }

func (p *execProcess) Signal(sig os.Signal) error {
	return p.cmd.Process.Signal(sig)
}

// Wait has to be called after stdout and stderr are read completely
func (p *execProcess) Wait() (int, error) {
	err := p.cmd.Wait()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return -1, err
	}
	return p.cmd.ProcessState.ExitCode(), nil
}

// Launch starts the version described by opts in opts.GameDir
func Launch(ctx context.Context, opts *Options, spawner Spawner, detached bool) (Process, error) {
	program, args, err := Command(opts)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.GameDir, os.ModePerm); err != nil {
		return nil, err
	}
	return spawner.Spawn(ctx, program, args, SpawnOptions{
		Dir:      opts.GameDir,
		Env:      opts.Env,
		Detached: detached,
	})
}
