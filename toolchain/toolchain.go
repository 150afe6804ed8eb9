// Package toolchain drives the external tools that turn generated
// assembly into an executable linked against the minirt runtime.
package toolchain

import (
	"bytes"
	"context"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/goplus/minirt/internal/pathutil"
	"github.com/qiniu/x/errors"
)

const (
	DbgFlagExecCmd = 1 << iota
	DbgFlagAll     = DbgFlagExecCmd
)

var (
	debugExecCmd bool
)

func SetDebug(flags int) {
	debugExecCmd = (flags & DbgFlagExecCmd) != 0
}

// -----------------------------------------------------------------------------

const (
	DefaultTimeout = 5 * time.Second
)

type Config struct {
	Compiler string        // default: gcc, or clang when Arm64 is set
	Arm64    bool          // emit x86_64 code on an arm64 host (-arch x86_64)
	Flags    []string      // extra C compiler flags
	Runtime  string        // runtime archive passed to the linker
	BaseDir  string        // base of relative paths, should be absolute path
	Timeout  time.Duration // per command, default: DefaultTimeout
}

func (p *Config) compiler() string {
	if p.Compiler != "" {
		return p.Compiler
	}
	if p.Arm64 {
		return "clang"
	}
	return "gcc"
}

func (p *Config) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return DefaultTimeout
}

func (p *Config) baseDir() (string, error) {
	if p.BaseDir != "" {
		return p.BaseDir, nil
	}
	return os.Getwd()
}

func (p *Config) archFlags() []string {
	if p.Arm64 {
		return []string{"-arch", "x86_64"}
	}
	return nil
}

// -----------------------------------------------------------------------------

// CommandError reports an external command that failed or wrote to stderr
// when it should not have.
type CommandError struct {
	Cmd    []string
	Stderr []byte
	Err    error
}

func (p *CommandError) Error() string {
	cmd := strings.Join(p.Cmd, " ")
	if len(p.Stderr) > 0 {
		return cmd + ": " + strings.TrimRight(string(p.Stderr), "\n")
	}
	return cmd + ": " + p.Err.Error()
}

func (p *CommandError) Unwrap() error {
	return p.Err
}

var (
	ErrUnexpectedStderr = errors.New("non-empty stderr")
	ErrNoRuntime        = errors.New("runtime archive not set")
)

// Result is the outcome of running a command to completion.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

type command struct {
	name  string
	args  []string
	dir   string
	env   []string
	stdin string
}

func run(ctx context.Context, timeout time.Duration, c *command) (ret *Result, err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if debugExecCmd {
		log.Println("==> runCmd:", c.name, c.args)
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.name, c.args...)
	cmd.Dir = c.dir
	if c.env != nil {
		cmd.Env = append(os.Environ(), c.env...)
	}
	cmd.Stdin = strings.NewReader(c.stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err = cmd.Run()
	ret = &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		if e, ok := err.(*exec.ExitError); ok && ctx.Err() == nil {
			ret.ExitCode = e.ExitCode()
			return ret, nil
		}
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return ret, &CommandError{Cmd: c.argv(), Stderr: ret.Stderr, Err: err}
	}
	return ret, nil
}

// runTool runs a build tool, which must succeed silently on stderr.
func runTool(ctx context.Context, timeout time.Duration, c *command) error {
	ret, err := run(ctx, timeout, c)
	if err != nil {
		return err
	}
	if ret.ExitCode != 0 {
		err = errors.New("exit status " + strconv.Itoa(ret.ExitCode))
		return &CommandError{Cmd: c.argv(), Stderr: ret.Stderr, Err: err}
	}
	if len(ret.Stderr) > 0 {
		return &CommandError{Cmd: c.argv(), Stderr: ret.Stderr, Err: ErrUnexpectedStderr}
	}
	return nil
}

func (c *command) argv() []string {
	return append([]string{c.name}, c.args...)
}

// -----------------------------------------------------------------------------

func removeFile(conf *Config, file string) {
	if base, err := conf.baseDir(); err == nil {
		os.Remove(pathutil.Canonical(base, file))
	}
}
