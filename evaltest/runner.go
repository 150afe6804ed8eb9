package evaltest

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goplus/minirt/internal/pathutil"
	"github.com/goplus/minirt/toolchain"
	"github.com/qiniu/x/errors"
)

const (
	DbgFlagRun = 1 << iota
	DbgFlagAll = DbgFlagRun
)

var (
	debugRun bool
)

func SetDebug(flags int) {
	debugRun = (flags & DbgFlagRun) != 0
}

// -----------------------------------------------------------------------------

var (
	DefaultPasses = []string{"lfun", "tc1", "sh", "un", "rf", "lf", "tc1b", "ea", "ug", "rc", "ec", "tc2", "ru"}
	DefaultRegs   = []string{"", "rcx", "rbx", "rcx,rbx"}
)

type Config struct {
	Compile string   // course compiler, default: ./compile
	Passes  []string // passes checked through the compiler's evaluator
	Regs    []string // register options for the assembly runs, "" for all registers
	NoEval  bool     // skip the evaluator runs
	NoAsm   bool     // skip the assembly runs

	// Toolchain assembles and links the assembly runs. Its Runtime must
	// be set unless NoAsm is.
	Toolchain *toolchain.Config
}

type Runner struct {
	conf *Config
	tc   *toolchain.Config
	work string
}

func NewRunner(conf *Config) *Runner {
	if conf == nil {
		conf = new(Config)
	}
	tc := conf.Toolchain
	if tc == nil {
		tc = new(toolchain.Config)
	}
	return &Runner{conf: conf, tc: tc}
}

// Close removes the scratch directory of the assembly runs.
func (p *Runner) Close() error {
	if p.work == "" {
		return nil
	}
	return os.RemoveAll(p.work)
}

func (p *Runner) compile() string {
	if p.conf.Compile != "" {
		return p.conf.Compile
	}
	return "./compile"
}

// RunEval runs prog through the compiler's evaluator up to pass. The
// evaluator must print the expected output and exit with status 0.
// A relative prog is resolved against the current directory.
func (p *Runner) RunEval(ctx context.Context, prog, pass string, tc Case) error {
	prog, err := absProg(prog)
	if err != nil {
		return err
	}
	if debugRun {
		log.Println("==> eval:", prog, "pass", pass)
	}
	ret, err := toolchain.Exec(ctx, p.compile(), []string{prog, "-pass", pass, "-eval"}, tc.Input, p.tc)
	if err != nil {
		return err
	}
	if len(ret.Stderr) > 0 {
		return failf("non-empty stderr data: %s", bytes.TrimSpace(ret.Stderr))
	}
	got, want := strings.TrimSpace(string(ret.Stdout)), strings.TrimSpace(tc.Output)
	if got != want {
		return failf("invalid output; expected [%s] but got [%s]", want, got)
	}
	if ret.ExitCode != 0 {
		return failf("nonzero return code %d", ret.ExitCode)
	}
	return nil
}

// RunAsm compiles prog to assembly using the register option regs, links
// it against the runtime and runs it. The program must stay silent and
// exit with the expected output as its status. A relative prog is
// resolved against the current directory.
func (p *Runner) RunAsm(ctx context.Context, prog, regs string, tc Case) (err error) {
	if prog, err = absProg(prog); err != nil {
		return
	}
	if debugRun {
		log.Println("==> asm:", prog, "regs", strconv.Quote(regs))
	}
	want, err := strconv.Atoi(strings.TrimSpace(tc.Output))
	if err != nil {
		return failf("invalid expected output %q", tc.Output)
	}
	args := []string{prog}
	if regs != "" {
		args = append(args, "-regs", regs)
	}
	ret, err := toolchain.Exec(ctx, p.compile(), args, tc.Input, p.tc)
	if err != nil {
		return
	}
	if len(ret.Stderr) > 0 {
		return failf("non-empty stderr data: %s", bytes.TrimSpace(ret.Stderr))
	}
	if ret.ExitCode != 0 {
		return failf("compilation failed with status %d", ret.ExitCode)
	}

	work, err := p.workDir()
	if err != nil {
		return
	}
	exe := filepath.Join(work, pathutil.Exe(pathutil.TrimExt(filepath.Base(prog))))
	asm := pathutil.TrimExt(exe) + ".s"
	if err = os.WriteFile(asm, ret.Stdout, 0666); err != nil {
		return errors.NewWith(err, `os.WriteFile(asm, ret.Stdout, 0666)`, -2, "os.WriteFile", asm)
	}
	defer os.Remove(asm)
	if err = toolchain.BuildExe(ctx, asm, exe, p.tc); err != nil {
		return
	}
	defer os.Remove(exe)

	ret, err = toolchain.Exec(ctx, exe, nil, tc.Input, p.tc)
	if err != nil {
		return
	}
	if len(ret.Stderr) > 0 {
		return failf("non-empty stderr data from running executable: %s", bytes.TrimSpace(ret.Stderr))
	}
	if len(ret.Stdout) > 0 {
		return failf("non-empty stdout data from running executable: %s", bytes.TrimSpace(ret.Stdout))
	}
	if ret.ExitCode != want {
		return failf("invalid output; expected [%d] but got [%d]", want, ret.ExitCode)
	}
	return nil
}

// RunFile runs every case of prog through every configured pass and
// register option. Mismatches are collected in the report; err is only
// set when the program's metadata cannot be read or ctx is done.
func (p *Runner) RunFile(ctx context.Context, prog string) (rep *Report, err error) {
	file, err := absProg(prog)
	if err != nil {
		return
	}
	cases, err := LoadMetadata(file)
	if err != nil {
		return
	}
	rep = &Report{Prog: prog, Cases: len(cases)}
	check := func(mode, arg string, i int, e error) error {
		rep.Runs++
		if e == nil {
			return nil
		}
		f, ok := e.(*Failure)
		if !ok {
			if ctx.Err() != nil {
				return e
			}
			f = &Failure{Msg: e.Error()}
		}
		f.Prog, f.Mode, f.Arg, f.Case = prog, mode, arg, i+1
		rep.Failures = append(rep.Failures, f)
		return nil
	}
	for i, tc := range cases {
		if !p.conf.NoEval {
			for _, pass := range p.conf.Passes {
				if err = check(ModeEval, pass, i, p.RunEval(ctx, file, pass, tc)); err != nil {
					return
				}
			}
		}
		if !p.conf.NoAsm {
			for _, regs := range p.conf.Regs {
				if err = check(ModeAsm, regs, i, p.RunAsm(ctx, file, regs, tc)); err != nil {
					return
				}
			}
		}
	}
	return
}

// absProg makes prog independent of Toolchain.BaseDir, the directory the
// compiler runs in.
func absProg(prog string) (string, error) {
	abs, err := filepath.Abs(prog)
	if err != nil {
		return "", errors.NewWith(err, `filepath.Abs(prog)`, -2, "filepath.Abs", prog)
	}
	return abs, nil
}

func (p *Runner) workDir() (string, error) {
	if p.work == "" {
		dir, err := os.MkdirTemp("", "minirt-eval-")
		if err != nil {
			return "", errors.NewWith(err, `os.MkdirTemp("", "minirt-eval-")`, -2, "os.MkdirTemp", "", "minirt-eval-")
		}
		p.work = dir
	}
	return p.work, nil
}

// -----------------------------------------------------------------------------
