package evaltest

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/goplus/minirt/toolchain"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompiler writes an executable script standing in for the course
// compiler and returns the directory holding it.
func fakeCompiler(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts need a unix host")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "compile"), []byte("#!/bin/sh\n"+script), 0755))
	return dir
}

// writeProg writes a test program outside the compiler's directory and
// returns its path relative to the current directory.
func writeProg(t *testing.T, name, src string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(file, []byte(src), 0644))
	cwd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(cwd, file)
	require.NoError(t, err)
	return rel
}

// adds the two integers on stdin in -eval mode
const adder = `[ -f "$1" ] || { echo "cannot open $1" >&2; exit 1; }
case "$4" in
-eval)
	read a; read b
	if [ "$3" = "ru" ]; then echo $((a + b + 1)); else echo $((a + b)); fi ;;
*)
	echo "unsupported" >&2; exit 1 ;;
esac
`

func TestRunEval(t *testing.T) {
	dir := fakeCompiler(t, adder)
	r := NewRunner(&Config{Toolchain: &toolchain.Config{BaseDir: dir, Timeout: 5 * time.Second}})
	defer r.Close()

	ctx := context.Background()
	prog := writeProg(t, "test1.src", "; OUTPUT: 0\n")
	tc := Case{Input: "3\n4\n", Output: "7"}
	require.NoError(t, r.RunEval(ctx, prog, "sh", tc))

	err := r.RunEval(ctx, prog, "ru", tc)
	require.Error(t, err)
	assert.Equal(t, "invalid output; expected [7] but got [8]", err.(*Failure).Msg)
}

func TestRunAsmCompilerStderr(t *testing.T) {
	dir := fakeCompiler(t, adder)
	r := NewRunner(&Config{Toolchain: &toolchain.Config{BaseDir: dir, Runtime: "libminirt.a"}})
	defer r.Close()

	prog := writeProg(t, "test1.src", "; OUTPUT: 0\n")
	err := r.RunAsm(context.Background(), prog, "rcx", Case{Input: "1\n2\n", Output: "3"})
	require.Error(t, err)
	assert.Equal(t, "non-empty stderr data: unsupported", err.(*Failure).Msg)

	err = r.RunAsm(context.Background(), prog, "", Case{Output: "three"})
	require.Error(t, err)
	assert.Equal(t, `invalid expected output "three"`, err.(*Failure).Msg)
}

func TestRunFile(t *testing.T) {
	dir := fakeCompiler(t, adder)
	prog := writeProg(t, "test12.src", "; INPUT: 1 2; 10 20\n; OUTPUT: 3; 30\n(+ (read) (read))\n")

	r := NewRunner(&Config{
		Passes:    []string{"sh", "ru"},
		Regs:      []string{""},
		Toolchain: &toolchain.Config{BaseDir: dir},
	})
	defer r.Close()

	rep, err := r.RunFile(context.Background(), prog)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Cases)
	assert.Equal(t, 6, rep.Runs)
	require.Len(t, rep.Failures, 4)
	assert.Equal(t, &Failure{
		Prog: prog, Mode: ModeEval, Arg: "ru", Case: 1,
		Msg: "invalid output; expected [3] but got [4]",
	}, rep.Failures[0])
	assert.Equal(t, ModeAsm, rep.Failures[1].Mode)
	assert.Equal(t, prog+": asm regs all case 1: non-empty stderr data: unsupported", rep.Failures[1].Error())
	assert.False(t, rep.OK())
}

func TestRunFileInBaseDirOnly(t *testing.T) {
	dir := fakeCompiler(t, adder)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test13.src"), []byte("; OUTPUT: 1\n"), 0644))

	r := NewRunner(&Config{Passes: []string{"sh"}, Toolchain: &toolchain.Config{BaseDir: dir}})
	defer r.Close()

	_, err := r.RunFile(context.Background(), "test13.src")
	assert.True(t, os.IsNotExist(err), "programs are resolved against the current directory: %v", err)
}

func TestRunFileMissingMetadata(t *testing.T) {
	r := NewRunner(nil)
	_, err := r.RunFile(context.Background(), filepath.Join(t.TempDir(), "none.src"))
	assert.True(t, os.IsNotExist(err))
}

func TestReportGolden(t *testing.T) {
	rep := &Report{
		Prog:  "tests/test4.src",
		Cases: 2,
		Runs:  34,
		Failures: []*Failure{
			{Prog: "tests/test4.src", Mode: ModeEval, Arg: "tc2", Case: 1, Msg: "invalid output; expected [7] but got [8]"},
			{Prog: "tests/test4.src", Mode: ModeAsm, Arg: "rcx,rbx", Case: 2, Msg: "non-empty stdout data from running executable: 8"},
			{Prog: "tests/test4.src", Mode: ModeAsm, Arg: "", Case: 2, Msg: "invalid output; expected [8] but got [0]"},
		},
	}
	var buf bytes.Buffer
	_, err := rep.WriteTo(&buf)
	require.NoError(t, err)

	ok := &Report{Prog: "tests/test5.src", Cases: 1, Runs: 17}
	_, err = ok.WriteTo(&buf)
	require.NoError(t, err)

	g := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "report", buf.Bytes())
}
