package toolchain

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goplus/minirt/internal/pathutil"
	"github.com/qiniu/x/errors"
)

// Assemble compiles asmfile into the object file objfile.
func Assemble(ctx context.Context, asmfile, objfile string, conf *Config) (err error) {
	if conf == nil {
		conf = new(Config)
	}
	base, err := conf.baseDir()
	if err != nil {
		return
	}
	args := []string{"-c", pathutil.Canonical(base, asmfile), "-o", pathutil.Canonical(base, objfile)}
	args = append(args, conf.archFlags()...)
	args = append(args, conf.Flags...)
	return runTool(ctx, conf.timeout(), &command{name: conf.compiler(), args: args, dir: base})
}

// Link links objs with the runtime archive into the executable exe.
func Link(ctx context.Context, exe string, objs []string, conf *Config) (err error) {
	if conf == nil || conf.Runtime == "" {
		return ErrNoRuntime
	}
	base, err := conf.baseDir()
	if err != nil {
		return
	}
	args := make([]string, 0, len(objs)+8)
	for _, obj := range objs {
		args = append(args, pathutil.Canonical(base, obj))
	}
	args = append(args, pathutil.Canonical(base, conf.Runtime), "-o", pathutil.Canonical(base, exe))
	args = append(args, conf.archFlags()...)
	args = append(args, sysLibs()...)
	return runTool(ctx, conf.timeout(), &command{name: conf.compiler(), args: args, dir: base})
}

// Exec runs exe with args and stdin as its standard input. An exe without
// a path separator is looked up in PATH. A non-zero exit code is
// reported in the Result, not as an error: compiled programs return their
// result through it.
func Exec(ctx context.Context, exe string, args []string, stdin string, conf *Config) (*Result, error) {
	if conf == nil {
		conf = new(Config)
	}
	base, err := conf.baseDir()
	if err != nil {
		return nil, err
	}
	if strings.ContainsAny(exe, `/\`) {
		exe, err = filepath.Abs(pathutil.Canonical(base, exe))
		if err != nil {
			return nil, errors.NewWith(err, `filepath.Abs(exe)`, -2, "filepath.Abs", exe)
		}
	}
	return run(ctx, conf.timeout(), &command{name: exe, args: args, dir: base, stdin: stdin})
}

// BuildExe assembles asmfile and links it into exe. The object file is
// written next to exe and removed afterwards.
func BuildExe(ctx context.Context, asmfile, exe string, conf *Config) error {
	if conf == nil || conf.Runtime == "" {
		return ErrNoRuntime
	}
	obj := pathutil.TrimExt(exe) + ".o"
	if err := Assemble(ctx, asmfile, obj, conf); err != nil {
		return err
	}
	defer removeFile(conf, obj)
	return Link(ctx, exe, []string{obj}, conf)
}

// system libraries needed by the Go runtime inside the archive
func sysLibs() []string {
	switch runtime.GOOS {
	case "windows":
		return nil
	case "darwin":
		return []string{"-framework", "CoreFoundation"}
	}
	return []string{"-lpthread"}
}
