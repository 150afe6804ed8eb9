package toolchain

import (
	"context"
	"path/filepath"

	"github.com/goplus/minirt/internal/pathutil"
	"github.com/goplus/mod/gopmod"
	"github.com/qiniu/x/errors"
)

// RuntimePkg is the package exporting the runtime's C symbols.
const RuntimePkg = "github.com/goplus/minirt/capi"

// BuildRuntime builds RuntimePkg as a C archive into outfile. The go command
// runs in the root of the module enclosing conf.BaseDir, which must be
// minirt itself or a module requiring it.
func BuildRuntime(ctx context.Context, outfile string, conf *Config) (err error) {
	if conf == nil {
		conf = new(Config)
	}
	base, err := conf.baseDir()
	if err != nil {
		return
	}
	mod, err := gopmod.Load(base)
	if err != nil {
		return errors.NewWith(err, `gopmod.Load(base)`, -2, "gopmod.Load", base)
	}
	outfile, err = filepath.Abs(pathutil.Canonical(base, outfile))
	if err != nil {
		return errors.NewWith(err, `filepath.Abs(outfile)`, -2, "filepath.Abs", outfile)
	}
	env := []string{"CGO_ENABLED=1"}
	if conf.Arm64 {
		env = append(env, "GOARCH=amd64")
	}
	return runTool(ctx, 0, &command{
		name: "go",
		args: []string{"build", "-buildmode=c-archive", "-o", outfile, RuntimePkg},
		dir:  mod.Root(),
		env:  env,
	})
}
