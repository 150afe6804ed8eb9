// Package project loads the minirt project file.
package project

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goplus/minirt/evaltest"
	"github.com/goplus/minirt/toolchain"
	"github.com/qiniu/x/errors"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	jsoniter "github.com/json-iterator/go"
)

// Config is the project file (minirt.json or minirt.yaml) describing how
// test programs are compiled, linked against the runtime and evaluated.
type Config struct {
	Compiler string   `json:"cc" yaml:"cc"`           // default: gcc, or clang with arm64
	Arm64    bool     `json:"arm64" yaml:"arm64"`     // build x86_64 code on an arm64 host
	Flags    []string `json:"flags" yaml:"flags"`     // extra C compiler flags
	Runtime  string   `json:"runtime" yaml:"runtime"` // default: libminirt.a
	Compile  string   `json:"compile" yaml:"compile"` // default: ./compile
	Passes   []string `json:"passes" yaml:"passes"`
	Regs     []string `json:"regs" yaml:"regs"`
	Timeout  string   `json:"timeout" yaml:"timeout"` // default: 5s
	Tests    string   `json:"tests" yaml:"tests"`     // default: ./tests

	Dir string `json:"-" yaml:"-"` // base of relative paths
}

const (
	EnvCompiler = "MINIRT_CC"
	EnvCompile  = "MINIRT_COMPILE"
	EnvRuntime  = "MINIRT_RUNTIME"
)

var (
	ErrUnknownConfigFormat = errors.New("unknown config file format")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DbgFlagLoad = 1 << iota
	DbgFlagAll  = DbgFlagLoad
)

var (
	debugLoad bool
)

func SetDebug(flags int) {
	debugLoad = (flags & DbgFlagLoad) != 0
}

// DefaultConfig returns the configuration used when there is no project
// file, rooted at dir.
func DefaultConfig(dir string) *Config {
	conf := &Config{Dir: dir}
	conf.complete()
	return conf
}

// LoadConfig reads a project file. Files ending in .yaml or .yml are YAML,
// .json and .cfg are JSON. Unset fields get their defaults and the MINIRT_*
// environment variables override the file.
func LoadConfig(file string) (conf *Config, err error) {
	b, err := os.ReadFile(file)
	if err != nil {
		err = errors.NewWith(err, `os.ReadFile(file)`, -2, "os.ReadFile", file)
		return
	}
	conf = new(Config)
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json", ".cfg":
		if err = json.Unmarshal(b, conf); err != nil {
			err = errors.NewWith(err, `json.Unmarshal(b, conf)`, -2, "json.Unmarshal", file)
			return nil, err
		}
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(b, conf); err != nil {
			err = errors.NewWith(err, `yaml.Unmarshal(b, conf)`, -2, "yaml.Unmarshal", file)
			return nil, err
		}
	default:
		return nil, ErrUnknownConfigFormat
	}
	if conf.Dir, err = filepath.Abs(filepath.Dir(file)); err != nil {
		return nil, err
	}
	if _, err = conf.TimeoutDuration(); err != nil {
		return nil, err
	}
	conf.complete()
	if debugLoad {
		log.Printf("==> config %s: %+v\n", file, *conf)
	}
	return
}

func (p *Config) complete() {
	p.Compiler = env.Str(EnvCompiler, p.Compiler)
	p.Compile = env.Str(EnvCompile, p.Compile)
	p.Runtime = env.Str(EnvRuntime, p.Runtime)
	if p.Runtime == "" {
		p.Runtime = "libminirt.a"
	}
	if p.Compile == "" {
		p.Compile = "./compile"
	}
	if p.Passes == nil {
		p.Passes = evaltest.DefaultPasses
	}
	if p.Regs == nil {
		p.Regs = evaltest.DefaultRegs
	}
	if p.Timeout == "" {
		p.Timeout = toolchain.DefaultTimeout.String()
	}
	if p.Tests == "" {
		p.Tests = "./tests"
	}
}

// TimeoutDuration returns the per-command timeout.
func (p *Config) TimeoutDuration() (time.Duration, error) {
	if p.Timeout == "" {
		return toolchain.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0, errors.NewWith(err, `time.ParseDuration(p.Timeout)`, -2, "time.ParseDuration", p.Timeout)
	}
	return d, nil
}

// Toolchain returns the toolchain settings of the project.
func (p *Config) Toolchain() *toolchain.Config {
	timeout, _ := p.TimeoutDuration()
	return &toolchain.Config{
		Compiler: p.Compiler,
		Arm64:    p.Arm64,
		Flags:    p.Flags,
		Runtime:  p.Runtime,
		BaseDir:  p.Dir,
		Timeout:  timeout,
	}
}

// EvalTest returns the evaluation harness settings of the project.
func (p *Config) EvalTest() *evaltest.Config {
	return &evaltest.Config{
		Compile:   p.Compile,
		Passes:    p.Passes,
		Regs:      p.Regs,
		Toolchain: p.Toolchain(),
	}
}
