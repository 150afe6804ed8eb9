package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/goplus/minirt"
	"github.com/goplus/minirt/abi"
	"github.com/xyproto/env/v2"
)

// process holds the runtime bound to the host's standard streams. The
// streams belong to the host process; they are never opened or closed here.
type process struct {
	once   sync.Once
	rt     *minirt.Runtime
	strict bool // MINIRT_STRICT: a failed read or write ends the program
	stderr io.Writer
	exit   func(code int)
}

var proc = new(process)

func (p *process) init() {
	p.once.Do(func() {
		if p.rt == nil {
			p.rt = minirt.New(os.Stdin, os.Stdout)
			p.strict = env.Bool(abi.StrictModeEnv)
		}
		if p.stderr == nil {
			p.stderr = os.Stderr
		}
		if p.exit == nil {
			p.exit = os.Exit
		}
	})
}

// readInt backs the legacy read_int symbol: 0 on failure.
func (p *process) readInt() int64 {
	p.init()
	v, err := p.rt.ReadInt()
	if err != nil {
		p.fail(err)
	}
	return v
}

// printInt backs the legacy print_int symbol, which has no way to report
// a failed write.
func (p *process) printInt(x int64) {
	p.init()
	if err := p.rt.PrintInt(x); err != nil {
		p.fail(err)
	}
}

func (p *process) checkedReadInt() (int64, int) {
	p.init()
	v, err := p.rt.ReadInt()
	return v, minirt.Status(err)
}

func (p *process) checkedPrintInt(x int64) int {
	p.init()
	return minirt.Status(p.rt.PrintInt(x))
}

func (p *process) fail(err error) {
	if p.strict {
		fmt.Fprintln(p.stderr, "minirt:", err)
		p.exit(1)
	}
}

func main() {}
