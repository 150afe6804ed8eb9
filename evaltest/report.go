package evaltest

import (
	"fmt"
	"io"
	"strconv"
)

const (
	ModeEval = "eval"
	ModeAsm  = "asm"
)

// Failure describes one run whose result did not match the metadata.
type Failure struct {
	Prog string `json:"prog"`
	Mode string `json:"mode"`
	Arg  string `json:"arg"` // pass name or register option
	Case int    `json:"case"`
	Msg  string `json:"msg"`
}

func failf(format string, args ...interface{}) error {
	return &Failure{Msg: fmt.Sprintf(format, args...)}
}

func (p *Failure) Error() string {
	return p.Prog + ": " + p.where() + ": " + p.Msg
}

func (p *Failure) where() string {
	switch p.Mode {
	case ModeEval:
		return "eval pass " + p.Arg + " case " + strconv.Itoa(p.Case)
	case ModeAsm:
		regs := p.Arg
		if regs == "" {
			regs = "all"
		}
		return "asm regs " + regs + " case " + strconv.Itoa(p.Case)
	}
	return "case " + strconv.Itoa(p.Case)
}

// Report summarizes the runs of one test program.
type Report struct {
	Prog     string     `json:"prog"`
	Cases    int        `json:"cases"`
	Runs     int        `json:"runs"`
	Failures []*Failure `json:"failures,omitempty"`
}

func (p *Report) OK() bool {
	return len(p.Failures) == 0
}

// WriteTo writes a human readable summary of the report.
func (p *Report) WriteTo(w io.Writer) (n int64, err error) {
	status := "ok"
	if !p.OK() {
		status = strconv.Itoa(len(p.Failures)) + " failed"
	}
	c, err := fmt.Fprintf(w, "%s: %d cases, %d runs, %s\n", p.Prog, p.Cases, p.Runs, status)
	n += int64(c)
	for _, f := range p.Failures {
		if err != nil {
			return
		}
		c, err = fmt.Fprintf(w, "  FAIL %s: %s\n", f.where(), f.Msg)
		n += int64(c)
	}
	return
}
