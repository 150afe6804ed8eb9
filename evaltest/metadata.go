package evaltest

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/qiniu/x/errors"
)

// Case is one set of standard input for a test program and the result
// expected from it.
type Case struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

var (
	ErrNoOutput    = errors.New("no OUTPUT metadata")
	ErrCaseCount   = errors.New("input metadata doesn't have same number of inputs and outputs")
	ErrMultiOutput = errors.New("can only have one output if no inputs")
)

// ParseMetadata reads the INPUT and OUTPUT lines from the ';' comment
// block at the front of a test program:
//
//	; INPUT: 1 2; 3 4
//	; OUTPUT: 3; 7
//
// Cases are separated by ';'. The tokens of an input are fed one per line.
func ParseMetadata(r io.Reader) (cases []Case, err error) {
	var inputs, outputs []string
	var hasInput, hasOutput bool
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if !strings.HasPrefix(line, ";") {
			break
		}
		line = strings.TrimSpace(strings.TrimLeft(line, ";"))
		switch {
		case strings.HasPrefix(line, "INPUT:"):
			hasInput, inputs = true, nil
			for _, in := range strings.Split(line[6:], ";") {
				inputs = append(inputs, strings.Join(strings.Fields(in), "\n")+"\n")
			}
		case strings.HasPrefix(line, "OUTPUT:"):
			hasOutput, outputs = true, nil
			for _, out := range strings.Split(line[7:], ";") {
				outputs = append(outputs, strings.TrimSpace(out))
			}
		}
	}
	if err = s.Err(); err != nil {
		return
	}
	if !hasOutput {
		return nil, ErrNoOutput
	}
	if !hasInput {
		if len(outputs) != 1 {
			return nil, ErrMultiOutput
		}
		return []Case{{Output: outputs[0]}}, nil
	}
	if len(inputs) != len(outputs) {
		return nil, ErrCaseCount
	}
	cases = make([]Case, len(inputs))
	for i := range inputs {
		cases[i] = Case{Input: inputs[i], Output: outputs[i]}
	}
	return
}

// LoadMetadata reads the test cases of the program file.
func LoadMetadata(file string) (cases []Case, err error) {
	f, err := os.Open(file)
	if err != nil {
		return
	}
	defer f.Close()
	cases, err = ParseMetadata(f)
	if err != nil {
		err = errors.NewWith(err, `ParseMetadata(f)`, -2, "evaltest.ParseMetadata", file)
	}
	return
}
