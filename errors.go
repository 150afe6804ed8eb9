package minirt

import (
	"io"
	"strconv"

	"github.com/goplus/minirt/abi"
	"github.com/qiniu/x/errors"
)

var (
	// ErrSyntax reports input that is not a signed decimal integer.
	ErrSyntax = errors.New("invalid integer syntax")
)

// InputParseError reports that the input stream did not hold a valid
// signed decimal integer at the cursor.
type InputParseError struct {
	Offset int64  // input offset where the literal starts
	Text   string // text consumed or inspected, if any
	Err    error  // io.EOF, ErrSyntax, strconv.ErrRange or a read error
}

func (p *InputParseError) Error() string {
	at := " at offset " + strconv.FormatInt(p.Offset, 10)
	switch p.Err {
	case io.EOF:
		return "read_int: unexpected end of input" + at
	case ErrSyntax:
		return "read_int: expected integer" + at + ", found " + strconv.Quote(p.Text)
	case strconv.ErrRange:
		return "read_int: " + p.Text + " out of range" + at
	}
	return "read_int: " + p.Err.Error() + at
}

func (p *InputParseError) Unwrap() error {
	return p.Err
}

// StreamWriteError reports that the output stream rejected a write.
type StreamWriteError struct {
	Value abi.Int
	Err   error
}

func (p *StreamWriteError) Error() string {
	return "print_int(" + strconv.FormatInt(p.Value, 10) + "): " + p.Err.Error()
}

func (p *StreamWriteError) Unwrap() error {
	return p.Err
}

// Status maps an error returned by ReadInt or PrintInt to the status code
// of the checked C entry points.
func Status(err error) int {
	switch e := err.(type) {
	case nil:
		return abi.StatusOK
	case *InputParseError:
		if e.Err == io.EOF {
			return abi.StatusEOF
		}
		return abi.StatusParse
	case *StreamWriteError:
		return abi.StatusWrite
	}
	return abi.StatusParse
}
