package abi

import (
	"strconv"
	"strings"
)

// -----------------------------------------------------------------------------

// Int is the only value type exchanged between generated code and the
// runtime: a signed two's-complement integer, IntBits wide.
type Int = int64

// IntBits is part of the contract with the code generator. It is fixed
// and must not follow the host's pointer width.
const IntBits = 64

const (
	ReadInt       = "read_int"
	PrintInt      = "print_int"
	CheckedRead   = "rt_read_int"
	CheckedPrint  = "rt_print_int"
	StrictModeEnv = "MINIRT_STRICT"
)

// Status codes returned by the checked entry points.
const (
	StatusOK = iota
	StatusParse
	StatusEOF
	StatusWrite
)

// -----------------------------------------------------------------------------

const header = `// At several points in the compiler we rely on the fact that
// integers are 64 bits wide. int64_t is guaranteed to hold 64 bits
// whatever the host's pointer width is.
#include <stdint.h>

// Read an integer from stdin. Returns 0 if no integer could be read.
int64_t read_int(void);

// Print an integer to stdout, followed by a newline.
void print_int(int64_t x);

// Checked variants. They return one of the RT_* status codes.
#define RT_OK    %OK%
#define RT_PARSE %PARSE%
#define RT_EOF   %EOF%
#define RT_WRITE %WRITE%

int rt_read_int(int64_t *out);
int rt_print_int(int64_t x);
`

// Header returns the C header declaring the runtime symbols.
func Header() string {
	r := strings.NewReplacer(
		"%OK%", strconv.Itoa(StatusOK),
		"%PARSE%", strconv.Itoa(StatusParse),
		"%EOF%", strconv.Itoa(StatusEOF),
		"%WRITE%", strconv.Itoa(StatusWrite),
	)
	return "#ifndef MINIRT_RUNTIME_H\n#define MINIRT_RUNTIME_H\n\n" +
		r.Replace(header) + "\n#endif\n"
}

// -----------------------------------------------------------------------------
