// Command capi exports the runtime to machine code emitted by the course
// compiler. Build it with -buildmode=c-archive (or c-shared) and link the
// result next to the generated object files; see abi.Header for the C
// declarations.
package main

/*
#include <stdint.h>
*/
import "C"

//export read_int
func read_int() C.int64_t {
	return C.int64_t(proc.readInt())
}

//export print_int
func print_int(x C.int64_t) {
	proc.printInt(int64(x))
}

//export rt_read_int
func rt_read_int(out *C.int64_t) C.int {
	v, status := proc.checkedReadInt()
	if out != nil {
		*out = C.int64_t(v)
	}
	return C.int(status)
}

//export rt_print_int
func rt_print_int(x C.int64_t) C.int {
	return C.int(proc.checkedPrintInt(int64(x)))
}
