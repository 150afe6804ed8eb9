/*
 * Copyright (c) 2022 The GoPlus Authors (goplus.org). All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package minirt is the runtime support library linked into programs
// produced by the course compiler. It moves 64-bit integers between the
// compiled program and a pair of text streams.
package minirt

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/goplus/minirt/abi"
)

const (
	DbgFlagRead = 1 << iota
	DbgFlagWrite
	DbgFlagAll = DbgFlagRead | DbgFlagWrite
)

var (
	debugRead  bool
	debugWrite bool
)

func SetDebug(flags int) {
	debugRead = (flags & DbgFlagRead) != 0
	debugWrite = (flags & DbgFlagWrite) != 0
}

// -----------------------------------------------------------------------------

// Runtime implements read_int and print_int over an input and an output
// stream. The input cursor is shared by all reads on the same Runtime.
// A Runtime is not safe for concurrent use.
type Runtime struct {
	in  io.ByteScanner
	out io.Writer
	off int64 // bytes consumed from in
	buf []byte
}

// New creates a Runtime reading from in and writing to out. If in does not
// implement io.ByteScanner it is wrapped in a bufio.Reader, so the caller
// must not read from in directly afterwards.
func New(in io.Reader, out io.Writer) *Runtime {
	if in == nil {
		in = strings.NewReader("")
	}
	if out == nil {
		out = io.Discard
	}
	bs, ok := in.(io.ByteScanner)
	if !ok {
		bs = bufio.NewReader(in)
	}
	return &Runtime{in: bs, out: out, buf: make([]byte, 0, 24)}
}

// Offset returns the number of input bytes consumed so far.
func (p *Runtime) Offset() int64 {
	return p.off
}

// ReadInt reads an optionally signed decimal integer, skipping leading
// whitespace. The first byte after the digits is left unread.
//
// On failure ReadInt returns 0 and an *InputParseError whose cause is
// io.EOF, ErrSyntax, strconv.ErrRange or the stream's own read error.
func (p *Runtime) ReadInt() (v abi.Int, err error) {
	c, err := p.skipSpace()
	if err != nil {
		return 0, p.parseError(p.off, "", err)
	}
	start := p.off - 1
	text := make([]byte, 0, 20)
	if c == '+' || c == '-' {
		text = append(text, c)
		if c, err = p.readByte(); err != nil {
			return 0, p.parseError(start, string(text), err)
		}
	}
	if !isDigit(c) {
		p.unreadByte()
		return 0, p.parseError(start, string(append(text, c)), ErrSyntax)
	}
	for isDigit(c) {
		text = append(text, c)
		if c, err = p.readByte(); err != nil {
			if err != io.EOF {
				return 0, p.parseError(start, string(text), err)
			}
			break
		}
	}
	if err == nil {
		p.unreadByte()
	}
	if v, err = strconv.ParseInt(string(text), 10, abi.IntBits); err != nil {
		return 0, p.parseError(start, string(text), strconv.ErrRange)
	}
	if debugRead {
		log.Println("==> read_int:", v)
	}
	return v, nil
}

// PrintInt writes x in decimal followed by a newline, in a single write.
func (p *Runtime) PrintInt(x abi.Int) error {
	p.buf = strconv.AppendInt(p.buf[:0], x, 10)
	p.buf = append(p.buf, '\n')
	n, err := p.out.Write(p.buf)
	if err == nil && n < len(p.buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		if debugWrite {
			log.Println("==> print_int:", x, "failed:", err)
		}
		return &StreamWriteError{Value: x, Err: err}
	}
	if debugWrite {
		log.Println("==> print_int:", x)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (p *Runtime) readByte() (byte, error) {
	c, err := p.in.ReadByte()
	if err == nil {
		p.off++
	}
	return c, err
}

func (p *Runtime) unreadByte() {
	if p.in.UnreadByte() == nil {
		p.off--
	}
}

func (p *Runtime) skipSpace() (byte, error) {
	for {
		c, err := p.readByte()
		if err != nil {
			return 0, err
		}
		if !isSpace(c) {
			return c, nil
		}
	}
}

func (p *Runtime) parseError(off int64, text string, err error) error {
	if debugRead {
		log.Println("==> read_int failed at", off, "-", err)
	}
	return &InputParseError{Offset: off, Text: text, Err: err}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// -----------------------------------------------------------------------------
