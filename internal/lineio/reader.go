/*
 * Copyright 2025 CloudWeGo Authors
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

// Package lineio implements line oriented reading and writing on top of
// pooled buffers from mcache.
package lineio

import (
	"bytes"
	"errors"
	"io"

	"github.com/bytedance/gopkg/lang/mcache"
)

const (
	defaultBufSize           = 4 * 1024
	maxConsecutiveEmptyReads = 100
)

var errReleased = errors.New("lineio: reader released")

// Reader reads lines from an io.Reader.
type Reader struct {
	buf []byte // buf[ri:] is unread
	ri  int
	n   int // lines read

	rd  io.Reader
	err error
}

// NewReader returns a Reader reading from rd.
func NewReader(rd io.Reader) *Reader {
	return &Reader{rd: rd}
}

// ReadLine returns the next line without its "\n" or "\r\n" terminator.
// The last line does not need a terminator.
//
// The returned slice is only valid until the next call to ReadLine or Release.
// At the end of input, ReadLine returns io.EOF.
func (r *Reader) ReadLine() ([]byte, error) {
	for {
		if i := bytes.IndexByte(r.buf[r.ri:], '\n'); i >= 0 {
			line := r.buf[r.ri : r.ri+i]
			r.ri += i + 1
			r.n++
			return trimCR(line), nil
		}
		if r.err != nil {
			if r.ri < len(r.buf) {
				line := r.buf[r.ri:]
				r.ri = len(r.buf)
				r.n++
				return trimCR(line), nil
			}
			return nil, r.err
		}
		r.fill()
	}
}

// LineNumber returns the number of lines returned so far.
func (r *Reader) LineNumber() int {
	return r.n
}

func (r *Reader) fill() {
	if r.ri > 0 {
		n := copy(r.buf, r.buf[r.ri:])
		r.buf = r.buf[:n]
		r.ri = 0
	}
	if len(r.buf) == cap(r.buf) {
		ncap := cap(r.buf) * 2
		if ncap < defaultBufSize {
			ncap = defaultBufSize
		}
		nbuf := mcache.Malloc(len(r.buf), ncap)
		copy(nbuf, r.buf)
		if cap(r.buf) > 0 {
			mcache.Free(r.buf)
		}
		r.buf = nbuf
	}
	for i := 0; i < maxConsecutiveEmptyReads; i++ {
		m, err := r.rd.Read(r.buf[len(r.buf):cap(r.buf)])
		r.buf = r.buf[:len(r.buf)+m]
		if err != nil {
			r.err = err
			return
		}
		if m > 0 {
			return
		}
	}
	r.err = io.ErrNoProgress
}

// Release returns the buffer to the pool. The Reader must not be used afterwards.
func (r *Reader) Release() {
	if cap(r.buf) > 0 {
		mcache.Free(r.buf)
	}
	r.buf = nil
	r.ri = 0
	r.err = errReleased
}

func trimCR(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\r' {
		return b[:n-1]
	}
	return b
}
