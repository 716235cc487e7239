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

package lineio

import (
	"io"
	"net"

	"github.com/bytedance/gopkg/lang/mcache"
)

// Writer buffers text in pooled chunks and writes it out on Flush.
type Writer struct {
	chunk  []byte
	chunks net.Buffers

	toFree [][]byte

	wl  int // written len
	wd  io.Writer
	err error
}

// NewWriter returns a Writer writing to wd.
func NewWriter(wd io.Writer) *Writer {
	return &Writer{wd: wd}
}

func (w *Writer) acquire(n int) {
	if len(w.chunk)+n <= cap(w.chunk) {
		return
	}
	if len(w.chunk) > 0 {
		w.chunks = append(w.chunks, w.chunk)
	}
	ncap := defaultBufSize
	for ; ncap < n; ncap *= 2 {
	}
	w.chunk = mcache.Malloc(0, ncap)
	w.toFree = append(w.toFree, w.chunk)
}

// WriteString buffers s.
func (w *Writer) WriteString(s string) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	w.acquire(len(s))
	w.chunk = append(w.chunk, s...)
	w.wl += len(s)
	return len(s), nil
}

// WriteLine buffers the concatenation of parts followed by eol.
func (w *Writer) WriteLine(eol string, parts ...string) error {
	n := len(eol)
	for _, p := range parts {
		n += len(p)
	}
	if w.err != nil {
		return w.err
	}
	w.acquire(n)
	for _, p := range parts {
		w.chunk = append(w.chunk, p...)
	}
	w.chunk = append(w.chunk, eol...)
	w.wl += n
	return nil
}

// WrittenLen returns the number of bytes buffered since the last Flush.
func (w *Writer) WrittenLen() int {
	return w.wl
}

// Flush writes the buffered text to the underlying io.Writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if len(w.chunk) > 0 {
		w.chunks = append(w.chunks, w.chunk)
	}
	w.chunk = nil
	if len(w.chunks) > 0 {
		if _, err := w.chunks.WriteTo(w.wd); err != nil {
			w.err = err
			w.release()
			return err
		}
	}
	w.release()
	return nil
}

// release drops the buffered chunks and returns them to mcache.
func (w *Writer) release() {
	for i := range w.chunks {
		w.chunks[i] = nil
	}
	w.chunks = w.chunks[:0]
	w.wl = 0
	for i, buf := range w.toFree {
		mcache.Free(buf)
		w.toFree[i] = nil
	}
	w.toFree = w.toFree[:0]
}
