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

// Package strbuf provides Buf, a bounded view over a caller-owned fixed
// character array which is always kept NUL-terminated.
//
// Buf never allocates storage and never writes past its capacity.
// Oversized input is truncated silently.
package strbuf

import (
	"unicode/utf16"
	"unsafe"
)

// Char is the set of character types a Buf can hold.
type Char interface {
	~byte | ~uint16 | ~rune
}

// noCopy makes `go vet` complain when a Buf is copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Buf wraps a fixed character array owned by the caller.
//
// The capacity counts the terminator slot, so a Buf of capacity N holds
// at most N-1 characters. A Buf must not be copied; use Move to transfer it.
type Buf[C Char] struct {
	_ noCopy

	data []C // data[:n] is the content, data[n] == 0
	n    int // effective length
	c    int // capacity, including the terminator slot
}

// New wraps data with the given capacity.
//
// The length is the number of characters before the first NUL within capacity.
// If no NUL is found, the last slot is overwritten with NUL.
// capacity is clamped to len(data).
func New[C Char](data []C, capacity int) *Buf[C] {
	b := &Buf[C]{}
	b.reset(data, capacity)
	return b
}

// FromSlice wraps data using its full length as capacity.
func FromSlice[C Char](data []C) *Buf[C] {
	return New(data, len(data))
}

// FromTerminated wraps an already terminated string.
// The capacity is set to its length plus the terminator.
func FromTerminated[C Char](data []C) *Buf[C] {
	return New(data, indexNUL(data, len(data))+1)
}

func (b *Buf[C]) reset(data []C, capacity int) {
	if capacity > len(data) {
		capacity = len(data)
	}
	if data == nil || capacity <= 0 {
		b.data, b.n, b.c = nil, 0, 0
		return
	}
	b.data = data[:capacity:capacity]
	b.c = capacity
	b.n = indexNUL(b.data, capacity)
	if b.n == capacity {
		b.n--
		b.data[b.n] = 0
	}
}

// indexNUL returns the index of the first NUL in s[:max], or max.
func indexNUL[C Char](s []C, max int) int {
	if max > len(s) {
		max = len(s)
	}
	for i := 0; i < max; i++ {
		if s[i] == 0 {
			return i
		}
	}
	return max
}

// Assign replaces the content of b with src.
//
// At most Cap()-1 characters are copied and copying stops at a NUL in src.
// A nil src leaves b empty. Assign is a no-op if b has no storage.
func (b *Buf[C]) Assign(src []C) {
	if b.c <= 0 {
		return
	}
	if src == nil {
		b.data[0] = 0
		b.n = 0
		return
	}
	n := indexNUL(src, b.c-1)
	copy(b.data, src[:n])
	b.data[n] = 0
	b.n = n
}

// AssignString replaces the content of b with s.
//
// For rune buffers s is decoded into code points, for uint16 buffers into
// UTF-16 code units, and for byte buffers the bytes are used as is.
func (b *Buf[C]) AssignString(s string) {
	if b.c <= 0 {
		return
	}
	switch charSize[C]() {
	case 1:
		b.Assign(convert[byte, C]([]byte(s)))
	case 2:
		b.Assign(convert[uint16, C](utf16.Encode([]rune(s))))
	default:
		b.Assign(convert[rune, C]([]rune(s)))
	}
}

func charSize[C Char]() uintptr {
	var c C
	return unsafe.Sizeof(c)
}

func convert[F, T Char](s []F) []T {
	ret := make([]T, len(s))
	for i, c := range s {
		ret[i] = T(c)
	}
	return ret
}

// View returns the content of b without the terminator.
// The returned slice aliases the caller's storage.
func (b *Buf[C]) View() []C {
	if b.c <= 0 {
		return nil
	}
	return b.data[:b.n]
}

// String returns a copy of the content of b as a Go string.
func (b *Buf[C]) String() string {
	v := b.View()
	switch charSize[C]() {
	case 1:
		return string(convert[C, byte](v))
	case 2:
		return string(utf16.Decode(convert[C, uint16](v)))
	default:
		return string(convert[C, rune](v))
	}
}

// Len returns the number of characters before the terminator.
func (b *Buf[C]) Len() int { return b.n }

// Cap returns the number of slots, including the terminator slot.
func (b *Buf[C]) Cap() int { return b.c }

// Move transfers the storage of b to the returned Buf and leaves b empty.
func (b *Buf[C]) Move() *Buf[C] {
	ret := &Buf[C]{data: b.data, n: b.n, c: b.c}
	b.data, b.n, b.c = nil, 0, 0
	return ret
}
