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

// Package charset is the single conversion point between narrow (single byte
// or multibyte) characters and wide characters used by profile values.
package charset

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

var (
	// Default converts with Windows-1252.
	Default = New("windows-1252", charmap.Windows1252)

	// ShiftJIS converts with Shift_JIS (CP932 profiles).
	ShiftJIS = New("shift_jis", japanese.ShiftJIS)
)

// Charset converts single characters between a narrow encoding and runes.
type Charset struct {
	name string
	enc  encoding.Encoding
}

// New returns a Charset backed by enc.
func New(name string, enc encoding.Encoding) *Charset {
	return &Charset{name: name, enc: enc}
}

// Lookup returns a predefined Charset by name, case-insensitively.
func Lookup(name string) (*Charset, bool) {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "", "windows-1252", "cp1252":
		return Default, true
	case "shift-jis", "sjis", "cp932":
		return ShiftJIS, true
	}
	return nil, false
}

// Name returns the name of cs.
func (cs *Charset) Name() string {
	return cs.get().name
}

func (cs *Charset) get() *Charset {
	if cs == nil || cs.enc == nil {
		return Default
	}
	return cs
}

// NarrowFromWide converts r to its narrow representation and returns the first byte.
// The bool result is false if r cannot be represented.
func (cs *Charset) NarrowFromWide(r rune) (byte, bool) {
	var src [utf8.UTFMax]byte
	n := utf8.EncodeRune(src[:], r)
	var dst [8]byte
	nDst, _, err := cs.get().enc.NewEncoder().Transform(dst[:], src[:n], true)
	if err != nil || nDst == 0 {
		return 0, false
	}
	return dst[0], true
}

// WideFromNarrow converts a single narrow byte to a rune.
// The bool result is false if b is not a complete character by itself,
// for example the lead byte of a multibyte sequence.
func (cs *Charset) WideFromNarrow(b byte) (rune, bool) {
	var dst [utf8.UTFMax * 2]byte
	nDst, _, err := cs.get().enc.NewDecoder().Transform(dst[:], []byte{b}, true)
	if err != nil || nDst == 0 {
		return 0, false
	}
	// decoders substitute U+FFFD for invalid input
	r, _ := utf8.DecodeRune(dst[:nDst])
	if r == utf8.RuneError {
		return 0, false
	}
	return r, true
}
