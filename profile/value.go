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

package profile

import (
	"encoding"
	"strconv"
	"unicode/utf8"

	"github.com/cloudwego/profilekit/charset"
	"github.com/cloudwego/profilekit/internal/hack"
	"github.com/cloudwego/profilekit/strbuf"
)

// Value is a variable that can be converted from and to raw profile text.
//
// The adaptors of this package never fail; an error is only returned by
// custom implementations and makes IO report false.
type Value interface {
	// Decode sets the variable from raw text.
	Decode(text string, cs *charset.Charset) error
	// Encode returns the raw text of the variable.
	Encode(cs *charset.Charset) (string, error)
}

// Integer is the set of types accepted by Int and WrapInt.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// TextValue is implemented by types with their own text form.
type TextValue interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
}

// -- bool

type boolValue bool

// Bool returns a Value for p.
// "0" decodes to false and any other text to true.
func Bool(p *bool) Value { return (*boolValue)(p) }

func (v *boolValue) Decode(text string, _ *charset.Charset) error {
	*v = text != "0"
	return nil
}

func (v *boolValue) Encode(_ *charset.Charset) (string, error) {
	if *v {
		return "1", nil
	}
	return "0", nil
}

// -- integers

type intValue[T Integer] struct{ p *T }

// Int returns a Value for any integer variable, enums included.
func Int[T Integer](p *T) Value { return intValue[T]{p} }

func (v intValue[T]) Decode(text string, _ *charset.Charset) error {
	*v.p = atoi[T](text)
	return nil
}

func (v intValue[T]) Encode(_ *charset.Charset) (string, error) {
	return itoa(*v.p), nil
}

type wrapIntValue[T Integer] struct{ p *T }

// WrapInt returns a Value for p which passes through an int,
// truncating values an int cannot hold.
func WrapInt[T Integer](p *T) Value { return wrapIntValue[T]{p} }

func (v wrapIntValue[T]) Decode(text string, _ *charset.Charset) error {
	*v.p = T(atoi[int](text))
	return nil
}

func (v wrapIntValue[T]) Encode(_ *charset.Charset) (string, error) {
	return itoa(int(*v.p)), nil
}

// atoi converts the leading integer of s to T.
// The magnitude saturates at the maximum uint64 before the conversion.
func atoi[T Integer](s string) T {
	neg, mag := parseLeadingInt(s)
	if neg {
		return -T(mag)
	}
	return T(mag)
}

func itoa[T Integer](v T) string {
	if v < 0 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}

// -- characters

type charValue byte

// Char returns a Value for a narrow character.
//
// On read, the first character of the text is converted with the charset of
// the Profile and its first byte is kept. Empty text or an unconvertible
// character gives NUL. On write, the character is converted to its wide form;
// NUL and bytes without a wide form are written as empty text.
func Char(p *byte) Value { return (*charValue)(p) }

func (v *charValue) Decode(text string, cs *charset.Charset) error {
	*v = 0
	if text == "" {
		return nil
	}
	r, _ := utf8.DecodeRuneInString(text)
	if b, ok := cs.NarrowFromWide(r); ok {
		*v = charValue(b)
	}
	return nil
}

func (v *charValue) Encode(cs *charset.Charset) (string, error) {
	if *v == 0 {
		return "", nil
	}
	r, ok := cs.WideFromNarrow(byte(*v))
	if !ok {
		return "", nil
	}
	return string(r), nil
}

type runeValue rune

// Rune returns a Value for a wide character.
// Empty text decodes to NUL, and NUL is written as empty text.
func Rune(p *rune) Value { return (*runeValue)(p) }

func (v *runeValue) Decode(text string, _ *charset.Charset) error {
	*v = 0
	if text != "" {
		r, _ := utf8.DecodeRuneInString(text)
		*v = runeValue(r)
	}
	return nil
}

func (v *runeValue) Encode(_ *charset.Charset) (string, error) {
	if *v == 0 {
		return "", nil
	}
	return string(rune(*v)), nil
}

// -- fixed capacity strings

type bufferValue struct{ b *strbuf.Buf[rune] }

// Buffer returns a Value for a fixed capacity wide string.
// Text longer than the buffer is truncated on read.
func Buffer(b *strbuf.Buf[rune]) Value { return bufferValue{b} }

func (v bufferValue) Decode(text string, _ *charset.Charset) error {
	v.b.AssignString(text)
	return nil
}

func (v bufferValue) Encode(_ *charset.Charset) (string, error) {
	return v.b.String(), nil
}

type runesValue []rune

// Runes returns a Value for a fixed size, NUL-terminated rune array,
// typically a slice of a Go array such as cfg.FontFace[:].
//
// The array is wrapped with strbuf.FromSlice for the duration of each call,
// so an array without a terminator gets its last slot cleared.
func Runes(arr []rune) Value { return runesValue(arr) }

func (v runesValue) Decode(text string, cs *charset.Charset) error {
	return Buffer(strbuf.FromSlice([]rune(v))).Decode(text, cs)
}

func (v runesValue) Encode(cs *charset.Charset) (string, error) {
	return Buffer(strbuf.FromSlice([]rune(v))).Encode(cs)
}

// -- raw text

type stringValue string

// String returns a Value which stores raw text without conversion.
func String(p *string) Value { return (*stringValue)(p) }

func (v *stringValue) Decode(text string, _ *charset.Charset) error {
	*v = stringValue(text)
	return nil
}

func (v *stringValue) Encode(_ *charset.Charset) (string, error) {
	return string(*v), nil
}

// -- custom text

type textValue struct{ v TextValue }

// Text returns a Value for a type which marshals itself to text.
func Text(v TextValue) Value { return textValue{v} }

func (v textValue) Decode(text string, _ *charset.Charset) error {
	// UnmarshalText may write to its argument
	return v.v.UnmarshalText([]byte(text))
}

func (v textValue) Encode(_ *charset.Charset) (string, error) {
	b, err := v.v.MarshalText()
	if err != nil {
		return "", err
	}
	return hack.ByteSliceToString(b), nil
}
