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

// Package inistore persists profiles as INI text.
//
// The format is line based:
//
//	; comment
//	[Section]
//	key=value
//
// Section names and keys are trimmed, values are kept verbatim after the
// first '='. Comment lines start with ';', '#' or "//". Lines outside a
// section and lines without '=' are ignored. Output uses "\r\n" line
// endings and keeps the insertion order of sections and keys.
package inistore

import (
	"bytes"
	"io"
	"strings"

	"github.com/bytedance/gopkg/lang/dirtmake"

	"github.com/cloudwego/profilekit/internal/hack"
	"github.com/cloudwego/profilekit/internal/lineio"
	"github.com/cloudwego/profilekit/store/memstore"
)

const eol = "\r\n"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Ranger is implemented by stores which can enumerate their entries in order.
type Ranger interface {
	Range(fn func(section, key, value string) bool)
}

// Decode parses INI text from r.
func Decode(r io.Reader) (*memstore.Store, error) {
	s := memstore.New()
	lr := lineio.NewReader(r)
	defer lr.Release()

	section := ""
	for {
		line, err := lr.ReadLine()
		if err == io.EOF {
			return s, nil
		}
		if err != nil {
			return nil, err
		}
		if lr.LineNumber() == 1 {
			line = bytes.TrimPrefix(line, utf8BOM)
		}
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 || isComment(trimmed) {
			continue
		}
		if trimmed[0] == '[' {
			if end := bytes.IndexByte(trimmed, ']'); end > 0 {
				section = string(bytes.TrimSpace(trimmed[1:end]))
			}
			continue
		}
		if section == "" {
			continue
		}
		eq := bytes.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		key := string(bytes.TrimSpace(line[:eq]))
		if key == "" {
			continue
		}
		s.Set(section, key, string(line[eq+1:]))
	}
}

// DecodeString parses INI text from s.
func DecodeString(s string) (*memstore.Store, error) {
	return Decode(strings.NewReader(s))
}

func isComment(line []byte) bool {
	return line[0] == ';' || line[0] == '#' || bytes.HasPrefix(line, []byte("//"))
}

// Encode writes the entries of s to w as INI text.
func Encode(w io.Writer, s Ranger) error {
	lw := lineio.NewWriter(w)
	last := ""
	first := true
	s.Range(func(section, key, value string) bool {
		if first || section != last {
			if !first {
				lw.WriteString(eol)
			}
			lw.WriteLine(eol, "[", section, "]")
			last, first = section, false
		}
		lw.WriteLine(eol, key, "=", value)
		return true
	})
	return lw.Flush()
}

// Marshal returns the INI text of s.
func Marshal(s Ranger) []byte {
	n := 0
	last := ""
	first := true
	s.Range(func(section, key, value string) bool {
		if first || section != last {
			if !first {
				n += len(eol)
			}
			n += len(section) + 2 + len(eol)
			last, first = section, false
		}
		n += len(key) + 1 + len(value) + len(eol)
		return true
	})

	b := dirtmake.Bytes(0, n)
	first = true
	s.Range(func(section, key, value string) bool {
		if first || section != last {
			if !first {
				b = append(b, eol...)
			}
			b = append(b, '[')
			b = append(b, section...)
			b = append(b, ']')
			b = append(b, eol...)
			last, first = section, false
		}
		b = append(b, key...)
		b = append(b, '=')
		b = append(b, value...)
		b = append(b, eol...)
		return true
	})
	return b
}

// Unmarshal parses INI text from b.
func Unmarshal(b []byte) (*memstore.Store, error) {
	return DecodeString(hack.ByteSliceToString(b))
}

// ValidEntry reports whether (section, key, value) can be written as INI
// text and read back unchanged.
func ValidEntry(section, key, value string) bool {
	if section == "" || section != strings.TrimSpace(section) ||
		strings.ContainsAny(section, "]\r\n") {
		return false
	}
	if key == "" || key != strings.TrimSpace(key) ||
		strings.ContainsAny(key, "=\r\n") ||
		strings.HasPrefix(key, "[") || isComment([]byte(key)) {
		return false
	}
	return !strings.ContainsAny(value, "\r\n")
}
