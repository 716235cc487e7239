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

// Package jsonstore keeps a profile in a JSON document of the form
//
//	{"Section": {"key": "value"}}
//
// Numbers and booleans are read as their JSON text; nested objects, arrays
// and null are not entries. Written values are always JSON strings.
package jsonstore

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var errNotObject = errors.New("jsonstore: document is not a JSON object")

// Store is a profile store over a JSON document. It is not safe for concurrent use.
type Store struct {
	doc    string
	logger *slog.Logger
}

// New returns an empty Store.
func New() *Store {
	return &Store{doc: "{}", logger: slog.Default()}
}

// Parse returns a Store over a copy of data.
func Parse(data []byte) (*Store, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("jsonstore: invalid JSON")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, errNotObject
	}
	return &Store{doc: string(data), logger: slog.Default()}, nil
}

// Load reads a Store from the JSON file at path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jsonstore: reading %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("jsonstore: parsing %s: %w", path, err)
	}
	return s, nil
}

// WriteFile writes the document to path.
func (s *Store) WriteFile(path string) error {
	if err := os.WriteFile(path, s.Bytes(), 0o644); err != nil {
		return fmt.Errorf("jsonstore: writing %s: %w", path, err)
	}
	return nil
}

// SetLogger sets the logger receiving failed writes.
func (s *Store) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Bytes returns the document.
func (s *Store) Bytes() []byte {
	return []byte(s.doc)
}

func entryPath(section, key string) string {
	return gjson.Escape(section) + "." + gjson.Escape(key)
}

// setPath is entryPath for sjson. The ':' prefix makes sjson treat each
// component as an object key, so keys like "1" or "-1" never create arrays.
func setPath(section, key string) string {
	return ":" + gjson.Escape(section) + ".:" + gjson.Escape(key)
}

// Get returns the text of (section, key).
func (s *Store) Get(section, key string) (string, bool) {
	r := gjson.Get(s.doc, entryPath(section, key))
	if !isEntry(r) {
		return "", false
	}
	return r.String(), true
}

func isEntry(r gjson.Result) bool {
	switch r.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return true
	}
	return false
}

// Set stores value as a JSON string under (section, key).
func (s *Store) Set(section, key, value string) bool {
	if sec := gjson.Get(s.doc, gjson.Escape(section)); sec.Exists() && !sec.IsObject() {
		s.logger.Debug("jsonstore: section is not an object", "section", section)
		return false
	}
	doc, err := sjson.Set(s.doc, setPath(section, key), value)
	if err != nil {
		s.logger.Debug("jsonstore: set failed", "section", section, "key", key, "error", err)
		return false
	}
	s.doc = doc
	return true
}

// Range calls fn for every entry in document order until fn returns false.
func (s *Store) Range(fn func(section, key, value string) bool) {
	cont := true
	gjson.Parse(s.doc).ForEach(func(sk, sv gjson.Result) bool {
		if !sv.IsObject() {
			return true
		}
		sv.ForEach(func(k, v gjson.Result) bool {
			if isEntry(v) {
				cont = fn(sk.String(), k.String(), v.String())
			}
			return cont
		})
		return cont
	})
}

// String returns the document.
func (s *Store) String() string {
	return s.doc
}
