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

// Package tomlstore keeps a profile in a TOML document whose top-level
// tables are sections.
//
// Strings, integers, floats, booleans and dates are entries and are read as
// their TOML text; arrays and nested tables are not. Written values are
// always TOML strings. Entries are ranged in sorted order.
package tomlstore

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Store is a profile store over a TOML document. It is not safe for concurrent use.
type Store struct {
	root map[string]any
}

// New returns an empty Store.
func New() *Store {
	return &Store{root: map[string]any{}}
}

// Parse decodes a TOML document.
func Parse(data []byte) (*Store, error) {
	root := map[string]any{}
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("tomlstore: %w", err)
	}
	return &Store{root: root}, nil
}

// Load reads a Store from the TOML file at path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tomlstore: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal encodes the document.
func (s *Store) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(s.root); err != nil {
		return nil, fmt.Errorf("tomlstore: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the document to path.
func (s *Store) WriteFile(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("tomlstore: writing %s: %w", path, err)
	}
	return nil
}

func (s *Store) section(name string) (map[string]any, bool) {
	sec, ok := s.root[name].(map[string]any)
	return sec, ok
}

// Get returns the text of (section, key).
func (s *Store) Get(section, key string) (string, bool) {
	sec, ok := s.section(section)
	if !ok {
		return "", false
	}
	return entryText(sec[key])
}

func entryText(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case time.Time:
		return v.Format(time.RFC3339Nano), true
	case toml.LocalDate, toml.LocalTime, toml.LocalDateTime:
		return fmt.Sprint(v), true
	}
	return "", false
}

// Set stores value as a TOML string under (section, key).
// It returns false if section names a non-table value.
func (s *Store) Set(section, key, value string) bool {
	sec, ok := s.section(section)
	if !ok {
		if _, exists := s.root[section]; exists {
			return false
		}
		sec = map[string]any{}
		s.root[section] = sec
	}
	if _, isTable := sec[key].(map[string]any); isTable {
		return false
	}
	sec[key] = value
	return true
}

// Range calls fn for every entry in sorted order until fn returns false.
func (s *Store) Range(fn func(section, key, value string) bool) {
	for _, name := range sortedKeys(s.root) {
		sec, ok := s.section(name)
		if !ok {
			continue
		}
		for _, k := range sortedKeys(sec) {
			if v, ok := entryText(sec[k]); ok && !fn(name, k, v) {
				return
			}
		}
	}
}

func sortedKeys(m map[string]any) []string {
	kk := make([]string, 0, len(m))
	for k := range m {
		kk = append(kk, k)
	}
	sort.Strings(kk)
	return kk
}
