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

// Package memstore implements in-memory profile stores.
//
// Store keeps sections and keys in insertion order, which persistence layers
// use to write profiles back in a stable order. Frozen is a read-only
// snapshot that rejects every write.
//
// Neither type is safe for concurrent mutation.
package memstore

import (
	"github.com/cloudwego/profilekit/internal/frozenmap"
)

// Store is a mutable, ordered (section, key) -> text store.
// The zero value is an empty Store ready to use.
type Store struct {
	sections []*section
	index    map[string]int
}

type section struct {
	name   string
	keys   []string
	values map[string]string
}

// New returns an empty Store.
func New() *Store {
	return &Store{index: map[string]int{}}
}

// Get returns the text stored under (section, key).
func (s *Store) Get(section, key string) (string, bool) {
	i, ok := s.index[section]
	if !ok {
		return "", false
	}
	v, ok := s.sections[i].values[key]
	return v, ok
}

// Set stores value under (section, key). It always succeeds.
func (s *Store) Set(sectionName, key, value string) bool {
	i, ok := s.index[sectionName]
	if !ok {
		if s.index == nil {
			s.index = map[string]int{}
		}
		i = len(s.sections)
		s.sections = append(s.sections, &section{name: sectionName, values: map[string]string{}})
		s.index[sectionName] = i
	}
	sec := s.sections[i]
	if _, ok := sec.values[key]; !ok {
		sec.keys = append(sec.keys, key)
	}
	sec.values[key] = value
	return true
}

// Delete removes (section, key) and reports whether it existed.
// A section is kept even when its last key is removed.
func (s *Store) Delete(section, key string) bool {
	i, ok := s.index[section]
	if !ok {
		return false
	}
	sec := s.sections[i]
	if _, ok := sec.values[key]; !ok {
		return false
	}
	delete(sec.values, key)
	for j, k := range sec.keys {
		if k == key {
			sec.keys = append(sec.keys[:j], sec.keys[j+1:]...)
			break
		}
	}
	return true
}

// Sections returns the section names in insertion order.
func (s *Store) Sections() []string {
	ret := make([]string, len(s.sections))
	for i, sec := range s.sections {
		ret[i] = sec.name
	}
	return ret
}

// Keys returns the keys of section in insertion order.
func (s *Store) Keys(section string) []string {
	i, ok := s.index[section]
	if !ok {
		return nil
	}
	return append([]string(nil), s.sections[i].keys...)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	n := 0
	for _, sec := range s.sections {
		n += len(sec.keys)
	}
	return n
}

// Range calls fn for every entry in order until fn returns false.
func (s *Store) Range(fn func(section, key, value string) bool) {
	for _, sec := range s.sections {
		for _, k := range sec.keys {
			if !fn(sec.name, k, sec.values[k]) {
				return
			}
		}
	}
}

// Freeze returns a read-only snapshot of s.
func (s *Store) Freeze() *Frozen {
	ee := make([]frozenmap.Entry, 0, s.Len())
	s.Range(func(section, key, value string) bool {
		ee = append(ee, frozenmap.Entry{Section: section, Key: key, Value: value})
		return true
	})
	return &Frozen{m: frozenmap.New(ee)}
}

// Frozen is a read-only snapshot of a Store.
type Frozen struct {
	m *frozenmap.Map
}

// Get returns the text stored under (section, key).
func (f *Frozen) Get(section, key string) (string, bool) {
	return f.m.Get(section, key)
}

// Set always returns false.
func (f *Frozen) Set(section, key, value string) bool {
	return false
}

// Len returns the number of entries.
func (f *Frozen) Len() int {
	return f.m.Len()
}

// Range calls fn for every entry in order until fn returns false.
func (f *Frozen) Range(fn func(section, key, value string) bool) {
	for i := 0; i < f.m.Len(); i++ {
		e := f.m.Item(i)
		if !fn(e.Section, e.Key, e.Value) {
			return
		}
	}
}

// Thaw returns a mutable copy of f.
func (f *Frozen) Thaw() *Store {
	s := New()
	f.Range(func(section, key, value string) bool {
		s.Set(section, key, value)
		return true
	})
	return s
}
