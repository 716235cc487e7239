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

// Package frozenmap implements a GC friendly, read-only (section, key) -> text map.
//
// All strings are kept in one byte slice and items refer to them by offset,
// so a Map holds only a few pointers regardless of its size.
package frozenmap

import (
	"math"
	"math/bits"

	"github.com/bytedance/gopkg/util/xxhash3"

	"github.com/cloudwego/profilekit/internal/hack"
)

// Entry is a (section, key, value) triple.
type Entry struct {
	Section string
	Key     string
	Value   string
}

// Map is a read-only map built from entries.
// Items keep the order of the entries they were built from.
type Map struct {
	data      []byte
	items     []item
	hashtable []int32 // first item of each slot, -1 if none
}

type item struct {
	off  int
	ssz  uint32 // section size
	ksz  uint32 // key size
	vsz  uint32 // value size
	next int32  // next item in the same slot, -1 if none
}

// New builds a Map from ee. (Section, Key) pairs must be unique.
// It panics if any string is longer than math.MaxUint32.
func New(ee []Entry) *Map {
	m := &Map{}
	sz := 0
	for _, e := range ee {
		for _, s := range [...]string{e.Section, e.Key, e.Value} {
			if len(s) > math.MaxUint32 {
				panic("frozenmap: string too long")
			}
		}
		sz += len(e.Section) + len(e.Key) + len(e.Value)
	}
	m.data = make([]byte, 0, sz)
	m.items = make([]item, 0, len(ee))
	m.hashtable = make([]int32, calcHashtableSlots(len(ee)))
	for i := range m.hashtable {
		m.hashtable[i] = -1
	}

	for _, e := range ee {
		m.items = append(m.items, item{
			off:  len(m.data),
			ssz:  uint32(len(e.Section)),
			ksz:  uint32(len(e.Key)),
			vsz:  uint32(len(e.Value)),
			next: -1,
		})
		m.data = append(m.data, e.Section...)
		m.data = append(m.data, e.Key...)
		m.data = append(m.data, e.Value...)
	}
	// items are prepended to their slot chain, walk backwards to keep
	// chains in entry order.
	for i := len(m.items) - 1; i >= 0; i-- {
		section, key, _ := m.entry(i)
		slot := m.slot(section, key)
		m.items[i].next = m.hashtable[slot]
		m.hashtable[slot] = int32(i)
	}
	return m
}

func (m *Map) slot(section, key string) uint32 {
	h := xxhash3.HashString(section)*31 + xxhash3.HashString(key)
	return uint32(h % uint64(len(m.hashtable)))
}

func (m *Map) entry(i int) (section, key, value string) {
	e := &m.items[i]
	off := e.off
	section = hack.ByteSliceToString(m.data[off : off+int(e.ssz)])
	off += int(e.ssz)
	key = hack.ByteSliceToString(m.data[off : off+int(e.ksz)])
	off += int(e.ksz)
	value = hack.ByteSliceToString(m.data[off : off+int(e.vsz)])
	return
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.items)
}

// Get returns the value of (section, key).
func (m *Map) Get(section, key string) (string, bool) {
	if len(m.items) == 0 {
		return "", false
	}
	for i := m.hashtable[m.slot(section, key)]; i >= 0; i = m.items[i].next {
		s, k, v := m.entry(int(i))
		if s == section && k == key {
			return v, true
		}
	}
	return "", false
}

// Item returns the i'th entry in build order.
// It panics if i is not in the range [0, Len()).
func (m *Map) Item(i int) Entry {
	s, k, v := m.entry(i)
	return Entry{Section: s, Key: k, Value: v}
}

const loadfactor = float64(0.75)

// calcHashtableSlots returns a prime bigger than n / loadfactor.
func calcHashtableSlots(n int) int {
	b := bits.Len64(uint64(float64(n) / loadfactor))
	if b >= len(bits2primes) {
		panic("frozenmap: too many items")
	}
	return int(bits2primes[b])
}

var bits2primes = []int32{
	1, 7, 7, 17, 17, 31, 61, 127, 251, 509, 1021, 2039, 4093, 8191, 16381, 32749,
	65521, 131071, 262139, 524287, 1048573, 2097143, 4194301, 8388593, 16777213,
	33554393, 67108859, 134217689, 268435399, 536870909, 1073741789, 2147483647,
}
