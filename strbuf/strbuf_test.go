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

package strbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	data := []rune{'a', 'b', 0, 'x', 'y'}
	b := New(data, len(data))
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 5, b.Cap())
	assert.Equal(t, "ab", b.String())

	// no terminator within capacity
	data = []rune{'a', 'b', 'c', 'd'}
	b = New(data, 4)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, rune(0), data[3])
	assert.Equal(t, "abc", b.String())

	// capacity smaller than the slice
	data = []rune{'a', 'b', 'c', 'd'}
	b = New(data, 2)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, []rune{'a', 0, 'c', 'd'}, data)

	// capacity is clamped to the slice
	data = []rune{'a', 'b'}
	b = New(data, 100)
	assert.Equal(t, 2, b.Cap())
	assert.Equal(t, 1, b.Len())

	b = New[rune](nil, 10)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Cap())
	assert.Nil(t, b.View())
	b.Assign([]rune("abc")) // no-op
	assert.Equal(t, 0, b.Len())
}

func TestUnterminatedExactCapacity(t *testing.T) {
	for c := 1; c < 16; c++ {
		data := make([]rune, c)
		for i := range data {
			data[i] = 'z'
		}
		b := FromSlice(data)
		require.Equal(t, c-1, b.Len(), c)
		require.Equal(t, rune(0), data[c-1], c)
		require.Equal(t, c-1, indexNUL(data, len(data)), c)
	}
}

func TestFromTerminated(t *testing.T) {
	data := []rune{'h', 'i', 0, 'x'}
	b := FromTerminated(data)
	assert.Equal(t, 3, b.Cap())
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, "hi", b.String())

	data = []rune{'h', 'i'}
	b = FromTerminated(data)
	assert.Equal(t, 2, b.Cap())
	assert.Equal(t, "h", b.String())
}

func TestAssign(t *testing.T) {
	srcs := []string{"", "a", "abc", "abcdefg", "abcdefgh", "abcdefghijklmnop"}
	for _, c := range []int{1, 2, 4, 8} {
		for _, s := range srcs {
			data := make([]rune, c)
			b := FromSlice(data)
			b.Assign([]rune(s))

			n := len(s)
			if n > c-1 {
				n = c - 1
			}
			require.Less(t, b.Len(), c)
			require.Equal(t, n, b.Len())
			require.Equal(t, s[:n], b.String())
			require.Equal(t, rune(0), data[n])
		}
	}

	data := []rune("hello\x00")
	b := FromSlice(data)
	b.Assign(nil)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, rune(0), data[0])

	// stops at a NUL in the source
	b.Assign([]rune{'a', 0, 'b'})
	assert.Equal(t, "a", b.String())
}

func TestAssignString(t *testing.T) {
	w := FromSlice(make([]rune, 4))
	w.AssignString("日本語です")
	assert.Equal(t, "日本語", w.String())

	u := FromSlice(make([]uint16, 8))
	u.AssignString("héllo")
	assert.Equal(t, "héllo", u.String())
	assert.Equal(t, 5, u.Len())

	a := FromSlice(make([]byte, 4))
	a.AssignString("abcdef")
	assert.Equal(t, "abc", a.String())
	assert.Equal(t, []byte("abc"), a.View())
}

func TestMove(t *testing.T) {
	data := []rune("abc\x00")
	src := FromSlice(data)
	dst := src.Move()

	assert.Equal(t, 0, src.Len())
	assert.Equal(t, 0, src.Cap())
	assert.Nil(t, src.View())
	assert.Equal(t, "abc", dst.String())
	assert.Equal(t, 4, dst.Cap())

	src.Assign([]rune("zzz"))
	assert.Equal(t, "abc", dst.String())
	assert.Equal(t, []rune("abc\x00"), data)

	dst.Assign([]rune("xy"))
	assert.Equal(t, []rune{'x', 'y', 0, 0}, data)
}
