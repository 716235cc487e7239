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

package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/profilekit/profile"
)

var (
	_ profile.Store = (*Store)(nil)
	_ profile.Store = (*Frozen)(nil)
)

func TestStore(t *testing.T) {
	s := New()
	_, ok := s.Get("Common", "a")
	assert.False(t, ok)

	assert.True(t, s.Set("Common", "b", "2"))
	assert.True(t, s.Set("Common", "a", "1"))
	assert.True(t, s.Set("Window", "w", "640"))
	assert.True(t, s.Set("Common", "b", "3"))

	v, ok := s.Get("Common", "b")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
	assert.Equal(t, []string{"Common", "Window"}, s.Sections())
	assert.Equal(t, []string{"b", "a"}, s.Keys("Common"))
	assert.Nil(t, s.Keys("Nope"))
	assert.Equal(t, 3, s.Len())

	var got []string
	s.Range(func(section, key, value string) bool {
		got = append(got, section+"/"+key+"="+value)
		return true
	})
	assert.Equal(t, []string{"Common/b=3", "Common/a=1", "Window/w=640"}, got)

	assert.True(t, s.Delete("Common", "b"))
	assert.False(t, s.Delete("Common", "b"))
	assert.False(t, s.Delete("Nope", "b"))
	assert.Equal(t, []string{"a"}, s.Keys("Common"))
	assert.Equal(t, 2, s.Len())
}

func TestFrozen(t *testing.T) {
	s := New()
	s.Set("Common", "nTabSpace", "4")
	s.Set("Common", "bAutoIndent", "1")
	f := s.Freeze()
	require.Equal(t, 2, f.Len())

	// later writes do not reach the snapshot
	s.Set("Common", "nTabSpace", "8")
	v, ok := f.Get("Common", "nTabSpace")
	assert.True(t, ok)
	assert.Equal(t, "4", v)

	n := 0
	assert.True(t, profile.IO(f, profile.ModeRead, "Common", "nTabSpace", profile.Int(&n)))
	assert.Equal(t, 4, n)

	// every write is rejected
	assert.False(t, profile.IO(f, profile.ModeWrite, "Common", "nTabSpace", profile.Int(&n)))
	assert.False(t, f.Set("Common", "x", "y"))

	th := f.Thaw()
	assert.Equal(t, []string{"nTabSpace", "bAutoIndent"}, th.Keys("Common"))
	assert.True(t, th.Set("Common", "x", "y"))
}

func TestZeroValue(t *testing.T) {
	var s Store
	_, ok := s.Get("Common", "a")
	assert.False(t, ok)
	assert.False(t, s.Delete("Common", "a"))
	assert.Nil(t, s.Keys("Common"))

	assert.True(t, s.Set("Common", "a", "1"))
	v, ok := s.Get("Common", "a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, []string{"Common"}, s.Sections())
	assert.Equal(t, 1, s.Freeze().Len())
}
