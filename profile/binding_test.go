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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type editSettings struct {
	TabSpace   int     `profile:"nTabSpace"`
	AutoIndent bool    `profile:"bAutoIndent"`
	WordWrap   uint16  `profile:"nWordWrap"`
	Kinsoku    byte    `profile:"cKinsoku,char"`
	Quote      rune    `profile:"cQuote,char"`
	Level      int8    `profile:""`
	Font       [6]rune `profile:"szFont"`
	Path       string  `profile:"szPath"`
	Pos        point   `profile:"pos"`
	Ignored    int     `profile:"-"`
	Untagged   int

	Window struct {
		Width  int `profile:"nWidth"`
		Height int `profile:"nHeight"`
	} `section:"Window"`
}

func TestBinder(t *testing.T) {
	b, err := NewBinder(reflect.TypeOf((*editSettings)(nil)))
	require.NoError(t, err)
	assert.Equal(t, 11, b.NumField())

	src := editSettings{
		TabSpace:   8,
		AutoIndent: true,
		WordWrap:   120,
		Kinsoku:    '!',
		Quote:      '「',
		Level:      -2,
		Path:       `C:\sakura`,
		Pos:        point{10, 20},
		Ignored:    1,
		Untagged:   2,
	}
	copy(src.Font[:], []rune("Arial"))
	src.Window.Width = 640
	src.Window.Height = 480

	s := newMapStore()
	n, err := b.IO(New(s, ModeWrite), "Common", &src)
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.Equal(t, "8", s.m[[2]string{"Common", "nTabSpace"}])
	assert.Equal(t, "!", s.m[[2]string{"Common", "cKinsoku"}])
	assert.Equal(t, "-2", s.m[[2]string{"Common", "Level"}])
	assert.Equal(t, "640", s.m[[2]string{"Window", "nWidth"}])
	assert.Len(t, s.m, 11)

	var dst editSettings
	n, err = b.IO(New(s, ModeRead), "Common", &dst)
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	src.Ignored, src.Untagged = 0, 0
	assert.Equal(t, src, dst)
}

func TestBinderPartialRead(t *testing.T) {
	s := newMapStore()
	s.m[[2]string{"Common", "nTabSpace"}] = "2"

	dst := editSettings{AutoIndent: true}
	n, err := Bind(New(s, ModeRead), "Common", &dst)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, dst.TabSpace)
	assert.True(t, dst.AutoIndent)

	// cached binder
	n, err = Bind(New(s, ModeRead), "Common", &dst)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBinderErrors(t *testing.T) {
	_, err := NewBinder(reflect.TypeOf(editSettings{}))
	assert.Error(t, err)

	_, err = NewBinder(reflect.TypeOf((*int)(nil)))
	assert.Error(t, err)

	type badChar struct {
		F float64 `profile:"f,char"`
	}
	_, err = NewBinder(reflect.TypeOf((*badChar)(nil)))
	assert.Error(t, err)

	type badKind struct {
		F []int `profile:"f"`
	}
	_, err = NewBinder(reflect.TypeOf((*badKind)(nil)))
	assert.ErrorContains(t, err, `field "F"`)

	b, err := NewBinder(reflect.TypeOf((*editSettings)(nil)))
	require.NoError(t, err)
	_, err = b.IO(New(newMapStore(), ModeRead), "Common", editSettings{})
	assert.Error(t, err)
	_, err = b.IO(New(newMapStore(), ModeRead), "Common", (*editSettings)(nil))
	assert.Error(t, err)

	_, err = b.IO(New(newMapStore(), ModeRead), "Common", &struct{ A int }{})
	assert.ErrorContains(t, err, "binder of")

	_, err = Bind(New(newMapStore(), ModeRead), "Common", 1)
	assert.Error(t, err)
	_, err = NewBinder(nil)
	assert.ErrorContains(t, err, "not pointer type")
	assert.NotPanics(t, func() {
		_, err = Bind(New(newMapStore(), ModeRead), "Common", nil)
	})
	assert.ErrorContains(t, err, "not pointer type")
}
