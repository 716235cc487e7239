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

package profile_test

import (
	"fmt"

	"github.com/cloudwego/profilekit/profile"
	"github.com/cloudwego/profilekit/store/memstore"
)

type tabSettings struct {
	TabSpace   int
	AutoIndent bool
	FontFace   [32]rune
}

func (c *tabSettings) IO(p *profile.Profile) {
	p.IO("Common", "nTabSpace", profile.Int(&c.TabSpace))
	p.IO("Common", "bAutoIndent", profile.Bool(&c.AutoIndent))
	p.IO("Common", "szFontFace", profile.Runes(c.FontFace[:]))
}

func Example() {
	store := memstore.New()

	saved := tabSettings{TabSpace: 4, AutoIndent: true}
	copy(saved.FontFace[:], []rune("MS Gothic"))
	saved.IO(profile.New(store, profile.ModeWrite))

	v, _ := store.Get("Common", "bAutoIndent")
	fmt.Println(v)

	var loaded tabSettings
	loaded.IO(profile.New(store, profile.ModeRead))
	fmt.Println(loaded.TabSpace, loaded.AutoIndent)
	// Output:
	// 1
	// 4 true
}
