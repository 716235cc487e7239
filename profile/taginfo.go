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
	"strings"
)

const (
	profileTag = "profile"
	sectionTag = "section"

	charOption = "char"
)

type tagInfo struct {
	Key     string
	Options []string
}

func (ti *tagInfo) Parse(tagvalue string) {
	key, opts, _ := strings.Cut(tagvalue, ",")
	if len(key) > 0 {
		ti.Key = key
	}
	ti.Options = ti.Options[:0]
	for opts != "" {
		o := ""
		o, opts, _ = strings.Cut(opts, ",")
		ti.Options = append(ti.Options, o)
	}
}

func (ti *tagInfo) Skip() bool { return ti.Key == "-" }

func (ti *tagInfo) Has(opt string) bool {
	for _, o := range ti.Options {
		if o == opt {
			return true
		}
	}
	return false
}

// lookupFieldTag returns the tag info of a field, or nil if the field is not bound.
// An empty key falls back to the field name.
func lookupFieldTag(f reflect.StructField) *tagInfo {
	tagv, ok := f.Tag.Lookup(profileTag)
	if !ok {
		return nil
	}
	ti := &tagInfo{Key: f.Name}
	ti.Parse(tagv)
	if ti.Skip() {
		return nil
	}
	return ti
}
