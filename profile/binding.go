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
	"errors"
	"fmt"
	"reflect"
	"sync"
	"unsafe"
)

// Binder transfers the tagged fields of a struct type with a Profile.
//
// Fields are bound with the `profile:"key[,char]"` tag; an empty key uses the
// field name and "-" skips the field. Nested structs tagged with
// `section:"Name"` are bound in that section. Supported field types are bool,
// all integer kinds, string, rune arrays, and types implementing TextValue.
// The char option maps byte and rune fields to Char and Rune instead of Int.
type Binder struct {
	rt     reflect.Type
	fields []*fieldInfo
}

type fieldInfo struct {
	index     []int
	fieldName string
	section   string // empty means the section passed to IO
	key       string
	newValue  func(rv reflect.Value) Value
}

// NewBinder creates a Binder for rt, which must be a pointer to struct type
// (e.g., reflect.TypeOf((*Settings)(nil))).
func NewBinder(rt reflect.Type) (*Binder, error) {
	if rt == nil || rt.Kind() != reflect.Pointer {
		return nil, errors.New("profile: not pointer type")
	}
	rt = rt.Elem()
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("profile: unsupported %s type binding", rt)
	}
	b := &Binder{rt: rt}
	if err := b.addFields(rt, nil, ""); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Binder) addFields(rt reflect.Type, index []int, section string) error {
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() && !f.Anonymous {
			continue
		}
		idx := make([]int, len(index)+1)
		copy(idx, index)
		idx[len(index)] = i

		if f.Type.Kind() == reflect.Struct && !reflect.PointerTo(f.Type).Implements(textValueType) {
			sec, ok := f.Tag.Lookup(sectionTag)
			if !ok && !f.Anonymous {
				continue
			}
			if !ok {
				sec = section
			}
			if err := b.addFields(f.Type, idx, sec); err != nil {
				return err
			}
			continue
		}

		ti := lookupFieldTag(f)
		if ti == nil {
			continue
		}
		newValue, err := getValueFactory(f.Type, ti)
		if err != nil {
			return fmt.Errorf("profile: field %q: %w", f.Name, err)
		}
		b.fields = append(b.fields, &fieldInfo{
			index:     idx,
			fieldName: f.Name,
			section:   section,
			key:       ti.Key,
			newValue:  newValue,
		})
	}
	return nil
}

// NumField returns the number of bound fields.
func (b *Binder) NumField() int { return len(b.fields) }

// IO transfers every bound field of v, a pointer to the Binder's struct type,
// and returns the number of fields transferred successfully.
func (b *Binder) IO(p *Profile, section string, v any) (int, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return 0, errors.New("profile: not pointer type")
	}
	if rv.IsNil() {
		return 0, errors.New("profile: nil pointer")
	}
	rv = rv.Elem()
	if rv.Type() != b.rt {
		return 0, fmt.Errorf("profile: binder of %s got %s", b.rt, rv.Type())
	}
	n := 0
	for _, f := range b.fields {
		sec := f.section
		if sec == "" {
			sec = section
		}
		if p.IO(sec, f.key, f.newValue(rv.FieldByIndex(f.index))) {
			n++
		}
	}
	return n, nil
}

var binderCache sync.Map // reflect.Type -> *Binder

// Bind transfers the tagged fields of v, a pointer to struct, with p.
// Binders are cached per type.
func Bind(p *Profile, section string, v any) (int, error) {
	rt := reflect.TypeOf(v)
	if b, ok := binderCache.Load(rt); ok {
		return b.(*Binder).IO(p, section, v)
	}
	b, err := NewBinder(rt)
	if err != nil {
		return 0, err
	}
	binderCache.Store(rt, b)
	return b.IO(p, section, v)
}

var textValueType = reflect.TypeOf((*TextValue)(nil)).Elem()

func fieldPointer(rv reflect.Value) unsafe.Pointer {
	return unsafe.Pointer(rv.UnsafeAddr())
}

// getValueFactory selects the adaptor for a field type.
// Priority: TextValue > char option > kind.
func getValueFactory(ft reflect.Type, ti *tagInfo) (func(rv reflect.Value) Value, error) {
	if reflect.PointerTo(ft).Implements(textValueType) {
		return func(rv reflect.Value) Value {
			return Text(rv.Addr().Interface().(TextValue))
		}, nil
	}
	if ti.Has(charOption) {
		switch ft.Kind() {
		case reflect.Uint8:
			return func(rv reflect.Value) Value { return Char((*byte)(fieldPointer(rv))) }, nil
		case reflect.Int32:
			return func(rv reflect.Value) Value { return Rune((*rune)(fieldPointer(rv))) }, nil
		}
		return nil, fmt.Errorf("char option on %s", ft)
	}
	if ft.Kind() == reflect.Array && ft.Elem().Kind() == reflect.Int32 {
		n := ft.Len()
		return func(rv reflect.Value) Value {
			return Runes(unsafe.Slice((*rune)(fieldPointer(rv)), n))
		}, nil
	}
	if fn := kind2factory[ft.Kind()]; fn != nil {
		return fn, nil
	}
	return nil, fmt.Errorf("unsupported type %s", ft)
}

var kind2factory = map[reflect.Kind]func(rv reflect.Value) Value{
	reflect.Bool:    func(rv reflect.Value) Value { return Bool((*bool)(fieldPointer(rv))) },
	reflect.Int:     func(rv reflect.Value) Value { return Int((*int)(fieldPointer(rv))) },
	reflect.Int8:    func(rv reflect.Value) Value { return Int((*int8)(fieldPointer(rv))) },
	reflect.Int16:   func(rv reflect.Value) Value { return Int((*int16)(fieldPointer(rv))) },
	reflect.Int32:   func(rv reflect.Value) Value { return Int((*int32)(fieldPointer(rv))) },
	reflect.Int64:   func(rv reflect.Value) Value { return Int((*int64)(fieldPointer(rv))) },
	reflect.Uint:    func(rv reflect.Value) Value { return Int((*uint)(fieldPointer(rv))) },
	reflect.Uint8:   func(rv reflect.Value) Value { return Int((*uint8)(fieldPointer(rv))) },
	reflect.Uint16:  func(rv reflect.Value) Value { return Int((*uint16)(fieldPointer(rv))) },
	reflect.Uint32:  func(rv reflect.Value) Value { return Int((*uint32)(fieldPointer(rv))) },
	reflect.Uint64:  func(rv reflect.Value) Value { return Int((*uint64)(fieldPointer(rv))) },
	reflect.Uintptr: func(rv reflect.Value) Value { return Int((*uintptr)(fieldPointer(rv))) },
	reflect.String:  func(rv reflect.Value) Value { return String((*string)(fieldPointer(rv))) },
}
