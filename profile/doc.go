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

// Package profile reads and writes typed values in a textual profile store.
//
// A profile store keeps raw text under (section, key) pairs, like an INI file.
// This package converts between that text and Go variables with a single call
// whose direction is given by a Mode:
//
//	p := profile.New(store, profile.ModeRead)
//	p.IO("Common", "nTabSpace", profile.Int(&cfg.TabSpace))
//	p.IO("Common", "bAutoIndent", profile.Bool(&cfg.AutoIndent))
//	p.IO("Common", "szFontFace", profile.Runes(cfg.FontFace[:]))
//
// The same function can be used for loading and saving settings by running it
// once with ModeRead and once with ModeWrite.
//
// The conversion is selected by the adaptor the caller wraps its variable with,
// so it is fixed at compile time:
//
//   - Bool: "0" is false, any other text is true; written as "1" or "0".
//   - Int: leading decimal integer like C atoi, written in base 10.
//     Works for every integer type, including enums and narrow integers.
//   - WrapInt: like Int but the value passes through an int.
//   - Char: a narrow character converted through a charset.Charset.
//   - Rune: a single wide character.
//   - Buffer and Runes: fixed capacity wide strings, truncated on read.
//   - String: raw text.
//   - Text: any encoding.TextMarshaler and encoding.TextUnmarshaler.
//
// Tagged structs can be transferred as a whole with a Binder.
package profile
