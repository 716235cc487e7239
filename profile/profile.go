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
	"log/slog"

	"github.com/cloudwego/profilekit/charset"
)

// Store is the raw text profile store a Profile reads from and writes to.
type Store interface {
	// Get returns the raw text of (section, key).
	// The bool result is false if the entry does not exist.
	Get(section, key string) (string, bool)

	// Set stores the raw text of (section, key).
	// It returns false if the store rejects the entry.
	Set(section, key, value string) bool
}

// Mode selects the direction of IO.
type Mode uint8

const (
	// ModeRead decodes stored text into variables.
	ModeRead Mode = iota
	// ModeWrite encodes variables into stored text.
	ModeWrite
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	}
	return "unknown"
}

// Option configures a Profile.
type Option func(p *Profile)

// WithCharset sets the charset used by narrow character values.
func WithCharset(cs *charset.Charset) Option {
	return func(p *Profile) {
		p.charset = cs
	}
}

// WithLogger sets the logger which receives debug records for missing,
// rejected or undecodable entries.
func WithLogger(l *slog.Logger) Option {
	return func(p *Profile) {
		if l != nil {
			p.logger = l
		}
	}
}

var discardLogger = slog.New(slog.DiscardHandler)

// Profile binds a Store to a Mode.
type Profile struct {
	store   Store
	mode    Mode
	charset *charset.Charset
	logger  *slog.Logger
}

// New returns a Profile accessing store in the given mode.
func New(store Store, mode Mode, opts ...Option) *Profile {
	p := &Profile{
		store:   store,
		mode:    mode,
		charset: charset.Default,
		logger:  discardLogger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mode returns the mode of p.
func (p *Profile) Mode() Mode { return p.mode }

// IsReading reports whether p decodes stored text into variables.
func (p *Profile) IsReading() bool { return p.mode == ModeRead }

// Store returns the underlying store.
func (p *Profile) Store() Store { return p.store }

// WithMode returns a copy of p using mode m.
func (p *Profile) WithMode(m Mode) *Profile {
	ret := *p
	ret.mode = m
	return &ret
}

// IO transfers v from or to (section, key) depending on the mode of p.
//
// In ModeRead, it returns false and leaves v unchanged if the entry does not exist.
// In ModeWrite, it returns whether the store accepted the encoded text.
func (p *Profile) IO(section, key string, v Value) bool {
	if section == "" || key == "" {
		return false
	}
	if p.mode == ModeRead {
		text, ok := p.store.Get(section, key)
		if !ok {
			p.logger.Debug("profile: entry not found", "section", section, "key", key)
			return false
		}
		if err := v.Decode(text, p.charset); err != nil {
			p.logger.Debug("profile: decode failed", "section", section, "key", key, "error", err)
			return false
		}
		return true
	}

	text, err := v.Encode(p.charset)
	if err != nil {
		p.logger.Debug("profile: encode failed", "section", section, "key", key, "error", err)
		return false
	}
	if !p.store.Set(section, key, text) {
		p.logger.Debug("profile: entry rejected", "section", section, "key", key)
		return false
	}
	return true
}

// IO transfers v from or to (section, key) of store in the given mode,
// using the default charset.
func IO(store Store, mode Mode, section, key string, v Value) bool {
	p := Profile{store: store, mode: mode, charset: charset.Default, logger: discardLogger}
	return p.IO(section, key, v)
}
