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

package inistore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bytedance/gopkg/util/xxhash3"

	"github.com/cloudwego/profilekit/store/memstore"
)

// File is a profile store backed by an INI file.
//
// Entries are held in memory; Save writes them back without comments.
// A File is not safe for concurrent use.
type File struct {
	path   string
	store  *memstore.Store
	sum    uint64 // hash of the file content last loaded or saved
	logger *slog.Logger
}

// Option configures a File.
type Option func(f *File)

// WithLogger sets the logger of a File.
func WithLogger(l *slog.Logger) Option {
	return func(f *File) {
		if l != nil {
			f.logger = l
		}
	}
}

// Open loads the INI file at path.
// A missing file gives an empty File; Save creates it once it has entries.
func Open(path string, opts ...Option) (*File, error) {
	f := &File{path: path, logger: slog.Default()}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Reload discards unsaved changes and reads the file again.
func (f *File) Reload() error {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.store = memstore.New()
		f.sum = xxhash3.Hash(nil)
		f.logger.Debug("inistore: file not found, starting empty", "path", f.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("inistore: reading %s: %w", f.path, err)
	}
	s, err := Unmarshal(data)
	if err != nil {
		return fmt.Errorf("inistore: parsing %s: %w", f.path, err)
	}
	f.store = s
	f.sum = xxhash3.Hash(data)
	f.logger.Debug("inistore: loaded", "path", f.path, "entries", s.Len())
	return nil
}

// Path returns the file path.
func (f *File) Path() string { return f.path }

// Store returns the in-memory entries.
func (f *File) Store() *memstore.Store { return f.store }

// Get returns the text stored under (section, key).
func (f *File) Get(section, key string) (string, bool) {
	return f.store.Get(section, key)
}

// Set stores value under (section, key).
// It returns false if the entry cannot be represented in INI text.
func (f *File) Set(section, key, value string) bool {
	if !ValidEntry(section, key, value) {
		return false
	}
	return f.store.Set(section, key, value)
}

// Range calls fn for every entry in order until fn returns false.
func (f *File) Range(fn func(section, key, value string) bool) {
	f.store.Range(fn)
}

// Dirty reports whether Save would change the file content.
// Files with comments or non-canonical spacing are always dirty.
func (f *File) Dirty() bool {
	return xxhash3.Hash(Marshal(f.store)) != f.sum
}

// Save writes the entries to the file if they changed.
// The file is replaced atomically.
func (f *File) Save() error {
	data := Marshal(f.store)
	sum := xxhash3.Hash(data)
	if sum == f.sum {
		f.logger.Debug("inistore: unchanged, skip saving", "path", f.path)
		return nil
	}
	if err := writeFileAtomic(f.path, data); err != nil {
		return fmt.Errorf("inistore: saving %s: %w", f.path, err)
	}
	f.sum = sum
	f.logger.Debug("inistore: saved", "path", f.path, "bytes", len(data))
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
