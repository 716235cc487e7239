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

package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/cloudwego/profilekit/profile"
	"github.com/cloudwego/profilekit/store/inistore"
	"github.com/cloudwego/profilekit/store/jsonstore"
	"github.com/cloudwego/profilekit/store/sqlstore"
	"github.com/cloudwego/profilekit/store/tomlstore"
	"github.com/cloudwego/profilekit/store/yamlstore"
)

// backend is an opened profile store of any supported format.
type backend interface {
	profile.Store
	inistore.Ranger
	Save() error
	Close() error
}

func openBackend(format, path string, logger *slog.Logger) (backend, error) {
	switch format {
	case "json":
		s := jsonstore.New()
		if exists(path) {
			var err error
			if s, err = jsonstore.Load(path); err != nil {
				return nil, err
			}
		}
		s.SetLogger(logger)
		return &docBackend{docStore: s, save: func() error { return s.WriteFile(path) }}, nil
	case "toml":
		s := tomlstore.New()
		if exists(path) {
			var err error
			if s, err = tomlstore.Load(path); err != nil {
				return nil, err
			}
		}
		return &docBackend{docStore: s, save: func() error { return s.WriteFile(path) }}, nil
	case "yaml":
		s := yamlstore.New()
		if exists(path) {
			var err error
			if s, err = yamlstore.Load(path); err != nil {
				return nil, err
			}
		}
		return &docBackend{docStore: s, save: func() error { return s.WriteFile(path) }}, nil
	case "sqlite":
		s, err := sqlstore.Open(path, sqlstore.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return sqlBackend{s}, nil
	}
	f, err := inistore.Open(path, inistore.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return iniBackend{f}, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

type docStore interface {
	profile.Store
	inistore.Ranger
}

type docBackend struct {
	docStore
	save func() error
}

func (b *docBackend) Save() error  { return b.save() }
func (b *docBackend) Close() error { return nil }

type iniBackend struct{ *inistore.File }

func (iniBackend) Close() error { return nil }

// sqlBackend writes through on Set.
type sqlBackend struct{ *sqlstore.Store }

func (sqlBackend) Save() error { return nil }
