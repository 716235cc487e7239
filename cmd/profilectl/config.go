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
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/cloudwego/profilekit/charset"
)

const (
	envFile    = "PROFILECTL_FILE"
	envFormat  = "PROFILECTL_FORMAT"
	envCharset = "PROFILECTL_CHARSET"
)

// config holds the global flags, with environment fallbacks applied.
type config struct {
	File    string
	Format  string // ini, json, toml, yaml or sqlite
	Charset string
	Verbose bool
}

// resolve fills unset fields from the environment and validates the result.
// A .env file in the working directory is loaded first if present.
func (c *config) resolve() error {
	godotenv.Load() // missing .env is fine

	if c.File == "" {
		c.File = os.Getenv(envFile)
	}
	if c.File == "" {
		return fmt.Errorf("--file or %s is required", envFile)
	}
	if c.Format == "" {
		c.Format = os.Getenv(envFormat)
	}
	if c.Format == "" {
		c.Format = formatByExt(c.File)
	}
	c.Format = strings.ToLower(c.Format)
	switch c.Format {
	case "ini", "json", "toml", "yaml", "sqlite":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.Charset == "" {
		c.Charset = os.Getenv(envCharset)
	}
	return nil
}

func formatByExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	}
	return "ini"
}

func (c *config) charset() (*charset.Charset, error) {
	cs, ok := charset.Lookup(c.Charset)
	if !ok {
		return nil, fmt.Errorf("unknown charset %q", c.Charset)
	}
	return cs, nil
}

func (c *config) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
