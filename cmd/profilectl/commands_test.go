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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSetGet(t *testing.T) {
	for _, name := range []string{"editor.ini", "editor.json", "editor.toml", "editor.yaml", "editor.db"} {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), name)
			set := func(section, key, value, typ string) {
				_, err := execute(t, "--file", file, "set", section, key, value, "--type", typ)
				require.NoError(t, err)
			}
			get := func(section, key, typ string) string {
				out, err := execute(t, "--file", file, "get", section, key, "--type", typ)
				require.NoError(t, err)
				return strings.TrimSuffix(out, "\n")
			}

			set("Common", "nTabSpace", "4", "int")
			set("Common", "nMaxLine", "18446744073709551615", "uint")
			set("Common", "bAutoIndent", "true", "bool")
			set("Common", "cIndent", "é", "char")
			set("Common", "wcQuote", "「", "rune")
			set("Common", "szFont", "MS Gothic", "string")

			assert.Equal(t, "4", get("Common", "nTabSpace", "int"))
			assert.Equal(t, "18446744073709551615", get("Common", "nMaxLine", "uint"))
			assert.Equal(t, "true", get("Common", "bAutoIndent", "bool"))
			assert.Equal(t, "é", get("Common", "cIndent", "char"))
			assert.Equal(t, "「", get("Common", "wcQuote", "rune"))
			assert.Equal(t, "MS Gothic", get("Common", "szFont", "string"))

			// bool is stored as 1/0
			assert.Equal(t, "1", get("Common", "bAutoIndent", "string"))

			_, err := execute(t, "--file", file, "get", "Common", "missing")
			assert.ErrorContains(t, err, "not found")
		})
	}
}

func TestDump(t *testing.T) {
	file := filepath.Join(t.TempDir(), "editor.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"Common":{"nTabSpace":4,"szFont":"MS Gothic"},"Window":{"nWidth":640}}`), 0o644))

	out, err := execute(t, "--file", file, "dump")
	require.NoError(t, err)
	assert.Equal(t, "[Common]\r\nnTabSpace=4\r\nszFont=MS Gothic\r\n\r\n[Window]\r\nnWidth=640\r\n", out)
}

func TestFormatOverride(t *testing.T) {
	file := filepath.Join(t.TempDir(), "profile.dat")
	_, err := execute(t, "--file", file, "--format", "toml", "set", "A", "k", "v")
	require.NoError(t, err)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[A]")
}

func TestCharset(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sjis.ini")
	_, err := execute(t, "--file", file, "--charset", "shift_jis", "set", "A", "c", "ｱ", "--type", "char")
	require.NoError(t, err)
	out, err := execute(t, "--file", file, "--charset", "shift_jis", "get", "A", "c", "--type", "char")
	require.NoError(t, err)
	assert.Equal(t, "ｱ\n", out)

	// no single-byte form in windows-1252
	_, err = execute(t, "--file", file, "set", "A", "c", "ｱ", "--type", "char")
	assert.ErrorContains(t, err, "invalid char value")
}

func TestEnvFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "env.ini")
	require.NoError(t, os.WriteFile(file, []byte("[A]\nk=from env\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(envFile+"="+file+"\n"), 0o644))

	// restored to unset once the test ends
	t.Setenv(envFile, "")
	require.NoError(t, os.Unsetenv(envFile))
	t.Chdir(dir)

	out, err := execute(t, "get", "A", "k")
	require.NoError(t, err)
	assert.Equal(t, "from env\n", out)
}

func TestErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "p.ini")
	t.Setenv(envFile, "")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no file", []string{"get", "A", "k"}, "--file"},
		{"bad format", []string{"--file", file, "--format", "xml", "get", "A", "k"}, "unknown format"},
		{"bad charset", []string{"--file", file, "--charset", "koi8", "get", "A", "k"}, "unknown charset"},
		{"bad type", []string{"--file", file, "get", "A", "k", "--type", "float"}, "unknown type"},
		{"bad int", []string{"--file", file, "set", "A", "k", "x", "--type", "int"}, "invalid int value"},
		{"bad args", []string{"--file", file, "set", "A", "k"}, "accepts 3 arg(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
