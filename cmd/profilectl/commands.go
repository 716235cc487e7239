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
	"strconv"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/cloudwego/profilekit/charset"
	"github.com/cloudwego/profilekit/profile"
	"github.com/cloudwego/profilekit/store/inistore"
)

func newRootCmd() *cobra.Command {
	cfg := &config{}
	root := &cobra.Command{
		Use:           "profilectl",
		Short:         "Read and write typed profile entries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.resolve()
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&cfg.File, "file", "", "profile file (default $"+envFile+")")
	flags.StringVar(&cfg.Format, "format", "", "store format: ini, json, toml, yaml or sqlite (default by extension)")
	flags.StringVar(&cfg.Charset, "charset", "", "narrow charset: windows-1252 or shift_jis")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "log profile access")

	root.AddCommand(newGetCmd(cfg), newSetCmd(cfg), newDumpCmd(cfg))
	return root
}

// session is an opened backend plus the Profile options derived from cfg.
type session struct {
	backend
	opts []profile.Option
	cs   *charset.Charset
}

func openSession(cmd *cobra.Command, cfg *config) (*session, error) {
	cs, err := cfg.charset()
	if err != nil {
		return nil, err
	}
	logger := cfg.logger(cmd.ErrOrStderr())
	b, err := openBackend(cfg.Format, cfg.File, logger)
	if err != nil {
		return nil, err
	}
	return &session{
		backend: b,
		opts:    []profile.Option{profile.WithCharset(cs), profile.WithLogger(logger)},
		cs:      cs,
	}, nil
}

func (s *session) profile(mode profile.Mode) *profile.Profile {
	return profile.New(s.backend, mode, s.opts...)
}

func newGetCmd(cfg *config) *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "get <section> <key>",
		Short: "Print the typed value of an entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tv, err := newTypedValue(typ)
			if err != nil {
				return err
			}
			s, err := openSession(cmd, cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			if !s.profile(profile.ModeRead).IO(args[0], args[1], tv.value) {
				return fmt.Errorf("%s/%s not found", args[0], args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), tv.format(s.cs))
			return nil
		},
	}
	cmd.Flags().StringVar(&typ, "type", "string", "value type: "+typeNames)
	return cmd
}

func newSetCmd(cfg *config) *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "set <section> <key> <value>",
		Short: "Store a typed value and save the profile",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tv, err := newTypedValue(typ)
			if err != nil {
				return err
			}
			s, err := openSession(cmd, cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := tv.parse(args[2], s.cs); err != nil {
				return fmt.Errorf("invalid %s value %q: %w", typ, args[2], err)
			}
			if !s.profile(profile.ModeWrite).IO(args[0], args[1], tv.value) {
				return fmt.Errorf("%s/%s rejected by the %s store", args[0], args[1], cfg.Format)
			}
			return s.Save()
		},
	}
	cmd.Flags().StringVar(&typ, "type", "string", "value type: "+typeNames)
	return cmd
}

func newDumpCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print every entry as INI text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, cfg)
			if err != nil {
				return err
			}
			defer s.Close()
			return inistore.Encode(cmd.OutOrStdout(), s)
		},
	}
}

const typeNames = "bool, int, uint, char, rune or string"

// typedValue binds a variable of the type named by --type to its profile.Value
// and to the conversions used for command line text.
type typedValue struct {
	value  profile.Value
	parse  func(arg string, cs *charset.Charset) error
	format func(cs *charset.Charset) string
}

func newTypedValue(typ string) (*typedValue, error) {
	switch typ {
	case "bool":
		var b bool
		return &typedValue{
			value: profile.Bool(&b),
			parse: func(arg string, _ *charset.Charset) (err error) {
				b, err = strconv.ParseBool(arg)
				return err
			},
			format: func(*charset.Charset) string { return strconv.FormatBool(b) },
		}, nil
	case "int":
		var n int64
		return &typedValue{
			value: profile.Int(&n),
			parse: func(arg string, _ *charset.Charset) (err error) {
				n, err = strconv.ParseInt(arg, 10, 64)
				return err
			},
			format: func(*charset.Charset) string { return strconv.FormatInt(n, 10) },
		}, nil
	case "uint":
		var n uint64
		return &typedValue{
			value: profile.Int(&n),
			parse: func(arg string, _ *charset.Charset) (err error) {
				n, err = strconv.ParseUint(arg, 10, 64)
				return err
			},
			format: func(*charset.Charset) string { return strconv.FormatUint(n, 10) },
		}, nil
	case "char":
		var c byte
		return &typedValue{
			value: profile.Char(&c),
			parse: func(arg string, cs *charset.Charset) error {
				r, _ := utf8.DecodeRuneInString(arg)
				b, ok := cs.NarrowFromWide(r)
				if !ok || utf8.RuneCountInString(arg) != 1 {
					return fmt.Errorf("not a single %s character", cs.Name())
				}
				c = b
				return nil
			},
			format: func(cs *charset.Charset) string {
				if r, ok := cs.WideFromNarrow(c); ok && c != 0 {
					return string(r)
				}
				return ""
			},
		}, nil
	case "rune":
		var r rune
		return &typedValue{
			value: profile.Rune(&r),
			parse: func(arg string, _ *charset.Charset) error {
				if utf8.RuneCountInString(arg) != 1 {
					return fmt.Errorf("not a single character")
				}
				r, _ = utf8.DecodeRuneInString(arg)
				return nil
			},
			format: func(*charset.Charset) string {
				if r == 0 {
					return ""
				}
				return string(r)
			},
		}, nil
	case "string":
		var s string
		return &typedValue{
			value: profile.String(&s),
			parse: func(arg string, _ *charset.Charset) error {
				s = arg
				return nil
			},
			format: func(*charset.Charset) string { return s },
		}, nil
	}
	return nil, fmt.Errorf("unknown type %q, want %s", typ, typeNames)
}
