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

// Package yamlstore keeps a profile in a YAML document whose top-level
// mapping holds one mapping per section.
//
// The document is edited as a node tree, so comments and the order of
// sections and keys survive a Set and a save.
package yamlstore

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var errNotMapping = errors.New("yamlstore: document is not a mapping")

// Store is a profile store over a YAML document. It is not safe for concurrent use.
type Store struct {
	doc  *yaml.Node
	root *yaml.Node
}

// New returns an empty Store.
func New() *Store {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	return &Store{
		doc:  &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}},
		root: root,
	}
}

// Parse decodes a YAML document. An empty document gives an empty Store.
func Parse(data []byte) (*Store, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yamlstore: %w", err)
	}
	if doc.Kind == 0 {
		return New(), nil
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errNotMapping
	}
	return &Store{doc: &doc, root: doc.Content[0]}, nil
}

// Load reads a Store from the YAML file at path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yamlstore: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal encodes the document.
func (s *Store) Marshal() ([]byte, error) {
	b, err := yaml.Marshal(s.doc)
	if err != nil {
		return nil, fmt.Errorf("yamlstore: %w", err)
	}
	return b, nil
}

// WriteFile writes the document to path.
func (s *Store) WriteFile(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("yamlstore: writing %s: %w", path, err)
	}
	return nil
}

// lookup returns the value node of key in mapping m, following aliases.
func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return deref(m.Content[i+1])
		}
	}
	return nil
}

func deref(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return n.Alias
	}
	return n
}

func isEntry(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.Tag != "!!null"
}

// Get returns the text of the scalar at (section, key).
func (s *Store) Get(section, key string) (string, bool) {
	sec := lookup(s.root, section)
	if sec == nil || sec.Kind != yaml.MappingNode {
		return "", false
	}
	v := lookup(sec, key)
	if !isEntry(v) {
		return "", false
	}
	return v.Value, true
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

// Set stores value as a YAML string under (section, key).
// It returns false if section is not a mapping or key holds a collection.
//
// Writing through an alias replaces the alias with its own copy, and writing
// to an anchored node first expands the aliases that refer to it, so a Set
// never changes any other entry.
func (s *Store) Set(section, key, value string) bool {
	var sec *yaml.Node
	si := valueIndex(s.root, section)
	if si < 0 {
		sec = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		s.root.Content = append(s.root.Content, scalar(section), sec)
	} else {
		n := s.root.Content[si]
		switch {
		case n.Kind == yaml.AliasNode:
			if deref(n).Kind != yaml.MappingNode {
				return false
			}
			sec = withComments(clone(deref(n)), n)
			s.root.Content[si] = sec
		case n.Kind == yaml.MappingNode:
			if n.Anchor != "" {
				s.detach(n)
			}
			sec = n
		default:
			return false
		}
	}

	ki := valueIndex(sec, key)
	if ki < 0 {
		sec.Content = append(sec.Content, scalar(key), scalar(value))
		return true
	}
	v := sec.Content[ki]
	switch {
	case v.Kind == yaml.AliasNode:
		if deref(v).Kind != yaml.ScalarNode {
			return false
		}
		sec.Content[ki] = withComments(scalar(value), v)
	case v.Kind == yaml.ScalarNode:
		if v.Anchor != "" {
			s.detach(v)
		}
		v.Tag, v.Value, v.Style = "!!str", value, 0
	default:
		return false
	}
	return true
}

// valueIndex returns the index of the value of key in mapping m, or -1.
func valueIndex(m *yaml.Node, key string) int {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return i + 1
		}
	}
	return -1
}

// clone deep copies n without anchors. Aliases inside n keep their targets.
func clone(n *yaml.Node) *yaml.Node {
	c := *n
	c.Anchor = ""
	if n.Content != nil {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = clone(child)
		}
	}
	return &c
}

func withComments(n, from *yaml.Node) *yaml.Node {
	n.HeadComment, n.LineComment, n.FootComment = from.HeadComment, from.LineComment, from.FootComment
	return n
}

// detach replaces every alias of target with a copy of target and drops
// the anchor, so target can be changed on its own.
func (s *Store) detach(target *yaml.Node) {
	var walk func(n *yaml.Node)
	walk = func(n *yaml.Node) {
		if n.Kind == yaml.AliasNode {
			if n.Alias == target {
				*n = *withComments(clone(target), n)
			}
			return
		}
		for _, child := range n.Content {
			walk(child)
		}
	}
	walk(s.doc)
	target.Anchor = ""
}

// Range calls fn for every entry in document order until fn returns false.
func (s *Store) Range(fn func(section, key, value string) bool) {
	for i := 0; i+1 < len(s.root.Content); i += 2 {
		sec := deref(s.root.Content[i+1])
		if sec.Kind != yaml.MappingNode {
			continue
		}
		name := s.root.Content[i].Value
		for j := 0; j+1 < len(sec.Content); j += 2 {
			if v := deref(sec.Content[j+1]); isEntry(v) && !fn(name, sec.Content[j].Value, v.Value) {
				return
			}
		}
	}
}
