// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package yamlsource implements a jstreamer.Source that reads YAML documents.
//
// Each document in the input is decoded into a yaml.Node tree, whose nodes
// are reported as events one at a time, so that a stream of YAML documents
// can be read the same way as a stream of JSON values. Scalars are classified
// by their resolved tags:
//
//	!!null               Null
//	!!bool               Bool
//	!!int                Int, or Uint if it does not fit an int64
//	!!float              Float
//	!!str, !!timestamp,
//	  !!binary           Text (the literal text of the scalar)
//
// Scalars with any other tag are reported as Extension events whose text is
// the tag followed by the scalar text.
//
// Aliases are expanded in place. To bound the work a small document can
// demand, the number of nodes reached through aliases in one document is
// limited (see MaxAliasNodes). Merge keys ("<<") copy the fields of the
// merged mappings that the mapping does not define itself.
package yamlsource

import (
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/jstreamer"
	"gopkg.in/yaml.v3"
)

// DefaultMaxAliasNodes is the default limit on the number of nodes reached
// through aliases in a single document.
const DefaultMaxAliasNodes = 1 << 18

// An Option configures a Source.
type Option func(*Source)

// MaxAliasNodes sets the maximum number of nodes reached through aliases in a
// single document. Expanding more reports an *Error. If n <= 0, expansion is
// not limited.
func MaxAliasNodes(n int) Option { return func(s *Source) { s.maxAlias = max(n, 0) } }

// Source is a jstreamer.Source that reads YAML documents from an io.Reader.
type Source struct {
	dec      *yaml.Decoder
	stk      jstreamer.Stack
	walk     []frame // nodes of the current document being reported
	maxAlias int     // 0 means unlimited
	aliased  int     // nodes reached through aliases in this document
	err      error   // sticky
}

// A frame is a node whose events are being reported.
type frame struct {
	node    *yaml.Node
	content []*yaml.Node // children of a collection; key/value pairs for a mapping
	next    int          // index of the next child to visit, or -1 before the start
	own     int          // content[own:] was copied by merge keys
	alias   bool         // reached through an alias
}

// New constructs a Source that reads YAML documents from r.
func New(r io.Reader, opts ...Option) *Source {
	s := &Source{dec: yaml.NewDecoder(r), maxAlias: DefaultMaxAliasNodes}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next satisfies the jstreamer.Source interface. It returns io.EOF after the
// last document of the input.
func (s *Source) Next() (jstreamer.Event, error) {
	for s.err == nil {
		if len(s.walk) == 0 {
			s.err = s.decode()
			continue
		}
		key, e, ok, err := s.step()
		if err != nil {
			s.err = err
		} else if !ok {
			continue
		} else if e.Kind == jstreamer.Invalid {
			s.err = s.stk.SetKey(key)
		} else if err := s.stk.Observe(e); err != nil {
			s.err = err
		} else {
			return e, nil
		}
	}
	return jstreamer.Event{}, s.err
}

// decode reads the next document from the input and starts walking it.
func (s *Source) decode() error {
	doc := new(yaml.Node)
	if err := s.dec.Decode(doc); errors.Is(err, io.EOF) {
		return io.EOF
	} else if err != nil {
		return &Error{Message: err.Error(), err: err}
	}
	s.aliased = 0
	if doc.Kind == yaml.DocumentNode && len(doc.Content) == 0 {
		doc = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
	}
	return s.push(doc, false)
}

// push begins a frame for n, reached through an alias if alias is true.
func (s *Source) push(n *yaml.Node, alias bool) error {
	if alias && s.maxAlias > 0 {
		if s.aliased++; s.aliased > s.maxAlias {
			return nodeError(n, "document expands more than %d nodes through aliases", s.maxAlias)
		}
	}
	s.walk = append(s.walk, frame{node: n, next: -1, alias: alias})
	return nil
}

func (s *Source) pop() { s.walk = s.walk[:len(s.walk)-1] }

// step advances the walk of the current document. It returns a field name
// (with an Invalid event), an event, or ok == false if the walk advanced
// without producing either.
func (s *Source) step() (key string, e jstreamer.Event, ok bool, err error) {
	top := &s.walk[len(s.walk)-1]
	n := top.node
	switch n.Kind {
	case yaml.DocumentNode:
		if top.next < 0 {
			top.next = 0
		}
		if top.next >= len(n.Content) {
			s.pop()
			return "", e, false, nil
		}
		top.next++
		return "", e, false, s.push(n.Content[top.next-1], top.alias)

	case yaml.MappingNode:
		if top.next < 0 {
			pairs, own, err := s.mergedPairs(n, nil)
			if err != nil {
				return "", e, false, err
			}
			top.content, top.own, top.next = pairs, own, 0
			return "", jstreamer.BeginRecord, true, nil
		}
		if top.next >= len(top.content) {
			s.pop()
			return "", jstreamer.EndRecord, true, nil
		}
		i := top.next
		top.next++
		if i%2 == 0 {
			k := resolve(top.content[i])
			if k.Kind != yaml.ScalarNode {
				return "", e, false, nodeError(k, "field name is not a scalar")
			}
			return k.Value, e, true, nil
		}
		return "", e, false, s.push(top.content[i], top.alias || i >= top.own)

	case yaml.SequenceNode:
		if top.next < 0 {
			top.next = 0
			return "", jstreamer.BeginArray, true, nil
		}
		if top.next >= len(n.Content) {
			s.pop()
			return "", jstreamer.EndArray, true, nil
		}
		top.next++
		return "", e, false, s.push(n.Content[top.next-1], top.alias)

	case yaml.AliasNode:
		if n.Alias == nil {
			return "", e, false, nodeError(n, "undefined alias %q", n.Value)
		}
		for _, f := range s.walk {
			if f.node == n.Alias {
				return "", e, false, nodeError(n, "alias %q refers to itself", n.Value)
			}
		}
		s.pop()
		return "", e, false, s.push(n.Alias, true)

	case yaml.ScalarNode:
		s.pop()
		e, err := scalarEvent(n)
		return "", e, err == nil, err

	default:
		return "", e, false, nodeError(n, "unknown node kind %v", n.Kind)
	}
}

// resolve returns the node an alias refers to, or n itself.
func resolve(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return n.Alias
	}
	return n
}

func isMerge(k *yaml.Node) bool { return k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" }

// mergedPairs returns the key/value pairs of mapping n, and the number of
// them that n defines itself. If n has merge keys, the fields of the merged
// mappings that n does not define are added after its own, earlier merge
// sources taking precedence over later ones. Pairs copied from a merged
// mapping count against the alias limit. The active slice holds the mappings
// being merged, to reject cycles.
func (s *Source) mergedPairs(n *yaml.Node, active []*yaml.Node) ([]*yaml.Node, int, error) {
	var hasMerge bool
	for i := 0; i+1 < len(n.Content); i += 2 {
		if isMerge(n.Content[i]) {
			hasMerge = true
			break
		}
	}
	if !hasMerge {
		return n.Content, len(n.Content), nil
	}
	for _, m := range active {
		if m == n {
			return nil, 0, nodeError(n, "merge refers to itself")
		}
	}
	active = append(active, n)

	var pairs, sources []*yaml.Node
	seen := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if !isMerge(k) {
			seen[resolve(k).Value] = true
			pairs = append(pairs, k, v)
			continue
		}
		switch v = resolve(v); v.Kind {
		case yaml.MappingNode:
			sources = append(sources, v)
		case yaml.SequenceNode:
			for _, elt := range v.Content {
				sources = append(sources, resolve(elt))
			}
		default:
			return nil, 0, nodeError(v, "merge value is not a mapping")
		}
	}
	own := len(pairs)
	for _, src := range sources {
		if src.Kind != yaml.MappingNode {
			return nil, 0, nodeError(src, "merge value is not a mapping")
		}
		sub, _, err := s.mergedPairs(src, active)
		if err != nil {
			return nil, 0, err
		}
		for i := 0; i+1 < len(sub); i += 2 {
			key := resolve(sub[i]).Value
			if seen[key] {
				continue
			}
			seen[key] = true
			if s.maxAlias > 0 {
				if s.aliased++; s.aliased > s.maxAlias {
					return nil, 0, nodeError(src, "document expands more than %d nodes through aliases", s.maxAlias)
				}
			}
			pairs = append(pairs, sub[i], sub[i+1])
		}
	}
	return pairs, own, nil
}

// Top satisfies the jstreamer.Source interface.
func (s *Source) Top() (jstreamer.Frame, bool) { return s.stk.Top() }

// Path renders the location of the most recent event.
func (s *Source) Path() string { return s.stk.Path() }

func scalarEvent(n *yaml.Node) (jstreamer.Event, error) {
	switch n.ShortTag() {
	case "!!null":
		return jstreamer.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return jstreamer.Event{}, nodeError(n, "invalid bool %q", n.Value)
		}
		return jstreamer.Bool(b), nil
	case "!!int":
		var z int64
		if err := n.Decode(&z); err == nil {
			return jstreamer.Int(z), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return jstreamer.Uint(u), nil
		}
		var f float64
		if err := n.Decode(&f); err == nil {
			return jstreamer.Float(f), nil
		}
		return jstreamer.Event{}, nodeError(n, "invalid integer %q", n.Value)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return jstreamer.Event{}, nodeError(n, "invalid number %q", n.Value)
		}
		return jstreamer.Float(f), nil
	case "!!str", "!!timestamp", "!!binary":
		return jstreamer.Text(n.Value), nil
	default:
		return jstreamer.Unknown(n.Tag + " " + n.Value), nil
	}
}

// Error is the concrete type of errors reported by a Source for input that is
// not valid or cannot be represented as events.
type Error struct {
	Line, Column int // 1-based; zero if unknown
	Message      string

	err error
}

func nodeError(n *yaml.Node, msg string, args ...any) *Error {
	return &Error{Line: n.Line, Column: n.Column, Message: fmt.Sprintf(msg, args...)}
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.Line == 0 {
		return "invalid YAML: " + e.Message
	}
	return fmt.Sprintf("at %d:%d: %s", e.Line, e.Column, e.Message)
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.err }
