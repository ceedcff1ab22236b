// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Supported values of the "type" keyword.
const (
	TypeNull    = "null"
	TypeBoolean = "boolean"
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeObject  = "object"
	TypeArray   = "array"
)

// IsSupportedType reports whether t is a member of the supported type set.
func IsSupportedType(t string) bool {
	switch t {
	case TypeNull, TypeBoolean, TypeString, TypeInteger, TypeNumber, TypeObject, TypeArray:
		return true
	}
	return false
}

// TypeSet holds the "type" keyword: a single type name or an ordered list
// of type names. A single name decodes as a one-element set. A nil set
// means the keyword is absent and the property is not addressable.
type TypeSet []string

// UnmarshalJSON accepts either a JSON string or a JSON array of strings.
func (ts *TypeSet) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("decoding type list: %w", err)
		}
		*ts = list
		return nil
	}
	var single string
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return fmt.Errorf("decoding type: %w", err)
	}
	*ts = TypeSet{single}
	return nil
}

// Is reports whether the set consists of exactly the one given type.
func (ts TypeSet) Is(t string) bool {
	return len(ts) == 1 && ts[0] == t
}

// Contains reports whether t is a member of the set.
func (ts TypeSet) Contains(t string) bool {
	return slices.Contains(ts, t)
}

// Node is a position where JSON Schema permits either a nested schema
// object or a boolean. Booleans are captured rather than interpreted:
// whether a boolean is legal depends on the keyword, so the consumer
// decides via Resolve or IsBool.
type Node struct {
	Bool   *bool
	Schema *Schema
}

// SchemaNode wraps a schema as a node.
func SchemaNode(s *Schema) *Node {
	return &Node{Schema: s}
}

// BoolNode wraps a boolean as a node.
func BoolNode(b bool) *Node {
	return &Node{Bool: &b}
}

// IsBool reports whether the node holds a boolean instead of a schema.
func (n *Node) IsBool() bool {
	return n != nil && n.Bool != nil
}

// Resolve returns the nested schema, or ErrUnsupportedSchema when the node
// holds a boolean where a schema object is required.
func (n *Node) Resolve() (*Schema, error) {
	if n == nil || n.Schema == nil {
		return nil, fmt.Errorf("%w: boolean used where a schema object is required", ErrUnsupportedSchema)
	}
	return n.Schema, nil
}

// UnmarshalJSON accepts a JSON boolean or a schema object.
func (n *Node) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty schema node")
	}
	switch trimmed[0] {
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return fmt.Errorf("decoding boolean schema node: %w", err)
		}
		n.Bool = &b
		return nil
	case '{':
		var s Schema
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		n.Schema = &s
		return nil
	default:
		return fmt.Errorf("schema node must be an object or a boolean, got %s", trimmed)
	}
}

// Property is one declared entry of the "properties" keyword. Declaration
// order is significant and preserved.
type Property struct {
	Name   string
	Schema *Node
}

// PatternProperty is one entry of the "patternProperties" keyword.
type PatternProperty struct {
	Pattern string
	Schema  *Node
}

// Items holds the "items" keyword: a single schema or an ordered list.
type Items struct {
	// List holds the item schema(s). A singular items schema is stored as
	// a one-element list with Tuple false.
	List []*Node

	// Tuple is true when the schema spelled items as an ordered list.
	Tuple bool
}

// SingleItems wraps one node as a singular items keyword.
func SingleItems(n *Node) *Items {
	return &Items{List: []*Node{n}}
}

// TupleItems wraps nodes as an ordered items list.
func TupleItems(ns ...*Node) *Items {
	return &Items{List: ns, Tuple: true}
}

// UnmarshalJSON accepts a schema object, a boolean, or an array of either.
func (it *Items) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []*Node
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		it.List = list
		it.Tuple = true
		return nil
	}
	var n Node
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	it.List = []*Node{&n}
	it.Tuple = false
	return nil
}

// Schema is the interpreted subset of a dereferenced JSON Schema. Only the
// keywords below are semantically interpreted; anything else in the input
// document is inert and dropped. The input must contain no unresolved
// references.
type Schema struct {
	// Type is the "type" keyword; nil when absent.
	Type TypeSet

	// Properties preserves declaration order of the "properties" keyword.
	Properties []Property

	// PatternProperties preserves declaration order of the
	// "patternProperties" keyword.
	PatternProperties []PatternProperty

	// AdditionalProperties is nil when absent. A boolean node means
	// "ignore"; a schema node enables wildcard property discovery.
	AdditionalProperties *Node

	// Items is nil when absent.
	Items *Items

	// AdditionalItems is nil when absent.
	AdditionalItems *Node

	// AnyOf, OneOf and AllOf are the in-place applicators, tried in that
	// fixed priority order by the walker.
	AnyOf []*Node
	OneOf []*Node
	AllOf []*Node
}

// Applicator returns the first in-place applicator list present, checked
// in anyOf, oneOf, allOf order, or nil when none is present. Only the
// first one found is honored by the walker.
func (s *Schema) Applicator() []*Node {
	switch {
	case s.AnyOf != nil:
		return s.AnyOf
	case s.OneOf != nil:
		return s.OneOf
	case s.AllOf != nil:
		return s.AllOf
	}
	return nil
}

// Applicators returns every applicator element present, concatenated in
// anyOf, oneOf, allOf order. Property discovery explores all branches
// without short-circuiting, so it uses this instead of Applicator.
func (s *Schema) Applicators() []*Node {
	if s.AnyOf == nil && s.OneOf == nil && s.AllOf == nil {
		return nil
	}
	out := make([]*Node, 0, len(s.AnyOf)+len(s.OneOf)+len(s.AllOf))
	out = append(out, s.AnyOf...)
	out = append(out, s.OneOf...)
	out = append(out, s.AllOf...)
	return out
}

// UnmarshalJSON decodes the supported keywords with a token-level decoder
// so that the declaration order of properties and patternProperties is
// preserved. Unsupported keywords are skipped.
func (s *Schema) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding schema: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("schema must be a JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding schema key: %w", err)
		}
		key := keyTok.(string)

		switch key {
		case "type":
			if err := dec.Decode(&s.Type); err != nil {
				return err
			}
		case "properties":
			entries, err := decodeOrderedNodes(dec)
			if err != nil {
				return fmt.Errorf("decoding properties: %w", err)
			}
			s.Properties = make([]Property, len(entries))
			for i, e := range entries {
				s.Properties[i] = Property{Name: e.name, Schema: e.node}
			}
		case "patternProperties":
			entries, err := decodeOrderedNodes(dec)
			if err != nil {
				return fmt.Errorf("decoding patternProperties: %w", err)
			}
			s.PatternProperties = make([]PatternProperty, len(entries))
			for i, e := range entries {
				s.PatternProperties[i] = PatternProperty{Pattern: e.name, Schema: e.node}
			}
		case "additionalProperties":
			var n Node
			if err := dec.Decode(&n); err != nil {
				return fmt.Errorf("decoding additionalProperties: %w", err)
			}
			s.AdditionalProperties = &n
		case "items":
			var it Items
			if err := dec.Decode(&it); err != nil {
				return fmt.Errorf("decoding items: %w", err)
			}
			s.Items = &it
		case "additionalItems":
			var n Node
			if err := dec.Decode(&n); err != nil {
				return fmt.Errorf("decoding additionalItems: %w", err)
			}
			s.AdditionalItems = &n
		case "anyOf":
			if err := dec.Decode(&s.AnyOf); err != nil {
				return fmt.Errorf("decoding anyOf: %w", err)
			}
		case "oneOf":
			if err := dec.Decode(&s.OneOf); err != nil {
				return fmt.Errorf("decoding oneOf: %w", err)
			}
		case "allOf":
			if err := dec.Decode(&s.AllOf); err != nil {
				return fmt.Errorf("decoding allOf: %w", err)
			}
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return fmt.Errorf("skipping keyword %q: %w", key, err)
			}
		}
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decoding schema: %w", err)
	}
	return nil
}

type orderedNode struct {
	name string
	node *Node
}

// decodeOrderedNodes reads a JSON object of name -> schema-or-boolean,
// preserving key order.
func decodeOrderedNodes(dec *json.Decoder) ([]orderedNode, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	var out []orderedNode
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		var n Node
		if err := dec.Decode(&n); err != nil {
			return nil, err
		}
		out = append(out, orderedNode{name: keyTok.(string), node: &n})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

// Equal reports deep structural equality of two schemas. Mapping keywords
// (properties, patternProperties) are compared order-insensitively;
// ordered keywords (type lists, items tuples, applicators) keep their
// order significance. A singular items schema equals a one-element items
// list.
func (s *Schema) Equal(o *Schema) bool {
	if s == nil || o == nil {
		return s == o
	}
	if !slices.Equal(s.Type, o.Type) {
		return false
	}
	if !propertiesEqual(s.Properties, o.Properties) {
		return false
	}
	if !patternPropertiesEqual(s.PatternProperties, o.PatternProperties) {
		return false
	}
	if !s.AdditionalProperties.equal(o.AdditionalProperties) {
		return false
	}
	if !itemsEqual(s.Items, o.Items) {
		return false
	}
	if !s.AdditionalItems.equal(o.AdditionalItems) {
		return false
	}
	return nodesEqual(s.AnyOf, o.AnyOf) &&
		nodesEqual(s.OneOf, o.OneOf) &&
		nodesEqual(s.AllOf, o.AllOf)
}

func (n *Node) equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.IsBool() || o.IsBool() {
		return n.IsBool() && o.IsBool() && *n.Bool == *o.Bool
	}
	return n.Schema.Equal(o.Schema)
}

func nodesEqual(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].equal(b[i]) {
			return false
		}
	}
	return true
}

func propertiesEqual(a, b []Property) bool {
	if len(a) != len(b) {
		return false
	}
	byName := make(map[string]*Node, len(a))
	for _, p := range a {
		byName[p.Name] = p.Schema
	}
	for _, p := range b {
		n, ok := byName[p.Name]
		if !ok || !n.equal(p.Schema) {
			return false
		}
	}
	return true
}

func patternPropertiesEqual(a, b []PatternProperty) bool {
	if len(a) != len(b) {
		return false
	}
	byPattern := make(map[string]*Node, len(a))
	for _, p := range a {
		byPattern[p.Pattern] = p.Schema
	}
	for _, p := range b {
		n, ok := byPattern[p.Pattern]
		if !ok || !n.equal(p.Schema) {
			return false
		}
	}
	return true
}

func itemsEqual(a, b *Items) bool {
	if a == nil || b == nil {
		return a == b
	}
	// Tuple flag deliberately ignored: {items: X} == {items: [X]}.
	return nodesEqual(a.List, b.List)
}
