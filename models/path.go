// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// SegmentKind discriminates the variants of a path Segment.
type SegmentKind int

const (
	// SegmentNamed marks a segment whose value is a schema-declared
	// property name and is therefore subject to case and separator
	// transformation when an environment variable name is derived.
	SegmentNamed SegmentKind = iota + 1

	// SegmentLiteral marks a segment rendered verbatim, such as a
	// property name discovered from an environment variable rather than
	// declared in the schema.
	SegmentLiteral

	// SegmentMeta marks a synthetic marker segment. Markers participate
	// in name derivation as literal fragments but carry extra meaning
	// during path matching (array broadcast, file indirection).
	SegmentMeta
)

// Marker identifies a synthetic meta segment.
type Marker string

const (
	// MarkerEvery broadcasts one value to all elements of an array.
	MarkerEvery Marker = "every"

	// MarkerEach distributes an array of values across array elements
	// positionally.
	MarkerEach Marker = "each"

	// MarkerFile is the suffix recognized as a "read the value from this
	// file" indirection. It is rendered verbatim, never case-transformed.
	MarkerFile Marker = "FILE"
)

// Segment is one step of a configuration property path.
type Segment struct {
	// Kind selects which variant this segment is.
	Kind SegmentKind

	// Value is the raw text of the segment: the schema property name for
	// named segments, the discovered fragment for literal segments, and
	// the rendered marker text for meta segments.
	Value string

	// Marker is set only when Kind is SegmentMeta.
	Marker Marker
}

// Named returns a segment for a schema-declared property name.
func Named(name string) Segment {
	return Segment{Kind: SegmentNamed, Value: name}
}

// Literal returns a segment rendered verbatim.
func Literal(text string) Segment {
	return Segment{Kind: SegmentLiteral, Value: text}
}

// Meta returns a synthetic marker segment.
func Meta(m Marker) Segment {
	return Segment{Kind: SegmentMeta, Value: string(m), Marker: m}
}

// Path is an ordered sequence of segments from the schema root to one
// addressable configuration value.
type Path []Segment

// Extend returns a new path with seg appended. The receiver is never
// mutated; sibling paths produced from the same parent do not alias.
func (p Path) Extend(seg Segment) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = seg
	return out
}

// String renders the path for diagnostics and ledger keys. It is not an
// environment variable name.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = seg.Value
	}
	return strings.Join(parts, ".")
}
