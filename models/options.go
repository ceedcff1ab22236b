// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Case selects the case-transform style applied to named path segments.
type Case int

const (
	// CaseSnake renders named segments as lowercase words joined by
	// underscores ("camelCased" -> "camel_cased").
	CaseSnake Case = iota + 1

	// CaseScreamingSnake renders named segments as uppercase words joined
	// by underscores ("camelCased" -> "CAMEL_CASED").
	CaseScreamingSnake
)

// Options control how a configuration property path is rendered as an
// environment variable name.
type Options struct {
	// Case is the transform applied to named segments. Literal and meta
	// segments are never transformed.
	Case Case

	// Separator joins the rendered segments.
	Separator string

	// Prefix, when non-empty, is prepended (followed by Separator) to
	// every derived name.
	Prefix string
}

// OverrideOptions extend Options for the array override operation.
type OverrideOptions struct {
	Options

	// TruncateTargetArrays shortens a target array to the length of an
	// each-override value array before the element-wise merge.
	TruncateTargetArrays bool

	// ExtendTargetArrays grows a target array to the length of an
	// each-override value array; new elements start as bare mappings
	// containing only the overridden path.
	ExtendTargetArrays bool
}

// DefaultLoadOptions are the naming defaults of the load operation.
func DefaultLoadOptions() Options {
	return Options{Case: CaseScreamingSnake, Separator: "_"}
}

// DefaultOverrideOptions are the naming defaults of the array override
// operation. The separator differs from the load defaults deliberately:
// the double underscore keeps word boundaries inside property names
// distinguishable from path boundaries.
func DefaultOverrideOptions() OverrideOptions {
	return OverrideOptions{Options: Options{Case: CaseSnake, Separator: "__"}}
}

// WithDefaults fills unset fields from def.
func (o Options) WithDefaults(def Options) Options {
	if o.Case == 0 {
		o.Case = def.Case
	}
	if o.Separator == "" {
		o.Separator = def.Separator
	}
	if o.Prefix == "" {
		o.Prefix = def.Prefix
	}
	return o
}
