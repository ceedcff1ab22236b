// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package walker traverses a JSON Schema and enumerates every statically
// known configuration property path, signalling pattern and wildcard
// properties to a caller-supplied visitor. The walker itself never reads
// the environment.
package walker

import (
	"fmt"

	"github.com/MKhiriev/go-schema-env/models"
)

// Visitor receives traversal events. Implementations differ between the
// environment loader and the array override engine.
type Visitor interface {
	// VisitSchema is invoked for every concrete schema node reached,
	// including the root with an empty path; the visitor is responsible
	// for ignoring the empty-path case.
	VisitSchema(schema *models.Schema, path models.Path) error

	// VisitPatternProperty is invoked once per patternProperties entry.
	// The walker does not recurse into the pattern's sub-schema; the
	// visitor is expected to run property discovery and re-enter Walk for
	// each discovered path.
	VisitPatternProperty(pattern string, schema *models.Schema, path models.Path) error

	// VisitAdditionalProperties is invoked when additionalProperties is a
	// schema (boolean values mean "ignore" and are never signalled).
	VisitAdditionalProperties(schema *models.Schema, path models.Path) error
}

// Walk traverses schema depth-first. When an in-place applicator is
// present (anyOf, oneOf, allOf — first found in that order), each element
// schema is walked against the same path and the node's own keywords are
// not processed further. Otherwise the visitor sees the node itself, then
// each declared property in declaration order, then the pattern and
// wildcard signals.
func Walk(schema *models.Schema, path models.Path, v Visitor) error {
	if elements := schema.Applicator(); elements != nil {
		for i, node := range elements {
			sub, err := node.Resolve()
			if err != nil {
				return fmt.Errorf("applicator element %d at %q: %w", i, path.String(), err)
			}
			if err := Walk(sub, path, v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := v.VisitSchema(schema, path); err != nil {
		return err
	}

	for _, prop := range schema.Properties {
		sub, err := prop.Schema.Resolve()
		if err != nil {
			return fmt.Errorf("property %q at %q: %w", prop.Name, path.String(), err)
		}
		if err := Walk(sub, path.Extend(models.Named(prop.Name)), v); err != nil {
			return err
		}
	}

	for _, pp := range schema.PatternProperties {
		sub, err := pp.Schema.Resolve()
		if err != nil {
			return fmt.Errorf("pattern property %q at %q: %w", pp.Pattern, path.String(), err)
		}
		if err := v.VisitPatternProperty(pp.Pattern, sub, path); err != nil {
			return err
		}
	}

	if ap := schema.AdditionalProperties; ap != nil && !ap.IsBool() {
		if err := v.VisitAdditionalProperties(ap.Schema, path); err != nil {
			return err
		}
	}

	return nil
}
