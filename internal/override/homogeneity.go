// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package override

import (
	"fmt"

	"github.com/MKhiriev/go-schema-env/models"
)

// homogeneousItemSchema returns the unified item schema when schema
// describes an array of homogeneous objects eligible for override, and nil
// when the array does not qualify. Disqualification is silent: it is a
// soft outcome, not an error.
//
// Eligibility requires at least one of items/additionalItems, every item
// schema (tuple elements and additionalItems included) to be object-typed,
// and all of them to be pairwise structurally equal. Equality is
// insensitive to mapping key order and to the singular-vs-one-element-list
// spelling of items (see models.Schema.Equal).
func homogeneousItemSchema(schema *models.Schema) (*models.Schema, error) {
	if !schema.Type.Contains(models.TypeArray) {
		return nil, nil
	}
	if schema.Items == nil && schema.AdditionalItems == nil {
		return nil, nil
	}

	var list []*models.Schema
	if schema.Items != nil {
		for i, node := range schema.Items.List {
			s, err := node.Resolve()
			if err != nil {
				return nil, fmt.Errorf("items element %d: %w", i, err)
			}
			list = append(list, s)
		}
	}
	if schema.AdditionalItems != nil {
		s, err := schema.AdditionalItems.Resolve()
		if err != nil {
			return nil, fmt.Errorf("additionalItems: %w", err)
		}
		list = append(list, s)
	}
	if len(list) == 0 {
		return nil, nil
	}

	first := list[0]
	for _, s := range list {
		if !s.Type.Is(models.TypeObject) {
			return nil, nil
		}
		if !first.Equal(s) {
			return nil, nil
		}
	}
	return first, nil
}
