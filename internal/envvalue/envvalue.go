// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package envvalue converts raw environment variable strings into typed
// values according to a JSON Schema leaf type.
//
// Malformed values are never an error: Parse reports ok=false and the
// property is simply left unset. Errors are reserved for schemas the
// engine cannot process (an unknown type name, or a boolean where a schema
// object is required).
package envvalue

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-schema-env/internal/logger"
	"github.com/MKhiriev/go-schema-env/models"
)

// numberPattern is the strict JSON-style number grammar: optional minus,
// no leading zero unless the integer part is exactly 0, optional fraction,
// optional exponent. Infinity, hex, octal and binary forms do not match.
var numberPattern = regexp.MustCompile(`^-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?$`)

// Parse converts raw, the value of the environment variable name, into a
// typed value per the schema's type keyword. When the keyword lists
// several types they are tried in listed order and the first successful
// parse wins. A missing type keyword makes the property unaddressable
// (ok=false for every input).
func Parse(name, raw string, schema *models.Schema, log *logger.Logger) (any, bool, error) {
	if len(schema.Type) == 0 {
		log.Trace().Str("name", name).Msg("property has no type keyword, value not addressable")
		return nil, false, nil
	}

	for _, t := range schema.Type {
		v, ok, err := parseType(name, raw, t, schema, log)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return v, true, nil
		}
	}

	log.Trace().Str("name", name).Str("raw", raw).Strs("types", schema.Type).Msg("value matched none of the property types")
	return nil, false, nil
}

func parseType(name, raw, typ string, schema *models.Schema, log *logger.Logger) (any, bool, error) {
	switch typ {
	case models.TypeNull:
		if raw == "null" {
			return nil, true, nil
		}
		return nil, false, nil

	case models.TypeBoolean:
		switch raw {
		case "true":
			return true, true, nil
		case "false":
			return false, true, nil
		}
		return nil, false, nil

	case models.TypeNumber:
		v, ok := parseNumber(raw)
		return v, ok, nil

	case models.TypeInteger:
		v, ok := parseNumber(raw)
		if !ok || math.Mod(v, 1) != 0 {
			return nil, false, nil
		}
		// Guard the conversion: float64 values at or beyond 2^63 overflow
		// int64.
		if v < math.MinInt64 || v >= math.MaxInt64 {
			return nil, false, nil
		}
		return int64(v), true, nil

	case models.TypeString:
		return raw, true, nil

	case models.TypeObject:
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, false, nil
		}
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, false, nil
		}
		return obj, true, nil

	case models.TypeArray:
		return parseArray(name, raw, schema, log)

	default:
		return nil, false, fmt.Errorf("%w: unknown type %q for %s", models.ErrUnsupportedSchema, typ, name)
	}
}

// parseNumber applies the strict number grammar after trimming surrounding
// whitespace.
func parseNumber(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if !numberPattern.MatchString(trimmed) {
		return 0, false
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseArray tries the raw value as a JSON array first and falls back to
// CSV, parsing each comma-separated element against the item schema that
// position selects.
func parseArray(name, raw string, schema *models.Schema, log *logger.Logger) (any, bool, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		if arr, ok := v.([]any); ok {
			return arr, true, nil
		}
	}

	elements := strings.Split(raw, ",")
	out := make([]any, 0, len(elements))
	for i, elem := range elements {
		itemSchema, ok, err := itemSchemaAt(schema, i)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			log.Trace().Str("name", name).Int("index", i).Msg("no item schema applies, array value rejected")
			return nil, false, nil
		}
		parsed, ok, err := Parse(name, elem, itemSchema, log)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			log.Trace().Str("name", name).Int("index", i).Str("raw", elem).Msg("array element failed its item grammar")
			return nil, false, nil
		}
		out = append(out, parsed)
	}
	return out, true, nil
}

// itemSchemaAt selects the item schema for element index i: the singular
// items schema for every element, or items[i] for an ordered list with
// additionalItems taking over once the list is exhausted.
func itemSchemaAt(schema *models.Schema, i int) (*models.Schema, bool, error) {
	if schema.Items != nil && len(schema.Items.List) > 0 {
		if !schema.Items.Tuple {
			s, err := schema.Items.List[0].Resolve()
			return s, err == nil, err
		}
		if i < len(schema.Items.List) {
			s, err := schema.Items.List[i].Resolve()
			return s, err == nil, err
		}
	}
	if schema.AdditionalItems != nil {
		s, err := schema.AdditionalItems.Resolve()
		return s, err == nil, err
	}
	return nil, false, nil
}
