// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package envname derives environment variable names from configuration
// property paths. Both functions are pure: the derived name depends only
// on the path's segment values and kinds and on the naming options.
package envname

import (
	"strings"
	"unicode"

	"github.com/MKhiriev/go-schema-env/models"
)

// Transform converts a camelCase-ish property name into the configured
// case style: words split at camelCase and letter/digit boundaries, joined
// by underscores, lowercased or uppercased.
func Transform(name string, c models.Case) string {
	joined := strings.Join(splitWords(name), "_")
	if c == models.CaseSnake {
		return strings.ToLower(joined)
	}
	return strings.ToUpper(joined)
}

// ForPath joins the rendered segments of path with the separator: named
// segments are case-transformed, literal and meta segments are used
// verbatim. A configured prefix is prepended as the first part.
func ForPath(path models.Path, opts models.Options) string {
	parts := make([]string, 0, len(path)+1)
	if opts.Prefix != "" {
		parts = append(parts, opts.Prefix)
	}
	for _, seg := range path {
		if seg.Kind == models.SegmentNamed {
			parts = append(parts, Transform(seg.Value, opts.Case))
			continue
		}
		parts = append(parts, seg.Value)
	}
	return strings.Join(parts, opts.Separator)
}

// splitWords splits name at standard camelCase and number boundaries:
// "camelCased" -> [camel Cased], "prop2" -> [prop 2],
// "HTTPServer" -> [HTTP Server], "v2ray" -> [v 2 ray].
func splitWords(name string) []string {
	runes := []rune(name)
	if len(runes) == 0 {
		return nil
	}

	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		if isWordBoundary(runes, i) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}

func isWordBoundary(runes []rune, i int) bool {
	prev, cur := runes[i-1], runes[i]
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(cur):
		// camelCase step.
		return true
	case unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
		// end of an acronym run: "HTTPServer" splits before "Server".
		return true
	case unicode.IsDigit(cur) && unicode.IsLetter(prev):
		return true
	case unicode.IsLetter(cur) && unicode.IsDigit(prev):
		return true
	}
	return false
}
