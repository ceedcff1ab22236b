// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package discovery

import (
	"regexp"
	"strings"

	"github.com/MKhiriev/go-schema-env/internal/envname"
	"github.com/MKhiriev/go-schema-env/models"
)

// effectivePattern compiles the regular expression used to filter
// candidate suffixes for a pattern property.
//
// When the target schema is object-typed and the pattern ends in an
// unescaped $ anchor, the anchor is widened so the pattern may also end
// immediately before one of the object's declared child property suffixes
// (each rendered as separator + transformed name). Without this, an
// environment variable addressing a property below the pattern-matched
// object could never match the anchored pattern and the property would be
// unsettable.
//
// RE2 has no lookahead, so the widened form lets the match continue
// through a child suffix to the end of the candidate; for a pure match
// test this is equivalent to the lookahead formulation.
func effectivePattern(pattern string, schema *models.Schema, opts models.Options) (*regexp.Regexp, error) {
	if !schema.Type.Contains(models.TypeObject) || !endsWithUnescapedAnchor(pattern) || len(schema.Properties) == 0 {
		return regexp.Compile(pattern)
	}

	alts := make([]string, len(schema.Properties))
	for i, prop := range schema.Properties {
		alts[i] = regexp.QuoteMeta(opts.Separator + envname.Transform(prop.Name, opts.Case))
	}
	widened := pattern[:len(pattern)-1] + "(?:(?:" + strings.Join(alts, "|") + ").*)?$"
	return regexp.Compile(widened)
}

// endsWithUnescapedAnchor reports whether pattern ends in a $ that acts as
// an anchor, i.e. is preceded by an even number of backslashes.
func endsWithUnescapedAnchor(pattern string) bool {
	if !strings.HasSuffix(pattern, "$") {
		return false
	}
	backslashes := 0
	for i := len(pattern) - 2; i >= 0 && pattern[i] == '\\'; i-- {
		backslashes++
	}
	return backslashes%2 == 0
}
