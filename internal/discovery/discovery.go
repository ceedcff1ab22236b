// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package discovery infers concrete names for properties the schema leaves
// unnamed (patternProperties and additionalProperties) from the set of
// environment variable names sharing the parent path's derived prefix.
//
// Each discovered property pairs a concrete path — with literal segments
// for the discovered portion — with the sub-schema that applies to it. The
// caller feeds every discovered property back through the schema walker as
// if it were a declared path.
package discovery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MKhiriev/go-schema-env/internal/envname"
	"github.com/MKhiriev/go-schema-env/internal/logger"
	"github.com/MKhiriev/go-schema-env/models"
)

// Discovered pairs a concrete property path with the schema applying to it.
type Discovered struct {
	Path   models.Path
	Schema *models.Schema
}

// AdditionalProperties discovers property names for a wildcard sub-schema:
// every environment variable name starting with the parent path's derived
// prefix contributes a candidate suffix.
func AdditionalProperties(schema *models.Schema, parentPath models.Path, env map[string]string, opts models.Options, log *logger.Logger) ([]Discovered, error) {
	candidates := candidateSuffixes(env, childPrefix(parentPath, opts))
	return unnamedProperties(schema, candidates, parentPath, opts, log)
}

// PatternProperties discovers property names for a pattern sub-schema.
// Candidate suffixes are additionally filtered by a case-sensitive regular
// expression built from pattern (see effectivePattern for the anchor
// handling applied to object-typed targets).
func PatternProperties(pattern string, schema *models.Schema, parentPath models.Path, env map[string]string, opts models.Options, log *logger.Logger) ([]Discovered, error) {
	re, err := effectivePattern(pattern, schema, opts)
	if err != nil {
		return nil, fmt.Errorf("pattern property %q at %q: %w", pattern, parentPath.String(), err)
	}

	all := candidateSuffixes(env, childPrefix(parentPath, opts))
	candidates := all[:0:0]
	for _, c := range all {
		if re.MatchString(c) {
			candidates = append(candidates, c)
		} else {
			log.Trace().Str("pattern", pattern).Str("candidate", c).Msg("candidate rejected by pattern")
		}
	}

	return unnamedProperties(schema, candidates, parentPath, opts, log)
}

// childPrefix derives the environment variable prefix under which child
// properties of parentPath live. At the root the prefix is empty unless a
// global prefix option is configured.
func childPrefix(parentPath models.Path, opts models.Options) string {
	if len(parentPath) == 0 && opts.Prefix == "" {
		return ""
	}
	return envname.ForPath(parentPath, opts) + opts.Separator
}

// candidateSuffixes collects every environment variable name starting with
// prefix, stripped of that prefix, sorted for deterministic traversal.
func candidateSuffixes(env map[string]string, prefix string) []string {
	var out []string
	for name := range env {
		if suffix, ok := strings.CutPrefix(name, prefix); ok && suffix != "" {
			out = append(out, suffix)
		}
	}
	sort.Strings(out)
	return out
}

// unnamedProperties turns candidate suffixes into discovered properties
// according to the target schema's type:
//
//   - no type keyword: nothing qualifies;
//   - scalar and array types: every candidate suffix is a discovered name
//     verbatim;
//   - object type: a candidate that continues into one of the object's
//     declared child property suffixes is truncated to the portion before
//     that match, so the remainder is routed to the named child;
//   - applicators: every branch is explored and the results concatenated
//     (duplicates are possible and tolerated by the caller's matching).
func unnamedProperties(schema *models.Schema, candidates []string, parentPath models.Path, opts models.Options, log *logger.Logger) ([]Discovered, error) {
	if elements := schema.Applicators(); elements != nil {
		var out []Discovered
		for i, node := range elements {
			sub, err := node.Resolve()
			if err != nil {
				return nil, fmt.Errorf("applicator element %d at %q: %w", i, parentPath.String(), err)
			}
			found, err := unnamedProperties(sub, candidates, parentPath, opts, log)
			if err != nil {
				return nil, err
			}
			out = append(out, found...)
		}
		return out, nil
	}

	if len(schema.Type) == 0 {
		return nil, nil
	}
	for _, t := range schema.Type {
		if !models.IsSupportedType(t) {
			return nil, fmt.Errorf("%w: unknown type %q at %q", models.ErrUnsupportedSchema, t, parentPath.String())
		}
	}

	names := candidates
	if schema.Type.Contains(models.TypeObject) {
		names = make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = truncateAtChildSuffix(c, schema, opts)
		}
	}

	out := make([]Discovered, 0, len(names))
	for _, name := range names {
		log.Trace().Str("parent", parentPath.String()).Str("name", name).Msg("discovered unnamed property")
		out = append(out, Discovered{
			Path:   parentPath.Extend(models.Literal(name)),
			Schema: schema,
		})
	}
	return out, nil
}

// truncateAtChildSuffix distinguishes "this suffix names an unnamed child
// object" from "this suffix names an unnamed child object and continues
// into one of its named grandchild properties": when the candidate
// contains, not at its very start, a declared child property rendered as
// separator + transformed name, the discovered name is the portion before
// the earliest such match.
func truncateAtChildSuffix(candidate string, schema *models.Schema, opts models.Options) string {
	cut := -1
	for _, prop := range schema.Properties {
		childSuffix := opts.Separator + envname.Transform(prop.Name, opts.Case)
		idx := strings.Index(candidate, childSuffix)
		if idx <= 0 {
			continue
		}
		if cut == -1 || idx < cut {
			cut = idx
		}
	}
	if cut == -1 {
		return candidate
	}
	return candidate[:cut]
}
