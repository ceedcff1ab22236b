// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package override

import (
	"fmt"

	"dario.cat/mergo"

	"github.com/MKhiriev/go-schema-env/internal/logger"
	"github.com/MKhiriev/go-schema-env/models"
)

// mergeElement applies one override to one array element: a fresh fragment
// rooted at propPath is deep-merged over a clone of the element, so the
// fragment wins at the targeted path and the element's existing sibling
// properties are preserved everywhere else. Map values are interface
// wrapped, so WithOverride alone forces zero override values (0, "",
// false) too.
func mergeElement(elem any, propPath models.Path, value any, log *logger.Logger) (any, error) {
	fragment, ok := buildFragment(propPath, value).(map[string]any)
	if !ok {
		// A whole-element override with a non-object value has no defined
		// merge; leave the element untouched.
		log.Trace().Str("prop", propPath.String()).Msg("override fragment is not an object, element left unmodified")
		return elem, nil
	}

	base, ok := clone(elem).(map[string]any)
	if !ok {
		log.Trace().Str("prop", propPath.String()).Msg("array element is not an object, element left unmodified")
		return elem, nil
	}

	if err := mergo.Merge(&base, fragment, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merging override fragment at %q: %w", propPath.String(), err)
	}
	return base, nil
}

// buildFragment nests value under the property path, producing the
// override fragment rooted at the property the marker prefixes.
func buildFragment(propPath models.Path, value any) any {
	out := value
	for i := len(propPath) - 1; i >= 0; i-- {
		out = map[string]any{propPath[i].Value: out}
	}
	return out
}

// clone deep-copies a configuration value tree of mappings, sequences and
// scalars. Scalars are immutable and shared.
func clone(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, x := range val {
			out[k] = clone(x)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, x := range val {
			out[i] = clone(x)
		}
		return out
	default:
		return val
	}
}
