// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package override applies environment-driven overrides to arrays of
// homogeneous objects inside an existing configuration object.
//
// For every eligible array property the item schema is re-walked twice,
// once under an "every" meta marker (broadcast one value to all elements)
// and once under an "each" marker (distribute an array of values
// positionally). Matched variables become override actions; all each
// actions are applied before any every action so an every override still
// reaches elements that an each override appended.
package override

import (
	"fmt"

	"github.com/MKhiriev/go-schema-env/internal/discovery"
	"github.com/MKhiriev/go-schema-env/internal/envname"
	"github.com/MKhiriev/go-schema-env/internal/envvalue"
	"github.com/MKhiriev/go-schema-env/internal/logger"
	"github.com/MKhiriev/go-schema-env/internal/walker"
	"github.com/MKhiriev/go-schema-env/models"
)

// Deps are the external collaborators of an override call.
type Deps struct {
	Log *logger.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return d
}

// Apply returns a new configuration object, structurally identical to cfg
// except for overridden array elements. The input object is deep-copied
// before any mutation; cfg itself is never modified.
func Apply(cfg map[string]any, env map[string]string, schema *models.Schema, opts models.OverrideOptions, deps Deps) (map[string]any, error) {
	out, _ := clone(cfg).(map[string]any)
	if out == nil {
		out = map[string]any{}
	}

	v := &overrideVisitor{
		env:    env,
		opts:   opts,
		deps:   deps.withDefaults(),
		config: out,
	}
	if err := walker.Walk(schema, nil, v); err != nil {
		return nil, fmt.Errorf("overriding array values from environment: %w", err)
	}

	for _, a := range v.each {
		if err := v.applyEach(a); err != nil {
			return nil, err
		}
	}
	for _, a := range v.every {
		if err := v.applyEvery(a); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// action is one pending override: the path of the target array, the
// property path inside each element, and the parsed value (a single value
// for every actions, a []any for each actions).
type action struct {
	arrayPath models.Path
	propPath  models.Path
	value     any
}

type overrideVisitor struct {
	env    map[string]string
	opts   models.OverrideOptions
	deps   Deps
	config map[string]any

	every []action
	each  []action
}

func (v *overrideVisitor) VisitSchema(schema *models.Schema, path models.Path) error {
	if item, err := homogeneousItemSchema(schema); err != nil {
		return err
	} else if item != nil {
		// Synthesize the two marker walks over the unified item schema.
		// Nested markers produced under an existing marker are discarded
		// by the single-marker scan below.
		if err := walker.Walk(item, path.Extend(models.Meta(models.MarkerEvery)), v); err != nil {
			return err
		}
		if err := walker.Walk(item, path.Extend(models.Meta(models.MarkerEach)), v); err != nil {
			return err
		}
	}

	if len(path) == 0 {
		return nil
	}

	marker, idx, ok := singleMarker(path)
	if !ok {
		return nil
	}

	name := envname.ForPath(path, v.opts.Options)
	raw, present := v.env[name]
	if !present {
		return nil
	}

	switch marker {
	case models.MarkerEvery:
		value, ok, err := envvalue.Parse(name, raw, schema, v.deps.Log)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		v.every = append(v.every, action{arrayPath: path[:idx], propPath: path[idx+1:], value: value})

	case models.MarkerEach:
		// Parse the variable as an array whose item schema is the leaf,
		// so CSV and JSON array grammars both apply.
		wrapped := &models.Schema{
			Type:  models.TypeSet{models.TypeArray},
			Items: models.SingleItems(models.SchemaNode(schema)),
		}
		value, ok, err := envvalue.Parse(name, raw, wrapped, v.deps.Log)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		values, isArray := value.([]any)
		if !isArray {
			return nil
		}
		v.each = append(v.each, action{arrayPath: path[:idx], propPath: path[idx+1:], value: values})
	}
	return nil
}

// singleMarker locates the only every/each marker in path. Paths carrying
// both marker kinds, or the same marker more than once, are unsupported by
// design and yield ok=false so no override is attempted for them.
func singleMarker(path models.Path) (models.Marker, int, bool) {
	marker := models.Marker("")
	idx := -1
	for i, seg := range path {
		if seg.Kind != models.SegmentMeta {
			continue
		}
		if seg.Marker != models.MarkerEvery && seg.Marker != models.MarkerEach {
			continue
		}
		if idx != -1 {
			return "", -1, false
		}
		marker, idx = seg.Marker, i
	}
	if idx == -1 {
		return "", -1, false
	}
	return marker, idx, true
}

func (v *overrideVisitor) applyEvery(a action) error {
	_, _, arr, ok := v.locateArray(a.arrayPath)
	if !ok {
		return nil
	}
	for i, elem := range arr {
		merged, err := mergeElement(elem, a.propPath, a.value, v.deps.Log)
		if err != nil {
			return err
		}
		arr[i] = merged
	}
	return nil
}

func (v *overrideVisitor) applyEach(a action) error {
	parent, key, arr, ok := v.locateArray(a.arrayPath)
	if !ok {
		return nil
	}
	values := a.value.([]any)

	if v.opts.ExtendTargetArrays && len(arr) < len(values) {
		for len(arr) < len(values) {
			arr = append(arr, map[string]any{})
		}
		parent[key] = arr
	}
	if v.opts.TruncateTargetArrays && len(arr) > len(values) {
		arr = arr[:len(values)]
		parent[key] = arr
	}

	n := min(len(arr), len(values))
	for i := 0; i < n; i++ {
		merged, err := mergeElement(arr[i], a.propPath, values[i], v.deps.Log)
		if err != nil {
			return err
		}
		arr[i] = merged
	}
	return nil
}

// locateArray resolves the target array inside the configuration object.
// Missing or non-array targets simply disqualify the action.
func (v *overrideVisitor) locateArray(path models.Path) (map[string]any, string, []any, bool) {
	if len(path) == 0 {
		return nil, "", nil, false
	}
	node := v.config
	for _, seg := range path[:len(path)-1] {
		child, ok := node[seg.Value].(map[string]any)
		if !ok {
			return nil, "", nil, false
		}
		node = child
	}
	key := path[len(path)-1].Value
	arr, ok := node[key].([]any)
	if !ok {
		v.deps.Log.Trace().Str("path", path.String()).Msg("override target is missing or not an array, skipping")
		return nil, "", nil, false
	}
	return node, key, arr, true
}

func (v *overrideVisitor) VisitPatternProperty(pattern string, schema *models.Schema, path models.Path) error {
	found, err := discovery.PatternProperties(pattern, schema, path, v.env, v.opts.Options, v.deps.Log)
	if err != nil {
		return err
	}
	return v.reenter(found)
}

func (v *overrideVisitor) VisitAdditionalProperties(schema *models.Schema, path models.Path) error {
	found, err := discovery.AdditionalProperties(schema, path, v.env, v.opts.Options, v.deps.Log)
	if err != nil {
		return err
	}
	return v.reenter(found)
}

func (v *overrideVisitor) reenter(found []discovery.Discovered) error {
	for _, d := range found {
		if err := walker.Walk(d.Schema, d.Path, v); err != nil {
			return err
		}
	}
	return nil
}
