// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package loader builds a configuration object from scratch by walking a
// JSON Schema, deriving an environment variable name for every addressable
// property, parsing matched values, and expanding pattern and wildcard
// properties through discovery.
package loader

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-schema-env/internal/discovery"
	"github.com/MKhiriev/go-schema-env/internal/envname"
	"github.com/MKhiriev/go-schema-env/internal/envvalue"
	"github.com/MKhiriev/go-schema-env/internal/logger"
	"github.com/MKhiriev/go-schema-env/internal/walker"
	"github.com/MKhiriev/go-schema-env/models"
)

// Deps are the external collaborators of a load call. Zero values select
// the defaults: OS-backed file reads and no diagnostics.
type Deps struct {
	Files FileReader
	Log   *logger.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Files == nil {
		d.Files = OSFileReader{}
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return d
}

// Load builds a fresh configuration object containing every property whose
// environment variable (or *_FILE fallback) is present and parses
// successfully. The env map and schema are read-only for the duration of
// the call.
func Load(env map[string]string, schema *models.Schema, opts models.Options, deps Deps) (map[string]any, error) {
	v := &envVisitor{
		env:      env,
		opts:     opts,
		deps:     deps.withDefaults(),
		config:   map[string]any{},
		consumed: map[string]string{},
	}
	if err := walker.Walk(schema, nil, v); err != nil {
		return nil, fmt.Errorf("loading configuration from environment: %w", err)
	}
	return v.config, nil
}

// envVisitor implements walker.Visitor for the load operation. The
// consumed ledger maps derived names to the path that claimed them, scoped
// to exactly one Load call, so one variable is never consumed twice for
// two different schema paths.
type envVisitor struct {
	env      map[string]string
	opts     models.Options
	deps     Deps
	config   map[string]any
	consumed map[string]string
}

func (v *envVisitor) VisitSchema(schema *models.Schema, path models.Path) error {
	if len(path) == 0 {
		// The root has no environment variable of its own.
		return nil
	}

	name := envname.ForPath(path, v.opts)
	if claimant, ok := v.consumed[name]; ok {
		v.deps.Log.Debug().
			Str("name", name).
			Str("path", path.String()).
			Str("claimed_by", claimant).
			Msg("derived name already claimed by another path, skipping")
		return nil
	}

	value, ok, err := v.lookup(name, schema)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := setValue(v.config, path, value); err != nil {
		return err
	}
	v.consumed[name] = path.String()
	v.deps.Log.Trace().Str("name", name).Str("path", path.String()).Msg("property set from environment")
	return nil
}

// lookup resolves the value for a derived name: the direct variable first,
// then the <name><separator>FILE indirection. File read failures and files
// that trim to empty are treated as "value absent".
func (v *envVisitor) lookup(name string, schema *models.Schema) (any, bool, error) {
	if raw, present := v.env[name]; present {
		value, ok, err := envvalue.Parse(name, raw, schema, v.deps.Log)
		if err != nil || ok {
			return value, ok, err
		}
	}

	fileName := name + v.opts.Separator + string(models.MarkerFile)
	filePath, present := v.env[fileName]
	if !present {
		return nil, false, nil
	}

	data, err := v.deps.Files.ReadFile(filePath)
	if err != nil {
		v.deps.Log.Debug().Str("name", fileName).Str("file", filePath).Err(err).Msg("referenced file unreadable, value treated as absent")
		return nil, false, nil
	}
	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return nil, false, nil
	}
	return envvalue.Parse(fileName, raw, schema, v.deps.Log)
}

func (v *envVisitor) VisitPatternProperty(pattern string, schema *models.Schema, path models.Path) error {
	found, err := discovery.PatternProperties(pattern, schema, path, v.env, v.opts, v.deps.Log)
	if err != nil {
		return err
	}
	return v.reenter(found)
}

func (v *envVisitor) VisitAdditionalProperties(schema *models.Schema, path models.Path) error {
	found, err := discovery.AdditionalProperties(schema, path, v.env, v.opts, v.deps.Log)
	if err != nil {
		return err
	}
	return v.reenter(found)
}

// reenter walks each discovered property's subtree through the same
// visitor, sharing the consumed-names ledger.
func (v *envVisitor) reenter(found []discovery.Discovered) error {
	for _, d := range found {
		if err := walker.Walk(d.Schema, d.Path, v); err != nil {
			return err
		}
	}
	return nil
}

// setValue writes value at path, auto-creating ancestor mappings. An
// ancestor that already holds a non-mapping value is a contract violation:
// the configuration under construction is owned by this call, so this can
// only happen when two schema paths disagree about a node's shape.
func setValue(config map[string]any, path models.Path, value any) error {
	node := config
	for _, seg := range path[:len(path)-1] {
		child, ok := node[seg.Value]
		if !ok {
			next := map[string]any{}
			node[seg.Value] = next
			node = next
			continue
		}
		next, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: ancestor %q of %q holds a non-object value", models.ErrInvalidConfiguration, seg.Value, path.String())
		}
		node = next
	}
	node[path[len(path)-1].Value] = value
	return nil
}
