// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package schemaenv maps a JSON-Schema-described configuration object onto
// a flat namespace of environment variables.
//
// Given a fully dereferenced schema, [LoadFromEnv] enumerates every
// addressable configuration property, derives the environment variable
// name that would set it, parses matched values per the property's type,
// and assembles the resulting object graph — including properties the
// schema leaves unnamed (patternProperties, additionalProperties), which
// are discovered from the environment itself. [OverrideArrayValues]
// separately broadcasts ("every") or distributes ("each") values across
// arrays of homogeneous objects inside an existing configuration object.
//
// Both operations are synchronous and single-threaded: one call owns its
// output exclusively, and the environment map and schema are read-only
// inputs. The only external resource access is the best-effort file read
// behind the *_FILE value indirection.
package schemaenv

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-schema-env/internal/envname"
	"github.com/MKhiriev/go-schema-env/internal/loader"
	"github.com/MKhiriev/go-schema-env/internal/logger"
	"github.com/MKhiriev/go-schema-env/internal/override"
	"github.com/MKhiriev/go-schema-env/models"
)

// FileReader abstracts the filesystem read behind the *_FILE value
// indirection. Implementations must treat the argument as a plain path;
// failures are recovered locally by the loader and never surface.
type FileReader = loader.FileReader

// Sentinel errors of the engine. Both abort the whole operation: no
// partial result is returned alongside them.
var (
	ErrUnsupportedSchema    = models.ErrUnsupportedSchema
	ErrInvalidConfiguration = models.ErrInvalidConfiguration
)

// Resolver binds the external collaborators of the engine: the filesystem
// read used by *_FILE indirection and the opt-in diagnostics channel. The
// zero value uses OS-backed reads and discards diagnostics.
type Resolver struct {
	// Files serves *_FILE indirection reads. Nil selects os.ReadFile.
	Files FileReader

	// Log receives trace diagnostics of name derivation, parse attempts
	// and discovery decisions. Nil discards them. Diagnostics never
	// affect results.
	Log *zerolog.Logger
}

// LoadFromEnv builds a fresh configuration object containing every
// property whose environment variable is present and parses successfully.
// Zero-valued naming options default to SCREAMING_SNAKE case with the "_"
// separator and no prefix.
func (r Resolver) LoadFromEnv(env map[string]string, schema *models.Schema, opts models.Options) (map[string]any, error) {
	opts = opts.WithDefaults(models.DefaultLoadOptions())
	return loader.Load(env, schema, opts, loader.Deps{Files: r.Files, Log: r.logger().Child("loader")})
}

// OverrideArrayValues returns a new configuration object, structurally
// identical to cfg except for array elements overridden through every/each
// meta-marked environment variables. Zero-valued naming options default to
// snake case with the "__" separator and no prefix.
func (r Resolver) OverrideArrayValues(cfg map[string]any, env map[string]string, schema *models.Schema, opts models.OverrideOptions) (map[string]any, error) {
	opts.Options = opts.Options.WithDefaults(models.DefaultOverrideOptions().Options)
	return override.Apply(cfg, env, schema, opts, override.Deps{Log: r.logger().Child("override")})
}

func (r Resolver) logger() *logger.Logger {
	if r.Log == nil {
		return logger.Nop()
	}
	return logger.Wrap(*r.Log)
}

// LoadFromEnv runs the load operation with default collaborators.
func LoadFromEnv(env map[string]string, schema *models.Schema, opts models.Options) (map[string]any, error) {
	return Resolver{}.LoadFromEnv(env, schema, opts)
}

// OverrideArrayValues runs the override operation with default
// collaborators.
func OverrideArrayValues(cfg map[string]any, env map[string]string, schema *models.Schema, opts models.OverrideOptions) (map[string]any, error) {
	return Resolver{}.OverrideArrayValues(cfg, env, schema, opts)
}

// EnvVarName derives the environment variable name for a property path
// under the given options. It is a pure function of the path's segments
// and the options.
func EnvVarName(path models.Path, opts models.Options) string {
	return envname.ForPath(path, opts)
}

// Environ snapshots the process environment as the immutable map the
// engine consumes.
func Environ() map[string]string {
	env := os.Environ()
	out := make(map[string]string, len(env))
	for _, pair := range env {
		if name, value, ok := strings.Cut(pair, "="); ok {
			out[name] = value
		}
	}
	return out
}
