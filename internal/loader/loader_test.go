package loader

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-schema-env/models"
)

// fakeFiles is an in-memory FileReader for the *_FILE indirection.
type fakeFiles map[string]string

func (f fakeFiles) ReadFile(path string) ([]byte, error) {
	data, ok := f[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return []byte(data), nil
}

func mustSchema(t *testing.T, src string) *models.Schema {
	t.Helper()
	var s models.Schema
	require.NoError(t, json.Unmarshal([]byte(src), &s))
	return &s
}

var screaming = models.Options{Case: models.CaseScreamingSnake, Separator: "_"}

// ── declared properties ───────────────────────────────────────────────────────

// TestLoad_FlatProperties verifies typed parsing of declared top-level
// properties and that unmatched variables are left alone.
func TestLoad_FlatProperties(t *testing.T) {
	schema := mustSchema(t, `{
		"type": "object",
		"properties": {
			"port":      {"type": "integer"},
			"host":      {"type": "string"},
			"debugMode": {"type": "boolean"}
		}
	}`)
	env := map[string]string{
		"PORT":       "8080",
		"HOST":       "localhost",
		"DEBUG_MODE": "true",
		"UNRELATED":  "ignored",
	}

	config, err := Load(env, schema, screaming, Deps{})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"port":      int64(8080),
		"host":      "localhost",
		"debugMode": true,
	}, config)
}

// TestLoad_NestedObjects verifies that ancestors are created on demand and
// properties with no matching variable stay absent.
func TestLoad_NestedObjects(t *testing.T) {
	schema := mustSchema(t, `{
		"type": "object",
		"properties": {
			"database": {
				"type": "object",
				"properties": {
					"connectionUrl": {"type": "string"},
					"poolSize":      {"type": "integer"}
				}
			},
			"cache": {
				"type": "object",
				"properties": {
					"ttl": {"type": "integer"}
				}
			}
		}
	}`)
	env := map[string]string{
		"DATABASE_CONNECTION_URL": "postgres://localhost/app",
		"DATABASE_POOL_SIZE":      "10",
	}

	config, err := Load(env, schema, screaming, Deps{})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"database": map[string]any{
			"connectionUrl": "postgres://localhost/app",
			"poolSize":      int64(10),
		},
	}, config)
	assert.NotContains(t, config, "cache")
}

// TestLoad_MalformedValueSkipped verifies that a present variable that does
// not parse for its schema leaves the property absent rather than failing.
func TestLoad_MalformedValueSkipped(t *testing.T) {
	schema := mustSchema(t, `{
		"type": "object",
		"properties": {"port": {"type": "integer"}}
	}`)

	config, err := Load(map[string]string{"PORT": "eighty"}, schema, screaming, Deps{})
	require.NoError(t, err)
	assert.Empty(t, config)
}

// TestLoad_ArrayFromCSV verifies the comma-separated fallback for arrays.
func TestLoad_ArrayFromCSV(t *testing.T) {
	schema := mustSchema(t, `{
		"type": "object",
		"properties": {
			"tags": {"type": "array", "items": {"type": "string"}}
		}
	}`)

	config, err := Load(map[string]string{"TAGS": "a,b,c"}, schema, screaming, Deps{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"tags": []any{"a", "b", "c"}}, config)
}

// TestLoad_Prefix verifies that a configured prefix scopes every derived
// name.
func TestLoad_Prefix(t *testing.T) {
	schema := mustSchema(t, `{
		"type": "object",
		"properties": {"port": {"type": "integer"}}
	}`)
	opts := models.Options{Case: models.CaseScreamingSnake, Separator: "_", Prefix: "MYAPP"}
	env := map[string]string{
		"MYAPP_PORT": "9000",
		"PORT":       "1",
	}

	config, err := Load(env, schema, opts, Deps{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"port": int64(9000)}, config)
}

// ── *_FILE indirection ────────────────────────────────────────────────────────

// TestLoad_FileIndirection covers the fallback chain: the direct variable
// wins, a parse failure falls through to the file, and unreadable or
// effectively empty files leave the value absent.
func TestLoad_FileIndirection(t *testing.T) {
	schema := mustSchema(t, `{
		"type": "object",
		"properties": {
			"secret": {"type": "string"},
			"port":   {"type": "integer"}
		}
	}`)
	files := fakeFiles{
		"/run/secrets/token": "s3cr3t\n",
		"/run/secrets/port":  " 8080 ",
		"/run/secrets/blank": "  \n\t",
	}

	t.Run("file referenced when direct variable absent", func(t *testing.T) {
		env := map[string]string{"SECRET_FILE": "/run/secrets/token"}

		config, err := Load(env, schema, screaming, Deps{Files: files})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"secret": "s3cr3t"}, config)
	})

	t.Run("direct variable wins over file", func(t *testing.T) {
		env := map[string]string{
			"SECRET":      "direct",
			"SECRET_FILE": "/run/secrets/token",
		}

		config, err := Load(env, schema, screaming, Deps{Files: files})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"secret": "direct"}, config)
	})

	t.Run("unparseable direct value falls through to file", func(t *testing.T) {
		env := map[string]string{
			"PORT":      "eighty",
			"PORT_FILE": "/run/secrets/port",
		}

		config, err := Load(env, schema, screaming, Deps{Files: files})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"port": int64(8080)}, config)
	})

	t.Run("unreadable file treated as absent", func(t *testing.T) {
		env := map[string]string{"SECRET_FILE": "/does/not/exist"}

		config, err := Load(env, schema, screaming, Deps{Files: files})
		require.NoError(t, err)
		assert.Empty(t, config)
	})

	t.Run("file trimming to empty treated as absent", func(t *testing.T) {
		env := map[string]string{"SECRET_FILE": "/run/secrets/blank"}

		config, err := Load(env, schema, screaming, Deps{Files: files})
		require.NoError(t, err)
		assert.Empty(t, config)
	})
}

// ── pattern and wildcard properties ───────────────────────────────────────────

// TestLoad_PatternProperties verifies that variables matching the pattern
// are loaded under their verbatim names.
func TestLoad_PatternProperties(t *testing.T) {
	schema := mustSchema(t, `{
		"type": "object",
		"patternProperties": {
			"^cache_": {"type": "integer"}
		}
	}`)
	env := map[string]string{
		"cache_ttl":  "30",
		"cache_size": "100",
		"other":      "5",
	}

	config, err := Load(env, schema, screaming, Deps{})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"cache_ttl":  int64(30),
		"cache_size": int64(100),
	}, config)
}

// TestLoad_PatternPropertyNestedChild verifies that an anchored pattern
// still routes variables addressing properties nested deeper than one
// level below the discovered object.
func TestLoad_PatternPropertyNestedChild(t *testing.T) {
	schema := mustSchema(t, `{
		"type": "object",
		"patternProperties": {
			"^[a-z-]+code$": {
				"type": "object",
				"properties": {
					"host": {"type": "string"},
					"settings": {
						"type": "object",
						"properties": {"depth": {"type": "integer"}}
					}
				}
			}
		}
	}`)
	env := map[string]string{
		"secret-code_HOST":           "h",
		"secret-code_SETTINGS_DEPTH": "3",
	}

	config, err := Load(env, schema, screaming, Deps{})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"secret-code": map[string]any{
			"host":     "h",
			"settings": map[string]any{"depth": int64(3)},
		},
	}, config)
}

// TestLoad_AdditionalPropertiesUnderParent verifies wildcard discovery
// scoped to a nested parent's prefix.
func TestLoad_AdditionalPropertiesUnderParent(t *testing.T) {
	schema := mustSchema(t, `{
		"type": "object",
		"properties": {
			"labels": {
				"type": "object",
				"additionalProperties": {"type": "string"}
			}
		}
	}`)
	env := map[string]string{
		"LABELS_team":  "core",
		"LABELS_stage": "prod",
		"OUTSIDE":      "x",
	}

	config, err := Load(env, schema, screaming, Deps{})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"labels": map[string]any{
			"team":  "core",
			"stage": "prod",
		},
	}, config)
}

// TestLoad_DeclaredPropertyClaimsNameFirst verifies the consumed-names
// ledger: a variable claimed by a declared property is not re-consumed by a
// wildcard discovery of the same name.
func TestLoad_DeclaredPropertyClaimsNameFirst(t *testing.T) {
	schema := mustSchema(t, `{
		"type": "object",
		"properties": {
			"host": {"type": "string"}
		},
		"additionalProperties": {"type": "string"}
	}`)
	env := map[string]string{
		"HOST":  "declared",
		"EXTRA": "discovered",
	}

	config, err := Load(env, schema, screaming, Deps{})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"host":  "declared",
		"EXTRA": "discovered",
	}, config)
}

// ── structural errors ─────────────────────────────────────────────────────────

// TestLoad_ConflictingShapes verifies that two applicator branches that
// disagree about a node's shape surface ErrInvalidConfiguration.
func TestLoad_ConflictingShapes(t *testing.T) {
	schema := mustSchema(t, `{
		"anyOf": [
			{
				"type": "object",
				"properties": {"a": {"type": "string"}}
			},
			{
				"type": "object",
				"properties": {
					"a": {
						"type": "object",
						"properties": {"b": {"type": "string"}}
					}
				}
			}
		]
	}`)
	env := map[string]string{
		"A":   "scalar",
		"A_B": "nested",
	}

	_, err := Load(env, schema, screaming, Deps{})
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
}

// TestLoad_BooleanPropertySchema verifies the structural error for boolean
// schema values.
func TestLoad_BooleanPropertySchema(t *testing.T) {
	schema := mustSchema(t, `{
		"type": "object",
		"properties": {"bad": true}
	}`)

	_, err := Load(map[string]string{"BAD": "x"}, schema, screaming, Deps{})
	assert.ErrorIs(t, err, models.ErrUnsupportedSchema)
}
