// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-schema-env/internal/envname"
	"github.com/MKhiriev/go-schema-env/internal/walker"
	"github.com/MKhiriev/go-schema-env/models"
)

var varsCmd = &cobra.Command{
	Use:   "vars <schema-file>",
	Short: "List every derivable environment variable name",
	Long: `List the environment variable name of every statically known,
addressable property of the schema. Pattern and wildcard properties have
no static names; they are listed as <pattern> and * placeholders under
their parent prefix.

Examples:
  schema-env vars config.schema.json
  schema-env vars --prefix MYAPP config.schema.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runVars,
}

func runVars(cmd *cobra.Command, args []string) error {
	schema, err := readSchemaFile(args[0])
	if err != nil {
		return err
	}
	opts, err := namingOptions()
	if err != nil {
		return err
	}
	opts = opts.WithDefaults(models.DefaultLoadOptions())

	v := &varsVisitor{opts: opts, out: cmd.OutOrStdout()}
	return walker.Walk(schema, nil, v)
}

// varsVisitor prints derived names instead of reading the environment.
type varsVisitor struct {
	opts models.Options
	out  io.Writer
}

func (v *varsVisitor) VisitSchema(schema *models.Schema, path models.Path) error {
	if len(path) == 0 || len(schema.Type) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(v.out, envname.ForPath(path, v.opts))
	return err
}

func (v *varsVisitor) VisitPatternProperty(pattern string, _ *models.Schema, path models.Path) error {
	_, err := fmt.Fprintf(v.out, "%s<%s>\n", v.childPrefix(path), pattern)
	return err
}

func (v *varsVisitor) VisitAdditionalProperties(_ *models.Schema, path models.Path) error {
	_, err := fmt.Fprintf(v.out, "%s*\n", v.childPrefix(path))
	return err
}

func (v *varsVisitor) childPrefix(path models.Path) string {
	if len(path) == 0 && v.opts.Prefix == "" {
		return ""
	}
	return envname.ForPath(path, v.opts) + v.opts.Separator
}
