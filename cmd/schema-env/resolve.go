// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	schemaenv "github.com/MKhiriev/go-schema-env"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <schema-file>",
	Short: "Build a configuration object from the process environment",
	Long: `Resolve every addressable property of the schema against the process
environment and print the resulting configuration object as JSON.

Examples:
  CAMEL_CASED_PROPERTY_NAME=test schema-env resolve config.schema.json
  schema-env resolve --prefix MYAPP --debug config.schema.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	schema, err := readSchemaFile(args[0])
	if err != nil {
		return err
	}
	opts, err := namingOptions()
	if err != nil {
		return err
	}

	cfg, err := resolver().LoadFromEnv(schemaenv.Environ(), schema, opts)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
