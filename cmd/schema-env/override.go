// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	schemaenv "github.com/MKhiriev/go-schema-env"
	"github.com/MKhiriev/go-schema-env/models"
)

var (
	flagExtend   bool
	flagTruncate bool
)

var overrideCmd = &cobra.Command{
	Use:   "override <schema-file> <config-file>",
	Short: "Apply every/each array overrides to a configuration document",
	Long: `Apply array element overrides from the process environment to an
existing configuration document (JSON or YAML) and print the result as
JSON. Only arrays of homogeneous objects participate.

Examples:
  array__every__prop_2=1 schema-env override config.schema.json config.json
  array__each__prop_2=1,2 schema-env override --extend config.schema.json config.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runOverride,
}

func init() {
	overrideCmd.Flags().BoolVar(&flagExtend, "extend", false, "grow target arrays to match each-override lengths")
	overrideCmd.Flags().BoolVar(&flagTruncate, "truncate", false, "shrink target arrays to match each-override lengths")
}

func runOverride(cmd *cobra.Command, args []string) error {
	schema, err := readSchemaFile(args[0])
	if err != nil {
		return err
	}
	cfg, err := readConfigFile(args[1])
	if err != nil {
		return err
	}
	naming, err := namingOptions()
	if err != nil {
		return err
	}
	opts := models.OverrideOptions{
		Options:              naming,
		ExtendTargetArrays:   flagExtend,
		TruncateTargetArrays: flagTruncate,
	}

	result, err := resolver().OverrideArrayValues(cfg, schemaenv.Environ(), schema, opts)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
