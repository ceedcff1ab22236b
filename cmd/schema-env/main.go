// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// schema-env is a debugging companion for the go-schema-env library: it
// enumerates the environment variable names a schema derives, resolves a
// configuration from the process environment, and applies array overrides
// to an existing configuration document.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	schemaenv "github.com/MKhiriev/go-schema-env"
	"github.com/MKhiriev/go-schema-env/models"
)

var (
	flagPrefix    string
	flagSeparator string
	flagCase      string
	flagDebug     bool
)

var rootCmd = &cobra.Command{
	Use:   "schema-env",
	Short: "Map JSON-Schema configuration onto environment variables",
	Long: `schema-env works with a fully dereferenced JSON Schema (JSON or YAML)
describing a configuration object.

Commands:
  vars      list every derivable environment variable name
  resolve   build a configuration object from the process environment
  override  apply every/each array overrides to a configuration document`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPrefix, "prefix", "", "prefix prepended to every derived variable name")
	rootCmd.PersistentFlags().StringVar(&flagSeparator, "separator", "", `separator joining path segments (default "_"; override command: "__")`)
	rootCmd.PersistentFlags().StringVar(&flagCase, "case", "", "case style for named segments: snake or screaming (defaults per command)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "emit trace diagnostics to stderr")

	rootCmd.AddCommand(varsCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(overrideCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// namingOptions builds naming options from the persistent flags. Unset
// flags stay zero so each command's defaults apply.
func namingOptions() (models.Options, error) {
	var c models.Case
	switch flagCase {
	case "":
	case "snake":
		c = models.CaseSnake
	case "screaming":
		c = models.CaseScreamingSnake
	default:
		return models.Options{}, fmt.Errorf("unknown case style %q (want snake or screaming)", flagCase)
	}
	return models.Options{Case: c, Separator: flagSeparator, Prefix: flagPrefix}, nil
}

func resolver() schemaenv.Resolver {
	if !flagDebug {
		return schemaenv.Resolver{}
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().
		Timestamp().
		Logger().
		Level(zerolog.TraceLevel)
	return schemaenv.Resolver{Log: &zl}
}
