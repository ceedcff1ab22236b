// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models defines the shared data model of go-schema-env: the
// interpreted JSON Schema subset, configuration property paths with typed
// segment variants, naming options, and the sentinel errors of the engine.
//
// All types here are passive values: the schema and environment map are
// read-only inputs for the duration of an operation, and paths are copied
// on extension so sibling paths never alias.
package models
