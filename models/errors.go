package models

import "errors"

var (
	// ErrUnsupportedSchema indicates the input schema itself cannot be
	// processed: a boolean where a schema object is required, or a type
	// outside the supported set. No partial result is meaningful.
	ErrUnsupportedSchema = errors.New("unsupported schema")

	// ErrInvalidConfiguration indicates a configuration tree structurally
	// incompatible with the path being written, e.g. a scalar found where
	// an ancestor object was expected.
	ErrInvalidConfiguration = errors.New("invalid configuration structure")
)
