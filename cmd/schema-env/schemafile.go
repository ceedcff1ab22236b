// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-schema-env/models"
)

// readSchemaFile loads a schema document from a JSON or YAML file.
// YAML is converted through yamlToJSON so property declaration order is
// preserved.
func readSchemaFile(path string) (*models.Schema, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	var s models.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing schema %s: %w", path, err)
	}
	return &s, nil
}

// readConfigFile loads a configuration document from a JSON or YAML file.
func readConfigFile(path string) (map[string]any, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	var cfg map[string]any
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration %s: %w", path, err)
	}
	return cfg, nil
}

func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", path, err)
		}
		return converted, nil
	}
	return data, nil
}

// yamlToJSON converts one YAML document to JSON. The conversion goes
// through yaml.Node rather than map decoding so that mapping key order
// survives — declaration order of schema properties is significant.
func yamlToJSON(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if node.Kind == 0 {
		return nil, fmt.Errorf("empty document")
	}

	var buf bytes.Buffer
	if err := encodeNode(&buf, &node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeNode(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return fmt.Errorf("empty document")
		}
		return encodeNode(buf, n.Content[0])

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := encodeNode(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, child := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeNode(buf, child); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		out, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(out)
		return nil

	case yaml.AliasNode:
		return encodeNode(buf, n.Alias)

	default:
		return fmt.Errorf("unsupported YAML node kind %d", n.Kind)
	}
}
