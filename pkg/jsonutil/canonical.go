// Package jsonutil renders values as canonical JSON, the byte form the audit
// journal hashes.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// CanonicalMarshal encodes v as compact JSON with every object's keys in
// sorted order. Struct field order therefore never changes the bytes, and a
// journal record hashes the same after a round trip through disk.
func CanonicalMarshal(v any) ([]byte, error) {
	plain, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonical json: %w", err)
	}
	// Decode into generic maps and slices so key order is ours to choose.
	var tree any
	if err := json.Unmarshal(plain, &tree); err != nil {
		return nil, fmt.Errorf("canonical json: %w", err)
	}

	var out bytes.Buffer
	if err := encodeNode(&out, tree); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func encodeNode(out *bytes.Buffer, node any) error {
	switch n := node.(type) {
	case map[string]any:
		return encodeObject(out, n)
	case []any:
		out.WriteByte('[')
		for i, item := range n {
			if i > 0 {
				out.WriteByte(',')
			}
			if err := encodeNode(out, item); err != nil {
				return err
			}
		}
		out.WriteByte(']')
		return nil
	default:
		return encodeScalar(out, n)
	}
}

func encodeObject(out *bytes.Buffer, obj map[string]any) error {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			out.WriteByte(',')
		}
		if err := encodeScalar(out, k); err != nil {
			return err
		}
		out.WriteByte(':')
		if err := encodeNode(out, obj[k]); err != nil {
			return err
		}
	}
	out.WriteByte('}')
	return nil
}

// encodeScalar writes strings, numbers, booleans and null.
func encodeScalar(out *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	out.Write(b)
	return nil
}
