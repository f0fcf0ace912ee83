// Package jsonutil provides helpers for decoding loosely-shaped JSON payloads
// returned by the users API: numeric ids, wrapped arrays, missing fields.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v any, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// ToString converts a decoded JSON value to its display string.
// Whole float64 values (the way encoding/json decodes every number) are
// formatted without a fractional part so that 42 renders as "42". Values
// beyond the exactly representable integer range keep float formatting.
func ToString(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if math.Trunc(val) == val && math.Abs(val) < 1<<53 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// FirstString returns the string form of the first key present in m with a
// non-nil scalar value. Objects and arrays are skipped.
func FirstString(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch v.(type) {
		case map[string]any, []any:
			continue
		}
		return ToString(v), true
	}
	return "", false
}

// ObjectArray extracts a slice of JSON objects from raw. It accepts a bare
// array or an object carrying the array under one of wrapKeys. Non-object
// elements are dropped. Any other shape yields an empty, non-nil slice.
func ObjectArray(raw []byte, wrapKeys ...string) ([]map[string]any, error) {
	var v any
	if err := UnmarshalWithContext(raw, &v, "decode payload"); err != nil {
		return nil, err
	}
	return objectsOf(unwrap(v, wrapKeys)), nil
}

// Object extracts a single JSON object from raw, unwrapping it from the
// first of wrapKeys that holds an object.
func Object(raw []byte, wrapKeys ...string) (map[string]any, error) {
	var v any
	if err := UnmarshalWithContext(raw, &v, "decode payload"); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode payload: expected object, got %s", kindOf(v))
	}
	for _, k := range wrapKeys {
		if inner, ok := obj[k].(map[string]any); ok {
			return inner, nil
		}
	}
	return obj, nil
}

func unwrap(v any, wrapKeys []string) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}
	for _, k := range wrapKeys {
		if inner, ok := obj[k].([]any); ok {
			return inner
		}
	}
	return nil
}

func objectsOf(v any) []map[string]any {
	arr, _ := v.([]any)
	out := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if obj, ok := el.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}
