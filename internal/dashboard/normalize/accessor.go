// Package normalize turns shape-ambiguous UltraCare API payloads into canonical rows.
//
// Every function here is pure and total: malformed input yields an empty list or a
// default-valued row, never an error. Field aliasing is expressed as ordered
// []Accessor lists so the priority of each source field can be tested on its own.
package normalize

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Accessor reads one candidate source value from a raw row. It reports false when
// the value is absent or null.
type Accessor func(row map[string]any) (any, bool)

// Field reads a top-level key.
func Field(name string) Accessor {
	return func(row map[string]any) (any, bool) {
		if row == nil {
			return nil, false
		}
		value, ok := row[name]
		if !ok || value == nil {
			return nil, false
		}
		return value, true
	}
}

// Path reads a nested key through intermediate objects.
func Path(names ...string) Accessor {
	return func(row map[string]any) (any, bool) {
		var current any = row
		for _, name := range names {
			obj, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			current, ok = obj[name]
			if !ok || current == nil {
				return nil, false
			}
		}
		return current, true
	}
}

// StringOnly accepts the wrapped value only when it is a JSON string.
func StringOnly(inner Accessor) Accessor {
	return func(row map[string]any) (any, bool) {
		value, ok := inner(row)
		if !ok {
			return nil, false
		}
		if _, isString := value.(string); !isString {
			return nil, false
		}
		return value, true
	}
}

// NonEmpty rejects values whose string form is empty.
func NonEmpty(inner Accessor) Accessor {
	return func(row map[string]any) (any, bool) {
		value, ok := inner(row)
		if !ok {
			return nil, false
		}
		if s, isScalar := scalarString(value); isScalar && s == "" {
			return nil, false
		}
		return value, true
	}
}

// Probe evaluates accessors in order and returns the first defined value.
func Probe(row map[string]any, accessors []Accessor) (any, bool) {
	for _, accessor := range accessors {
		if value, ok := accessor(row); ok {
			return value, true
		}
	}
	return nil, false
}

// ProbeString is Probe restricted to values with a scalar string form. Objects and
// arrays are skipped so the next candidate gets a chance.
func ProbeString(row map[string]any, accessors []Accessor, fallback string) string {
	for _, accessor := range accessors {
		value, ok := accessor(row)
		if !ok {
			continue
		}
		if s, isScalar := scalarString(value); isScalar {
			return s
		}
	}
	return fallback
}

// ProbeNumber returns the first candidate that is numeric.
func ProbeNumber(row map[string]any, accessors []Accessor) (float64, bool) {
	for _, accessor := range accessors {
		value, ok := accessor(row)
		if !ok {
			continue
		}
		if f, isNumber := asFloat(value); isNumber {
			return f, true
		}
	}
	return 0, false
}

// ProbeTruthy returns the truthiness of the first defined candidate.
func ProbeTruthy(row map[string]any, accessors []Accessor) bool {
	value, ok := Probe(row, accessors)
	if !ok {
		return false
	}
	return truthy(value)
}

// List resolves a list envelope: the payload itself when it is an array, otherwise
// the first key, in the given order, that holds an array.
func List(payload any, keys ...string) []any {
	if arr, ok := payload.([]any); ok {
		return arr
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	for _, key := range keys {
		if arr, ok := obj[key].([]any); ok {
			return arr
		}
	}
	return nil
}

// Decode parses raw JSON keeping numbers exact. Invalid input decodes to nil.
func Decode(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil
	}
	return out
}

// objectKeys returns the top-level keys of a JSON object in source order.
func objectKeys(raw []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := tok.(string)
		if !ok {
			return keys
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return keys
		}
		keys = append(keys, key)
	}
	return keys
}

func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		return err == nil && f != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

func asObject(value any) map[string]any {
	obj, _ := value.(map[string]any)
	return obj
}
