// Package decode converts loosely typed input into concrete struct values.
// JSON tags drive the mapping, so command structs decode identically whether
// the source was a JSON body, a template-bound map, or an HTML form post.
package decode

import (
	"encoding/json"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// FromMap converts a map into a value of type T through JSON round-tripping.
func FromMap[T any](data map[string]any) (T, error) {
	var result T
	b, err := json.Marshal(data)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(b, &result)
	return result, err
}

// FromForm converts URL-encoded form values into a value of type T.
// Fields bind as strings unless named in coerce, in which case boolean and
// numeric values are converted before decoding. Empty values are omitted so
// optional fields stay unset.
func FromForm[T any](values url.Values, coerce ...string) (T, error) {
	data := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		if slices.Contains(coerce, key) {
			data[key] = coerceValue(vals[0])
		} else {
			data[key] = vals[0]
		}
	}
	return FromMap[T](data)
}

func coerceValue(value string) any {
	switch strings.ToLower(value) {
	case "true", "on":
		return true
	case "false", "off":
		return false
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
