package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

// Extensions holds vendor extensions and any other keys the typed model does
// not know about.
type Extensions map[string]interface{}

// Has reports whether any of the given keys is present.
func (e Extensions) Has(keys ...string) bool {
	for _, key := range keys {
		if _, ok := e[key]; ok {
			return true
		}
	}
	return false
}

// marshalExtended marshals v and merges ext into the resulting JSON object.
func marshalExtended(v interface{}, ext Extensions) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(ext) == 0 {
		return data, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for key, value := range ext {
		if _, known := fields[key]; known {
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("extension %s: %w", key, err)
		}
		fields[key] = raw
	}
	return json.Marshal(fields)
}

func cloneExtensions(ext Extensions) Extensions {
	if ext == nil {
		return nil
	}
	out := make(Extensions, len(ext))
	for key, value := range ext {
		out[key] = cloneValue(value)
	}
	return out
}

// cloneValue copies the map and slice containers produced by generic decoding.
func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case map[string]string:
		return maps.Clone(val)
	default:
		return v
	}
}

// Unmarshal decodes JSON or YAML input into v. JSON is compacted first since YAML
// does not accept tab indentation.
func Unmarshal(data []byte, v interface{}) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err == nil {
			data = buf.Bytes()
		}
	}
	return yaml.Unmarshal(data, v)
}
