package descriptor

import (
	"bytes"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Map is an insertion-ordered string keyed map that keeps its order through
// JSON and YAML round trips.
type Map[V any] struct {
	om *orderedmap.OrderedMap[string, V]
}

// Paths maps a path template to its path item.
type Paths = Map[*PathItem]

// Schemas maps a definition or property name to its schema.
type Schemas = Map[*Schema]

// NewMap creates an empty ordered map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{om: orderedmap.New[string, V]()}
}

func (m *Map[V]) init() {
	if m.om == nil {
		m.om = orderedmap.New[string, V]()
	}
}

// Len returns the number of entries. A nil map has no entries.
func (m *Map[V]) Len() int {
	if m == nil || m.om == nil {
		return 0
	}
	return m.om.Len()
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	if m == nil || m.om == nil {
		var zero V
		return zero, false
	}
	return m.om.Get(key)
}

// Value returns the value stored under key or the zero value.
func (m *Map[V]) Value(key string) V {
	v, _ := m.Get(key)
	return v
}

// Has reports whether key is present.
func (m *Map[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. Existing keys keep their position.
func (m *Map[V]) Set(key string, value V) {
	m.init()
	m.om.Set(key, value)
}

// Delete removes key and reports whether it was present.
func (m *Map[V]) Delete(key string) bool {
	if m == nil || m.om == nil {
		return false
	}
	_, ok := m.om.Delete(key)
	return ok
}

// Keys returns the keys in insertion order.
func (m *Map[V]) Keys() []string {
	if m.Len() == 0 {
		return nil
	}
	keys := make([]string, 0, m.om.Len())
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Range calls fn for every entry in insertion order until fn returns false.
func (m *Map[V]) Range(fn func(key string, value V) bool) {
	if m.Len() == 0 {
		return
	}
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Clone returns a new map holding the same values in the same order.
func (m *Map[V]) Clone() *Map[V] {
	if m == nil {
		return nil
	}
	out := NewMap[V]()
	m.Range(func(key string, value V) bool {
		out.Set(key, value)
		return true
	})
	return out
}

func (m *Map[V]) MarshalJSON() ([]byte, error) {
	m.init()
	return m.om.MarshalJSON()
}

func (m *Map[V]) UnmarshalJSON(data []byte) error {
	m.om = orderedmap.New[string, V]()
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return m.om.UnmarshalJSON(data)
}

func (m *Map[V]) MarshalYAML() (interface{}, error) {
	m.init()
	return m.om.MarshalYAML()
}

func (m *Map[V]) UnmarshalYAML(value *yaml.Node) error {
	m.om = orderedmap.New[string, V]()
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", value.Line)
	}
	return m.om.UnmarshalYAML(value)
}
