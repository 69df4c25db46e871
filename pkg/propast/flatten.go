package propast

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// OrderedMap is the flattened key to value view of a tree.
// Values are last-write-wins; iteration follows the first occurrence of
// each key.
type OrderedMap struct {
	keys   []string
	values map[string]string
}

// NewOrderedMap creates an empty map.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]string)}
}

// Flatten derives the map from a tree in a single pass. Elements with
// HasError are left out: their key or value text stops at the failure.
func Flatten(tree *Tree) *OrderedMap {
	m := NewOrderedMap()
	if tree == nil {
		return m
	}

	for i := range tree.Elements {
		if tree.Elements[i].HasError {
			continue
		}
		m.Set(tree.Elements[i].Key.Text, tree.Elements[i].Value.Text)
	}

	return m
}

// Set stores value under key, keeping the key's original position.
func (m *OrderedMap) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = value
}

// Get returns the value stored under key.
func (m *OrderedMap) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}

	v, ok := m.values[key]

	return v, ok
}

// Len returns the number of distinct keys.
func (m *OrderedMap) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Keys returns the keys in iteration order.
func (m *OrderedMap) Keys() []string {
	if m == nil {
		return nil
	}

	out := make([]string, len(m.keys))
	copy(out, m.keys)

	return out
}

// Range calls fn for each entry in order until fn returns false.
func (m *OrderedMap) Range(fn func(key, value string) bool) {
	if m == nil {
		return
	}

	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// ToMap copies the entries into a plain map.
func (m *OrderedMap) ToMap() map[string]string {
	out := make(map[string]string, m.Len())
	m.Range(func(k, v string) bool {
		out[k] = v
		return true
	})

	return out
}

// MarshalJSON encodes the map as a JSON object in iteration order.
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML encodes the map as a YAML mapping in iteration order.
func (m *OrderedMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	m.Range(func(k, v string) bool {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v},
		)
		return true
	})

	return node, nil
}
