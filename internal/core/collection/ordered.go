package collection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"math"
)

// OrderedMap associates unique keys with values and remembers the order in
// which keys were first inserted. Overwriting a key keeps its position.
// Floating-point NaN keys are treated as equal to each other, so every NaN
// lands in a single entry.
type OrderedMap[K comparable, V any] struct {
	keys  []K
	vals  []V
	index map[K]int
	nan   int // position of the NaN entry, -1 when absent
}

// NewOrderedMap returns an empty map with room for capacity keys.
func NewOrderedMap[K comparable, V any](capacity int) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		keys:  make([]K, 0, capacity),
		vals:  make([]V, 0, capacity),
		index: make(map[K]int, capacity),
		nan:   -1,
	}
}

func (m *OrderedMap[K, V]) lookup(k K) (int, bool) {
	if isNaNKey(k) {
		return m.nan, m.nan >= 0
	}
	i, ok := m.index[k]
	return i, ok
}

// Set stores v under k.
func (m *OrderedMap[K, V]) Set(k K, v V) {
	if i, ok := m.lookup(k); ok {
		m.vals[i] = v
		return
	}
	if isNaNKey(k) {
		m.nan = len(m.keys)
	} else {
		m.index[k] = len(m.keys)
	}
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
}

// Get returns the value stored under k.
func (m *OrderedMap[K, V]) Get(k K) (V, bool) {
	i, ok := m.lookup(k)
	if !ok {
		var zero V
		return zero, false
	}
	return m.vals[i], true
}

func (m *OrderedMap[K, V]) Has(k K) bool {
	_, ok := m.lookup(k)
	return ok
}

func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in key insertion order.
func (m *OrderedMap[K, V]) Values() []V {
	out := make([]V, len(m.vals))
	copy(out, m.vals)
	return out
}

// All iterates key/value pairs in insertion order.
func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, k := range m.keys {
			if !yield(k, m.vals[i]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the map as a JSON object in insertion order. Non-string
// keys are rendered with fmt; a nil key becomes "null". When two distinct keys
// render to the same string, such as nil and "null" or int64(23) and
// float64(23), an object would lose entries, so the map is encoded instead as
// an array of {"key":k,"value":v} pairs in insertion order.
func (m *OrderedMap[K, V]) MarshalJSON() ([]byte, error) {
	if m.keysCollide() {
		return m.marshalPairs()
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(keyString(k))
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.vals[i])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %v: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *OrderedMap[K, V]) keysCollide() bool {
	seen := make(map[string]struct{}, len(m.keys))
	for _, k := range m.keys {
		ks := keyString(k)
		if _, ok := seen[ks]; ok {
			return true
		}
		seen[ks] = struct{}{}
	}
	return false
}

type keyValuePair struct {
	Key   any `json:"key"`
	Value any `json:"value"`
}

func (m *OrderedMap[K, V]) marshalPairs() ([]byte, error) {
	pairs := make([]keyValuePair, len(m.keys))
	for i, k := range m.keys {
		var key any = k
		if isNaNKey(k) {
			key = keyString(k)
		}
		pairs[i] = keyValuePair{Key: key, Value: m.vals[i]}
	}
	b, err := json.Marshal(pairs)
	if err != nil {
		return nil, fmt.Errorf("marshal key/value pairs: %w", err)
	}
	return b, nil
}

// isNaNKey reports whether k holds a floating-point NaN, which never equals
// itself and so cannot be found again in a Go map.
func isNaNKey(k any) bool {
	switch v := k.(type) {
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	}
	return false
}

func keyString(k any) string {
	switch v := k.(type) {
	case nil:
		return "null"
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(k)
}
