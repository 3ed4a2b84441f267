// Package uniquemap provides a key-unique mapping that can only be
// obtained by parsing an ordered sequence of pairs.
//
// Duplicate keys surface as a parse failure at the boundary, carrying
// the offending key, instead of being silently dropped or asserted
// against later. A Map in hand is proof the check already ran.
package uniquemap

import "fmt"

// Pair is a single key-value entry in the input sequence.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// DuplicateKeyError reports the first key that appeared more than once
// in the input. Match with errors.As.
type DuplicateKeyError[K comparable] struct {
	Key K
}

func (e *DuplicateKeyError[K]) Error() string {
	return fmt.Sprintf("uniquemap: duplicate key %v", e.Key)
}

// Map is a mapping with keys unique by construction. The zero value is
// an empty, usable map for reads; obtain populated instances via Parse.
type Map[K comparable, V any] struct {
	entries map[K]V
	order   []K
}

// Parse converts an ordered pair sequence into a Map, failing with a
// *DuplicateKeyError naming the first key seen twice (in input order).
func Parse[K comparable, V any](pairs []Pair[K, V]) (Map[K, V], error) {
	entries := make(map[K]V, len(pairs))
	order := make([]K, 0, len(pairs))
	for _, p := range pairs {
		if _, seen := entries[p.Key]; seen {
			return Map[K, V]{}, &DuplicateKeyError[K]{Key: p.Key}
		}
		entries[p.Key] = p.Value
		order = append(order, p.Key)
	}
	return Map[K, V]{entries: entries, order: order}, nil
}

// Get returns the value for key and whether it is present.
func (m Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Len returns the number of entries.
func (m Map[K, V]) Len() int {
	return len(m.order)
}

// Keys returns the keys in first-appearance order.
func (m Map[K, V]) Keys() []K {
	out := make([]K, len(m.order))
	copy(out, m.order)
	return out
}

// Pairs returns the entries in first-appearance order. Re-parsing the
// result yields an equal Map.
func (m Map[K, V]) Pairs() []Pair[K, V] {
	out := make([]Pair[K, V], 0, len(m.order))
	for _, k := range m.order {
		out = append(out, Pair[K, V]{Key: k, Value: m.entries[k]})
	}
	return out
}
