// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ordmap implements an ordered map that retains the order in
// which items are added, while providing fast key-based lookup.
// It is used for collections where iteration order is part of the
// document semantics, such as the world template library and the
// top-level node lists.
package ordmap

import (
	"fmt"
	"slices"
)

// KeyValue represents a key-value pair.
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is a generic ordered map combining the order of a slice and the
// fast lookup of a map. The map stores the index of each key in the
// order slice.
type Map[K comparable, V any] struct {

	// Order is the ordered list of values and associated keys,
	// in the order added.
	Order []KeyValue[K, V]

	// indexes is the key to index mapping.
	indexes map[K]int
}

// New returns a new ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{indexes: make(map[K]int)}
}

// Init initializes the map if it isn't already.
func (om *Map[K, V]) Init() {
	if om.indexes == nil {
		om.indexes = make(map[K]int)
	}
}

// Reset removes all elements from the map.
func (om *Map[K, V]) Reset() {
	om.Order = nil
	om.indexes = nil
}

// Len returns the number of items in the map.
func (om *Map[K, V]) Len() int {
	return len(om.Order)
}

// Add adds a value for the given key. If the key already exists,
// its value is replaced in place, retaining the original order.
func (om *Map[K, V]) Add(key K, val V) {
	om.Init()
	if idx, has := om.indexes[key]; has {
		om.Order[idx] = KeyValue[K, V]{Key: key, Value: val}
		return
	}
	om.indexes[key] = len(om.Order)
	om.Order = append(om.Order, KeyValue[K, V]{Key: key, Value: val})
}

// ValueByKey returns the value for the given key,
// with a zero value returned for a missing key.
func (om *Map[K, V]) ValueByKey(key K) V {
	v, _ := om.ValueByKeyTry(key)
	return v
}

// ValueByKeyTry returns the value for the given key,
// and whether the key was present.
func (om *Map[K, V]) ValueByKeyTry(key K) (V, bool) {
	if idx, has := om.indexes[key]; has {
		return om.Order[idx].Value, true
	}
	var zv V
	return zv, false
}

// IndexByKey returns the order index of the given key, or -1 if
// it is not present.
func (om *Map[K, V]) IndexByKey(key K) int {
	if idx, has := om.indexes[key]; has {
		return idx
	}
	return -1
}

// ValueByIndex returns the value at the given order index.
func (om *Map[K, V]) ValueByIndex(idx int) V {
	return om.Order[idx].Value
}

// KeyByIndex returns the key at the given order index.
func (om *Map[K, V]) KeyByIndex(idx int) K {
	return om.Order[idx].Key
}

// DeleteKey deletes the item with the given key, returning false if
// the key was not present. This is relatively slow because the index
// map must be renumbered above the deleted item.
func (om *Map[K, V]) DeleteKey(key K) bool {
	idx, has := om.indexes[key]
	if !has {
		return false
	}
	om.Order = slices.Delete(om.Order, idx, idx+1)
	delete(om.indexes, key)
	for i := idx; i < len(om.Order); i++ {
		om.indexes[om.Order[i].Key] = i
	}
	return true
}

// Keys returns the keys in order.
func (om *Map[K, V]) Keys() []K {
	kl := make([]K, om.Len())
	for i, kv := range om.Order {
		kl[i] = kv.Key
	}
	return kl
}

// Values returns the values in order.
func (om *Map[K, V]) Values() []V {
	vl := make([]V, om.Len())
	for i, kv := range om.Order {
		vl[i] = kv.Value
	}
	return vl
}

// String returns a string representation of the map.
func (om *Map[K, V]) String() string {
	return fmt.Sprintf("%v", om.Order)
}
