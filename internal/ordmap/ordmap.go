/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package ordmap provides a string-keyed map that iterates in ascending
// byte order. It is backed by a B-tree, so lookups, inserts and deletes are
// O(log n).
package ordmap

import (
	"errors"
	"iter"

	"github.com/google/btree"
)

// ErrExists is returned by Insert when the key is already present.
var ErrExists = errors.New("ordmap: key already exists")

// degree of the underlying B-tree.
const degree = 32

type item[V any] struct {
	key string
	val V
}

func less[V any](a, b item[V]) bool {
	return a.key < b.key
}

// Map is an ordered map from string keys to values of type V.
// The zero value is not usable; create maps with New.
type Map[V any] struct {
	tree *btree.BTreeG[item[V]]
}

// New creates an empty Map.
func New[V any]() *Map[V] {
	return &Map[V]{tree: btree.NewG(degree, less[V])}
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	it, ok := m.tree.Get(item[V]{key: key})
	return it.val, ok
}

// Insert adds key with val. It never replaces an existing key; inserting a
// duplicate returns ErrExists and leaves the map unchanged.
func (m *Map[V]) Insert(key string, val V) error {
	if m.tree.Has(item[V]{key: key}) {
		return ErrExists
	}
	m.tree.ReplaceOrInsert(item[V]{key: key, val: val})
	return nil
}

// Delete removes key and reports whether it was present.
func (m *Map[V]) Delete(key string) bool {
	_, ok := m.tree.Delete(item[V]{key: key})
	return ok
}

// Min returns the smallest key and its value.
func (m *Map[V]) Min() (string, V, bool) {
	it, ok := m.tree.Min()
	return it.key, it.val, ok
}

// Len returns the number of keys.
func (m *Map[V]) Len() int {
	return m.tree.Len()
}

// All iterates over every key in ascending byte order.
// The map must not be modified during iteration.
func (m *Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		m.tree.Ascend(func(it item[V]) bool {
			return yield(it.key, it.val)
		})
	}
}

// Clear removes every key.
func (m *Map[V]) Clear() {
	m.tree.Clear(false)
}
