// Copyright 2021 Andrew Werner.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package rbtree provides ordered maps and sets backed by a red-black tree.
//
// Insert, Delete and lookups run in O(log n). Iterators walk the tree in
// key order by following parent links and can be positioned with SeekGE,
// SeekLT or SeekMin. Neither the trees nor their iterators are safe for
// concurrent use, and an iterator must not be used across a structural
// modification of its tree: it becomes invalid and Err reports
// ErrStaleIterator.
package rbtree

import (
	"io"

	"github.com/ajwerner/rbtree/internal/abstract"
)

var (
	// ErrStaleIterator is reported by an iterator whose tree was modified
	// after the iterator was positioned.
	ErrStaleIterator = abstract.ErrStaleIterator

	// ErrInvariant is matched by errors returned from Verify.
	ErrInvariant = abstract.ErrInvariant
)

// InvariantError describes a violated red-black tree property.
type InvariantError = abstract.InvariantError

// RangeCompare locates a contiguous range of keys relative to k. It returns
// a negative number if the range lies below k, zero if k is in the range,
// and a positive number if the range lies above k.
type RangeCompare[K any] func(k K) int

type noopAug[K any] struct{}

func (a *noopAug[K]) Update(
	*abstract.Config[K, struct{}], abstract.Node[K, *noopAug[K]], abstract.UpdateMeta[K],
) (changed bool) {
	return false
}

// Map is an ordered map from K to V.
type Map[K, V any] struct {
	t abstract.Map[K, V, struct{}, noopAug[K], *noopAug[K]]
}

// MakeMap constructs a new, empty Map ordered by cmp.
func MakeMap[K, V any](cmp func(K, K) int) *Map[K, V] {
	return &Map[K, V]{
		t: abstract.MakeMap[K, V, struct{}, noopAug[K], *noopAug[K]](struct{}{}, cmp),
	}
}

// Insert adds k with value v unless an equal key is present. It reports
// whether the entry was added.
func (m *Map[K, V]) Insert(k K, v V) (inserted bool) { return m.t.Insert(k, v) }

// Upsert adds or replaces the value associated with k.
func (m *Map[K, V]) Upsert(k K, v V) (replaced V, ok bool) { return m.t.Upsert(k, v) }

// Get returns the value stored for k.
func (m *Map[K, V]) Get(k K) (v V, ok bool) { return m.t.Get(k) }

// Contains returns whether k is present.
func (m *Map[K, V]) Contains(k K) bool { return m.t.Contains(k) }

// Delete removes k and returns the removed entry.
func (m *Map[K, V]) Delete(k K) (removedK K, v V, found bool) { return m.t.Delete(k) }

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.t.Len() }

// Height returns the number of nodes on the longest root-to-leaf path.
func (m *Map[K, V]) Height() int { return m.t.Height() }

// Reset removes all entries.
func (m *Map[K, V]) Reset() { m.t.Reset() }

// Verify checks the red-black tree invariants.
func (m *Map[K, V]) Verify() error { return m.t.Verify() }

// String describes the shape of the tree in a Newick-like format with red
// nodes marked by '*'.
func (m *Map[K, V]) String() string { return m.t.String() }

// WriteDot writes the tree to w as a graphviz digraph. A nil label prints
// keys with %v.
func (m *Map[K, V]) WriteDot(w io.Writer, label func(K, V) string) error {
	return m.t.WriteDot(w, label)
}

// Walk visits every node in pre-order.
func (m *Map[K, V]) Walk(f func(depth int, k K, v V, red bool)) {
	m.t.Walk(func(depth int, _ abstract.Dir, k K, v V, red bool) {
		f(depth, k, v, red)
	})
}

// MakeIter returns an iterator positioned before the first entry.
func (m *Map[K, V]) MakeIter() Iterator[K, V] {
	return Iterator[K, V]{it: m.t.MakeIter()}
}

// Iterator iterates over a Map in key order.
type Iterator[K, V any] struct {
	it abstract.Iterator[K, V, struct{}, noopAug[K], *noopAug[K]]
}

func (it *Iterator[K, V]) Reset() { it.it.Reset() }

func (it *Iterator[K, V]) First() { it.it.First() }

func (it *Iterator[K, V]) Last() { it.it.Last() }

func (it *Iterator[K, V]) Next() { it.it.Next() }

func (it *Iterator[K, V]) Prev() { it.it.Prev() }

// Advance moves to the next entry and reports whether there is one.
func (it *Iterator[K, V]) Advance() bool { return it.it.Advance() }

func (it *Iterator[K, V]) SeekGE(k K) { it.it.SeekGE(k) }

func (it *Iterator[K, V]) SeekLT(k K) { it.it.SeekLT(k) }

// SeekMin positions the iterator just before the smallest key in the range
// described by rc; the following Advance lands on it.
func (it *Iterator[K, V]) SeekMin(rc RangeCompare[K]) {
	it.it.SeekMin(abstract.RangeCompare[K](rc))
}

func (it *Iterator[K, V]) Valid() bool { return it.it.Valid() }

func (it *Iterator[K, V]) Err() error { return it.it.Err() }

func (it *Iterator[K, V]) Cur() K { return it.it.Cur() }

func (it *Iterator[K, V]) Value() V { return it.it.Value() }
