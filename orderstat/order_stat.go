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

// Package orderstat provides an ordered map which additionally supports
// selecting the i-th smallest key and computing the rank of a key in
// O(log n), by augmenting every node of a red-black tree with the size of
// its subtree.
package orderstat

import (
	"io"

	"github.com/ajwerner/rbtree/internal/abstract"
)

// Map is an order-statistic map from K to V.
type Map[K, V any] struct {
	t abstract.Map[K, V, struct{}, aug[K], *aug[K]]
}

// MakeMap constructs a new, empty Map ordered by cmp.
func MakeMap[K, V any](cmp func(K, K) int) *Map[K, V] {
	return &Map[K, V]{
		t: abstract.MakeMap[K, V, struct{}, aug[K], *aug[K]](struct{}{}, cmp),
	}
}

// Insert adds k with value v unless an equal key is present.
func (t *Map[K, V]) Insert(k K, v V) (inserted bool) { return t.t.Insert(k, v) }

// Upsert adds or replaces the value associated with k.
func (t *Map[K, V]) Upsert(k K, v V) (replaced V, ok bool) { return t.t.Upsert(k, v) }

func (t *Map[K, V]) Get(k K) (V, bool) { return t.t.Get(k) }

func (t *Map[K, V]) Contains(k K) bool { return t.t.Contains(k) }

// Delete removes k and returns the removed entry.
func (t *Map[K, V]) Delete(k K) (removedK K, v V, found bool) { return t.t.Delete(k) }

func (t *Map[K, V]) Len() int { return t.t.Len() }

func (t *Map[K, V]) Height() int { return t.t.Height() }

func (t *Map[K, V]) Reset() { t.t.Reset() }

func (t *Map[K, V]) Verify() error { return t.t.Verify() }

func (t *Map[K, V]) String() string { return t.t.String() }

func (t *Map[K, V]) WriteDot(w io.Writer, label func(K, V) string) error {
	return t.t.WriteDot(w, label)
}

// Nth returns the entry with the i-th smallest key, counting from zero.
func (t *Map[K, V]) Nth(i int) (k K, v V, ok bool) {
	it := t.MakeIter()
	if it.Nth(i); !it.Valid() {
		return k, v, false
	}
	return it.Cur(), it.Value(), true
}

// Rank returns the number of keys less than k and whether k itself is
// present.
func (t *Map[K, V]) Rank(k K) (rank int, found bool) {
	it := t.t.MakeIter()
	ll := abstract.LowLevel(&it)
	if !ll.Root() {
		return 0, false
	}
	cfg := ll.Config()
	for {
		c := cfg.Compare(k, ll.Node().Key())
		if c == 0 {
			return rank + count(ll.Child(abstract.Pred)), true
		}
		d := abstract.Pred
		if c > 0 {
			rank += count(ll.Child(abstract.Pred)) + 1
			d = abstract.Succ
		}
		if !ll.Descend(d) {
			return rank, false
		}
	}
}

// MakeIter returns an iterator positioned before the first entry.
func (t *Map[K, V]) MakeIter() Iterator[K, V] {
	return Iterator[K, V]{it: t.t.MakeIter()}
}

// Iterator iterates over a Map in key order.
type Iterator[K, V any] struct {
	it abstract.Iterator[K, V, struct{}, aug[K], *aug[K]]
}

// Nth positions the iterator at the i-th smallest key. The iterator is
// invalid if i is out of range.
func (it *Iterator[K, V]) Nth(i int) {
	ll := abstract.LowLevel(&it.it)
	if i < 0 || !ll.Root() || i >= ll.Aug().children {
		ll.Invalidate()
		return
	}
	for {
		left := count(ll.Child(abstract.Pred))
		switch {
		case i < left:
			ll.Descend(abstract.Pred)
		case i == left:
			return
		default:
			i -= left + 1
			ll.Descend(abstract.Succ)
		}
	}
}

func (it *Iterator[K, V]) Reset()        { it.it.Reset() }
func (it *Iterator[K, V]) First()        { it.it.First() }
func (it *Iterator[K, V]) Last()         { it.it.Last() }
func (it *Iterator[K, V]) Next()         { it.it.Next() }
func (it *Iterator[K, V]) Prev()         { it.it.Prev() }
func (it *Iterator[K, V]) Advance() bool { return it.it.Advance() }
func (it *Iterator[K, V]) SeekGE(k K)    { it.it.SeekGE(k) }
func (it *Iterator[K, V]) SeekLT(k K)    { it.it.SeekLT(k) }
func (it *Iterator[K, V]) Valid() bool   { return it.it.Valid() }
func (it *Iterator[K, V]) Err() error    { return it.it.Err() }
func (it *Iterator[K, V]) Cur() K        { return it.it.Cur() }
func (it *Iterator[K, V]) Value() V      { return it.it.Value() }

// SeekMin positions the iterator just before the smallest key in the range
// described by rc.
func (it *Iterator[K, V]) SeekMin(rc func(K) int) { it.it.SeekMin(rc) }
