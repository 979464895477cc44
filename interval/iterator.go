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

package interval

import "github.com/ajwerner/rbtree/internal/abstract"

// Iterator iterates over the intervals of a Map in order, either
// exhaustively or restricted to those overlapping a query interval.
type Iterator[I, K, V any] struct {
	it abstract.Iterator[I, V, *ops[I, K], aug[I, K], *aug[I, K]]

	bounds I
	set    bool
}

func (i *Iterator[I, K, V]) lowLevel() *abstract.LowLevelIterator[I, V, *ops[I, K], aug[I, K], *aug[I, K]] {
	return abstract.LowLevel(&i.it)
}

func (i *Iterator[I, K, V]) ops() *ops[I, K] { return i.lowLevel().Config().Aux }

// Reset positions the iterator before the first interval and clears any
// overlap scan.
func (i *Iterator[I, K, V]) Reset() {
	var zero I
	i.bounds, i.set = zero, false
	i.it.Reset()
}

// First positions the iterator at the first interval and clears any
// overlap scan.
func (i *Iterator[I, K, V]) First() {
	i.Reset()
	i.it.First()
}

func (i *Iterator[I, K, V]) Next()       { i.it.Next() }
func (i *Iterator[I, K, V]) Valid() bool { return i.it.Valid() }
func (i *Iterator[I, K, V]) Err() error  { return i.it.Err() }
func (i *Iterator[I, K, V]) Cur() I      { return i.it.Cur() }
func (i *Iterator[I, K, V]) Value() V    { return i.it.Value() }

// FirstOverlap seeks to the first interval in the tree that overlaps with
// bounds.
func (i *Iterator[I, K, V]) FirstOverlap(bounds I) {
	i.Reset()
	ll := i.lowLevel()
	if !ll.Root() {
		ll.Invalidate()
		return
	}
	i.bounds, i.set = bounds, true
	if i.descend() {
		return
	}
	i.climb()
}

// NextOverlap positions the iterator at the next interval which overlaps
// with the bounds passed to FirstOverlap.
func (i *Iterator[I, K, V]) NextOverlap() {
	if !i.Valid() {
		return
	}
	ll := i.lowLevel()
	if !i.set {
		// Mixed overlap scan with non-overlap scan.
		ll.Invalidate()
		return
	}
	if ll.Descend(abstract.Succ) && i.descend() {
		return
	}
	i.climb()
}

// descend searches the subtree rooted at the current node for its first
// overlapping interval. On failure the iterator is left somewhere inside
// the subtree such that climbing visits every unexamined candidate.
func (i *Iterator[I, K, V]) descend() bool {
	ll := i.lowLevel()
	o := i.ops()
	start := o.start(i.bounds)
	if !ll.Aug().contains(o.cmp, start) {
		return false
	}
	for {
		if c := ll.Child(abstract.Pred); c != nil && c.contains(o.cmp, start) {
			ll.Descend(abstract.Pred)
			continue
		}
		cur := ll.Node().Key()
		if o.overlaps(cur, i.bounds) {
			return true
		}
		if !o.upperBound(i.bounds).contains(o.cmp, o.start(cur)) {
			return false
		}
		if c := ll.Child(abstract.Succ); c == nil || !c.contains(o.cmp, start) {
			return false
		}
		ll.Descend(abstract.Succ)
	}
}

// climb walks toward the root looking at each ancestor whose left subtree
// has been exhausted, and at that ancestor's right subtree.
func (i *Iterator[I, K, V]) climb() {
	ll := i.lowLevel()
	o := i.ops()
	up := o.upperBound(i.bounds)
	for {
		from, ok := ll.Ascend()
		if !ok {
			ll.Invalidate()
			return
		}
		if from == abstract.Succ {
			continue
		}
		cur := ll.Node().Key()
		if !up.contains(o.cmp, o.start(cur)) {
			ll.Invalidate()
			return
		}
		if o.overlaps(cur, i.bounds) {
			return
		}
		if ll.Descend(abstract.Succ) && i.descend() {
			return
		}
	}
}
