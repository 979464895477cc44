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

package abstract

import "errors"

// ErrStaleIterator is reported by an Iterator whose Map was structurally
// modified after the Iterator was positioned.
var ErrStaleIterator = errors.New("iterator used after its tree was modified")

type position int8

const (
	beforeStart position = iota
	atNode
	pastEnd
)

// Iterator is responsible for search and traversal within a Map. Successors
// and predecessors are computed on demand from parent links.
//
// An Iterator is a single-owner cursor. It is not safe to continue using an
// Iterator after modifications are made to the tree; doing so makes it
// invalid and Err reports ErrStaleIterator. Reposition it (Reset, First,
// a Seek method) to use it again.
type Iterator[K, V, Aux, A any, AP Aug[K, Aux, A]] struct {
	r       *Map[K, V, Aux, A, AP]
	node    *node[K, V, A]
	pos     position
	version uint64
	err     error
}

// MakeIter returns a new Iterator object positioned before the first item.
func (t *Map[K, V, Aux, A, AP]) MakeIter() Iterator[K, V, Aux, A, AP] {
	it := Iterator[K, V, Aux, A, AP]{r: t}
	it.Reset()
	return it
}

func (i *Iterator[K, V, Aux, A, AP]) lowLevel() *LowLevelIterator[K, V, Aux, A, AP] {
	return (*LowLevelIterator[K, V, Aux, A, AP])(i)
}

// Reset positions the iterator before the first item.
func (i *Iterator[K, V, Aux, A, AP]) Reset() {
	i.node = nil
	i.pos = beforeStart
	i.version = i.r.version
	i.err = nil
}

// setNode positions the iterator at n, or past the end in direction d if n
// is nil.
func (i *Iterator[K, V, Aux, A, AP]) setNode(n *node[K, V, A], d Dir) {
	i.node = n
	switch {
	case n != nil:
		i.pos = atNode
	case d == Succ:
		i.pos = pastEnd
	default:
		i.pos = beforeStart
	}
}

// check invalidates the iterator if the tree changed since it was
// positioned.
func (i *Iterator[K, V, Aux, A, AP]) check() bool {
	if i.err != nil {
		return false
	}
	if i.version != i.r.version {
		i.err = ErrStaleIterator
		i.node = nil
		i.pos = pastEnd
		return false
	}
	return true
}

// First seeks to the first key in the Map.
func (i *Iterator[K, V, Aux, A, AP]) First() {
	i.Reset()
	i.first(Pred)
}

// Last seeks to the last key in the Map.
func (i *Iterator[K, V, Aux, A, AP]) Last() {
	i.Reset()
	i.first(Succ)
}

// first moves to the extreme key in direction d.
func (i *Iterator[K, V, Aux, A, AP]) first(d Dir) {
	if i.r.root == nil {
		i.setNode(nil, d.Opposite())
		return
	}
	i.setNode(i.r.root.extreme(d), d)
}

// Next positions the Iterator to the key immediately following its current
// position. From before the first key it moves to the first key.
func (i *Iterator[K, V, Aux, A, AP]) Next() {
	i.move(Succ)
}

// Prev positions the Iterator to the key immediately preceding its current
// position. From past the last key it moves to the last key.
func (i *Iterator[K, V, Aux, A, AP]) Prev() {
	i.move(Pred)
}

func (i *Iterator[K, V, Aux, A, AP]) move(d Dir) {
	if !i.check() {
		return
	}
	switch i.pos {
	case atNode:
		i.setNode(i.node.step(d), d)
	case beforeStart:
		if d == Succ {
			i.first(Pred)
		}
	case pastEnd:
		if d == Pred {
			i.first(Succ)
		}
	}
}

// Advance moves to the next key and reports whether the iterator is
// positioned at one. Starting from Reset, repeated calls visit every key in
// ascending order.
func (i *Iterator[K, V, Aux, A, AP]) Advance() bool {
	i.Next()
	return i.Valid()
}

// SeekGE seeks to the first key greater-than or equal to the provided key.
func (i *Iterator[K, V, Aux, A, AP]) SeekGE(key K) {
	i.Reset()
	var ge *node[K, V, A]
	for n := i.r.root; n != nil; {
		c := i.r.cfg.cmp(key, n.key)
		if c == 0 {
			ge = n
			break
		}
		if c < 0 {
			ge = n
			n = n.children[Pred]
		} else {
			n = n.children[Succ]
		}
	}
	i.setNode(ge, Succ)
}

// SeekLT seeks to the first key less-than the provided key.
func (i *Iterator[K, V, Aux, A, AP]) SeekLT(key K) {
	i.Reset()
	var lt *node[K, V, A]
	for n := i.r.root; n != nil; {
		if i.r.cfg.cmp(key, n.key) > 0 {
			lt = n
			n = n.children[Succ]
		} else {
			n = n.children[Pred]
		}
	}
	i.setNode(lt, Pred)
}

// SeekMin positions the iterator immediately before the smallest key for
// which rc reports zero, so that the next call to Advance (or Next) reaches
// it. If no key is in range the iterator is positioned at the last key and
// the next Advance reports exhaustion. On an empty tree the iterator is
// left before the start.
func (i *Iterator[K, V, Aux, A, AP]) SeekMin(rc RangeCompare[K]) {
	i.Reset()
	if i.r.root == nil {
		return
	}
	var min *node[K, V, A]
	for n := i.r.root; n != nil; {
		switch c := rc(n.key); {
		case c < 0:
			n = n.children[Pred]
		case c > 0:
			n = n.children[Succ]
		default:
			// Within range; keep looking for a smaller match.
			min = n
			n = n.children[Pred]
		}
	}
	if min == nil {
		i.setNode(i.r.root.extreme(Succ), Succ)
		return
	}
	// A nil predecessor leaves the iterator before the start, from where
	// Next moves to the first key, which is min.
	i.setNode(min.step(Pred), Pred)
}

// Valid returns whether the Iterator is positioned at a valid position.
func (i *Iterator[K, V, Aux, A, AP]) Valid() bool {
	return i.check() && i.pos == atNode
}

// Err returns ErrStaleIterator if the iterator was invalidated by a
// modification of its tree.
func (i *Iterator[K, V, Aux, A, AP]) Err() error {
	i.check()
	return i.err
}

// Cur returns the key at the Iterator's current position. It is illegal
// to call Cur if the Iterator is not valid.
func (i *Iterator[K, V, Aux, A, AP]) Cur() K {
	i.mustBeValid()
	return i.node.key
}

// Value returns the value at the Iterator's current position. It is
// illegal to call Value if the Iterator is not valid.
func (i *Iterator[K, V, Aux, A, AP]) Value() V {
	i.mustBeValid()
	return i.node.value
}

func (i *Iterator[K, V, Aux, A, AP]) mustBeValid() {
	if !i.Valid() {
		if i.err != nil {
			panic(i.err)
		}
		panic("abstract: iterator is not positioned at an item")
	}
}
