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

// LowLevelIterator is exposed to developers within this module for use
// implementing augmented search functionality.
type LowLevelIterator[K, V, Aux, A any, AP Aug[K, Aux, A]] Iterator[K, V, Aux, A, AP]

// LowLevel converts an iterator to a LowLevelIterator. Given this package
// is internal, callers outside of this module cannot construct a
// LowLevelIterator.
func LowLevel[K, V, Aux, A any, AP Aug[K, Aux, A]](
	it *Iterator[K, V, Aux, A, AP],
) *LowLevelIterator[K, V, Aux, A, AP] {
	return it.lowLevel()
}

// Config returns the Map's config.
func (i *LowLevelIterator[K, V, Aux, A, AP]) Config() *Config[K, Aux] {
	return &i.r.cfg.Config
}

// Root positions the iterator at the root of the tree and reports whether
// the tree is non-empty.
func (i *LowLevelIterator[K, V, Aux, A, AP]) Root() bool {
	(*Iterator[K, V, Aux, A, AP])(i).Reset()
	if i.r.root == nil {
		return false
	}
	i.node, i.pos = i.r.root, atNode
	return true
}

// Node returns the node at the current position.
func (i *LowLevelIterator[K, V, Aux, A, AP]) Node() Node[K, *A] {
	return i.node
}

// Aug returns the augmentation of the node at the current position.
func (i *LowLevelIterator[K, V, Aux, A, AP]) Aug() *A {
	return &i.node.aug
}

// Child returns the augmentation of the current node's child in direction
// d, or nil if there is none.
func (i *LowLevelIterator[K, V, Aux, A, AP]) Child(d Dir) *A {
	return i.node.Child(d)
}

// Descend moves to the current node's child in direction d. It reports
// false, without moving, if there is no such child.
func (i *LowLevelIterator[K, V, Aux, A, AP]) Descend(d Dir) bool {
	c := i.node.children[d]
	if c == nil {
		return false
	}
	i.node = c
	return true
}

// Ascend moves to the current node's parent and reports the direction in
// which the previous node hangs from it. ok is false, without moving, at
// the root.
func (i *LowLevelIterator[K, V, Aux, A, AP]) Ascend() (from Dir, ok bool) {
	p := i.node.parent
	if p == nil {
		return from, false
	}
	from = p.dirOf(i.node)
	i.node = p
	return from, true
}

// Invalidate positions the iterator past the last key.
func (i *LowLevelIterator[K, V, Aux, A, AP]) Invalidate() {
	i.node, i.pos = nil, pastEnd
}
