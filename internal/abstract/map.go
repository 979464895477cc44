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

import "strings"

// Map is an implementation of an augmented red-black tree.
//
// Nodes are colored red or black such that no red node has a red child and
// every path from a node to a missing child passes through the same number
// of black nodes. Together these bound the height of the tree by
// 2*log2(n+1), which makes insertion, deletion and search O(log n).
//
// A Map is not safe for concurrent use.
type Map[K, V, Aux, A any, AP Aug[K, Aux, A]] struct {
	root   *node[K, V, A]
	length int

	// version is bumped on every structural change and lets iterators
	// detect that the tree moved underneath them.
	version uint64
	cfg     config[K, V, Aux, A]
}

// MakeMap constructs a new Map with the provided auxiliary data and
// comparison function.
func MakeMap[K, V, Aux, A any, AP Aug[K, Aux, A]](aux Aux, cmp func(K, K) int) Map[K, V, Aux, A, AP] {
	return Map[K, V, Aux, A, AP]{
		cfg: makeConfig[K, V, Aux, A](aux, cmp),
	}
}

// Reset removes all items from the Map. In doing so, it allows memory held
// by the Map to be recycled. Failure to call this method before letting a
// Map be GCed is safe in that it won't cause a memory leak, but it will
// prevent Map nodes from being efficiently re-used.
func (t *Map[K, V, Aux, A, AP]) Reset() {
	if t.root != nil {
		t.release(t.root)
		t.root = nil
	}
	t.length = 0
	t.version++
}

func (t *Map[K, V, Aux, A, AP]) release(n *node[K, V, A]) {
	for _, c := range n.children {
		if c != nil {
			t.release(c)
		}
	}
	t.cfg.np.put(n)
}

// Insert adds k with value v if no equal key is present. It reports whether
// the key was added; a duplicate leaves the tree unchanged.
func (t *Map[K, V, Aux, A, AP]) Insert(k K, v V) (inserted bool) {
	found, p, d := t.locate(k)
	if found != nil {
		return false
	}
	t.link(p, d, k, v)
	return true
}

// Upsert adds the given item to the tree. If an item in the tree already
// equals the given one, its value is replaced with the new value and the
// previous value is returned.
func (t *Map[K, V, Aux, A, AP]) Upsert(k K, v V) (replacedV V, replaced bool) {
	found, p, d := t.locate(k)
	if found != nil {
		replacedV, found.value = found.value, v
		t.propagate(found, UpdateMeta[K]{Action: Default})
		return replacedV, true
	}
	t.link(p, d, k, v)
	return replacedV, false
}

// Get returns the value associated with the key equal to k.
func (t *Map[K, V, Aux, A, AP]) Get(k K) (v V, found bool) {
	if n, _, _ := t.locate(k); n != nil {
		return n.value, true
	}
	return v, false
}

// Contains returns whether a key equal to k is present.
func (t *Map[K, V, Aux, A, AP]) Contains(k K) bool {
	n, _, _ := t.locate(k)
	return n != nil
}

// Delete removes an item equal to the passed in item from the tree.
func (t *Map[K, V, Aux, A, AP]) Delete(k K) (removedK K, v V, found bool) {
	z, _, _ := t.locate(k)
	if z == nil {
		return removedK, v, false
	}
	removedK, v = z.key, z.value
	meta := UpdateMeta[K]{Action: Removal, RelevantKey: removedK}
	if z.children[Pred] != nil && z.children[Succ] != nil {
		// Move the successor's entry into z and remove the successor's node
		// instead. It is the minimum of z's right subtree so it has no Pred
		// child.
		s := z.children[Succ].extreme(Pred)
		z.key, z.value = s.key, s.value
		z = s
	}
	t.unlink(z, meta)
	t.length--
	t.version++
	t.cfg.np.put(z)
	return removedK, v, true
}

// Len returns the number of items currently in the tree.
func (t *Map[K, V, Aux, A, AP]) Len() int {
	return t.length
}

// Height returns the number of nodes on the longest path from the root to
// a leaf.
func (t *Map[K, V, Aux, A, AP]) Height() int {
	var height func(n *node[K, V, A]) int
	height = func(n *node[K, V, A]) int {
		if n == nil {
			return 0
		}
		return 1 + max(height(n.children[Pred]), height(n.children[Succ]))
	}
	return height(t.root)
}

// Walk calls f for every node in pre-order with its depth, the direction
// from its parent and its color. The root is reported with depth 0 and
// direction Pred.
func (t *Map[K, V, Aux, A, AP]) Walk(f func(depth int, d Dir, k K, v V, red bool)) {
	var walk func(n *node[K, V, A], depth int, d Dir)
	walk = func(n *node[K, V, A], depth int, d Dir) {
		f(depth, d, n.key, n.value, n.red)
		for _, cd := range [2]Dir{Pred, Succ} {
			if c := n.children[cd]; c != nil {
				walk(c, depth+1, cd)
			}
		}
	}
	if t.root != nil {
		walk(t.root, 0, Pred)
	}
}

// String returns a string description of the tree. The format is similar
// to the https://en.wikipedia.org/wiki/Newick_format. Red nodes are
// suffixed with '*'.
func (t *Map[K, V, Aux, A, AP]) String() string {
	if t.root == nil {
		return ";"
	}
	var b strings.Builder
	t.root.writeString(&b)
	b.WriteByte(';')
	return b.String()
}

// locate descends from the root looking for k. If found, found is the
// matching node. Otherwise parent and d name the empty slot where k
// belongs.
func (t *Map[K, V, Aux, A, AP]) locate(k K) (found, parent *node[K, V, A], d Dir) {
	for n := t.root; n != nil; {
		c := t.cfg.cmp(k, n.key)
		if c == 0 {
			return n, n.parent, d
		}
		if c < 0 {
			d = Pred
		} else {
			d = Succ
		}
		parent, n = n, n.children[d]
	}
	return nil, parent, d
}

func (t *Map[K, V, Aux, A, AP]) update(n *node[K, V, A], meta UpdateMeta[K]) bool {
	return AP(&n.aug).Update(&t.cfg.Config, n, meta)
}

// propagate updates the augmentation of n and each of its ancestors.
func (t *Map[K, V, Aux, A, AP]) propagate(n *node[K, V, A], meta UpdateMeta[K]) {
	for ; n != nil; n = n.parent {
		t.update(n, meta)
	}
}

// replace puts n in old's place under old's parent. old keeps its own
// parent pointer.
func (t *Map[K, V, Aux, A, AP]) replace(old, n *node[K, V, A]) {
	p := old.parent
	if p == nil {
		t.root = n
	} else {
		p.children[p.dirOf(old)] = n
	}
	if n != nil {
		n.parent = p
	}
}

// rotate moves x down in direction d and promotes its child on the
// opposite side into x's place. The in-order sequence is unchanged. It
// returns the promoted node.
//
//	     x                y
//	    / \              / \
//	   a   y     =>     x   c     (d == Pred)
//	      / \          / \
//	     b   c        a   b
func (t *Map[K, V, Aux, A, AP]) rotate(x *node[K, V, A], d Dir) *node[K, V, A] {
	y := x.children[d.Opposite()]
	b := y.children[d]
	x.children[d.Opposite()] = b
	if b != nil {
		b.parent = x
	}
	t.replace(x, y)
	y.children[d] = x
	x.parent = y
	meta := UpdateMeta[K]{Action: Rotation}
	t.update(x, meta)
	t.update(y, meta)
	return y
}
