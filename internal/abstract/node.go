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

import (
	"fmt"
	"strings"
)

// node is a red-black tree node. Children are owned by their parent; the
// parent pointer is a back-reference used for rotations and in-order
// stepping and never keeps a node alive on its own.
type node[K, V, A any] struct {
	children [2]*node[K, V, A]
	parent   *node[K, V, A]
	key      K
	value    V
	red      bool
	aug      A
}

func (n *node[K, V, A]) Key() K { return n.key }

func (n *node[K, V, A]) Red() bool { return n.red }

func (n *node[K, V, A]) Child(d Dir) *A {
	if c := n.children[d]; c != nil {
		return &c.aug
	}
	return nil
}

func isRed[K, V, A any](n *node[K, V, A]) bool {
	return n != nil && n.red
}

// dirOf returns the slot of n holding c. Only call this when c is known to
// be a child of n.
func (n *node[K, V, A]) dirOf(c *node[K, V, A]) Dir {
	if n.children[Pred] == c {
		return Pred
	}
	return Succ
}

// extreme descends from n as far as possible in direction d.
func (n *node[K, V, A]) extreme(d Dir) *node[K, V, A] {
	for n.children[d] != nil {
		n = n.children[d]
	}
	return n
}

// step returns the in-order neighbor of n in direction d: the successor for
// Succ and the predecessor for Pred. It returns nil if there is none.
func (n *node[K, V, A]) step(d Dir) *node[K, V, A] {
	if c := n.children[d]; c != nil {
		return c.extreme(d.Opposite())
	}
	// Climb until we arrive at an ancestor from its opposite side. Every node
	// below that ancestor on this side sorts before (or after) it, and n is
	// the extreme of that subtree.
	for c := n; c.parent != nil; c = c.parent {
		if c.parent.children[d.Opposite()] == c {
			return c.parent
		}
	}
	return nil
}

func (n *node[K, V, A]) writeString(b *strings.Builder) {
	if n.children[Pred] != nil || n.children[Succ] != nil {
		b.WriteByte('(')
		if c := n.children[Pred]; c != nil {
			c.writeString(b)
		}
		b.WriteByte(',')
		if c := n.children[Succ]; c != nil {
			c.writeString(b)
		}
		b.WriteByte(')')
	}
	fmt.Fprint(b, n.key)
	if n.red {
		b.WriteByte('*')
	}
}
