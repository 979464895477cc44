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

// unlink removes z, which has at most one child, from the tree and restores
// the red-black properties.
func (t *Map[K, V, Aux, A, AP]) unlink(z *node[K, V, A], meta UpdateMeta[K]) {
	child := z.children[Pred]
	if child == nil {
		child = z.children[Succ]
	}
	if child != nil {
		// A node with exactly one child is black and the child is a red leaf.
		// Blackening the child in z's place keeps every black height.
		t.replace(z, child)
		child.red = false
		t.propagate(child.parent, meta)
		return
	}
	if z.parent == nil {
		t.root = nil
		return
	}
	if !z.red {
		// Removing a black leaf shortens every path through it. Fix that
		// while z still holds its place so that it can stand in for the
		// missing subtree.
		t.rebalanceDelete(z)
	}
	p := z.parent
	p.children[p.dirOf(z)] = nil
	z.parent = nil
	t.propagate(p, meta)
}

// rebalanceDelete resolves a black height deficit of one on the subtree
// rooted at the black node n.
func (t *Map[K, V, Aux, A, AP]) rebalanceDelete(n *node[K, V, A]) {
	for n.parent != nil {
		p := n.parent
		d := p.dirOf(n)
		// s exists: paths through it carry at least one more black node than
		// paths through n.
		s := p.children[d.Opposite()]
		if s.red {
			// p is black. Rotate so that n gets a black sibling and a red
			// parent.
			t.rotate(p, d)
			p.red, s.red = true, false
			s = p.children[d.Opposite()]
		}
		near, far := s.children[d], s.children[d.Opposite()]
		if !isRed(near) && !isRed(far) {
			s.red = true
			if p.red {
				p.red = false
				return
			}
			// p's subtree is now short by one as a whole.
			n = p
			continue
		}
		if !isRed(far) {
			// Turn the near red child into the far red child of a new
			// sibling.
			t.rotate(s, d.Opposite())
			s.red, near.red = true, false
			far, s = s, near
		}
		t.rotate(p, d)
		s.red, p.red, far.red = p.red, false, false
		return
	}
}
