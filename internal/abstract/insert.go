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

// link attaches a new red node holding k and v at the empty slot d of p, or
// as the root if p is nil, and restores the red-black properties.
func (t *Map[K, V, Aux, A, AP]) link(p *node[K, V, A], d Dir, k K, v V) {
	n := t.cfg.np.get(k, v)
	n.parent = p
	if p == nil {
		t.root = n
	} else {
		p.children[d] = n
	}
	t.length++
	t.version++
	t.propagate(n, UpdateMeta[K]{Action: Insertion, RelevantKey: k})
	t.rebalanceInsert(n)
}

// rebalanceInsert climbs from n toward the root. On each iteration n is red,
// there is no black violation, and the only possible red violation is
// between n and its parent.
func (t *Map[K, V, Aux, A, AP]) rebalanceInsert(n *node[K, V, A]) {
	for {
		p := n.parent
		if p == nil {
			// n is the root. Blackening it adds one black node to every path.
			n.red = false
			return
		}
		if !p.red {
			return
		}
		g := p.parent
		if g == nil {
			// p is a red root.
			p.red = false
			return
		}
		// g is black because p is red.
		d, gd := p.dirOf(n), g.dirOf(p)
		u := g.children[gd.Opposite()]
		if isRed(u) {
			// Push g's blackness down onto p and u. The violation, if any,
			// is now between g and its parent.
			p.red, u.red, g.red = false, false, true
			n = g
			continue
		}
		if d == gd {
			// Outer case: p is closer to g in key order than n is. Promote p
			// above g.
			t.rotate(g, gd.Opposite())
			p.red, g.red = false, true
			return
		}
		// Inner case: n sits between p and g in key order. Promote n above
		// both; its inner subtree moves to g and its outer subtree to p.
		t.rotate(p, d.Opposite())
		t.rotate(g, gd.Opposite())
		n.red, g.red = false, true
		return
	}
}
