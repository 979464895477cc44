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

// ops holds the functions used to interpret intervals. It is the auxiliary
// configuration of the underlying tree.
type ops[I, K any] struct {
	cmp        Cmp[K]
	start, end func(I) K
	hasEnd     func(I) bool
}

// aug tracks the largest upper bound of any interval in the subtree.
type aug[I, K any] struct {
	keyBound[K]
	set bool
}

func (a *aug[I, K]) Update(
	cfg *abstract.Config[I, *ops[I, K]],
	n abstract.Node[I, *aug[I, K]],
	_ abstract.UpdateMeta[I],
) (changed bool) {
	o := cfg.Aux
	up := o.upperBound(n.Key())
	for _, d := range [...]abstract.Dir{abstract.Pred, abstract.Succ} {
		if c := n.Child(d); c != nil && up.compare(o.cmp, c.keyBound) < 0 {
			up = c.keyBound
		}
	}
	changed = !a.set || a.compare(o.cmp, up) != 0
	a.keyBound, a.set = up, true
	return changed
}

type keyBound[K any] struct {
	k         K
	inclusive bool
}

// upperBound is the exclusive end of an interval, or its start inclusive
// when the interval is a point.
func (o *ops[I, K]) upperBound(interval I) keyBound[K] {
	if o.hasEnd != nil && !o.hasEnd(interval) {
		return keyBound[K]{k: o.start(interval), inclusive: true}
	}
	return keyBound[K]{k: o.end(interval)}
}

// overlaps reports whether a and b share at least one key.
func (o *ops[I, K]) overlaps(a, b I) bool {
	return o.upperBound(a).contains(o.cmp, o.start(b)) &&
		o.upperBound(b).contains(o.cmp, o.start(a))
}

func (b keyBound[K]) compare(cmp Cmp[K], o keyBound[K]) int {
	c := cmp(b.k, o.k)
	if c != 0 {
		return c
	}
	if b.inclusive == o.inclusive {
		return 0
	}
	if b.inclusive {
		return 1
	}
	return -1
}

func (b keyBound[K]) contains(cmp Cmp[K], o K) bool {
	c := cmp(o, b.k)
	if c == 0 {
		return b.inclusive
	}
	return c < 0
}
