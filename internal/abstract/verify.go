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
	"errors"
	"fmt"
)

// ErrInvariant is matched by every *InvariantError.
var ErrInvariant = errors.New("red-black invariant violated")

// InvariantError describes a violated structural property of a Map. It is
// only ever produced by Verify; a correct Map never exhibits one.
type InvariantError struct {
	Property string
	Detail   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvariant, e.Property, e.Detail)
}

func (e *InvariantError) Is(target error) bool { return target == ErrInvariant }

func violation(property, format string, args ...interface{}) error {
	return &InvariantError{Property: property, Detail: fmt.Sprintf(format, args...)}
}

// Verify checks that the tree is a valid red-black tree: parent links agree
// with child links, the root is black, no red node has a red child, every
// path to a missing child carries the same number of black nodes, keys are
// strictly ordered, the length is accurate and every augmentation is up to
// date.
func (t *Map[K, V, Aux, A, AP]) Verify() error {
	if t.root == nil {
		if t.length != 0 {
			return violation("length", "empty tree has length %d", t.length)
		}
		return nil
	}
	if t.root.parent != nil {
		return violation("parent", "root %v has a parent", t.root.key)
	}
	if t.root.red {
		return violation("root-color", "root %v is red", t.root.key)
	}
	var (
		count int
		prev  *node[K, V, A]
	)
	var check func(n *node[K, V, A]) (blackHeight int, err error)
	check = func(n *node[K, V, A]) (int, error) {
		if n == nil {
			return 1, nil
		}
		for _, d := range [2]Dir{Pred, Succ} {
			c := n.children[d]
			if c == nil {
				continue
			}
			if c.parent != n {
				return 0, violation("parent", "%v is the %v child of %v but not linked to it",
					c.key, d, n.key)
			}
			if n.red && c.red {
				return 0, violation("red-red", "red %v has red %v child %v", n.key, d, c.key)
			}
		}
		lh, err := check(n.children[Pred])
		if err != nil {
			return 0, err
		}
		if prev != nil && t.cfg.cmp(prev.key, n.key) >= 0 {
			return 0, violation("order", "%v does not sort before %v", prev.key, n.key)
		}
		prev = n
		count++
		rh, err := check(n.children[Succ])
		if err != nil {
			return 0, err
		}
		if lh != rh {
			return 0, violation("black-height", "subtrees of %v have black heights %d and %d",
				n.key, lh, rh)
		}
		aug := n.aug
		if AP(&aug).Update(&t.cfg.Config, n, UpdateMeta[K]{Action: Default}) {
			return 0, violation("augmentation", "augmentation of %v is stale", n.key)
		}
		if !n.red {
			lh++
		}
		return lh, nil
	}
	if _, err := check(t.root); err != nil {
		return err
	}
	if count != t.length {
		return violation("length", "counted %d nodes, length is %d", count, t.length)
	}
	return nil
}
