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

// Package interval provides an interval tree built on an augmented
// red-black tree. Every node records the largest end key in its subtree,
// which lets overlap scans skip subtrees that end before the query.
package interval

import (
	"io"

	"github.com/ajwerner/rbtree/internal/abstract"
)

// Cmp is a comparison function for keys.
type Cmp[K any] func(K, K) int

// Map is an interval tree mapping intervals of type I, whose bounds are
// keys of type K, to values of type V. Intervals are half-open: an interval
// covers its start key and every key below its end key.
type Map[I, K, V any] struct {
	t abstract.Map[I, V, *ops[I, K], aug[I, K], *aug[I, K]]
}

// MakeMap constructs a Map. cmpK orders keys and cmpI orders intervals; cmpI
// must order intervals by their start key first. If hasEnd is non-nil,
// intervals for which it returns false are treated as the single point at
// their start key.
func MakeMap[I, K, V any](
	cmpK Cmp[K], cmpI Cmp[I], start, end func(I) K, hasEnd func(I) bool,
) *Map[I, K, V] {
	o := &ops[I, K]{cmp: cmpK, start: start, end: end, hasEnd: hasEnd}
	return &Map[I, K, V]{
		t: abstract.MakeMap[I, V, *ops[I, K], aug[I, K], *aug[I, K]](o, cmpI),
	}
}

// Upsert adds or replaces the value associated with interval.
func (m *Map[I, K, V]) Upsert(interval I, v V) (replaced V, ok bool) {
	return m.t.Upsert(interval, v)
}

func (m *Map[I, K, V]) Get(interval I) (V, bool) { return m.t.Get(interval) }

// Delete removes interval from the tree.
func (m *Map[I, K, V]) Delete(interval I) (removed I, v V, found bool) {
	return m.t.Delete(interval)
}

func (m *Map[I, K, V]) Len() int { return m.t.Len() }

func (m *Map[I, K, V]) Reset() { m.t.Reset() }

func (m *Map[I, K, V]) Verify() error { return m.t.Verify() }

func (m *Map[I, K, V]) String() string { return m.t.String() }

func (m *Map[I, K, V]) WriteDot(w io.Writer, label func(I, V) string) error {
	return m.t.WriteDot(w, label)
}

// Iterator returns an iterator positioned before the first interval.
func (m *Map[I, K, V]) Iterator() Iterator[I, K, V] {
	return Iterator[I, K, V]{it: m.t.MakeIter()}
}

// Set is an interval tree without values.
type Set[I, K any] struct {
	m Map[I, K, struct{}]
}

// MakeSet constructs a Set. See MakeMap.
func MakeSet[I, K any](
	cmpK Cmp[K], cmpI Cmp[I], start, end func(I) K, hasEnd func(I) bool,
) *Set[I, K] {
	return &Set[I, K]{m: *MakeMap[I, K, struct{}](cmpK, cmpI, start, end, hasEnd)}
}

// Upsert adds interval to the set, replacing an equal interval.
func (s *Set[I, K]) Upsert(interval I) { s.m.Upsert(interval, struct{}{}) }

// Delete removes interval and reports whether it was present.
func (s *Set[I, K]) Delete(interval I) bool {
	_, _, found := s.m.Delete(interval)
	return found
}

func (s *Set[I, K]) Len() int { return s.m.Len() }

func (s *Set[I, K]) Verify() error { return s.m.Verify() }

func (s *Set[I, K]) String() string { return s.m.String() }

// Iterator returns an iterator positioned before the first interval.
func (s *Set[I, K]) Iterator() Iterator[I, K, struct{}] { return s.m.Iterator() }
