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

package rbtree

import (
	"fmt"
	"io"
)

// Set is an ordered set of K.
type Set[K any] struct {
	m Map[K, struct{}]
}

// MakeSet constructs a new, empty Set ordered by cmp.
func MakeSet[K any](cmp func(K, K) int) *Set[K] {
	return &Set[K]{m: *MakeMap[K, struct{}](cmp)}
}

// Insert adds k and reports whether it was not already present.
func (s *Set[K]) Insert(k K) bool { return s.m.Insert(k, struct{}{}) }

// Delete removes k and reports whether it was present.
func (s *Set[K]) Delete(k K) bool {
	_, _, found := s.m.Delete(k)
	return found
}

// Contains returns whether k is present.
func (s *Set[K]) Contains(k K) bool { return s.m.Contains(k) }

func (s *Set[K]) Len() int { return s.m.Len() }

func (s *Set[K]) Height() int { return s.m.Height() }

func (s *Set[K]) Reset() { s.m.Reset() }

func (s *Set[K]) Verify() error { return s.m.Verify() }

func (s *Set[K]) String() string { return s.m.String() }

// WriteDot writes the tree to w as a graphviz digraph.
func (s *Set[K]) WriteDot(w io.Writer) error {
	return s.m.WriteDot(w, func(k K, _ struct{}) string { return fmt.Sprint(k) })
}

// Walk visits every node in pre-order.
func (s *Set[K]) Walk(f func(depth int, k K, red bool)) {
	s.m.Walk(func(depth int, k K, _ struct{}, red bool) { f(depth, k, red) })
}

// MakeIter returns an iterator positioned before the first key.
func (s *Set[K]) MakeIter() Iterator[K, struct{}] { return s.m.MakeIter() }
