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

// Dir indexes the two child slots of a node. Keys in the Pred subtree sort
// before the node's key and keys in the Succ subtree sort after it.
type Dir int8

const (
	Pred Dir = 0
	Succ Dir = 1
)

// Opposite returns the other direction.
func (d Dir) Opposite() Dir { return 1 - d }

func (d Dir) String() string {
	if d == Pred {
		return "pred"
	}
	return "succ"
}

// RangeCompare locates a contiguous range of keys relative to a candidate.
// It returns a negative number if the range lies below k, zero if k is
// within the range and a positive number if the range lies above k.
type RangeCompare[K any] func(k K) int
