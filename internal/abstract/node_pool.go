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

import "sync"

type nodePool[K, V, A any] struct {
	pool sync.Pool
}

var syncPoolMap sync.Map

func getNodePool[K, V, A any]() *nodePool[K, V, A] {
	var nilNode *node[K, V, A]
	v, ok := syncPoolMap.Load(nilNode)
	if !ok {
		v, _ = syncPoolMap.LoadOrStore(nilNode, newNodePool[K, V, A]())
	}
	return v.(*nodePool[K, V, A])
}

func newNodePool[K, V, A any]() *nodePool[K, V, A] {
	np := nodePool[K, V, A]{}
	np.pool = sync.Pool{
		New: func() interface{} {
			return new(node[K, V, A])
		},
	}
	return &np
}

// get returns a red, unlinked node holding k and v.
func (np *nodePool[K, V, A]) get(k K, v V) *node[K, V, A] {
	n := np.pool.Get().(*node[K, V, A])
	n.key = k
	n.value = v
	n.red = true
	return n
}

// put clears n so that it retains no references and releases it to the pool.
func (np *nodePool[K, V, A]) put(n *node[K, V, A]) {
	*n = node[K, V, A]{}
	np.pool.Put(n)
}
