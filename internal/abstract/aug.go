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

// Node represents an abstraction of a node exposed to the augmentation.
type Node[K, A any] interface {

	// Key returns the key stored in this node.
	Key() K

	// Red returns whether the node is colored red.
	Red() bool

	// Child returns the augmentation of the child in the given direction or
	// nil if there is no such child.
	Child(d Dir) A
}

// Aug is a data structure which augments a node of the tree. It is updated
// when the structure or contents of the subtree rooted at the current node
// changes.
type Aug[K, Aux, A any] interface {
	*A

	// Update is used to update the state of the node augmentation in response
	// to a mutation to the tree. See Action and UpdateMeta for the semantics.
	// The method must return true if the augmentation's value changed.
	Update(*Config[K, Aux], Node[K, *A], UpdateMeta[K]) (changed bool)
}

// Action is used to classify the type of Update in order to permit various
// optimizations when updating the augmented state.
type Action int

const (

	// Default implies that no assumptions may be made with regards to the
	// change in state of the node and thus the augmented state should be
	// recalculated in full.
	Default Action = iota

	// Insertion indicates that RelevantKey was added to the subtree rooted
	// at this node.
	Insertion

	// Removal indicates that RelevantKey was removed from the subtree rooted
	// at this node.
	Removal

	// Rotation indicates that the node took part in a rotation. The set of
	// keys below the pair of rotated nodes is unchanged but the shape of each
	// of their subtrees is not.
	Rotation
)

// UpdateMeta is used to describe the update operation.
type UpdateMeta[K any] struct {

	// Action indicates the semantics of the below fields. If Default or
	// Rotation, RelevantKey is not populated.
	Action Action

	// RelevantKey is the key inserted or removed.
	RelevantKey K
}
