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
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteDot writes the structure of the tree to w in the graphviz dot
// language. Nodes are labeled with label, or with their key formatted with
// %v if label is nil. Red nodes are drawn in red.
func (t *Map[K, V, Aux, A, AP]) WriteDot(w io.Writer, label func(K, V) string) error {
	if label == nil {
		label = func(k K, _ V) string { return fmt.Sprint(k) }
	}
	bw := bufio.NewWriter(w)
	bw.WriteString("digraph RBTree {\n")
	if t.root != nil {
		writeDot(bw, t.root, 0, label)
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

// writeDot writes n and its descendants, numbering them in pre-order from
// id, and returns the next unused id.
func writeDot[K, V, A any](
	bw *bufio.Writer, n *node[K, V, A], id int, label func(K, V) string,
) int {
	bw.WriteString(strconv.Itoa(id))
	bw.WriteString(" [label=")
	bw.WriteString(strconv.Quote(label(n.key, n.value)))
	if n.red {
		bw.WriteString(", color=\"red\"")
	}
	bw.WriteString("];\n")
	next := id + 1
	for _, c := range n.children {
		if c == nil {
			continue
		}
		child := next
		next = writeDot(bw, c, child, label)
		fmt.Fprintf(bw, "%d -> %d;\n", id, child)
	}
	return next
}
