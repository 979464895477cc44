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

package collection

import (
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/ajwerner/rbtree/orderstat"
)

// Uniqueness is the duplicate-key policy of an index.
type Uniqueness int

const (
	// Unique indices reject a record whose key equals another record's.
	Unique Uniqueness = iota
	// NonUnique indices accept equal keys. Records with equal keys are
	// ordered by their ID.
	NonUnique
)

func (u Uniqueness) String() string {
	if u == Unique {
		return "unique"
	}
	return "non-unique"
}

// Index orders a collection's records by a composite key over a subset of
// their fields.
type Index struct {
	c      *Collection
	name   string
	fields []string
	pos    []int
	uniq   Uniqueness
	tree   *orderstat.Map[Key, *Record]
}

func (idx *Index) Name() string           { return idx.name }
func (idx *Index) Fields() []string       { return slices.Clone(idx.fields) }
func (idx *Index) Uniqueness() Uniqueness { return idx.uniq }
func (idx *Index) Len() int               { return idx.tree.Len() }
func (idx *Index) Height() int            { return idx.tree.Height() }

// Verify checks the red-black invariants of the index's tree and that
// every linked record's snapshot matches its node.
func (idx *Index) Verify() error {
	if err := idx.tree.Verify(); err != nil {
		return fmt.Errorf("index %q: %w", idx.name, err)
	}
	it := idx.tree.MakeIter()
	for it.Advance() {
		r := it.Value()
		if k, ok := r.keys[idx]; !ok || k.enc != it.Cur().enc {
			return fmt.Errorf("index %q: record %v is linked under %s but its snapshot is %s",
				idx.name, r.id, it.Cur(), k)
		}
	}
	return nil
}

// String renders the index's tree with red nodes marked by '*'.
func (idx *Index) String() string { return idx.tree.String() }

// WriteDot writes the index's tree in the graphviz dot language.
func (idx *Index) WriteDot(w io.Writer) error {
	return idx.tree.WriteDot(w, func(k Key, _ *Record) string { return k.String() })
}

// keyFor snapshots the indexed fields of vals, which are r's values or
// r's values about to be written.
func (idx *Index) keyFor(r *Record, vals []Value) Key {
	kv := make([]Value, len(idx.pos))
	for i, p := range idx.pos {
		kv[i] = vals[p]
	}
	if idx.uniq == NonUnique {
		return makeKey(kv, &r.id)
	}
	return makeKey(kv, nil)
}

// covers reports whether field position p is part of the key.
func (idx *Index) covers(p int) bool { return slices.Contains(idx.pos, p) }

// conflicts reports whether k is held by a record other than r.
func (idx *Index) conflicts(k Key, r *Record) bool {
	if idx.uniq != Unique {
		return false
	}
	holder, ok := idx.tree.Get(k)
	return ok && holder != r
}

func (idx *Index) checkArity(vals []Value) error {
	if len(vals) > len(idx.fields) {
		return fmt.Errorf("index %q has %d fields, got %d values",
			idx.name, len(idx.fields), len(vals))
	}
	for i, v := range vals {
		if err := idx.c.schema.check(idx.pos[i], v); err != nil {
			return err
		}
	}
	return nil
}

// Scan returns a cursor over every record in index order.
func (idx *Index) Scan() *Cursor {
	idx.c.metrics.op(idx.name, "scan")
	return &Cursor{it: idx.tree.MakeIter()}
}

// RangeScan returns a cursor over the records whose keys are in the range
// described by rc, starting at the smallest.
func (idx *Index) RangeScan(rc RangeCompare) *Cursor {
	idx.c.metrics.op(idx.name, "scan")
	cur := &Cursor{it: idx.tree.MakeIter(), rc: rc}
	cur.it.SeekMin(rc)
	return cur
}

// All returns an iterator over the records in index order. Modifying the
// index while ranging over it panics with ErrStaleIterator.
func (idx *Index) All() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		it := idx.tree.MakeIter()
		for it.Advance() {
			if !yield(it.Value()) {
				return
			}
		}
		if err := it.Err(); err != nil {
			panic(err)
		}
	}
}

// Lookup returns the first record whose key equals vals, which must name
// every field of the index.
func (idx *Index) Lookup(vals ...Value) (*Record, error) {
	if len(vals) != len(idx.fields) {
		return nil, fmt.Errorf("index %q has %d fields, got %d values",
			idx.name, len(idx.fields), len(vals))
	}
	if err := idx.checkArity(vals); err != nil {
		return nil, err
	}
	idx.c.metrics.op(idx.name, "lookup")
	if idx.uniq == Unique {
		k := makeKey(vals, nil)
		if r, ok := idx.c.cache.get(idx, k); ok {
			return r, nil
		}
		r, ok := idx.tree.Get(k)
		if !ok {
			return nil, fmt.Errorf("index %q: %s: %w", idx.name, k, ErrNotFound)
		}
		idx.c.cache.set(idx, k, r)
		return r, nil
	}
	cur := idx.RangeScan(Prefix(vals...))
	if !cur.Advance() {
		return nil, fmt.Errorf("index %q: %s: %w", idx.name, makeKey(vals, nil), ErrNotFound)
	}
	return cur.Record(), nil
}

// Search returns the records whose leading indexed fields equal prefix, in
// index order.
func (idx *Index) Search(prefix ...Value) ([]*Record, error) {
	if err := idx.checkArity(prefix); err != nil {
		return nil, err
	}
	var out []*Record
	cur := idx.RangeScan(Prefix(prefix...))
	for cur.Advance() {
		out = append(out, cur.Record())
	}
	return out, cur.Err()
}

// Nth returns the record at position i in index order.
func (idx *Index) Nth(i int) (*Record, bool) {
	_, r, ok := idx.tree.Nth(i)
	return r, ok
}

// Rank returns the position of r in index order.
func (idx *Index) Rank(r *Record) (int, error) {
	k, ok := r.keys[idx]
	if !ok {
		return 0, fmt.Errorf("index %q: record %v: %w", idx.name, r.id, ErrNotFound)
	}
	rank, _ := idx.tree.Rank(k)
	return rank, nil
}

// Cursor walks the records of an index. It starts before the first record;
// Advance moves it forward.
type Cursor struct {
	it   orderstat.Iterator[Key, *Record]
	rc   RangeCompare
	done bool
}

// Advance moves to the next record and reports whether there is one.
func (c *Cursor) Advance() bool {
	if c.done {
		return false
	}
	if !c.it.Advance() || (c.rc != nil && c.rc(c.it.Cur()) != 0) {
		c.done = true
		return false
	}
	return true
}

// Record returns the record at the cursor's position.
func (c *Cursor) Record() *Record { return c.it.Value() }

// Key returns the index key at the cursor's position.
func (c *Cursor) Key() Key { return c.it.Cur() }

// Err returns ErrStaleIterator if the collection was modified while the
// cursor was in use.
func (c *Cursor) Err() error { return c.it.Err() }
