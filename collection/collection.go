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

// Package collection maintains secondary indices over a set of records.
//
// Each Index orders the records of a Collection by a composite key built
// from a subset of their fields and is backed by a red-black tree. Every
// record caches a snapshot of its key for each index. Writes to an indexed
// field remove the record from the affected trees under the old snapshot,
// apply the write, and reinsert it under a fresh snapshot, so a tree's
// comparator never observes a key change while the key is linked.
//
// A Collection is not safe for concurrent use.
package collection

import (
	"cmp"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/ajwerner/rbtree"
	"github.com/ajwerner/rbtree/orderstat"
)

// AddPolicy controls how a write which some Unique index rejects is
// applied.
type AddPolicy int

const (
	// Atomic rejects the whole write and leaves every index unchanged.
	Atomic AddPolicy = iota
	// BestEffort applies the write to every index which accepts it. The
	// record is left out of the indices which reject it.
	BestEffort
)

func (p AddPolicy) String() string {
	if p == BestEffort {
		return "best-effort"
	}
	return "atomic"
}

// ParseAddPolicy returns the AddPolicy named by s.
func ParseAddPolicy(s string) (AddPolicy, error) {
	switch s {
	case "", "atomic":
		return Atomic, nil
	case "best-effort", "best_effort":
		return BestEffort, nil
	default:
		return Atomic, fmt.Errorf("unknown add policy %q", s)
	}
}

// Option configures a Collection.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	policy    AddPolicy
	cacheSize int64
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithAddPolicy sets the policy used by AddRecord and UpdateField.
func WithAddPolicy(p AddPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithLookupCache enables a cache of up to size entries for exact-match
// lookups on Unique indices.
func WithLookupCache(size int64) Option {
	return func(o *options) { o.cacheSize = size }
}

// Collection owns a set of records and the indices over them.
type Collection struct {
	name    string
	schema  Schema
	logger  *slog.Logger
	policy  AddPolicy
	metrics *metrics
	cache   *lookupCache

	indices []*Index
	current *Index
	records *rbtree.Map[uint64, *Record]
	nextSeq uint64
}

// New constructs an empty collection of records with the given schema.
func New(name string, schema Schema, opts ...Option) (*Collection, error) {
	if err := schema.validate(); err != nil {
		return nil, err
	}
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	c := &Collection{
		name:    name,
		schema:  slices.Clone(schema),
		logger:  o.logger.With(slog.String("collection", name)),
		policy:  o.policy,
		metrics: &metrics{collection: name},
		records: rbtree.MakeMap[uint64, *Record](cmp.Compare[uint64]),
	}
	if o.cacheSize > 0 {
		lc, err := newLookupCache(o.cacheSize, c.metrics)
		if err != nil {
			return nil, fmt.Errorf("creating lookup cache: %w", err)
		}
		c.cache = lc
	}
	c.metrics.records(0)
	return c, nil
}

// Close releases the lookup cache.
func (c *Collection) Close() { c.cache.close() }

func (c *Collection) Name() string      { return c.name }
func (c *Collection) Schema() Schema    { return slices.Clone(c.schema) }
func (c *Collection) Policy() AddPolicy { return c.policy }
func (c *Collection) Len() int          { return c.records.Len() }

// NewRecord returns a record of this collection with every field null.
// The record is not part of the collection until passed to AddRecord.
func (c *Collection) NewRecord() *Record {
	return &Record{
		id:   uuid.New(),
		c:    c,
		vals: make([]Value, len(c.schema)),
		keys: make(map[*Index]Key),
	}
}

// Records returns an iterator over the records in the order they were
// added. Adding or removing records while ranging over it panics with
// ErrStaleIterator.
func (c *Collection) Records() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		it := c.records.MakeIter()
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

// CreateIndex builds an index over fields and adds it to the collection.
// Existing records are loaded in the order they were added. An existing
// index of the same name is replaced once the new one is fully built.
//
// When a Unique index meets a duplicate key, an Atomic collection abandons
// the build, leaves the collection unchanged and returns the
// *DuplicateKeyError. A BestEffort collection leaves the later record out
// of the index and returns the index along with a *MultiError of the
// rejections.
func (c *Collection) CreateIndex(name string, fields []string, u Uniqueness) (*Index, error) {
	if name == "" || len(fields) == 0 {
		return nil, fmt.Errorf("index %q: name and fields are required", name)
	}
	idx := &Index{
		c:      c,
		name:   name,
		fields: slices.Clone(fields),
		uniq:   u,
		tree:   orderstat.MakeMap[Key, *Record](compareKeys),
	}
	for _, f := range fields {
		p, err := c.schema.Position(f)
		if err != nil {
			return nil, fmt.Errorf("index %q: %w", name, err)
		}
		idx.pos = append(idx.pos, p)
	}
	keys := make(map[*Record]Key, c.records.Len())
	var errs MultiError
	for r := range c.Records() {
		k := idx.keyFor(r, r.vals)
		if !idx.tree.Insert(k, r) {
			err := c.rejected(idx, k, r, "create")
			if c.policy == Atomic {
				idx.tree.Reset()
				return nil, err
			}
			errs.Errors = append(errs.Errors, err)
			continue
		}
		keys[r] = k
	}
	for r, k := range keys {
		r.keys[idx] = k
	}
	if old, ok := c.lookupIndex(name); ok {
		c.dropIndex(old)
		c.indices[slices.Index(c.indices, old)] = idx
		if c.current == old {
			c.current = idx
		}
	} else {
		c.indices = append(c.indices, idx)
	}
	c.logger.Debug("built index",
		slog.String("index", name),
		slog.Any("fields", fields),
		slog.String("uniqueness", u.String()),
		slog.Int("records", idx.tree.Len()),
		slog.Int("height", idx.tree.Height()),
		slog.Int("rejected", len(errs.Errors)),
	)
	return idx, errs.errOrNil()
}

// DropIndex removes the named index.
func (c *Collection) DropIndex(name string) error {
	idx, ok := c.lookupIndex(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrIndexNotFound, name)
	}
	c.dropIndex(idx)
	c.indices = slices.DeleteFunc(c.indices, func(i *Index) bool { return i == idx })
	if c.current == idx {
		c.current = nil
	}
	return nil
}

// dropIndex forgets the snapshots taken for idx.
func (c *Collection) dropIndex(idx *Index) {
	for r := range c.Records() {
		delete(r.keys, idx)
	}
	idx.tree.Reset()
}

func (c *Collection) lookupIndex(name string) (*Index, bool) {
	for _, idx := range c.indices {
		if idx.name == name {
			return idx, true
		}
	}
	return nil, false
}

// Index returns the named index.
func (c *Collection) Index(name string) (*Index, error) {
	idx, ok := c.lookupIndex(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrIndexNotFound, name)
	}
	return idx, nil
}

// Indices returns the collection's indices in the order they were created.
func (c *Collection) Indices() []*Index { return slices.Clone(c.indices) }

// SetCurrentIndex selects the index used by Scan and Search.
func (c *Collection) SetCurrentIndex(name string) error {
	idx, err := c.Index(name)
	if err != nil {
		return err
	}
	c.current = idx
	return nil
}

// CurrentIndex returns the index selected by SetCurrentIndex, or nil.
func (c *Collection) CurrentIndex() *Index { return c.current }

// Scan returns a cursor over the records in the order of the current
// index.
func (c *Collection) Scan() (*Cursor, error) {
	if c.current == nil {
		return nil, fmt.Errorf("%w: no current index", ErrIndexNotFound)
	}
	return c.current.Scan(), nil
}

// Search returns the records whose leading fields in the current index
// equal prefix.
func (c *Collection) Search(prefix ...Value) ([]*Record, error) {
	if c.current == nil {
		return nil, fmt.Errorf("%w: no current index", ErrIndexNotFound)
	}
	return c.current.Search(prefix...)
}

func (c *Collection) checkOwner(r *Record) error {
	if r.c != c {
		return fmt.Errorf("record %v: %w", r.id, ErrForeignRecord)
	}
	return nil
}

// AddRecord adds r to the collection and to every index. If a Unique index
// rejects r's key, an Atomic collection returns a *DuplicateKeyError and
// leaves r out of the collection; a BestEffort collection keeps r, links it
// into every index which accepts it, and returns a *MultiError of the
// rejections.
func (c *Collection) AddRecord(r *Record) error {
	if err := c.checkOwner(r); err != nil {
		return err
	}
	if r.added {
		return fmt.Errorf("record %v: %w", r.id, ErrRecordExists)
	}
	keys := make([]Key, len(c.indices))
	for i, idx := range c.indices {
		keys[i] = idx.keyFor(r, r.vals)
		if c.policy == Atomic && idx.conflicts(keys[i], r) {
			return c.rejected(idx, keys[i], r, "add")
		}
	}
	var errs MultiError
	for i, idx := range c.indices {
		if !idx.tree.Insert(keys[i], r) {
			errs.Errors = append(errs.Errors, c.rejected(idx, keys[i], r, "add"))
			continue
		}
		r.keys[idx] = keys[i]
		c.metrics.op(idx.name, "insert")
	}
	r.seq = c.nextSeq
	c.nextSeq++
	r.added = true
	c.records.Insert(r.seq, r)
	c.metrics.records(c.records.Len())
	return errs.errOrNil()
}

func (c *Collection) rejected(idx *Index, k Key, r *Record, op string) error {
	c.metrics.duplicate(idx.name)
	c.logger.Warn("duplicate key rejected",
		slog.String("index", idx.name),
		slog.String("key", k.String()),
		slog.String("record", r.id.String()),
		slog.String("op", op),
		slog.String("policy", c.policy.String()),
	)
	return &DuplicateKeyError{Index: idx.name, Key: k}
}

// UpdateField sets field of r to v. For an added record every index whose
// key includes field is updated: r is removed from each under its current
// snapshot, the value is written, and r is reinserted under a new
// snapshot. An index which rejected r earlier gets r inserted under the
// new key. The collection's AddPolicy decides what happens when a Unique
// index rejects the new key.
func (c *Collection) UpdateField(r *Record, field string, v Value) error {
	if err := c.checkOwner(r); err != nil {
		return err
	}
	p, err := c.schema.Position(field)
	if err != nil {
		return err
	}
	if err := c.schema.check(p, v); err != nil {
		return err
	}
	if !r.added {
		r.vals[p] = v
		return nil
	}
	next := r.with(p, v)
	var affected []*Index
	var keys []Key
	for _, idx := range c.indices {
		if !idx.covers(p) {
			continue
		}
		k := idx.keyFor(r, next)
		if c.policy == Atomic && idx.conflicts(k, r) {
			return c.rejected(idx, k, r, "update")
		}
		affected = append(affected, idx)
		keys = append(keys, k)
	}
	c.cache.forget(r)
	for _, idx := range affected {
		old, linked := r.keys[idx]
		if !linked {
			continue
		}
		if _, _, found := idx.tree.Delete(old); !found {
			panic(fmt.Sprintf("index %q: record %v not linked under its snapshot %s",
				idx.name, r.id, old))
		}
		delete(r.keys, idx)
		c.metrics.op(idx.name, "delete")
	}
	r.vals[p] = v
	var errs MultiError
	for i, idx := range affected {
		if !idx.tree.Insert(keys[i], r) {
			errs.Errors = append(errs.Errors, c.rejected(idx, keys[i], r, "update"))
			continue
		}
		r.keys[idx] = keys[i]
		c.metrics.op(idx.name, "insert")
	}
	if len(affected) > 0 {
		c.logger.Debug("rekeyed record",
			slog.String("record", r.id.String()),
			slog.String("field", field),
			slog.Int("indices", len(affected)),
		)
	}
	return errs.errOrNil()
}

// RemoveRecord removes r from every index and from the collection.
func (c *Collection) RemoveRecord(r *Record) error {
	if err := c.checkOwner(r); err != nil {
		return err
	}
	if !r.added {
		return fmt.Errorf("record %v: %w", r.id, ErrNotFound)
	}
	c.cache.forget(r)
	for idx, k := range r.keys {
		if _, _, found := idx.tree.Delete(k); !found {
			panic(fmt.Sprintf("index %q: record %v not linked under its snapshot %s",
				idx.name, r.id, k))
		}
		c.metrics.op(idx.name, "delete")
	}
	clear(r.keys)
	c.records.Delete(r.seq)
	r.added = false
	c.metrics.records(c.records.Len())
	return nil
}

// Verify checks every index.
func (c *Collection) Verify() error {
	for _, idx := range c.indices {
		if err := idx.Verify(); err != nil {
			return err
		}
	}
	return nil
}
