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
	"errors"
	"fmt"

	"github.com/ajwerner/rbtree"
)

// Sentinel errors for collection operations.
var (
	// ErrDuplicateKey is matched by a *DuplicateKeyError returned when a
	// record's key collides with another record's in a Unique index.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound is returned when no record matches a lookup, or when an
	// operation names a record which is not part of the collection.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownField is returned when a field name is not in the schema.
	ErrUnknownField = errors.New("unknown field")

	// ErrKindMismatch is returned when a value's kind differs from its
	// field's kind.
	ErrKindMismatch = errors.New("value kind does not match field")

	// ErrInvalidSchema is returned by New for an empty or ambiguous schema.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrIndexNotFound is returned when an index name is unknown.
	ErrIndexNotFound = errors.New("index not found")

	// ErrForeignRecord is returned when a record created by one collection
	// is passed to another.
	ErrForeignRecord = errors.New("record belongs to another collection")

	// ErrRecordExists is returned when adding a record twice.
	ErrRecordExists = errors.New("record already added")

	// ErrStaleIterator is reported by a Cursor whose collection was
	// modified while it was in use.
	ErrStaleIterator = rbtree.ErrStaleIterator
)

// DuplicateKeyError reports a key rejected by a Unique index.
type DuplicateKeyError struct {
	Index string
	Key   Key
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("index %q: duplicate key %s", e.Index, e.Key)
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

// MultiError aggregates the per-index failures of a best-effort operation.
type MultiError struct {
	Errors []error
}

func (e *MultiError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	default:
		return fmt.Sprintf("%d errors: %v (and %d more)",
			len(e.Errors), e.Errors[0], len(e.Errors)-1)
	}
}

func (e *MultiError) Unwrap() []error { return e.Errors }

// errOrNil returns nil for an empty error list.
func (e *MultiError) errOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}
