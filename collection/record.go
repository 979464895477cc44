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
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Record is a row of a collection. A record is created by
// Collection.NewRecord and becomes visible to indices once added with
// Collection.AddRecord. Writes through Set on an added record keep every
// index consistent.
type Record struct {
	id   uuid.UUID
	c    *Collection
	vals []Value

	// keys holds the snapshot each index is currently keyed by. A record
	// rejected by a best-effort add has no entry for that index.
	keys  map[*Index]Key
	seq   uint64
	added bool
}

func (r *Record) ID() uuid.UUID { return r.id }

// Get returns the value of the named field.
func (r *Record) Get(field string) (Value, error) {
	i, err := r.c.schema.Position(field)
	if err != nil {
		return Null(), err
	}
	return r.vals[i], nil
}

// Set writes the named field. It is shorthand for UpdateField on the
// record's collection, which keeps every index consistent.
func (r *Record) Set(field string, v Value) error {
	return r.c.UpdateField(r, field, v)
}

// Values returns the record's values in schema order.
func (r *Record) Values() []Value { return append([]Value(nil), r.vals...) }

// Added reports whether the record is part of its collection.
func (r *Record) Added() bool { return r.added }

// String renders the record as field=value pairs in schema order.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range r.c.schema {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteByte('=')
		if v := r.vals[i]; v.kind == KindString {
			b.WriteString(strconv.Quote(v.s))
		} else {
			b.WriteString(v.String())
		}
	}
	b.WriteByte('}')
	return b.String()
}

// with returns a copy of the record's values with field i set to v.
func (r *Record) with(i int, v Value) []Value {
	vals := append([]Value(nil), r.vals...)
	vals[i] = v
	return vals
}
