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

// Key is a snapshot of a record's indexed fields. Keys are ordered by an
// encoding of their values which sorts like the tuple of values under
// Compare, so a Key remains a stable tree key while the record it was taken
// from changes.
type Key struct {
	enc  string
	vals []Value
}

// makeKey snapshots vals. A non-nil id is appended to the encoding to
// distinguish records with equal values.
func makeKey(vals []Value, id *uuid.UUID) Key {
	var b []byte
	for _, v := range vals {
		b = v.appendKey(b)
	}
	if id != nil {
		b = append(b, id[:]...)
	}
	return Key{enc: string(b), vals: append([]Value(nil), vals...)}
}

// prefixKey encodes vals for prefix matching.
func prefixKey(vals []Value) string {
	var b []byte
	for _, v := range vals {
		b = v.appendKey(b)
	}
	return string(b)
}

func compareKeys(a, b Key) int { return strings.Compare(a.enc, b.enc) }

// Values returns the values in the key.
func (k Key) Values() []Value { return append([]Value(nil), k.vals...) }

// String renders the key as {"v1","v2"}.
func (k Key) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range k.vals {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(v.String()))
	}
	b.WriteByte('}')
	return b.String()
}

// RangeCompare locates a contiguous range of index keys relative to k. It
// returns a negative number if the range lies below k, zero if k is in the
// range, and a positive number if the range lies above k.
type RangeCompare func(k Key) int

// Prefix matches keys whose leading values equal vals.
func Prefix(vals ...Value) RangeCompare {
	p := prefixKey(vals)
	return func(k Key) int {
		if strings.HasPrefix(k.enc, p) {
			return 0
		}
		return strings.Compare(p, k.enc)
	}
}

// Between matches keys at or above lo and below hi, comparing only as many
// leading values as each bound has. A nil bound is unbounded.
func Between(lo, hi []Value) RangeCompare {
	l, h := prefixKey(lo), prefixKey(hi)
	return func(k Key) int {
		if lo != nil && k.enc < l {
			return 1
		}
		if hi != nil && k.enc[:min(len(k.enc), len(h))] >= h {
			return -1
		}
		return 0
	}
}
