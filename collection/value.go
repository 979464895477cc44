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
	"cmp"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the type of a field.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
)

var kindNames = [...]string{
	KindNull:   "null",
	KindString: "string",
	KindInt:    "int",
	KindFloat:  "float",
	KindBool:   "bool",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return KindNull, fmt.Errorf("unknown kind %q", s)
}

// Value is a typed field value. The zero Value is null.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

// Null returns the null value.
func Null() Value { return Value{} }

func StringValue(s string) Value { return Value{kind: KindString, s: s} }

func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// FloatValue returns a float value. Negative zero is stored as zero so that
// equal floats have equal keys.
func FloatValue(f float64) Value {
	if f == 0 {
		f = 0
	}
	return Value{kind: KindFloat, f: f}
}

func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// ValueOf converts a Go value, as produced by a YAML or JSON decoder, to a
// Value.
func ValueOf(x any) (Value, error) {
	switch x := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case string:
		return StringValue(x), nil
	case int:
		return IntValue(int64(x)), nil
	case int32:
		return IntValue(int64(x)), nil
	case int64:
		return IntValue(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return Null(), fmt.Errorf("%d overflows int64", x)
		}
		return IntValue(int64(x)), nil
	case float32:
		return FloatValue(float64(x)), nil
	case float64:
		return FloatValue(x), nil
	case bool:
		return BoolValue(x), nil
	default:
		return Null(), fmt.Errorf("unsupported value type %T", x)
	}
}

// ParseValue parses s as a value of kind k. The literal "null" parses as
// the null value for every kind other than string.
func ParseValue(k Kind, s string) (Value, error) {
	if k != KindString && s == "null" {
		return Null(), nil
	}
	switch k {
	case KindNull:
		return Null(), fmt.Errorf("cannot parse %q as null", s)
	case KindString:
		return StringValue(s), nil
	case KindInt:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Null(), fmt.Errorf("%w: %v", ErrKindMismatch, err)
		}
		return IntValue(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Null(), fmt.Errorf("%w: %v", ErrKindMismatch, err)
		}
		return FloatValue(f), nil
	case KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Null(), fmt.Errorf("%w: %v", ErrKindMismatch, err)
		}
		return BoolValue(b), nil
	default:
		return Null(), fmt.Errorf("unknown kind %v", k)
	}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Interface returns v as a Go value: nil, string, int64, float64 or bool.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// String returns the display form of v.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return "null"
	}
}

// Compare orders values by kind and then by value. NaN sorts below every
// other float.
func Compare(a, b Value) int {
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}
	switch a.kind {
	case KindString:
		return strings.Compare(a.s, b.s)
	case KindInt:
		return cmp.Compare(a.i, b.i)
	case KindFloat:
		return cmp.Compare(a.f, b.f)
	case KindBool:
		switch {
		case a.b == b.b:
			return 0
		case b.b:
			return -1
		default:
			return 1
		}
	default:
		return 0
	}
}

// Key encoding tags. Their order is the order of kinds.
const (
	tagNull byte = 0x01 + iota
	tagString
	tagInt
	tagFloat
	tagBool
)

// appendKey appends an encoding of v to b such that the bytewise order of
// encodings matches Compare and no encoding is a prefix of another.
func (v Value) appendKey(b []byte) []byte {
	switch v.kind {
	case KindString:
		b = append(b, tagString)
		for i := 0; i < len(v.s); i++ {
			if c := v.s[i]; c == 0x00 {
				b = append(b, 0x00, 0xff)
			} else {
				b = append(b, c)
			}
		}
		return append(b, 0x00, 0x01)
	case KindInt:
		b = append(b, tagInt)
		return binary.BigEndian.AppendUint64(b, uint64(v.i)^(1<<63))
	case KindFloat:
		b = append(b, tagFloat)
		var u uint64
		switch bits := math.Float64bits(v.f); {
		case math.IsNaN(v.f):
		case bits&(1<<63) != 0:
			u = ^bits
		default:
			u = bits | 1<<63
		}
		return binary.BigEndian.AppendUint64(b, u)
	case KindBool:
		if v.b {
			return append(b, tagBool, 1)
		}
		return append(b, tagBool, 0)
	default:
		return append(b, tagNull)
	}
}
