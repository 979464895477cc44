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

import "fmt"

// Field names and types a record field.
type Field struct {
	Name string
	Kind Kind
}

// Schema is the ordered list of fields of a collection's records.
type Schema []Field

func (s Schema) validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: no fields", ErrInvalidSchema)
	}
	seen := make(map[string]struct{}, len(s))
	for _, f := range s {
		if f.Name == "" {
			return fmt.Errorf("%w: empty field name", ErrInvalidSchema)
		}
		if f.Kind == KindNull || f.Kind > KindBool {
			return fmt.Errorf("%w: field %q has kind %v", ErrInvalidSchema, f.Name, f.Kind)
		}
		if _, ok := seen[f.Name]; ok {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidSchema, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// Position returns the position of the named field.
func (s Schema) Position(name string) (int, error) {
	for i, f := range s {
		if f.Name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// check reports whether v may be stored in field i.
func (s Schema) check(i int, v Value) error {
	if v.kind != KindNull && v.kind != s[i].Kind {
		return fmt.Errorf("%w: field %q is %v, got %v",
			ErrKindMismatch, s[i].Name, s[i].Kind, v.kind)
	}
	return nil
}
