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

// Package config loads the YAML dataset files read by rbindex. A dataset
// describes a collection's schema, its indices and an initial set of
// records.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ajwerner/rbtree/collection"
)

// Dataset is the root of a dataset file.
type Dataset struct {
	Name        string           `yaml:"name" validate:"required"`
	Fields      []Field          `yaml:"fields" validate:"required,min=1,dive"`
	Indices     []Index          `yaml:"indices" validate:"dive"`
	Records     []map[string]any `yaml:"records"`
	AddPolicy   string           `yaml:"add_policy" validate:"omitempty,oneof=atomic best-effort"`
	LookupCache int64            `yaml:"lookup_cache" validate:"gte=0"`
	Current     string           `yaml:"current_index"`
	Log         Log              `yaml:"log"`
}

// Field declares a record field.
type Field struct {
	Name string `yaml:"name" validate:"required"`
	Kind string `yaml:"kind" validate:"required,oneof=string int float bool"`
}

// Index declares an index over one or more fields.
type Index struct {
	Name   string   `yaml:"name" validate:"required"`
	Fields []string `yaml:"fields" validate:"required,min=1,dive,required"`
	Unique bool     `yaml:"unique"`
}

// Log configures logging.
type Log struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
}

var validate = validator.New()

// Load reads and validates the dataset file at path.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes and validates a dataset. Unknown keys are rejected.
func Parse(data []byte) (*Dataset, error) {
	var d Dataset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if err := validate.Struct(&d); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	if err := d.check(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	return &d, nil
}

// check validates the references between sections.
func (d *Dataset) check() error {
	fields := make(map[string]struct{}, len(d.Fields))
	for _, f := range d.Fields {
		if _, dup := fields[f.Name]; dup {
			return fmt.Errorf("duplicate field %q", f.Name)
		}
		fields[f.Name] = struct{}{}
	}
	indices := make(map[string]struct{}, len(d.Indices))
	var errs []error
	for _, idx := range d.Indices {
		if _, dup := indices[idx.Name]; dup {
			errs = append(errs, fmt.Errorf("duplicate index %q", idx.Name))
		}
		indices[idx.Name] = struct{}{}
		for _, f := range idx.Fields {
			if _, ok := fields[f]; !ok {
				errs = append(errs, fmt.Errorf("index %q: unknown field %q", idx.Name, f))
			}
		}
	}
	if _, ok := indices[d.Current]; d.Current != "" && !ok {
		errs = append(errs, fmt.Errorf("current_index %q is not an index", d.Current))
	}
	for i, rec := range d.Records {
		for f := range rec {
			if _, ok := fields[f]; !ok {
				errs = append(errs, fmt.Errorf("record %d: unknown field %q", i, f))
			}
		}
	}
	return errors.Join(errs...)
}

// Schema returns the collection schema declared by the dataset.
func (d *Dataset) Schema() (collection.Schema, error) {
	s := make(collection.Schema, 0, len(d.Fields))
	for _, f := range d.Fields {
		k, err := collection.ParseKind(f.Kind)
		if err != nil {
			return nil, err
		}
		s = append(s, collection.Field{Name: f.Name, Kind: k})
	}
	return s, nil
}

// Build constructs the dataset's collection, creates its indices and adds
// its records. Records rejected by a unique index are reported in the
// returned error alongside the collection, which is usable.
func (d *Dataset) Build(opts ...collection.Option) (*collection.Collection, error) {
	schema, err := d.Schema()
	if err != nil {
		return nil, err
	}
	policy, err := collection.ParseAddPolicy(d.AddPolicy)
	if err != nil {
		return nil, err
	}
	opts = append([]collection.Option{
		collection.WithAddPolicy(policy),
		collection.WithLookupCache(d.LookupCache),
	}, opts...)
	c, err := collection.New(d.Name, schema, opts...)
	if err != nil {
		return nil, err
	}
	for _, idx := range d.Indices {
		u := collection.NonUnique
		if idx.Unique {
			u = collection.Unique
		}
		if _, err := c.CreateIndex(idx.Name, idx.Fields, u); err != nil {
			c.Close()
			return nil, err
		}
	}
	if d.Current != "" {
		if err := c.SetCurrentIndex(d.Current); err != nil {
			c.Close()
			return nil, err
		}
	}
	var rejected []error
	for i, rec := range d.Records {
		r := c.NewRecord()
		for _, f := range schema {
			raw, ok := rec[f.Name]
			if !ok {
				continue
			}
			v, err := valueFor(f.Kind, raw)
			if err != nil {
				c.Close()
				return nil, fmt.Errorf("record %d: field %q: %w", i, f.Name, err)
			}
			if err := r.Set(f.Name, v); err != nil {
				c.Close()
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
		}
		if err := c.AddRecord(r); err != nil {
			rejected = append(rejected, fmt.Errorf("record %d: %w", i, err))
		}
	}
	return c, errors.Join(rejected...)
}

// valueFor converts a decoded YAML scalar to a value of kind k. Integers
// are accepted for float fields.
func valueFor(k collection.Kind, raw any) (collection.Value, error) {
	v, err := collection.ValueOf(raw)
	if err != nil {
		return v, err
	}
	if k == collection.KindFloat && v.Kind() == collection.KindInt {
		return collection.FloatValue(float64(v.Interface().(int64))), nil
	}
	return v, nil
}
