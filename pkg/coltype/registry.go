// Copyright 2025 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package coltype

import (
	"fmt"
	"strings"
)

var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.MustRegister(
		BitRecognizer,
		TinyIntRecognizer,
		SmallIntRecognizer,
		MediumIntRecognizer,
		IntRecognizer,
		BigIntRecognizer,
		BooleanRecognizer,
		DecimalRecognizer,
		FloatRecognizer,
		DoubleRecognizer,
		DateRecognizer,
		DateTimeRecognizer,
		TimestampRecognizer,
		TimeRecognizer,
		YearRecognizer,
	)
}

// Registry - set of recognizers addressable by the canonical type name or any alias. Registration must be
// done before the registry is shared between goroutines.
type Registry struct {
	order []*Recognizer
	m     map[string]*Recognizer
}

func NewRegistry() *Registry {
	return &Registry{
		m: make(map[string]*Recognizer),
	}
}

func (r *Registry) Register(recognizers ...*Recognizer) error {
	for _, rec := range recognizers {
		for _, name := range rec.Names() {
			key := normalizeTypeName(name)
			if _, ok := r.m[key]; ok {
				return fmt.Errorf("register %s: %w", name, ErrTypeAlreadyExists)
			}
		}
		for _, name := range rec.Names() {
			r.m[normalizeTypeName(name)] = rec
		}
		r.order = append(r.order, rec)
	}
	return nil
}

func (r *Registry) MustRegister(recognizers ...*Recognizer) {
	if err := r.Register(recognizers...); err != nil {
		panic(err.Error())
	}
}

// Get returns the recognizer for a canonical type name or an alias. The lookup is case-insensitive.
func (r *Registry) Get(typeName string) (*Recognizer, bool) {
	rec, ok := r.m[normalizeTypeName(typeName)]
	return rec, ok
}

// Types returns recognizers in registration order.
func (r *Registry) Types() []*Recognizer {
	res := make([]*Recognizer, len(r.order))
	copy(res, r.order)
	return res
}

// Recognize runs the recognizer of typeName against fragment.
func (r *Registry) Recognize(typeName, fragment string) (Descriptor, bool, error) {
	rec, ok := r.Get(typeName)
	if !ok {
		return Descriptor{}, false, fmt.Errorf("type %q: %w", typeName, ErrUnknownType)
	}
	return rec.Recognize(fragment)
}

// Detect tries every recognizer in registration order and returns the first match. A structural
// violation stops the search.
func (r *Registry) Detect(fragment string) (Descriptor, bool, error) {
	for _, rec := range r.order {
		d, ok, err := rec.Recognize(fragment)
		if err != nil {
			return Descriptor{}, false, err
		}
		if ok {
			return d, true, nil
		}
	}
	return Descriptor{}, false, nil
}

func Recognize(typeName, fragment string) (Descriptor, bool, error) {
	return DefaultRegistry.Recognize(typeName, fragment)
}

func Detect(fragment string) (Descriptor, bool, error) {
	return DefaultRegistry.Detect(fragment)
}

func normalizeTypeName(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), " "))
}
