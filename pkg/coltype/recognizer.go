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
	"regexp"
	"slices"
	"strconv"
	"strings"
)

const (
	tokenNot      = "NOT"
	tokenUnsigned = "UNSIGNED"
)

// argsBuilder - fills type specific descriptor attributes from the submatches of the keyword pattern.
type argsBuilder func(d *Descriptor, args []string) error

// Recognizer - matcher of a single type keyword family. The same recognizer serves every accepted
// spelling of the type.
type Recognizer struct {
	Type     Type     `json:"type"`
	Category Category `json:"category"`
	// Aliases - alternative spellings that resolve to Type
	Aliases []string `json:"aliases,omitempty"`
	// Syntax - human-readable form of the accepted declaration
	Syntax  string `json:"syntax"`
	pattern *regexp.Regexp
	build   argsBuilder
}

func NewRecognizer(
	typ Type, category Category, syntax string, pattern string, build argsBuilder, aliases ...string,
) *Recognizer {
	return &Recognizer{
		Type:     typ,
		Category: category,
		Aliases:  aliases,
		Syntax:   syntax,
		pattern:  regexp.MustCompile(pattern),
		build:    build,
	}
}

// Recognize turns fragment into a descriptor. The second return value is false when the fragment does not
// declare this type, which is not an error. An error is returned when the fragment declares the type with a
// structurally invalid argument.
func (r *Recognizer) Recognize(fragment string) (Descriptor, bool, error) {
	fragment = strings.TrimSpace(fragment)
	tokens := strings.Fields(fragment)
	if len(tokens) == 0 {
		return Descriptor{}, false, nil
	}
	// The keyword is looked up after the column name, so a column named as a keyword is not a match.
	definition := strings.TrimSpace(fragment[len(tokens[0]):])
	match := r.pattern.FindStringSubmatch(definition)
	if match == nil {
		return Descriptor{}, false, nil
	}

	markers := make([]string, 0, len(tokens)-1)
	for _, t := range tokens[1:] {
		markers = append(markers, strings.TrimRight(t, ","))
	}

	d := Descriptor{
		Name:     stripQuotes(tokens[0]),
		Type:     r.Type,
		Category: r.Category,
		Nullable: !slices.Contains(markers, tokenNot),
		Unsigned: slices.Contains(markers, tokenUnsigned),
	}
	if b, ok := LookupBound(r.Type, d.Unsigned); ok {
		d.Bound = &b
	}
	if r.build != nil {
		if err := r.build(&d, match[1:]); err != nil {
			return Descriptor{}, false, fmt.Errorf("column %q of type %s: %w", d.Name, r.Type, err)
		}
	}
	return d, true, nil
}

// Names returns the canonical type name followed by the aliases.
func (r *Recognizer) Names() []string {
	return append([]string{string(r.Type)}, r.Aliases...)
}

func stripQuotes(name string) string {
	return strings.NewReplacer("'", "", "`", "").Replace(name)
}

// optionalInt parses an optional pattern submatch. Empty submatch means the argument was omitted.
func optionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("parse argument %q: %w", s, err)
	}
	return &v, nil
}

func withPrecision(d *Descriptor, args []string) (err error) {
	if len(args) > 0 {
		if d.Precision, err = optionalInt(args[0]); err != nil {
			return err
		}
	}
	return nil
}

func withPrecisionAndScale(d *Descriptor, args []string) (err error) {
	if err = withPrecision(d, args); err != nil {
		return err
	}
	if len(args) > 1 {
		if d.Scale, err = optionalInt(args[1]); err != nil {
			return err
		}
	}
	return nil
}

func withBitLength(d *Descriptor, args []string) error {
	length, err := optionalInt(args[0])
	if err != nil {
		return err
	}
	if length == nil || *length < 1 || *length > MaxBitLength {
		return fmt.Errorf("bit length must be in range 1..%d got %s: %w", MaxBitLength, args[0], ErrInvalidSize)
	}
	d.Length = length
	return nil
}
