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

	"github.com/shopspring/decimal"
)

const (
	// MaxDecimalIntegerDigits - ceiling of the integer part of a DECIMAL value.
	MaxDecimalIntegerDigits = 64
	// MaxDecimalFractionalDigits - ceiling of the fractional part of a DECIMAL value.
	MaxDecimalFractionalDigits = 29
)

// Bound - numeric limits of a column type. A Min that is not Valid means negative infinity and a Max that
// is not Valid means positive infinity.
type Bound struct {
	Min decimal.NullDecimal `json:"min" yaml:"min"`
	Max decimal.NullDecimal `json:"max" yaml:"max"`
}

func newBound(min, max decimal.Decimal) Bound {
	return Bound{
		Min: decimal.NewNullDecimal(min),
		Max: decimal.NewNullDecimal(max),
	}
}

// InLenientRange reports whether min-1 < v < max+1. Integer validators accept one unit past each
// published limit.
func (b Bound) InLenientRange(v decimal.Decimal) bool {
	one := decimal.NewFromInt(1)
	if b.Min.Valid && !v.GreaterThan(b.Min.Decimal.Sub(one)) {
		return false
	}
	if b.Max.Valid && !v.LessThan(b.Max.Decimal.Add(one)) {
		return false
	}
	return true
}

func (b Bound) String() string {
	lo, hi := "-inf", "+inf"
	if b.Min.Valid {
		lo = b.Min.Decimal.String()
	}
	if b.Max.Valid {
		hi = b.Max.Decimal.String()
	}
	return fmt.Sprintf("[%s, %s]", lo, hi)
}

// MarshalYAML renders both limits as plain strings, null stands for infinity.
func (b Bound) MarshalYAML() (any, error) {
	res := map[string]*string{"min": nil, "max": nil}
	if b.Min.Valid {
		s := b.Min.Decimal.String()
		res["min"] = &s
	}
	if b.Max.Valid {
		s := b.Max.Decimal.String()
		res["max"] = &s
	}
	return res, nil
}

type boundKey struct {
	typ      Type
	unsigned bool
}

var (
	maxDecimal = decimal.RequireFromString(
		strings.Repeat("9", MaxDecimalIntegerDigits) + "." + strings.Repeat("9", MaxDecimalFractionalDigits),
	)
	maxBigIntSigned   = decimal.RequireFromString("9223372036854775807")
	maxBigIntUnsigned = decimal.RequireFromString("18446744073709551615")

	boundTable = map[boundKey]Bound{
		{TypeTinyInt, false}:   newBound(decimal.NewFromInt(-127), decimal.NewFromInt(127)),
		{TypeTinyInt, true}:    newBound(decimal.Zero, decimal.NewFromInt(255)),
		{TypeSmallInt, false}:  newBound(decimal.NewFromInt(-32768), decimal.NewFromInt(32767)),
		{TypeSmallInt, true}:   newBound(decimal.Zero, decimal.NewFromInt(65334)),
		{TypeMediumInt, false}: newBound(decimal.NewFromInt(-8388608), decimal.NewFromInt(8388607)),
		{TypeMediumInt, true}:  newBound(decimal.Zero, decimal.NewFromInt(16777215)),
		{TypeInt, false}:       newBound(decimal.NewFromInt(-2147483648), decimal.NewFromInt(2147483647)),
		{TypeInt, true}:        newBound(decimal.Zero, decimal.NewFromInt(4294967296)),
		{TypeBigInt, false}:    newBound(maxBigIntSigned.Neg(), maxBigIntSigned),
		{TypeBigInt, true}:     newBound(decimal.Zero, maxBigIntUnsigned),
		{TypeDecimal, false}:   newBound(maxDecimal.Neg(), maxDecimal),
		{TypeDecimal, true}:    newBound(decimal.Zero, maxDecimal),
		{TypeFloat, false}:     {},
		{TypeFloat, true}:      {Min: decimal.NewNullDecimal(decimal.Zero)},
		{TypeDouble, false}:    {},
		{TypeDouble, true}:     {Min: decimal.NewNullDecimal(decimal.Zero)},
	}
)

// LookupBound returns the limits of typ for the given signedness. Types without numeric limits are
// reported with false.
func LookupBound(typ Type, unsigned bool) (Bound, bool) {
	b, ok := boundTable[boundKey{typ: typ, unsigned: unsigned}]
	return b, ok
}
