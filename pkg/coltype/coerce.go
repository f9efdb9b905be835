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
	"math"
	"reflect"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// parseInteger reads a base-10 integer from the beginning of the value text: leading white space is
// skipped, an optional sign and a run of digits are consumed and the rest is ignored. "12abc" is 12 and
// "1.9" is 1. A value without leading digits is not a number.
func parseInteger(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case bool:
		return decimal.Decimal{}, false
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return decimal.Decimal{}, false
		}
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Decimal{}, false
		}
	case decimal.Decimal:
		return v.Truncate(0), true
	}

	s, ok := candidateString(value)
	if !ok {
		return decimal.Decimal{}, false
	}
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	var sign string
	if s != "" && (s[0] == '-' || s[0] == '+') {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return decimal.Decimal{}, false
	}
	res, err := decimal.NewFromString(sign + s[:end])
	if err != nil {
		return decimal.Decimal{}, false
	}
	return res, true
}

// isTruthy reports the truthiness of a dynamically typed value: nil, false, numeric zero, NaN, an empty
// string and nil references are falsy, everything else is truthy.
func isTruthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case []byte:
		return len(v) > 0
	case decimal.Decimal:
		return !v.IsZero()
	case decimal.NullDecimal:
		return v.Valid && !v.Decimal.IsZero()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.String:
		return rv.Len() > 0
	case reflect.Bool:
		return rv.Bool()
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}
