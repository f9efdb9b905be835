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
	"strconv"
	"time"

	"github.com/spf13/cast"
)

type validatorFunc func(d Descriptor, value any) (bool, error)

var (
	binaryRunRegexp   = regexp.MustCompile(`[01]+`)
	pointNumberRegexp = regexp.MustCompile(`^(-)?(\d+)\.(\d+)$`)
	dateRegexp        = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-([0-2][1-9]|3[0-1])$`)
	timeRegexp        = regexp.MustCompile(`^(-)?(\d{1,3}):([0-5]\d):([0-5]\d)(?:\.(\d{1,6}))?$`)
	yearRegexp        = regexp.MustCompile(`\d{4}`)
)

var (
	minDateTime  = time.Date(1000, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxDateTime  = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
	minTimestamp = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxTimestamp = time.Date(2038, time.January, 19, 3, 14, 7, 0, time.UTC)
	maxTime      = 838*time.Hour + 59*time.Minute + 59*time.Second
)

// validators is read-only after package initialization.
var validators = map[Type]validatorFunc{
	TypeBit:       validateBinary,
	TypeTinyInt:   validateInteger,
	TypeSmallInt:  validateInteger,
	TypeMediumInt: validateInteger,
	TypeInt:       validateInteger,
	TypeBigInt:    validateInteger,
	TypeBoolean:   validateBoolean,
	TypeDecimal:   validateDecimal,
	TypeFloat:     validateFloat,
	TypeDouble:    validateFloat,
	TypeDate:      validateDate,
	TypeDateTime:  validateDateTime,
	TypeTimestamp: validateTimestamp,
	TypeTime:      validateTime,
	TypeYear:      validateYear,
}

// candidateString brings a candidate to its textual form. Numbers are judged by their decimal text.
func candidateString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case []byte:
		return string(v), true
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return "", false
	}
	return s, true
}

// validateBinary accepts a value only when the first run of binary digits spans the whole value.
func validateBinary(_ Descriptor, value any) (bool, error) {
	s, ok := candidateString(value)
	if !ok || s == "" {
		return false, nil
	}
	loc := binaryRunRegexp.FindStringIndex(s)
	return loc != nil && loc[0] == 0 && loc[1] == len(s), nil
}

func validateInteger(d Descriptor, value any) (bool, error) {
	v, ok := parseInteger(value)
	if !ok {
		return false, nil
	}
	b := d.Bound
	if b == nil {
		lb, found := LookupBound(d.Type, d.Unsigned)
		if !found {
			return false, fmt.Errorf("bound of %s: %w", d.Type, ErrUnknownType)
		}
		b = &lb
	}
	return b.InLenientRange(v), nil
}

func validateBoolean(_ Descriptor, value any) (bool, error) {
	return isTruthy(value), nil
}

func validateDecimal(_ Descriptor, value any) (bool, error) {
	s, ok := candidateString(value)
	if !ok {
		return false, nil
	}
	m := pointNumberRegexp.FindStringSubmatch(s)
	if m == nil {
		return false, nil
	}
	if len(m[2]) > MaxDecimalIntegerDigits {
		return false, fmt.Errorf(
			"integer part has %d digits, allowed %d: %w", len(m[2]), MaxDecimalIntegerDigits, ErrIntegerPartTooBig,
		)
	}
	if len(m[3]) > MaxDecimalFractionalDigits {
		return false, fmt.Errorf(
			"fractional part has %d digits, allowed %d: %w",
			len(m[3]), MaxDecimalFractionalDigits, ErrFractionalPartTooBig,
		)
	}
	return true, nil
}

func validateFloat(_ Descriptor, value any) (bool, error) {
	s, ok := candidateString(value)
	if !ok {
		return false, nil
	}
	return pointNumberRegexp.MatchString(s), nil
}

func validateDate(_ Descriptor, value any) (bool, error) {
	s, ok := candidateString(value)
	if !ok {
		return false, nil
	}
	return dateRegexp.MatchString(s), nil
}

func validateDateTime(_ Descriptor, value any) (bool, error) {
	t, ok := parseTimestamp(value)
	if !ok {
		return false, nil
	}
	return !t.Before(minDateTime) && !t.After(maxDateTime), nil
}

func validateTimestamp(_ Descriptor, value any) (bool, error) {
	t, ok := parseTimestamp(value)
	if !ok {
		return false, nil
	}
	return t.After(minTimestamp) && t.Before(maxTimestamp), nil
}

func validateTime(_ Descriptor, value any) (bool, error) {
	s, ok := candidateString(value)
	if !ok {
		return false, nil
	}
	m := timeRegexp.FindStringSubmatch(s)
	if m == nil {
		return false, nil
	}
	// The submatches are digit runs of a bounded length, Atoi cannot fail here.
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	seconds, _ := strconv.Atoi(m[4])
	d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
	if m[5] != "" {
		micros, _ := strconv.Atoi((m[5] + "00000")[:6])
		d += time.Duration(micros) * time.Microsecond
	}
	return d <= maxTime, nil
}

// validateYear looks for a four-digit run anywhere in the value.
func validateYear(_ Descriptor, value any) (bool, error) {
	s, ok := candidateString(value)
	if !ok {
		return false, nil
	}
	return yearRegexp.MatchString(s), nil
}

func parseTimestamp(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case []byte:
		value = string(v)
	}
	t, err := cast.ToTimeInDefaultLocationE(value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
