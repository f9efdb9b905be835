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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestRecognize_EndToEnd(t *testing.T) {
	d, ok, err := Recognize("TINYINT", "`age` TINYINT UNSIGNED NOT NULL")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "age", d.Name)
	assert.Equal(t, CategoryInteger, d.Category)
	assert.Equal(t, TypeTinyInt, d.Type)
	assert.False(t, d.Nullable)
	assert.True(t, d.Unsigned)
	require.NotNil(t, d.Bound)
	assert.True(t, d.Bound.Min.Decimal.Equal(decimal.Zero))
	assert.True(t, d.Bound.Max.Decimal.Equal(decimal.NewFromInt(255)))
	assert.Nil(t, d.Length)
}

func TestRecognizer_Recognize(t *testing.T) {
	tests := []struct {
		name       string
		recognizer *Recognizer
		fragment   string
		expected   Descriptor
		noMatch    bool
	}{
		{
			name:       "bit",
			recognizer: BitRecognizer,
			fragment:   "`flags` BIT(8) NOT NULL",
			expected: Descriptor{
				Name: "flags", Type: TypeBit, Category: CategoryBinary, Length: intPtr(8),
			},
		},
		{
			name:       "bit max length",
			recognizer: BitRecognizer,
			fragment:   "`flags` BIT(64) NULL",
			expected: Descriptor{
				Name: "flags", Type: TypeBit, Category: CategoryBinary, Length: intPtr(64), Nullable: true,
			},
		},
		{
			name:       "bit with three digit length is not a match",
			recognizer: BitRecognizer,
			fragment:   "`flags` BIT(100) NULL",
			noMatch:    true,
		},
		{
			name:       "int with display width",
			recognizer: IntRecognizer,
			fragment:   "\t`idtable1` INT(11) NOT NULL,",
			expected: Descriptor{
				Name: "idtable1", Type: TypeInt, Category: CategoryInteger, Precision: intPtr(11),
			},
		},
		{
			name:       "integer alias",
			recognizer: IntRecognizer,
			fragment:   "'id' INTEGER UNSIGNED",
			expected: Descriptor{
				Name: "id", Type: TypeInt, Category: CategoryInteger, Nullable: true, Unsigned: true,
			},
		},
		{
			name:       "int does not match inside point",
			recognizer: IntRecognizer,
			fragment:   "`location` POINT NOT NULL",
			noMatch:    true,
		},
		{
			name:       "int does not match tinyint",
			recognizer: IntRecognizer,
			fragment:   "`age` TINYINT NOT NULL",
			noMatch:    true,
		},
		{
			name:       "keyword in the column name is not a match",
			recognizer: IntRecognizer,
			fragment:   "INT VARCHAR(10) NOT NULL",
			noMatch:    true,
		},
		{
			name:       "keyword match is case sensitive",
			recognizer: IntRecognizer,
			fragment:   "`id` int NOT NULL",
			noMatch:    true,
		},
		{
			name:       "bool",
			recognizer: BooleanRecognizer,
			fragment:   "`active` BOOL NOT NULL",
			expected: Descriptor{
				Name: "active", Type: TypeBoolean, Category: CategoryBoolean,
			},
		},
		{
			name:       "decimal with precision and scale",
			recognizer: DecimalRecognizer,
			fragment:   "`decimal` DECIMAL(66,31) NULL,",
			expected: Descriptor{
				Name: "decimal", Type: TypeDecimal, Category: CategoryDecimal, Nullable: true,
				Precision: intPtr(66), Scale: intPtr(31),
			},
		},
		{
			name:       "double precision",
			recognizer: DoubleRecognizer,
			fragment:   "`ratio` DOUBLE PRECISION(10,2) UNSIGNED",
			expected: Descriptor{
				Name: "ratio", Type: TypeDouble, Category: CategoryFloat, Nullable: true, Unsigned: true,
				Precision: intPtr(10), Scale: intPtr(2),
			},
		},
		{
			name:       "date",
			recognizer: DateRecognizer,
			fragment:   "`birthday` DATE NOT NULL",
			expected: Descriptor{
				Name: "birthday", Type: TypeDate, Category: CategoryDate,
			},
		},
		{
			name:       "date does not match datetime",
			recognizer: DateRecognizer,
			fragment:   "`created_at` DATETIME(6) NOT NULL",
			noMatch:    true,
		},
		{
			name:       "datetime",
			recognizer: DateTimeRecognizer,
			fragment:   "`created_at` DATETIME(6) NOT NULL",
			expected: Descriptor{
				Name: "created_at", Type: TypeDateTime, Category: CategoryDate, Precision: intPtr(6),
			},
		},
		{
			name:       "datetime requires fractional seconds precision",
			recognizer: DateTimeRecognizer,
			fragment:   "`created_at` DATETIME NOT NULL",
			noMatch:    true,
		},
		{
			name:       "timestamp precision out of range",
			recognizer: TimestampRecognizer,
			fragment:   "`updated_at` TIMESTAMP(7)",
			noMatch:    true,
		},
		{
			name:       "time does not match timestamp",
			recognizer: TimeRecognizer,
			fragment:   "`updated_at` TIMESTAMP(3)",
			noMatch:    true,
		},
		{
			name:       "time",
			recognizer: TimeRecognizer,
			fragment:   "`duration` TIME(3) NULL",
			expected: Descriptor{
				Name: "duration", Type: TypeTime, Category: CategoryDate, Precision: intPtr(3), Nullable: true,
			},
		},
		{
			name:       "year",
			recognizer: YearRecognizer,
			fragment:   "`made` YEAR(4)",
			expected: Descriptor{
				Name: "made", Type: TypeYear, Category: CategoryYear, Precision: intPtr(4), Nullable: true,
			},
		},
		{
			name:       "year with unsupported digits",
			recognizer: YearRecognizer,
			fragment:   "`made` YEAR(3)",
			noMatch:    true,
		},
		{
			name:       "empty fragment",
			recognizer: IntRecognizer,
			fragment:   "   ",
			noMatch:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok, err := tt.recognizer.Recognize(tt.fragment)
			require.NoError(t, err)
			if tt.noMatch {
				require.False(t, ok)
				return
			}
			require.True(t, ok)
			// Bound is covered by the bound table tests
			d.Bound = nil
			if diff := cmp.Diff(tt.expected, d); diff != "" {
				t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecognizer_Recognize_Nullability(t *testing.T) {
	d, ok, err := IntRecognizer.Recognize("`x` INT NOT NULL")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, d.Nullable)

	d, ok, err = IntRecognizer.Recognize("`x` INT NULL")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, d.Nullable)

	d, ok, err = IntRecognizer.Recognize("`x` INT")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, d.Nullable)
}

func TestRecognizer_Recognize_InvalidBitSize(t *testing.T) {
	for _, fragment := range []string{"`b` BIT(65)", "`b` BIT(99) NOT NULL", "`b` BIT(0)"} {
		t.Run(fragment, func(t *testing.T) {
			_, ok, err := BitRecognizer.Recognize(fragment)
			require.ErrorIs(t, err, ErrInvalidSize)
			assert.False(t, ok)
			assert.True(t, IsFatal(err))
		})
	}
}

func TestRecognizer_Recognize_Idempotent(t *testing.T) {
	fragments := []string{
		"`age` TINYINT UNSIGNED NOT NULL",
		"`price` DECIMAL(10,2) NOT NULL",
		"`ratio` FLOAT UNSIGNED",
		"`flags` BIT(12)",
		"`at` TIMESTAMP(3)",
	}
	for _, fragment := range fragments {
		t.Run(fragment, func(t *testing.T) {
			first, ok, err := Detect(fragment)
			require.NoError(t, err)
			require.True(t, ok)
			second, ok, err := Detect(fragment)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Empty(t, cmp.Diff(first, second, cmp.Comparer(func(a, b decimal.Decimal) bool {
				return a.Equal(b)
			})))
		})
	}
}

func TestRecognizer_Recognize_DecimalAliases(t *testing.T) {
	base, ok, err := DecimalRecognizer.Recognize("`v` DECIMAL NULL")
	require.NoError(t, err)
	require.True(t, ok)

	candidates := []any{"12.34", "12", "-0.5", "abc", ""}
	for _, alias := range []string{"DEC", "NUMERIC", "FIXED"} {
		t.Run(alias, func(t *testing.T) {
			d, ok, err := Recognize(alias, "`v` "+alias+" NULL")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, CategoryDecimal, d.Category)
			assert.Equal(t, TypeDecimal, d.Type)
			for _, c := range candidates {
				expected, expectedErr := base.Validate(c)
				actual, actualErr := d.Validate(c)
				assert.Equal(t, expected, actual, "candidate %v", c)
				assert.Equal(t, expectedErr, actualErr, "candidate %v", c)
			}
		})
	}
}
