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

package check

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/greenmaskio/colspec/internal/common/models"
	"github.com/greenmaskio/colspec/internal/common/validationcollector"
	"github.com/greenmaskio/colspec/pkg/coltype"
)

const testColumns = "-- orders table\n" +
	"`id` INT NOT NULL,\n" +
	"`price` DECIMAL(10,2) NULL,\n" +
	"`name` VARCHAR(255) NOT NULL,\n" +
	"\n" +
	"`flags` BIT(4) NULL\n"

func mustLoadColumns(t *testing.T, declarations string) []Column {
	t.Helper()
	columns, err := LoadColumns(context.Background(), strings.NewReader(declarations), coltype.DefaultRegistry)
	require.NoError(t, err)
	return columns
}

func TestLoadColumns(t *testing.T) {
	columns := mustLoadColumns(t, testColumns)
	require.Len(t, columns, 3)
	assert.Equal(t, 2, columns[0].Line)
	assert.Equal(t, "id", columns[0].Descriptor.Name)
	assert.Equal(t, coltype.TypeDecimal, columns[1].Descriptor.Type)
	assert.Equal(t, 6, columns[2].Line)
	assert.Equal(t, "`flags` BIT(4) NULL", columns[2].Fragment)
}

func TestLoadColumns_Errors(t *testing.T) {
	_, err := LoadColumns(context.Background(), strings.NewReader("`name` TEXT\n"), coltype.DefaultRegistry)
	require.ErrorIs(t, err, errNoColumns)

	_, err = LoadColumns(context.Background(), strings.NewReader("`id` INT\n`b` BIT(65)\n"), coltype.DefaultRegistry)
	require.ErrorIs(t, err, coltype.ErrInvalidSize)
	assert.Contains(t, err.Error(), "line 2")
}

func TestNewChecker_InvalidWorkers(t *testing.T) {
	_, err := NewChecker(nil, 0, nil)
	require.ErrorIs(t, err, errInvalidWorkers)
}

func TestChecker_CheckRecord(t *testing.T) {
	c, err := NewChecker(mustLoadColumns(t, testColumns), 1, nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		record   string
		expected map[string]models.ValidationSeverity
	}{
		{
			name:     "valid",
			record:   `{"id": 10, "price": "12.34", "flags": "0101"}`,
			expected: map[string]models.ValidationSeverity{},
		},
		{
			name:     "number literals",
			record:   `{"id": "10", "price": 12.34, "flags": 101}`,
			expected: map[string]models.ValidationSeverity{},
		},
		{
			name:     "nullable columns",
			record:   `{"id": 1, "price": null}`,
			expected: map[string]models.ValidationSeverity{},
		},
		{
			name:   "out of range and malformed",
			record: `{"id": 3000000000, "price": "12", "flags": "0102"}`,
			expected: map[string]models.ValidationSeverity{
				"id":    models.ValidationSeverityWarning,
				"price": models.ValidationSeverityWarning,
				"flags": models.ValidationSeverityWarning,
			},
		},
		{
			name:   "missing not nullable",
			record: `{"price": "1.50"}`,
			expected: map[string]models.ValidationSeverity{
				"id": models.ValidationSeverityWarning,
			},
		},
		{
			name:   "decimal does not fit the column",
			record: fmt.Sprintf(`{"id": 1, "price": "1.%s"}`, strings.Repeat("1", 30)),
			expected: map[string]models.ValidationSeverity{
				"price": models.ValidationSeverityError,
			},
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.CheckRecord(context.Background(), i+1, []byte(tt.record))
			assert.Equal(t, i+1, res.Num)
			actual := make(map[string]models.ValidationSeverity, len(res.Violations))
			for _, w := range res.Violations {
				column, ok := w.Meta[models.MetaKeyColumnName].(string)
				require.True(t, ok)
				actual[column] = w.Severity
				assert.NotEmpty(t, w.Hash)
			}
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestChecker_CheckRecord_InvalidRecord(t *testing.T) {
	c, err := NewChecker(mustLoadColumns(t, testColumns), 1, nil)
	require.NoError(t, err)
	for _, record := range []string{`{"id": `, `[1, 2]`, `42`} {
		res := c.CheckRecord(context.Background(), 1, []byte(record))
		require.Len(t, res.Violations, 1, record)
		assert.True(t, res.Violations.IsFatal())
	}
}

func TestChecker_CheckRecord_Collector(t *testing.T) {
	c, err := NewChecker(mustLoadColumns(t, testColumns), 1, nil)
	require.NoError(t, err)
	vc := validationcollector.NewCollector()
	ctx := validationcollector.WithCollector(context.Background(), vc)

	c.CheckRecord(ctx, 7, []byte(`{"price": "15"}`))
	c.CheckRecord(ctx, 8, []byte(`{"price": "15"}`))

	warnings := vc.GetWarnings()
	require.Len(t, warnings, 4)
	assert.Equal(t, 7, warnings[0].Meta[models.MetaKeyRecordNumber])
	assert.Equal(t, 8, warnings[2].Meta[models.MetaKeyRecordNumber])
	assert.Equal(t, warnings[0].Hash, warnings[2].Hash, "hash must not depend on the record number")
	assert.Equal(t, "15", warnings[1].Meta[models.MetaKeyValue])
}

func TestChecker_ColumnNameWithPathSyntax(t *testing.T) {
	columns := mustLoadColumns(t, "`a.b` TINYINT UNSIGNED NOT NULL\n")
	c, err := NewChecker(columns, 1, nil)
	require.NoError(t, err)

	res := c.CheckRecord(context.Background(), 1, []byte(`{"a.b": 300, "a": {"b": 1}}`))
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "a.b", res.Violations[0].Meta[models.MetaKeyColumnName])
	assert.Equal(t, `a\.b`, escapePath("a.b"))
}

func TestChecker_Run(t *testing.T) {
	c, err := NewChecker(mustLoadColumns(t, testColumns), 3, nil)
	require.NoError(t, err)

	var sb strings.Builder
	const total = 500
	for i := 0; i < total; i++ {
		if i%10 == 0 {
			sb.WriteString(`{"price": "1.00"}` + "\n")
			continue
		}
		sb.WriteString(fmt.Sprintf(`{"id": %d}`+"\n", i))
	}

	var nums []int
	stats, err := c.Run(context.Background(), strings.NewReader(sb.String()), func(res RecordResult) error {
		nums = append(nums, res.Num)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, nums, total)
	assert.IsIncreasing(t, nums)
	assert.Equal(t, total, stats.Records)
	assert.Equal(t, total/10, stats.InvalidRecords)
	assert.Equal(t, total/10, stats.Violations)
	assert.Zero(t, stats.FatalViolations)
}

func TestChecker_Run_ResolvedWarnings(t *testing.T) {
	columns := mustLoadColumns(t, testColumns)
	first, err := NewChecker(columns, 2, nil)
	require.NoError(t, err)
	res := first.CheckRecord(context.Background(), 1, []byte(`{"price": "1.00"}`))
	require.Len(t, res.Violations, 1)

	c, err := NewChecker(columns, 2, []string{res.Violations[0].Hash})
	require.NoError(t, err)
	input := "{\"price\": \"1.00\"}\n{\"id\": 1}\n{\"id\": 99999999999}\n"
	stats, err := c.Run(context.Background(), strings.NewReader(input), func(RecordResult) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Records)
	assert.Equal(t, 1, stats.ResolvedExcluded)
	assert.Equal(t, 1, stats.Violations)
}

func TestChecker_Run_EmitError(t *testing.T) {
	c, err := NewChecker(mustLoadColumns(t, testColumns), 2, nil)
	require.NoError(t, err)
	_, err = c.Run(context.Background(), strings.NewReader("{\"id\": 1}\n"), func(RecordResult) error {
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
}

func TestChecker_Run_Canceled(t *testing.T) {
	c, err := NewChecker(mustLoadColumns(t, testColumns), 2, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Run(ctx, strings.NewReader("{\"id\": 1}\n"), func(RecordResult) error {
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestAnnotate(t *testing.T) {
	c, err := NewChecker(mustLoadColumns(t, testColumns), 1, nil)
	require.NoError(t, err)
	res := c.CheckRecord(context.Background(), 1, []byte(`{"price": "12"}`))

	annotated, err := Annotate(res)
	require.NoError(t, err)
	violations := gjson.GetBytes(annotated, ViolationsKey)
	require.True(t, violations.IsArray())
	require.Len(t, violations.Array(), 2)
	assert.Equal(t, "id", violations.Get("0.column").String())
	assert.Equal(t, "warning", violations.Get("1.severity").String())
	assert.Equal(t, res.Violations[1].Hash, violations.Get("1.hash").String())
	assert.Equal(t, "12", gjson.GetBytes(annotated, "price").String())

	_, err = Annotate(RecordResult{Num: 2, Record: []byte("not json")})
	require.ErrorIs(t, err, errInvalidRecord)
}
