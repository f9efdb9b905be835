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
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/sync/errgroup"

	"github.com/greenmaskio/colspec/internal/common/models"
	"github.com/greenmaskio/colspec/internal/common/utils"
	"github.com/greenmaskio/colspec/internal/common/validationcollector"
	"github.com/greenmaskio/colspec/pkg/coltype"
)

const (
	// ViolationsKey - key of the violations list in annotated records.
	ViolationsKey = "_violations"
	// batchSizePerWorker - amount of records a worker gets per batch. Results are emitted once the batch is
	// complete, so it also bounds the memory.
	batchSizePerWorker = 64
)

var (
	errInvalidWorkers = errors.New("workers must be greater than 0")
	errInvalidRecord  = errors.New("record is not a valid JSON object")
)

// RecordResult - outcome of a single record check.
type RecordResult struct {
	Num        int
	Record     []byte
	Violations models.ValidationWarnings
	// Resolved - amount of findings excluded as already resolved.
	Resolved int
}

// Stats - summary of a check run.
type Stats struct {
	Records          int `json:"records" yaml:"records"`
	InvalidRecords   int `json:"invalid_records" yaml:"invalid_records"`
	Violations       int `json:"violations" yaml:"violations"`
	FatalViolations  int `json:"fatal_violations" yaml:"fatal_violations"`
	ResolvedExcluded int `json:"resolved_excluded" yaml:"resolved_excluded"`
}

// Checker validates JSON records against a set of column descriptors. It is safe for concurrent use.
type Checker struct {
	columns  []Column
	workers  int
	resolved map[string]struct{}
}

func NewChecker(columns []Column, workers int, resolvedWarnings []string) (*Checker, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("got %d: %w", workers, errInvalidWorkers)
	}
	resolved := make(map[string]struct{}, len(resolvedWarnings))
	for _, h := range resolvedWarnings {
		resolved[h] = struct{}{}
	}
	return &Checker{
		columns:  slices.Clone(columns),
		workers:  workers,
		resolved: resolved,
	}, nil
}

// CheckRecord validates one JSON record. Violations are returned and added to the collector from ctx.
func (c *Checker) CheckRecord(ctx context.Context, num int, record []byte) RecordResult {
	res := RecordResult{Num: num, Record: record}
	vc := validationcollector.FromContext(ctx).WithMeta(models.MetaKeyRecordNumber, num)

	if !gjson.ValidBytes(record) || !gjson.ParseBytes(record).IsObject() {
		w := models.NewValidationWarning().
			SetSeverity(models.ValidationSeverityError).
			SetMsg("record is not a valid JSON object").
			SetError(errInvalidRecord)
		w.MakeHash()
		res.Violations = append(res.Violations, w)
		vc.Add(w)
		return res
	}

	for _, col := range c.columns {
		w := c.checkColumn(col.Descriptor, gjson.GetBytes(record, escapePath(col.Descriptor.Name)))
		if w == nil {
			continue
		}
		w.MakeHash()
		if _, ok := c.resolved[w.Hash]; ok && !w.IsFatal() {
			log.Ctx(ctx).Debug().Str("Hash", w.Hash).Msg("resolved warning has been excluded")
			res.Resolved++
			continue
		}
		res.Violations = append(res.Violations, w)
		vc.Add(w)
	}
	return res
}

func (c *Checker) checkColumn(d coltype.Descriptor, value gjson.Result) *models.ValidationWarning {
	if !value.Exists() || value.Type == gjson.Null {
		if d.Nullable {
			return nil
		}
		return newColumnWarning(d).
			SetMsg("value is missing in not nullable column")
	}

	candidate := candidateValue(d, value)
	ok, err := d.Validate(candidate)
	if err != nil {
		return newColumnWarning(d).
			SetSeverity(models.ValidationSeverityError).
			SetMsg("value cannot be stored in the column").
			AddMeta(models.MetaKeyValue, value.String()).
			SetError(err)
	}
	if !ok {
		return newColumnWarning(d).
			SetMsgf("value does not conform to %s", d.Type).
			AddMeta(models.MetaKeyValue, value.String())
	}
	return nil
}

func newColumnWarning(d coltype.Descriptor) *models.ValidationWarning {
	return models.NewValidationWarning().
		AddMeta(models.MetaKeyColumnName, d.Name).
		AddMeta(models.MetaKeyColumnType, string(d.Type))
}

// candidateValue maps a JSON value to a validator candidate. Integer and boolean columns judge numbers by
// their numeric value, the other columns judge the literal JSON text, so 12.0 keeps its decimal point.
func candidateValue(d coltype.Descriptor, value gjson.Result) any {
	switch value.Type {
	case gjson.String:
		return value.Str
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		if d.Category == coltype.CategoryInteger || d.Category == coltype.CategoryBoolean {
			if n, err := decimal.NewFromString(value.Raw); err == nil {
				return n
			}
		}
		return value.Raw
	}
	return value.Raw
}

// escapePath escapes gjson path syntax characters of a column name.
func escapePath(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%', ':', '[', ']', '{', '}', ',', '"':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Annotate returns the record with the list of violations set under ViolationsKey.
func Annotate(res RecordResult) ([]byte, error) {
	type violation struct {
		Column   string                    `json:"column,omitempty"`
		Msg      string                    `json:"msg"`
		Severity models.ValidationSeverity `json:"severity"`
		Hash     string                    `json:"hash"`
	}
	if !gjson.ValidBytes(res.Record) || !gjson.ParseBytes(res.Record).IsObject() {
		return nil, fmt.Errorf("record %d: %w", res.Num, errInvalidRecord)
	}
	violations := make([]violation, 0, len(res.Violations))
	for _, w := range res.Violations {
		column, _ := w.Meta[models.MetaKeyColumnName].(string)
		violations = append(violations, violation{
			Column:   column,
			Msg:      w.Msg,
			Severity: w.Severity,
			Hash:     w.Hash,
		})
	}
	annotated, err := sjson.SetBytes(res.Record, ViolationsKey, violations)
	if err != nil {
		return nil, fmt.Errorf("annotate record %d: %w", res.Num, err)
	}
	return annotated, nil
}

// Run checks every record of r, one JSON object per line, and calls emit for each of them in the input
// order. Records are checked in batches by a bounded pool of workers.
func (c *Checker) Run(ctx context.Context, r io.Reader, emit func(RecordResult) error) (Stats, error) {
	var (
		stats   Stats
		nums    []int
		records [][]byte
	)
	batchSize := c.workers * batchSizePerWorker

	flush := func() error {
		results, err := c.checkBatch(ctx, nums, records)
		if err != nil {
			return err
		}
		for _, res := range results {
			stats.Records++
			stats.ResolvedExcluded += res.Resolved
			if len(res.Violations) > 0 {
				stats.InvalidRecords++
			}
			for _, w := range res.Violations {
				stats.Violations++
				if w.IsFatal() {
					stats.FatalViolations++
				}
			}
			if err := emit(res); err != nil {
				return fmt.Errorf("emit record %d: %w", res.Num, err)
			}
		}
		nums, records = nums[:0], records[:0]
		return nil
	}

	err := utils.ReadLines(ctx, r, func(lineNum int, line string) error {
		nums = append(nums, lineNum)
		records = append(records, []byte(line))
		if len(records) < batchSize {
			return nil
		}
		return flush()
	})
	if err != nil {
		return stats, err
	}
	if len(records) > 0 {
		if err := flush(); err != nil {
			return stats, err
		}
	}
	log.Ctx(ctx).Debug().
		Int("Records", stats.Records).
		Int("Violations", stats.Violations).
		Msg("check completed")
	return stats, nil
}

func (c *Checker) checkBatch(ctx context.Context, nums []int, records [][]byte) ([]RecordResult, error) {
	results := make([]RecordResult, len(records))
	eg, gtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.workers)
	for i := range records {
		eg.Go(func() error {
			if err := gtx.Err(); err != nil {
				return err
			}
			results[i] = c.CheckRecord(gtx, nums[i], records[i])
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("check batch: %w", err)
	}
	return results, nil
}
