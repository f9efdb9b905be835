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

package printer

import (
	"fmt"
	"strconv"

	"github.com/spf13/cast"

	"github.com/greenmaskio/colspec/internal/check"
	"github.com/greenmaskio/colspec/internal/common/models"
)

type report struct {
	Violations models.ValidationWarnings `json:"violations" yaml:"violations"`
	Stats      check.Stats               `json:"stats" yaml:"stats"`
}

// PrintReport renders the violations found by the record checker and the run summary.
func (p *Printer) PrintReport(warnings models.ValidationWarnings, stats check.Stats) error {
	if warnings == nil {
		warnings = models.ValidationWarnings{}
	}
	if p.format != FormatText {
		return p.encode(report{Violations: warnings, Stats: stats})
	}

	if len(warnings) > 0 {
		table := p.newTable("Record", "Column", "Severity", "Message", "Value", "Hash")
		for _, w := range warnings {
			table.Append([]string{
				metaCell(w, models.MetaKeyRecordNumber),
				metaCell(w, models.MetaKeyColumnName),
				string(w.Severity),
				wrapString(message(w), maxWrapLength),
				wrapString(metaCell(w, models.MetaKeyValue), maxWrapLength),
				w.Hash,
			})
		}
		table.Render()
	}

	_, err := fmt.Fprintf(p.w,
		"records: %d, invalid records: %d, violations: %d, fatal: %d, resolved: %d\n",
		stats.Records, stats.InvalidRecords, stats.Violations, stats.FatalViolations, stats.ResolvedExcluded,
	)
	return err
}

// PrintRecord writes a single annotated record line.
func (p *Printer) PrintRecord(record []byte) error {
	if _, err := p.w.Write(record); err != nil {
		return err
	}
	_, err := p.w.Write([]byte{'\n'})
	return err
}

func message(w *models.ValidationWarning) string {
	if errText, ok := w.GetMeta(models.MetaKeyError); ok {
		return fmt.Sprintf("%s: %v", w.Msg, errText)
	}
	return w.Msg
}

func metaCell(w *models.ValidationWarning, key string) string {
	v, ok := w.GetMeta(key)
	if !ok {
		return emptyCell
	}
	if n, ok := v.(int); ok {
		return strconv.Itoa(n)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return s
}
