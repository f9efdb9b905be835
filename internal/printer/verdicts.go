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
	"strconv"
)

// Verdict - outcome of a single value validation.
type Verdict struct {
	Value string `json:"value" yaml:"value"`
	Valid bool   `json:"valid" yaml:"valid"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func (p *Printer) PrintVerdicts(column string, verdicts []Verdict) error {
	if p.format != FormatText {
		return p.encode(struct {
			Column   string    `json:"column" yaml:"column"`
			Verdicts []Verdict `json:"verdicts" yaml:"verdicts"`
		}{Column: column, Verdicts: verdicts})
	}
	table := p.newTable("Column", "Value", "Valid", "Error")
	table.SetAutoMergeCellsByColumnIndex([]int{0})
	for _, v := range verdicts {
		errText := emptyCell
		if v.Error != "" {
			errText = v.Error
		}
		table.Append([]string{
			column,
			wrapString(v.Value, maxWrapLength),
			strconv.FormatBool(v.Valid),
			errText,
		})
	}
	table.Render()
	return nil
}
