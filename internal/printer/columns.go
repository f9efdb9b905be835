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
	"strings"

	"github.com/greenmaskio/colspec/internal/check"
	"github.com/greenmaskio/colspec/pkg/coltype"
)

// PrintColumns renders recognized column declarations.
func (p *Printer) PrintColumns(columns []check.Column) error {
	if p.format != FormatText {
		if columns == nil {
			columns = []check.Column{}
		}
		return p.encode(columns)
	}
	table := p.newTable("Line", "Name", "Type", "Category", "Args", "Nullable", "Unsigned", "Bound")
	for _, c := range columns {
		d := c.Descriptor
		table.Append([]string{
			strconv.Itoa(c.Line),
			wrapString(d.Name, maxWrapLength),
			string(d.Type),
			string(d.Category),
			formatArgs(d),
			strconv.FormatBool(d.Nullable),
			strconv.FormatBool(d.Unsigned),
			formatBound(d.Bound),
		})
	}
	table.Render()
	return nil
}

// formatArgs renders the parenthesized declaration arguments, e.g. (10,2).
func formatArgs(d coltype.Descriptor) string {
	var args []string
	switch {
	case d.Length != nil:
		args = append(args, strconv.Itoa(*d.Length))
	case d.Precision != nil:
		args = append(args, strconv.Itoa(*d.Precision))
		if d.Scale != nil {
			args = append(args, strconv.Itoa(*d.Scale))
		}
	}
	if len(args) == 0 {
		return emptyCell
	}
	return fmt.Sprintf("(%s)", strings.Join(args, ","))
}

func formatBound(b *coltype.Bound) string {
	if b == nil {
		return emptyCell
	}
	return b.String()
}
