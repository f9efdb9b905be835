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
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/colspec/internal/common/utils"
	"github.com/greenmaskio/colspec/pkg/coltype"
)

var errNoColumns = errors.New("no supported column declarations found")

// Column - recognized column declaration with its origin.
type Column struct {
	Line       int                `json:"line" yaml:"line"`
	Fragment   string             `json:"fragment" yaml:"fragment"`
	Descriptor coltype.Descriptor `json:"descriptor" yaml:"descriptor"`
}

// LoadColumns recognizes every declaration line of r. Lines of unsupported types are skipped with a
// warning. A structurally invalid declaration aborts the loading.
func LoadColumns(ctx context.Context, r io.Reader, registry *coltype.Registry) ([]Column, error) {
	var columns []Column
	err := utils.ReadLines(ctx, r, func(lineNum int, line string) error {
		fragment := strings.TrimSpace(line)
		d, ok, err := registry.Detect(fragment)
		if err != nil {
			return fmt.Errorf("recognize %q: %w", fragment, err)
		}
		if !ok {
			log.Ctx(ctx).Warn().
				Int("Line", lineNum).
				Str("Fragment", fragment).
				Msg("unsupported column declaration: skipping")
			return nil
		}
		log.Ctx(ctx).Debug().
			Int("Line", lineNum).
			Str("ColumnName", d.Name).
			Str("ColumnType", string(d.Type)).
			Msg("column recognized")
		columns = append(columns, Column{Line: lineNum, Fragment: fragment, Descriptor: d})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, errNoColumns
	}
	return columns, nil
}
