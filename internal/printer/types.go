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
	"strings"

	"github.com/greenmaskio/colspec/pkg/coltype"
)

type typeInfo struct {
	Type          coltype.Type     `json:"type" yaml:"type"`
	Category      coltype.Category `json:"category" yaml:"category"`
	Aliases       []string         `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Syntax        string           `json:"syntax" yaml:"syntax"`
	SignedBound   *coltype.Bound   `json:"signed_bound,omitempty" yaml:"signed_bound,omitempty"`
	UnsignedBound *coltype.Bound   `json:"unsigned_bound,omitempty" yaml:"unsigned_bound,omitempty"`
}

func newTypeInfo(r *coltype.Recognizer) typeInfo {
	info := typeInfo{
		Type:     r.Type,
		Category: r.Category,
		Aliases:  r.Aliases,
		Syntax:   r.Syntax,
	}
	if b, ok := coltype.LookupBound(r.Type, false); ok {
		info.SignedBound = &b
	}
	if b, ok := coltype.LookupBound(r.Type, true); ok {
		info.UnsignedBound = &b
	}
	return info
}

// PrintTypes renders the supported types in the registration order.
func (p *Printer) PrintTypes(recognizers []*coltype.Recognizer) error {
	infos := make([]typeInfo, 0, len(recognizers))
	for _, r := range recognizers {
		infos = append(infos, newTypeInfo(r))
	}
	if p.format != FormatText {
		return p.encode(infos)
	}

	table := p.newTable("Type", "Aliases", "Category", "Syntax", "Signed", "Unsigned")
	for _, info := range infos {
		aliases := emptyCell
		if len(info.Aliases) > 0 {
			aliases = strings.Join(info.Aliases, "\n")
		}
		table.Append([]string{
			string(info.Type),
			aliases,
			string(info.Category),
			wrapString(info.Syntax, maxWrapLength),
			formatBound(info.SignedBound),
			formatBound(info.UnsignedBound),
		})
	}
	table.Render()
	return nil
}
