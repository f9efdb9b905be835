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

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/greenmaskio/colspec/internal/check"
	"github.com/greenmaskio/colspec/internal/common/cmd"
	"github.com/greenmaskio/colspec/internal/common/utils"
	"github.com/greenmaskio/colspec/pkg/coltype"
)

var errNoFragments = errors.New("no column declarations provided: pass them as arguments or use --file")

var recognizeFlags = []cmd.Flag{
	{
		Name:             "type",
		Shorthand:        "t",
		Usage:            "Use a single type recognizer, e.g. INT or DECIMAL",
		ConfigPathPrefix: "recognize",
		BindToConfig:     true,
		Default:          "",
	},
	{
		Name:             "file",
		Usage:            "File with one column declaration per line, - for stdin, .gz files are decompressed",
		ConfigPathPrefix: "recognize",
		BindToConfig:     true,
		Default:          "",
	},
}

type fragment struct {
	line int
	text string
}

func newRecognizeCmd(a *app) *cmd.Command {
	return cmd.MustCommand(a.v, &cobra.Command{
		Use:   "recognize [declaration...]",
		Short: "Recognize column declarations and print their descriptors",
		Example: "  colspec recognize '`age` TINYINT UNSIGNED NOT NULL'\n" +
			"  colspec recognize --type DECIMAL --file columns.sql -f json",
		RunE: func(c *cobra.Command, args []string) error {
			fragments, err := a.readFragments(c.Context(), args)
			if err != nil {
				return err
			}
			columns, err := recognizeFragments(c.Context(), a.cfg.Recognize.Type, fragments)
			if err != nil {
				return err
			}
			p, err := a.printer()
			if err != nil {
				return err
			}
			return p.PrintColumns(columns)
		},
	}, recognizeFlags...)
}

func (a *app) readFragments(ctx context.Context, args []string) ([]fragment, error) {
	fragments := make([]fragment, 0, len(args))
	for i, arg := range args {
		fragments = append(fragments, fragment{line: i + 1, text: arg})
	}
	if a.cfg.Recognize.File == "" {
		if len(fragments) == 0 {
			return nil, errNoFragments
		}
		return fragments, nil
	}

	f, err := utils.OpenInput(a.cfg.Recognize.File, a.cfg.Common.Pgzip)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	offset := len(fragments)
	err = utils.ReadLines(ctx, f, func(lineNum int, line string) error {
		fragments = append(fragments, fragment{line: offset + lineNum, text: line})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", a.cfg.Recognize.File, err)
	}
	return fragments, nil
}

// recognizeFragments detects the type of every fragment or, when typeName is set, applies that recognizer
// only. Unsupported fragments are skipped, a structurally invalid one aborts the command.
func recognizeFragments(ctx context.Context, typeName string, fragments []fragment) ([]check.Column, error) {
	recognize := coltype.DefaultRegistry.Detect
	if typeName != "" {
		r, ok := coltype.DefaultRegistry.Get(typeName)
		if !ok {
			return nil, fmt.Errorf("type %q: %w", typeName, coltype.ErrUnknownType)
		}
		recognize = r.Recognize
	}

	columns := make([]check.Column, 0, len(fragments))
	for _, f := range fragments {
		d, ok, err := recognize(f.text)
		if err != nil {
			return nil, fmt.Errorf("declaration %d %q: %w", f.line, f.text, err)
		}
		if !ok {
			log.Ctx(ctx).Warn().
				Int("Line", f.line).
				Str("Fragment", f.text).
				Msg("unsupported column declaration: skipping")
			continue
		}
		columns = append(columns, check.Column{Line: f.line, Fragment: f.text, Descriptor: d})
	}
	return columns, nil
}
