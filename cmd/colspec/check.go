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
	"github.com/greenmaskio/colspec/internal/common/models"
	"github.com/greenmaskio/colspec/internal/common/utils"
	"github.com/greenmaskio/colspec/internal/common/validationcollector"
	"github.com/greenmaskio/colspec/internal/config"
	"github.com/greenmaskio/colspec/internal/printer"
	"github.com/greenmaskio/colspec/pkg/coltype"
)

var errFatalViolations = errors.New("records contain values that cannot be stored")

var checkFlags = []cmd.Flag{
	{
		Name:             "columns",
		Usage:            "File with one column declaration per line, .gz files are decompressed",
		ConfigPathPrefix: "check",
		BindToConfig:     true,
		Default:          "",
	},
	{
		Name:             "records",
		Usage:            "File with one JSON record per line, - for stdin, .gz files are decompressed",
		ConfigPathPrefix: "check",
		BindToConfig:     true,
		Default:          utils.StdinName,
	},
	{
		Name:             "workers",
		Shorthand:        "j",
		Usage:            "Number of records validated in parallel",
		ConfigPathPrefix: "check",
		BindToConfig:     true,
		Type:             cmd.FlagTypeInt,
		Default:          4,
	},
	{
		Name:             "annotate",
		Usage:            "Print every record with the list of its violations instead of the report",
		ConfigPathPrefix: "check",
		BindToConfig:     true,
		Type:             cmd.FlagTypeBool,
		Default:          false,
	},
	{
		Name:             "resolved-warnings",
		Usage:            "Hashes of known warnings that must not be reported",
		ConfigPathPrefix: "check",
		BindToConfig:     true,
		Type:             cmd.FlagTypeStringSlice,
		Default:          []string{},
	},
}

var errColumnsAreRequired = errors.New("--columns is required")

func newCheckCmd(a *app) *cmd.Command {
	return cmd.MustCommand(a.v, &cobra.Command{
		Use:     "check",
		Short:   "Validate JSON records against a set of column declarations",
		Example: "  colspec check --columns columns.sql --records records.jsonl.gz --workers 8",
		Args:    cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			p, err := a.printer()
			if err != nil {
				return err
			}
			return runCheck(c.Context(), a.cfg, p)
		},
	}, checkFlags...)
}

func runCheck(ctx context.Context, cfg *config.Config, p *printer.Printer) error {
	if cfg.Check.Columns == "" {
		return errColumnsAreRequired
	}
	columnsFile, err := utils.OpenInput(cfg.Check.Columns, cfg.Common.Pgzip)
	if err != nil {
		return err
	}
	defer columnsFile.Close()
	columns, err := check.LoadColumns(ctx, columnsFile, coltype.DefaultRegistry)
	if err != nil {
		return fmt.Errorf("load columns from %s: %w", cfg.Check.Columns, err)
	}

	checker, err := check.NewChecker(columns, cfg.Check.Workers, cfg.Check.ResolvedWarnings)
	if err != nil {
		return err
	}

	input, err := utils.OpenInput(cfg.Check.Records, cfg.Common.Pgzip)
	if err != nil {
		return err
	}
	records := utils.NewCountReadCloser(input)
	defer records.Close()

	vc := validationcollector.NewCollector()
	ctx = validationcollector.WithCollector(ctx, vc)

	// Warnings are taken from the emitted results to keep the input order.
	var warnings models.ValidationWarnings
	stats, err := checker.Run(ctx, records, func(res check.RecordResult) error {
		if !cfg.Check.Annotate {
			warnings = append(warnings, res.Violations...)
			return nil
		}
		annotated, err := check.Annotate(res)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Int("RecordNumber", res.Num).Msg("record cannot be annotated")
			return p.PrintRecord(res.Record)
		}
		return p.PrintRecord(annotated)
	})
	if err != nil {
		return fmt.Errorf("check records: %w", err)
	}

	log.Ctx(ctx).Info().
		Int("Columns", len(columns)).
		Int("Records", stats.Records).
		Int("InvalidRecords", stats.InvalidRecords).
		Int("Violations", stats.Violations).
		Int64("BytesRead", records.GetCount()).
		Msg("records checked")

	if !cfg.Check.Annotate {
		if err := p.PrintReport(warnings, stats); err != nil {
			return err
		}
	}
	if vc.IsFatal() {
		return errFatalViolations
	}
	return nil
}
