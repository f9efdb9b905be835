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
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/greenmaskio/colspec/internal/common/cmd"
	"github.com/greenmaskio/colspec/internal/printer"
	"github.com/greenmaskio/colspec/pkg/coltype"
)

var (
	errUnsupportedDeclaration = errors.New("unsupported column declaration")
	errFatalVerdict           = errors.New("value cannot be stored in the column")
)

func newValidateCmd(a *app) *cmd.Command {
	return cmd.MustCommand(a.v, &cobra.Command{
		Use:     "validate <declaration> <value...>",
		Short:   "Validate values against a column declaration",
		Example: "  colspec validate '`price` DECIMAL(10,2) NOT NULL' 12.34 12",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			d, ok, err := coltype.Detect(args[0])
			if err != nil {
				return fmt.Errorf("recognize %q: %w", args[0], err)
			}
			if !ok {
				return fmt.Errorf("%q: %w", args[0], errUnsupportedDeclaration)
			}

			verdicts, fatal := validateValues(d, args[1:])
			p, err := a.printer()
			if err != nil {
				return err
			}
			if err := p.PrintVerdicts(d.Name, verdicts); err != nil {
				return err
			}
			if fatal {
				return errFatalVerdict
			}
			log.Ctx(c.Context()).Debug().
				Str("ColumnName", d.Name).
				Int("Values", len(verdicts)).
				Msg("values validated")
			return nil
		},
	})
}

// validateValues returns the verdict of every value and whether any of them failed with an error.
func validateValues(d coltype.Descriptor, values []string) ([]printer.Verdict, bool) {
	var fatal bool
	verdicts := make([]printer.Verdict, 0, len(values))
	for _, value := range values {
		ok, err := d.Validate(value)
		v := printer.Verdict{Value: value, Valid: ok}
		if err != nil {
			v.Error = err.Error()
			fatal = fatal || coltype.IsFatal(err)
		}
		verdicts = append(verdicts, v)
	}
	return verdicts, fatal
}
