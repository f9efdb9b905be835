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
	"github.com/spf13/cobra"

	"github.com/greenmaskio/colspec/internal/common/cmd"
	"github.com/greenmaskio/colspec/pkg/coltype"
)

func newTypesCmd(a *app) *cmd.Command {
	return cmd.MustCommand(a.v, &cobra.Command{
		Use:   "types",
		Short: "List supported column types with their aliases and bounds",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			p, err := a.printer()
			if err != nil {
				return err
			}
			return p.PrintTypes(coltype.DefaultRegistry.Types())
		},
	})
}
