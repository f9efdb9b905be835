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

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Command - cobra command with declarative flags bound to a viper instance.
type Command struct {
	*cobra.Command
	parent *Command
	v      *viper.Viper
}

func MustCommand(v *viper.Viper, cobraCmd *cobra.Command, flags ...Flag) *Command {
	res, err := NewCommand(v, cobraCmd, flags...)
	if err != nil {
		panic(err)
	}
	return res
}

func NewCommand(v *viper.Viper, cobraCmd *cobra.Command, flags ...Flag) (*Command, error) {
	res := &Command{
		Command: cobraCmd,
		v:       v,
	}
	if err := res.registerFlags(flags...); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Command) flagSet(flag Flag) *pflag.FlagSet {
	if flag.Persistent {
		return c.PersistentFlags()
	}
	return c.Flags()
}

// ConfigKey returns the viper key a flag is bound to.
func (f *Flag) ConfigKey() string {
	if f.ConfigPath != "" {
		return f.ConfigPath
	}
	key := strings.ReplaceAll(f.Name, "-", "_")
	if f.ConfigPathPrefix != "" {
		key = fmt.Sprintf("%s.%s", f.ConfigPathPrefix, key)
	}
	return key
}

func (c *Command) bindToConfig(flag Flag) error {
	f := c.flagSet(flag).Lookup(flag.Name)
	if f == nil {
		return fmt.Errorf("lookup flag \"%s\": %w", flag.Name, errFlagIsNotRegistered)
	}
	if err := c.v.BindPFlag(flag.ConfigKey(), f); err != nil {
		return fmt.Errorf("bind flag \"%s\": %w", flag.ConfigKey(), err)
	}
	return nil
}

func (c *Command) registerFlag(flag Flag) error {
	fs := c.flagSet(flag)
	switch flag.Type {
	case FlagTypeString:
		vv, ok := flag.Default.(string)
		if !ok {
			return fmt.Errorf("flag %s is not a string: %w", flag.Name, errWrongTypeProvided)
		}
		fs.StringP(flag.Name, flag.Shorthand, vv, flag.Usage)
	case FlagTypeStringSlice:
		vv, ok := flag.Default.([]string)
		if !ok {
			return fmt.Errorf("flag %s is not a []string: %w", flag.Name, errWrongTypeProvided)
		}
		fs.StringSliceP(flag.Name, flag.Shorthand, vv, flag.Usage)
	case FlagTypeInt:
		vv, ok := flag.Default.(int)
		if !ok {
			return fmt.Errorf("flag %s is not an int: %w", flag.Name, errWrongTypeProvided)
		}
		fs.IntP(flag.Name, flag.Shorthand, vv, flag.Usage)
	case FlagTypeBool:
		vv, ok := flag.Default.(bool)
		if !ok {
			return fmt.Errorf("flag %s is not a bool: %w", flag.Name, errWrongTypeProvided)
		}
		fs.BoolP(flag.Name, flag.Shorthand, vv, flag.Usage)
	default:
		return fmt.Errorf("flag %s: %w", flag.Name, errUnknownFlagType)
	}
	return nil
}

func (c *Command) register(flag Flag) error {
	if err := flag.Validate(); err != nil {
		return fmt.Errorf("validate flag: %w", err)
	}
	if err := c.registerFlag(flag); err != nil {
		return fmt.Errorf("register flag: %w", err)
	}
	if flag.IsRequired {
		markRequired := c.MarkFlagRequired
		if flag.Persistent {
			markRequired = c.MarkPersistentFlagRequired
		}
		if err := markRequired(flag.Name); err != nil {
			return fmt.Errorf("mark flag as required: %w", err)
		}
	}
	if !flag.BindToConfig {
		return nil
	}
	if err := c.bindToConfig(flag); err != nil {
		return fmt.Errorf("bind flag: %w", err)
	}
	return nil
}

func (c *Command) registerFlags(flags ...Flag) error {
	for _, f := range flags {
		if err := c.register(f); err != nil {
			return fmt.Errorf("flag %s: %w", f.Name, err)
		}
	}
	return nil
}

func (c *Command) AddCommand(cmds ...*Command) *Command {
	for _, cmd := range cmds {
		c.Command.AddCommand(cmd.Command)
		cmd.parent = c
	}
	return c
}

func (c *Command) Parent() *Command {
	return c.parent
}
