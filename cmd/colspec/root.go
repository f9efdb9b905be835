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
	"io"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/greenmaskio/colspec/internal/common/cmd"
	"github.com/greenmaskio/colspec/internal/common/utils"
	"github.com/greenmaskio/colspec/internal/config"
	"github.com/greenmaskio/colspec/internal/printer"
)

var Version string

var errConfigIsNotLoaded = errors.New("config is not loaded")

var rootFlags = []cmd.Flag{
	{
		Name:         "log-format",
		Usage:        "Logging format [text|json]",
		ConfigPath:   "log.format",
		BindToConfig: true,
		Default:      utils.LogFormatTextValue,
		Persistent:   true,
	},
	{
		Name: "log-level",
		Usage: fmt.Sprintf(
			"logging level [%s|%s|%s|%s]",
			zerolog.LevelDebugValue,
			zerolog.LevelInfoValue,
			zerolog.LevelWarnValue,
			zerolog.LevelErrorValue,
		),
		ConfigPath:   "log.level",
		BindToConfig: true,
		Default:      zerolog.LevelInfoValue,
		Persistent:   true,
	},
	{
		Name:             "format",
		Shorthand:        "f",
		Usage:            "Format of the output. Possible values [text|json|yaml]",
		ConfigPathPrefix: "common",
		BindToConfig:     true,
		Default:          config.OutputFormatText,
		Persistent:       true,
	},
	{
		Name:             "pgzip",
		Usage:            "Use parallel gzip decompression for .gz inputs",
		ConfigPathPrefix: "common",
		BindToConfig:     true,
		Type:             cmd.FlagTypeBool,
		Default:          false,
		Persistent:       true,
	},
}

// app - state shared by the commands of a single execution.
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	cfgFile string
	out     io.Writer
}

func newRootCmd(out io.Writer) *cmd.Command {
	a := &app{v: viper.New(), out: out}
	root := cmd.MustCommand(
		a.v,
		&cobra.Command{
			Use:               "colspec",
			Short:             "MySQL column declaration recognizer and value validator",
			Version:           getVersion(Version),
			SilenceUsage:      true,
			PersistentPreRunE: a.init,
		},
		rootFlags...,
	)
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Path to the config file")
	root.AddCommand(
		newRecognizeCmd(a),
		newValidateCmd(a),
		newCheckCmd(a),
		newTypesCmd(a),
	)
	return root
}

// init loads the config and puts the logger into the command context.
func (a *app) init(c *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	if err := utils.SetDefaultContextLogger(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	a.cfg = cfg
	c.SetContext(zerolog.DefaultContextLogger.WithContext(c.Context()))
	return nil
}

func (a *app) printer() (*printer.Printer, error) {
	if a.cfg == nil {
		return nil, errConfigIsNotLoaded
	}
	return printer.New(a.out, a.cfg.Common.Format)
}

func getVersion(version string) string {
	var (
		commitDate string
		commit     string
	)
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				commit = setting.Value
			}
			if setting.Key == "vcs.time" {
				commitDate = setting.Value
			}
		}
	}
	if version != "" {
		return fmt.Sprintf("%s %s %s", version, commit, commitDate)
	}
	return fmt.Sprintf("%s %s", commit, commitDate)
}
