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

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	defaultWorkers = 4
	// EnvPrefix - prefix of the environment variables, e.g. COLSPEC_LOG_LEVEL.
	EnvPrefix = "COLSPEC"
)

var (
	errUnknownOutputFormat = errors.New("unknown output format")
	errInvalidWorkers      = errors.New("workers must be greater than 0")
)

type Config struct {
	Log       Log       `mapstructure:"log" yaml:"log" json:"log"`
	Common    Common    `mapstructure:"common" yaml:"common" json:"common"`
	Recognize Recognize `mapstructure:"recognize" yaml:"recognize" json:"recognize"`
	Check     Check     `mapstructure:"check" yaml:"check" json:"check"`
}

type Log struct {
	Format string `mapstructure:"format" yaml:"format" json:"format,omitempty"`
	Level  string `mapstructure:"level" yaml:"level" json:"level,omitempty"`
}

type Common struct {
	// Pgzip - use parallel gzip decompression for .gz inputs
	Pgzip bool `mapstructure:"pgzip" yaml:"pgzip" json:"pgzip,omitempty"`
	// Format - output format [text|json|yaml]
	Format string `mapstructure:"format" yaml:"format" json:"format,omitempty"`
}

type Recognize struct {
	// Type - use a single recognizer instead of trying all of them
	Type string `mapstructure:"type" yaml:"type" json:"type,omitempty"`
	// File - file with one column declaration per line
	File string `mapstructure:"file" yaml:"file" json:"file,omitempty"`
}

type Check struct {
	Columns string `mapstructure:"columns" yaml:"columns" json:"columns,omitempty"`
	Records string `mapstructure:"records" yaml:"records" json:"records,omitempty"`
	Workers int    `mapstructure:"workers" yaml:"workers" json:"workers,omitempty"`
	// Annotate - print every record with the list of its violations instead of the violations report
	Annotate bool `mapstructure:"annotate" yaml:"annotate" json:"annotate,omitempty"`
	// ResolvedWarnings - hashes of warnings that are known and must not be reported
	ResolvedWarnings []string `mapstructure:"resolved_warnings" yaml:"resolved_warnings" json:"resolved_warnings,omitempty"`
}

func NewConfig() *Config {
	return &Config{
		Log: Log{
			Format: "text",
			Level:  zerolog.LevelInfoValue,
		},
		Common: Common{
			Format: OutputFormatText,
		},
		Check: Check{
			Workers: defaultWorkers,
		},
	}
}

func (c *Config) Validate() error {
	switch c.Common.Format {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
	default:
		return fmt.Errorf("format %q: %w", c.Common.Format, errUnknownOutputFormat)
	}
	if c.Check.Workers <= 0 {
		return fmt.Errorf("got %d: %w", c.Check.Workers, errInvalidWorkers)
	}
	return nil
}

// Load reads cfgFile (optional), the environment and the flags bound to v into a new Config.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	decoderCfg := func(cfg *mapstructure.DecoderConfig) {
		cfg.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			stringToSliceWithBracketHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}

	cfg := NewConfig()
	if err := v.Unmarshal(cfg, decoderCfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
