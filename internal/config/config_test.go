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
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, OutputFormatText, cfg.Common.Format)
	assert.Equal(t, defaultWorkers, cfg.Check.Workers)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
log:
  level: debug
  format: json
common:
  format: yaml
  pgzip: true
recognize:
  type: DECIMAL
check:
  columns: columns.sql
  records: records.jsonl.gz
  workers: 8
  annotate: true
  resolved_warnings:
    - 5f2b
    - 9ac1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, OutputFormatYAML, cfg.Common.Format)
	assert.True(t, cfg.Common.Pgzip)
	assert.Equal(t, "DECIMAL", cfg.Recognize.Type)
	assert.Equal(t, "columns.sql", cfg.Check.Columns)
	assert.Equal(t, "records.jsonl.gz", cfg.Check.Records)
	assert.Equal(t, 8, cfg.Check.Workers)
	assert.True(t, cfg.Check.Annotate)
	assert.Equal(t, []string{"5f2b", "9ac1"}, cfg.Check.ResolvedWarnings)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("COLSPEC_CHECK_WORKERS", "2")
	v := viper.New()
	// AutomaticEnv resolves only keys viper knows about.
	v.SetDefault("check.workers", defaultWorkers)
	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Check.Workers)
}

func TestLoad_SliceFromString(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "comma separated", raw: "5f2b,9ac1", expected: []string{"5f2b", "9ac1"}},
		{name: "json array", raw: `["5f2b", "9ac1"]`, expected: []string{"5f2b", "9ac1"}},
		{name: "empty json array", raw: "[]", expected: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set("check.resolved_warnings", tt.raw)
			cfg, err := Load(v, "")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Check.ResolvedWarnings)
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("common.format", "xml")
	_, err := Load(v, "")
	require.ErrorIs(t, err, errUnknownOutputFormat)

	v = viper.New()
	v.Set("check.workers", 0)
	_, err = Load(v, "")
	require.ErrorIs(t, err, errInvalidWorkers)

	_, err = Load(viper.New(), filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
