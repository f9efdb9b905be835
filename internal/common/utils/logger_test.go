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

package utils

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	logger, err := newLogger(buf, zerolog.LevelWarnValue, LogFormatJsonValue)
	require.NoError(t, err)
	logger.Info().Msg("skipped")
	logger.Warn().Str("column", "age").Msg("unsupported type")
	assert.NotContains(t, buf.String(), "skipped")
	assert.Contains(t, buf.String(), `"column":"age"`)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestNewLogger_Errors(t *testing.T) {
	_, err := newLogger(new(bytes.Buffer), "verbose", LogFormatTextValue)
	require.ErrorIs(t, err, errUnknownLogLevel)

	_, err = newLogger(new(bytes.Buffer), zerolog.LevelInfoValue, "xml")
	require.ErrorIs(t, err, errUnknownLogFormat)
}

func TestSetDefaultContextLogger(t *testing.T) {
	orig := zerolog.DefaultContextLogger
	defer func() {
		zerolog.DefaultContextLogger = orig
	}()
	require.NoError(t, SetDefaultContextLogger(zerolog.LevelDebugValue, LogFormatTextValue))
	require.NotNil(t, zerolog.DefaultContextLogger)
	assert.Equal(t, zerolog.DebugLevel, zerolog.DefaultContextLogger.GetLevel())
}
