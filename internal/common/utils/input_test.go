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
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readCloserMock struct {
	*bytes.Buffer
	closeCallCount int
}

func (r *readCloserMock) Close() error {
	r.closeCallCount++
	return nil
}

func gzipData(t *testing.T, data string) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	gz := gzip.NewWriter(buf)
	_, err := gz.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return buf
}

func TestNewGzipReader(t *testing.T) {
	data := "`id` INT NOT NULL\n`age` TINYINT UNSIGNED\n"
	for _, usePgzip := range []bool{false, true} {
		src := &readCloserMock{Buffer: gzipData(t, data)}
		r, err := NewGzipReader(src, usePgzip)
		require.NoError(t, err)
		res, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, data, string(res))
		require.NoError(t, r.Close())
		assert.Equal(t, 1, src.closeCallCount)
	}
}

func TestNewGzipReader_NotGzip(t *testing.T) {
	src := &readCloserMock{Buffer: bytes.NewBufferString("plain text")}
	_, err := NewGzipReader(src, false)
	require.Error(t, err)
	assert.Equal(t, 1, src.closeCallCount)
}

func TestOpenInput(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "columns.sql")
	require.NoError(t, os.WriteFile(plain, []byte("`id` INT\n"), 0644))
	compressed := filepath.Join(dir, "columns.sql.gz")
	require.NoError(t, os.WriteFile(compressed, gzipData(t, "`id` INT\n").Bytes(), 0644))

	for _, name := range []string{plain, compressed} {
		r, err := OpenInput(name, true)
		require.NoError(t, err)
		res, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "`id` INT\n", string(res))
		require.NoError(t, r.Close())
	}

	_, err := OpenInput("", false)
	require.ErrorIs(t, err, errEmptyFileName)
	_, err = OpenInput(filepath.Join(dir, "missing.sql"), false)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadLines(t *testing.T) {
	input := "-- columns\n`id` INT NOT NULL,\n\n# comment\n  `age` TINYINT\n"
	var lines []string
	var nums []int
	err := ReadLines(context.Background(), strings.NewReader(input), func(lineNum int, line string) error {
		nums = append(nums, lineNum)
		lines = append(lines, line)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, nums)
	assert.Equal(t, []string{"`id` INT NOT NULL,", "  `age` TINYINT"}, lines)
}

func TestReadLines_Error(t *testing.T) {
	expected := errors.New("boom")
	err := ReadLines(context.Background(), strings.NewReader("a\nb\n"), func(lineNum int, line string) error {
		if lineNum == 2 {
			return expected
		}
		return nil
	})
	require.ErrorIs(t, err, expected)
	assert.Contains(t, err.Error(), "line 2")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = ReadLines(ctx, strings.NewReader("a\n"), func(int, string) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

func TestCountReadCloser(t *testing.T) {
	src := &readCloserMock{Buffer: bytes.NewBufferString("{\"id\": 1}\n")}
	r := NewCountReadCloser(src)
	res, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, int64(len(res)), r.GetCount())
	require.NoError(t, r.Close())
	assert.Equal(t, 1, src.closeCallCount)
}
