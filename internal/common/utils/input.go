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
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
	"github.com/rs/zerolog/log"
)

const (
	// StdinName - file name that stands for the standard input.
	StdinName = "-"
	gzipExt   = ".gz"
	// maxLineSize - the longest line accepted by ReadLines.
	maxLineSize = 16 * 1024 * 1024
)

var errEmptyFileName = errors.New("file name is empty")

// GetGzipReadCloser wraps r with a gzip decompressor. pgzip decompresses in parallel and pays off on big
// record files.
func GetGzipReadCloser(r io.Reader, usePgzip bool) (gz io.ReadCloser, err error) {
	if usePgzip {
		gz, err = pgzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("cannot create pgzip reader: %w", err)
		}
	} else {
		gz, err = gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("cannot create gzip reader: %w", err)
		}
	}
	return gz, nil
}

// GzipReader closes both the decompressor and the underlying file.
type GzipReader struct {
	gz io.ReadCloser
	r  io.ReadCloser
}

func NewGzipReader(r io.ReadCloser, usePgzip bool) (*GzipReader, error) {
	gz, err := GetGzipReadCloser(r, usePgzip)
	if err != nil {
		if err := r.Close(); err != nil {
			log.Warn().
				Err(err).
				Msg("error closing input file")
		}
		return nil, err
	}
	return &GzipReader{
		gz: gz,
		r:  r,
	}, nil
}

func (r *GzipReader) Read(p []byte) (n int, err error) {
	return r.gz.Read(p)
}

func (r *GzipReader) Close() error {
	var lastErr error
	if err := r.gz.Close(); err != nil {
		lastErr = fmt.Errorf("error closing gzip reader: %w", err)
	}
	if err := r.r.Close(); err != nil {
		lastErr = fmt.Errorf("error closing input file: %w", err)
	}
	return lastErr
}

// OpenInput opens a named file, "-" means stdin. Files with the .gz extension are decompressed on the fly.
func OpenInput(name string, usePgzip bool) (io.ReadCloser, error) {
	if name == "" {
		return nil, errEmptyFileName
	}
	if name == StdinName {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	if !strings.HasSuffix(name, gzipExt) {
		return f, nil
	}
	return NewGzipReader(f, usePgzip)
}

// ReadLines calls fn for every line of r that is not blank and does not start with "--" or "#". Line
// numbers start from 1.
func ReadLines(ctx context.Context, r io.Reader, fn func(lineNum int, line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var lineNum int
	for scanner.Scan() {
		lineNum++
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if err := fn(lineNum, line); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}
	return nil
}

// CountReadCloser counts the bytes read through it.
type CountReadCloser struct {
	r     io.ReadCloser
	count int64
}

func NewCountReadCloser(r io.ReadCloser) *CountReadCloser {
	return &CountReadCloser{r: r}
}

func (r *CountReadCloser) Read(p []byte) (n int, err error) {
	n, err = r.r.Read(p)
	r.count += int64(n)
	return n, err
}

func (r *CountReadCloser) Close() error {
	return r.r.Close()
}

func (r *CountReadCloser) GetCount() int64 {
	return r.count
}
