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

package models

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"slices"
)

type ValidationSeverity string

const (
	ValidationSeverityError   ValidationSeverity = "error"
	ValidationSeverityWarning ValidationSeverity = "warning"
	ValidationSeverityInfo    ValidationSeverity = "info"
)

const (
	MetaKeyColumnName     = "ColumnName"
	MetaKeyColumnType     = "ColumnType"
	MetaKeyColumnCategory = "ColumnCategory"
	MetaKeyFragment       = "Fragment"
	MetaKeyRecordNumber   = "RecordNumber"
	MetaKeyValue          = "Value"
	MetaKeyError          = "Error"
	MetaKeySource         = "Source"
)

type ValidationWarnings []*ValidationWarning

func (re ValidationWarnings) IsFatal() bool {
	return slices.ContainsFunc(re, func(warning *ValidationWarning) bool {
		return warning.Severity == ValidationSeverityError
	})
}

// ValidationWarning - a single finding of the record checker. Warning severity means the value is outside the
// column domain, error severity means the column declaration cannot accept the value at all.
type ValidationWarning struct {
	Msg      string             `json:"msg,omitempty" yaml:"msg,omitempty"`
	Severity ValidationSeverity `json:"severity,omitempty" yaml:"severity,omitempty"`
	Meta     map[string]any     `json:"meta,omitempty" yaml:"meta,omitempty"`
	Hash     string             `json:"hash" yaml:"hash"`
}

func NewValidationWarning() *ValidationWarning {
	return &ValidationWarning{
		Severity: ValidationSeverityWarning,
		Meta:     make(map[string]interface{}),
	}
}

func (re *ValidationWarning) IsFatal() bool {
	return re.Severity == ValidationSeverityError
}

func (re *ValidationWarning) SetMsg(msg string) *ValidationWarning {
	re.Msg = msg
	return re
}

func (re *ValidationWarning) SetMsgf(msg string, args ...any) *ValidationWarning {
	re.Msg = fmt.Sprintf(msg, args...)
	return re
}

func (re *ValidationWarning) SetSeverity(severity ValidationSeverity) *ValidationWarning {
	re.Severity = severity
	return re
}

// SetError stores the error text. The error value itself is not kept so the warning stays serializable.
func (re *ValidationWarning) SetError(v error) *ValidationWarning {
	re.Meta[MetaKeyError] = v.Error()
	return re
}

func (re *ValidationWarning) AddMeta(key string, value any) *ValidationWarning {
	re.Meta[key] = value
	return re
}

func (re *ValidationWarning) GetMeta(key string) (any, bool) {
	v, ok := re.Meta[key]
	return v, ok
}

// MakeHash calculates a stable identity of the warning from its message, severity and meta. Two findings
// of the same value in the same column produce the same hash.
func (re *ValidationWarning) MakeHash() {
	var meta string
	keys := make([]string, 0, len(re.Meta))

	for key := range re.Meta {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		meta = fmt.Sprintf("%s %s=%v", meta, key, re.Meta[key])
	}

	signature := fmt.Sprintf("msg=%s severity=%s %s", re.Msg, re.Severity, meta)

	hash := md5.Sum([]byte(signature))
	re.Hash = hex.EncodeToString(hash[:])
}
