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

package coltype

import "errors"

var (
	// ErrInvalidSize - declared length argument breaks a hard ceiling. Returned at recognition time.
	ErrInvalidSize = errors.New("ERR_INVALID_SIZE")
	// ErrIntegerPartTooBig - decimal candidate has more than 64 integer digits.
	ErrIntegerPartTooBig = errors.New("ERR_INTEGER_PART_TOO_BIG")
	// ErrFractionalPartTooBig - decimal candidate has more than 29 fractional digits.
	ErrFractionalPartTooBig = errors.New("ERR_FRACTIONAL_PART_TOO_BIG")

	ErrUnknownType       = errors.New("unknown column type")
	ErrNoValidator       = errors.New("validator is not registered for type")
	ErrTypeAlreadyExists = errors.New("type is already registered")
)

// IsFatal reports whether err marks the column declaration itself as invalid, so processing of the
// declaration must stop.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvalidSize) ||
		errors.Is(err, ErrIntegerPartTooBig) ||
		errors.Is(err, ErrFractionalPartTooBig)
}
