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

// Type - canonical MySQL type keyword a descriptor was recognized from.
type Type string

const (
	// Binary types
	TypeBit Type = "BIT"

	// Integer types
	TypeTinyInt   Type = "TINYINT"
	TypeSmallInt  Type = "SMALLINT"
	TypeMediumInt Type = "MEDIUMINT"
	TypeInt       Type = "INT"
	TypeBigInt    Type = "BIGINT"

	TypeBoolean Type = "BOOLEAN"

	// Fixed-point and floating-point types
	TypeDecimal Type = "DECIMAL"
	TypeFloat   Type = "FLOAT"
	TypeDouble  Type = "DOUBLE"

	// Date and time types
	TypeDate      Type = "DATE"
	TypeDateTime  Type = "DATETIME"
	TypeTimestamp Type = "TIMESTAMP"
	TypeTime      Type = "TIME"
	TypeYear      Type = "YEAR"
)

// Category - coarse semantic family of a column type.
type Category string

const (
	CategoryBinary  Category = "binary"
	CategoryInteger Category = "integer"
	CategoryBoolean Category = "boolean"
	CategoryDecimal Category = "decimal"
	CategoryFloat   Category = "float"
	CategoryDate    Category = "date"
	CategoryYear    Category = "year"
)

func (c Category) IsNumeric() bool {
	switch c {
	case CategoryInteger, CategoryDecimal, CategoryFloat:
		return true
	}
	return false
}
