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

// MaxBitLength - the biggest length BIT(m) may declare.
const MaxBitLength = 64

const (
	// In MySQL integers may carry a display width, e.g. INT(11). It is captured and kept as precision, but it
	// does not affect the value domain.
	displayWidthArg = `(?:\((\d+)\))?`
	precisionArgs   = `(?:\(\s*(\d+)\s*(?:,\s*(\d+)\s*)?\))?`
	fspArg          = `\(([1-6])\)`
)

var (
	BitRecognizer = NewRecognizer(
		TypeBit, CategoryBinary, "BIT(m)",
		`\bBIT\((\d{1,2})\)`,
		withBitLength,
	)

	TinyIntRecognizer = NewRecognizer(
		TypeTinyInt, CategoryInteger, "TINYINT[(w)] [UNSIGNED]",
		`\bTINYINT\b`+displayWidthArg,
		withPrecision,
	)

	SmallIntRecognizer = NewRecognizer(
		TypeSmallInt, CategoryInteger, "SMALLINT[(w)] [UNSIGNED]",
		`\bSMALLINT\b`+displayWidthArg,
		withPrecision,
	)

	MediumIntRecognizer = NewRecognizer(
		TypeMediumInt, CategoryInteger, "MEDIUMINT[(w)] [UNSIGNED]",
		`\bMEDIUMINT\b`+displayWidthArg,
		withPrecision,
	)

	IntRecognizer = NewRecognizer(
		TypeInt, CategoryInteger, "INT[(w)] [UNSIGNED]",
		`\b(?:INTEGER|INT)\b`+displayWidthArg,
		withPrecision,
		"INTEGER",
	)

	BigIntRecognizer = NewRecognizer(
		TypeBigInt, CategoryInteger, "BIGINT[(w)] [UNSIGNED]",
		`\bBIGINT\b`+displayWidthArg,
		withPrecision,
	)

	BooleanRecognizer = NewRecognizer(
		TypeBoolean, CategoryBoolean, "BOOLEAN",
		`\b(?:BOOLEAN|BOOL)\b`,
		nil,
		"BOOL",
	)

	DecimalRecognizer = NewRecognizer(
		TypeDecimal, CategoryDecimal, "DECIMAL[(p[,s])] [UNSIGNED]",
		`\b(?:DECIMAL|DEC|NUMERIC|FIXED)\b`+precisionArgs,
		withPrecisionAndScale,
		"DEC", "NUMERIC", "FIXED",
	)

	FloatRecognizer = NewRecognizer(
		TypeFloat, CategoryFloat, "FLOAT[(p[,s])] [UNSIGNED]",
		`\bFLOAT\b`+precisionArgs,
		withPrecisionAndScale,
	)

	DoubleRecognizer = NewRecognizer(
		TypeDouble, CategoryFloat, "DOUBLE[(p[,s])] [UNSIGNED]",
		`\b(?:DOUBLE[ _]PRECISION|DOUBLE|REAL)\b`+precisionArgs,
		withPrecisionAndScale,
		"DOUBLE PRECISION", "DOUBLE_PRECISION", "REAL",
	)

	DateRecognizer = NewRecognizer(
		TypeDate, CategoryDate, "DATE",
		`\bDATE\b`,
		nil,
	)

	DateTimeRecognizer = NewRecognizer(
		TypeDateTime, CategoryDate, "DATETIME(fsp)",
		`\bDATETIME`+fspArg,
		withPrecision,
	)

	TimestampRecognizer = NewRecognizer(
		TypeTimestamp, CategoryDate, "TIMESTAMP(fsp)",
		`\bTIMESTAMP`+fspArg,
		withPrecision,
	)

	TimeRecognizer = NewRecognizer(
		TypeTime, CategoryDate, "TIME(fsp)",
		`\bTIME`+fspArg,
		withPrecision,
	)

	YearRecognizer = NewRecognizer(
		TypeYear, CategoryYear, "YEAR(2|4)",
		`\bYEAR\(([24])\)`,
		withPrecision,
	)
)
