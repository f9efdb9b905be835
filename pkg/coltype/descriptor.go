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

import "fmt"

// Descriptor - result of a successful recognition of a column declaration fragment.
type Descriptor struct {
	// Name - column identifier without quote characters
	Name string `json:"name" yaml:"name"`
	// Type - canonical type keyword. Aliases are resolved, so DEC and NUMERIC become DECIMAL
	Type     Type     `json:"type" yaml:"type"`
	Category Category `json:"category" yaml:"category"`
	// Length - amount of bits. BIT only
	Length *int `json:"length,omitempty" yaml:"length,omitempty"`
	// Bound - numeric limits. Integer, decimal and float categories only
	Bound    *Bound `json:"bound,omitempty" yaml:"bound,omitempty"`
	Nullable bool   `json:"nullable" yaml:"nullable"`
	Unsigned bool   `json:"unsigned,omitempty" yaml:"unsigned,omitempty"`
	// Precision - first parenthesized argument: precision, fractional seconds precision, display width or
	// year digits depending on the type. It is informational and never used by the validators
	Precision *int `json:"precision,omitempty" yaml:"precision,omitempty"`
	// Scale - second argument of DECIMAL, FLOAT and DOUBLE
	Scale *int `json:"scale,omitempty" yaml:"scale,omitempty"`
}

// Validate judges whether value belongs to the domain of the declared type. A false result is an ordinary
// validation failure. An error is returned only when the value is well-formed but breaks a hard digit
// ceiling, see IsFatal.
func (d Descriptor) Validate(value any) (bool, error) {
	fn, ok := validators[d.Type]
	if !ok {
		return false, fmt.Errorf("type %s: %w", d.Type, ErrNoValidator)
	}
	return fn(d, value)
}

func (d Descriptor) String() string {
	res := fmt.Sprintf("%s %s(%s)", d.Name, d.Type, d.Category)
	if d.Length != nil {
		res = fmt.Sprintf("%s length=%d", res, *d.Length)
	}
	if d.Bound != nil {
		res = fmt.Sprintf("%s bound=%s", res, d.Bound)
	}
	return fmt.Sprintf("%s nullable=%t", res, d.Nullable)
}
