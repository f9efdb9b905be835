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
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// stringToSliceWithBracketHookFunc decodes a JSON array string, e.g. COLSPEC_CHECK_RESOLVED_WARNINGS='["a","b"]',
// into a string slice. Other strings are left for the next hook.
func stringToSliceWithBracketHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Kind,
		t reflect.Kind,
		data any,
	) (any, error) {
		if f != reflect.String || t != reflect.Slice {
			return data, nil
		}
		raw := strings.TrimSpace(data.(string))
		if !strings.HasPrefix(raw, "[") {
			return data, nil
		}
		var res []string
		if err := json.Unmarshal([]byte(raw), &res); err != nil {
			return data, nil
		}
		return res, nil
	}
}
