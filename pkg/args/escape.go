// Copyright 2025 walteh LLC
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

package args

import (
	"strconv"
	"strings"
)

// 🔡 Escape rewrites every rune outside printable ASCII as a hexadecimal
// numeric character reference (é -> &#xE9;). Ampersands are left alone so
// values that already carry references pass through unchanged. Invalid UTF-8
// bytes become &#xFFFD;; Build refuses such values before escaping them.
func Escape(value string) string {
	if isPrintableASCII(value) {
		return value
	}

	var b strings.Builder
	b.Grow(len(value) + 8)
	for _, r := range value {
		if r >= 0x20 && r <= 0x7e {
			b.WriteRune(r)
			continue
		}
		b.WriteString("&#x")
		b.WriteString(strings.ToUpper(strconv.FormatInt(int64(r), 16)))
		b.WriteByte(';')
	}
	return b.String()
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
