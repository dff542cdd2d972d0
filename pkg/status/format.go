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

package status

import (
	"fmt"
)

// 🎨 FileFormatter formats tracker events for display
type FileFormatter interface {
	// FormatFileResult formats the outcome of one file
	FormatFileResult(path string, outcome Outcome, message string) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// 🎨 DefaultFileFormatter is the emoji formatter used by the CLI
type DefaultFileFormatter struct{}

// 🏭 NewDefaultFileFormatter creates a new default formatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

func (f *DefaultFileFormatter) FormatFileResult(path string, outcome Outcome, message string) string {
	var line string
	switch outcome {
	case OutcomeWritten:
		line = fmt.Sprintf("✨ Wrote %s", path)
	case OutcomeFailed:
		line = fmt.Sprintf("❌ Failed %s", path)
	case OutcomeSkipped:
		line = fmt.Sprintf("⏭️  Skipped %s", path)
	default:
		line = fmt.Sprintf("❔ Unknown %s", path)
	}
	if message != "" {
		line += ": " + message
	}
	return line
}

func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
