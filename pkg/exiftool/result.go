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

package exiftool

import "io"

// 📦 WriteResult is the outcome of one write.
//
// Output is set only when the destination is a stream and exiftool succeeded.
// File destinations never carry Output. The reader belongs to the caller.
type WriteResult struct {
	Success      bool
	Output       io.Reader
	ErrorMessage string
}

func succeeded(output io.Reader) *WriteResult {
	return &WriteResult{Success: true, Output: output}
}

func failed(msg string) *WriteResult {
	return &WriteResult{Success: false, ErrorMessage: msg}
}
