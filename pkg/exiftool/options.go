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

import (
	"path/filepath"

	"github.com/walteh/exifpipe/pkg/args"
)

// DefaultExecutable is looked up on PATH when no executable is configured
const DefaultExecutable = "exiftool"

// 🔧 Options configures how exiftool is invoked. A value is read-only for the
// duration of a call and may be shared between concurrent calls.
type Options struct {
	// ExecutablePath is the exiftool binary to run
	ExecutablePath string `json:"executable_path" yaml:"executable_path"`
	// EscapeTagValues converts values to numeric character references and passes -E
	EscapeTagValues bool `json:"escape_tag_values" yaml:"escape_tag_values"`
	// WorkingDirectory is the directory exiftool runs in; relative paths resolve against it
	WorkingDirectory string `json:"working_directory" yaml:"working_directory"`
	// ExtraArgs are passed to exiftool ahead of the tag assignments
	ExtraArgs []string `json:"extra_args" yaml:"extra_args"`
	// KeepBackup leaves the <file>_original backup when overwriting
	KeepBackup bool `json:"keep_backup" yaml:"keep_backup"`
}

func (o Options) executable() string {
	if o.ExecutablePath == "" {
		return DefaultExecutable
	}
	return o.ExecutablePath
}

func (o Options) argsConfig() args.Config {
	return args.Config{
		EscapeTagValues: o.EscapeTagValues,
		ExtraArgs:       o.ExtraArgs,
		KeepBackup:      o.KeepBackup,
	}
}

// Resolve makes a path relative to the working directory, matching what exiftool sees
func (o Options) Resolve(path string) string {
	if o.WorkingDirectory == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(o.WorkingDirectory, path)
}
