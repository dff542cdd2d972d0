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

// Package args turns tag edits into the argument vector understood by exiftool.
package args

import (
	"unicode/utf8"

	"github.com/walteh/exifpipe/pkg/tag"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Mode selects where exiftool reads the subject file and where it writes the result
type Mode int

const (
	// StreamToStream reads stdin and writes the rewritten file to stdout
	StreamToStream Mode = iota
	// FileToStream reads a path and writes the rewritten file to stdout
	FileToStream
	// FileToFile reads a path and writes a new file
	FileToFile
	// OverwriteOriginal rewrites the path through a temporary file and renames it over the original
	OverwriteOriginal
	// OverwriteOriginalInPlace rewrites the path by copying the result back into the original
	OverwriteOriginalInPlace
)

func (m Mode) String() string {
	switch m {
	case StreamToStream:
		return "stream-to-stream"
	case FileToStream:
		return "file-to-stream"
	case FileToFile:
		return "file-to-file"
	case OverwriteOriginal:
		return "overwrite-original"
	case OverwriteOriginalInPlace:
		return "overwrite-original-in-place"
	default:
		return "unknown"
	}
}

const (
	flagEscapeHTML       = "-E"
	flagOutput           = "-o"
	flagOverwrite        = "-overwrite_original"
	flagOverwriteInPlace = "-overwrite_original_in_place"
	stdio                = "-"
)

// ErrInvalidUTF8 is returned when an escaped value holds bytes that are not UTF-8
var ErrInvalidUTF8 = errors.Base("tag value is not valid UTF-8")

// 🔧 Config holds the engine settings that shape the argument vector
type Config struct {
	// EscapeTagValues converts values to numeric references and asks exiftool to decode them
	EscapeTagValues bool
	// ExtraArgs are passed verbatim ahead of the assignments
	ExtraArgs []string
	// KeepBackup leaves exiftool's <file>_original backup in OverwriteOriginal mode
	KeepBackup bool
}

// 📍 Target names the subject file and, for FileToFile, the file to create
type Target struct {
	Mode        Mode
	Source      string
	Destination string
}

// 🏗️ Build returns the arguments for one exiftool invocation, excluding the executable
func Build(cfg Config, target Target, ops []tag.Operation) ([]string, error) {
	if err := tag.Validate(ops); err != nil {
		return nil, errors.Errorf("validating operations: %w", err)
	}
	if cfg.EscapeTagValues {
		if err := validateEncoding(ops); err != nil {
			return nil, err
		}
	}
	if target.Mode != StreamToStream && target.Source == "" {
		return nil, errors.Errorf("%s requires a source path", target.Mode)
	}
	if target.Mode == FileToFile && target.Destination == "" {
		return nil, errors.Errorf("%s requires a destination path", target.Mode)
	}

	out := make([]string, 0, len(ops)+len(cfg.ExtraArgs)+4)
	if cfg.EscapeTagValues {
		out = append(out, flagEscapeHTML)
	}
	out = append(out, cfg.ExtraArgs...)
	out = append(out, Assignments(cfg, ops)...)

	switch target.Mode {
	case StreamToStream:
		out = append(out, stdio)
	case FileToStream:
		out = append(out, flagOutput, stdio, target.Source)
	case FileToFile:
		out = append(out, flagOutput, target.Destination, target.Source)
	case OverwriteOriginal:
		if !cfg.KeepBackup {
			out = append(out, flagOverwrite)
		}
		out = append(out, target.Source)
	case OverwriteOriginalInPlace:
		out = append(out, flagOverwriteInPlace, target.Source)
	default:
		return nil, errors.Errorf("unknown mode %d", int(target.Mode))
	}

	return out, nil
}

// ✏️ Assignments renders operations as -NAME=VALUE arguments in order.
// List tags produce one assignment per element, which exiftool accumulates
// into a multi-value field.
func Assignments(cfg Config, ops []tag.Operation) []string {
	out := make([]string, 0, len(ops))
	for _, op := range ops {
		switch o := op.(type) {
		case tag.SetOperation:
			for _, v := range o.Tag.Values() {
				if cfg.EscapeTagValues {
					v = Escape(v)
				}
				out = append(out, "-"+o.Tag.Name()+"="+v)
			}
		case tag.ClearOperation:
			out = append(out, "-"+o.Name+"=")
		}
	}
	return out
}

// validateEncoding rejects values Escape could only render as U+FFFD
func validateEncoding(ops []tag.Operation) error {
	for i, op := range ops {
		set, ok := op.(tag.SetOperation)
		if !ok {
			continue
		}
		for _, v := range set.Tag.Values() {
			if !utf8.ValidString(v) {
				return errors.Errorf("operation %d: %w: %s %q", i, ErrInvalidUTF8, set.Tag.Name(), v)
			}
		}
	}
	return nil
}
