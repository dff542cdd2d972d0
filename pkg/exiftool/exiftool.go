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

/*
Package exiftool writes metadata through the exiftool engine.

Each write spawns one exiftool process. The source may be a stream or a path
and the destination a stream, a new file or the original file:

	+----------+     args     +----------+
	|  source  | -----------> | exiftool | ----> WriteResult
	+----------+   stdin/path +----------+  stdout/file

	et := exiftool.New(exiftool.Options{})
	res, err := et.WriteTags(ctx, src, []tag.Operation{
		tag.Set(tag.New("comment", "hello")),
	})

Failures reported by exiftool come back as a WriteResult with Success unset
and ErrorMessage filled from stderr. Go errors are reserved for bad input,
destination collisions and I/O problems.
*/
package exiftool

import (
	"context"
	"io"

	"github.com/walteh/exifpipe/pkg/tag"
)

// 🛠️ ExifTool builds the right runner for each source/destination shape
type ExifTool struct {
	options Options
	ro      []Option
}

// 🏭 New creates an ExifTool sharing opts across all calls
func New(opts Options, ro ...Option) *ExifTool {
	return &ExifTool{options: opts, ro: ro}
}

// Options returns the configuration in use
func (e *ExifTool) Options() Options {
	return e.options
}

// WriteTags rewrites src and returns the result as a stream
func (e *ExifTool) WriteTags(ctx context.Context, src io.Reader, ops []tag.Operation) (*WriteResult, error) {
	r, err := NewStreamToStreamRunner(e.options, src, e.ro...)
	if err != nil {
		return nil, err
	}
	return r.RunProcess(ctx, ops)
}

// WriteTagsToFile rewrites src into the new file dst
func (e *ExifTool) WriteTagsToFile(ctx context.Context, src io.Reader, ops []tag.Operation, dst string) (*WriteResult, error) {
	r, err := NewStreamToFileRunner(e.options, src, dst, e.ro...)
	if err != nil {
		return nil, err
	}
	return r.RunProcess(ctx, ops)
}

// WriteFileTags rewrites the file at src and returns the result as a stream
func (e *ExifTool) WriteFileTags(ctx context.Context, src string, ops []tag.Operation) (*WriteResult, error) {
	r, err := NewFileToStreamRunner(e.options, src, e.ro...)
	if err != nil {
		return nil, err
	}
	return r.RunProcess(ctx, ops)
}

// WriteFileTagsToFile rewrites the file at src into the new file dst
func (e *ExifTool) WriteFileTagsToFile(ctx context.Context, src string, ops []tag.Operation, dst string) (*WriteResult, error) {
	r, err := NewFileToFileRunner(e.options, src, dst, e.ro...)
	if err != nil {
		return nil, err
	}
	return r.RunProcess(ctx, ops)
}

// OverwriteTags rewrites the file at path in place
func (e *ExifTool) OverwriteTags(ctx context.Context, path string, ops []tag.Operation, mode FileWriteMode) (*WriteResult, error) {
	r, err := NewOverwriteRunner(e.options, path, mode, e.ro...)
	if err != nil {
		return nil, err
	}
	return r.RunProcess(ctx, ops)
}
