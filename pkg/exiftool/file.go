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
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/exifpipe/pkg/args"
	"github.com/walteh/exifpipe/pkg/tag"
	"gitlab.com/tozd/go/errors"
)

// backupSuffix is appended by exiftool to the copy of the original it keeps
const backupSuffix = "_original"

// 📄 FileToStreamRunner has exiftool read a path and captures the rewritten bytes
type FileToStreamRunner struct {
	base
	src string
}

// 🏭 NewFileToStreamRunner creates a runner for the file at src
func NewFileToStreamRunner(opts Options, src string, ro ...Option) (*FileToStreamRunner, error) {
	if src == "" {
		return nil, errors.Errorf("source: %w", ErrEmptyPath)
	}
	r := &FileToStreamRunner{src: src}
	r.init(opts, ro)
	return r, nil
}

// RunProcess implements Runner
func (r *FileToStreamRunner) RunProcess(ctx context.Context, ops []tag.Operation) (*WriteResult, error) {
	argv, err := r.buildArgs(args.Target{Mode: args.FileToStream, Source: r.src}, ops)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	c, err := r.execute(ctx, args.FileToStream, argv, nil, &out)
	if err != nil {
		return nil, err
	}
	if !Succeeded(c) {
		return failed(ErrorMessage(c)), nil
	}
	return succeeded(bytes.NewReader(out.Bytes())), nil
}

// 📁 FileToFileRunner has exiftool write the rewritten file to a new path
type FileToFileRunner struct {
	base
	src string
	dst string
}

// 🏭 NewFileToFileRunner creates a runner writing src to dst; dst must not exist
func NewFileToFileRunner(opts Options, src, dst string, ro ...Option) (*FileToFileRunner, error) {
	if src == "" {
		return nil, errors.Errorf("source: %w", ErrEmptyPath)
	}
	if dst == "" {
		return nil, errors.Errorf("destination: %w", ErrEmptyPath)
	}
	r := &FileToFileRunner{src: src, dst: dst}
	r.init(opts, ro)
	return r, nil
}

// RunProcess implements Runner
func (r *FileToFileRunner) RunProcess(ctx context.Context, ops []tag.Operation) (*WriteResult, error) {
	argv, err := r.buildArgs(args.Target{Mode: args.FileToFile, Source: r.src, Destination: r.dst}, ops)
	if err != nil {
		return nil, err
	}
	if err := ensureAbsent(r.options.Resolve(r.dst)); err != nil {
		r.state.Store(int32(StateCompleted))
		return nil, err
	}

	c, err := r.execute(ctx, args.FileToFile, argv, nil, io.Discard)
	if err != nil {
		return nil, err
	}
	if !Succeeded(c) {
		return failed(ErrorMessage(c)), nil
	}
	return succeeded(nil), nil
}

// ✍️ FileWriteMode selects how an overwrite treats the original file
type FileWriteMode int

const (
	// OverwriteOriginal replaces the original by renaming a rewritten temporary file over it
	OverwriteOriginal FileWriteMode = iota
	// OverwriteOriginalInPlace copies the rewritten bytes back into the original file,
	// keeping its identity (inode, creation date, resource forks)
	OverwriteOriginalInPlace
)

func (m FileWriteMode) mode() (args.Mode, error) {
	switch m {
	case OverwriteOriginal:
		return args.OverwriteOriginal, nil
	case OverwriteOriginalInPlace:
		return args.OverwriteOriginalInPlace, nil
	default:
		return 0, errors.Errorf("unknown file write mode %d", int(m))
	}
}

func (m FileWriteMode) String() string {
	if a, err := m.mode(); err == nil {
		return a.String()
	}
	return "unknown"
}

// ♻️ OverwriteRunner rewrites a file at its own path
type OverwriteRunner struct {
	base
	path string
	mode FileWriteMode
}

// 🏭 NewOverwriteRunner creates a runner editing path according to mode
func NewOverwriteRunner(opts Options, path string, mode FileWriteMode, ro ...Option) (*OverwriteRunner, error) {
	if path == "" {
		return nil, errors.Errorf("path: %w", ErrEmptyPath)
	}
	if _, err := mode.mode(); err != nil {
		return nil, err
	}
	r := &OverwriteRunner{path: path, mode: mode}
	r.init(opts, ro)
	return r, nil
}

// RunProcess implements Runner
func (r *OverwriteRunner) RunProcess(ctx context.Context, ops []tag.Operation) (*WriteResult, error) {
	mode, _ := r.mode.mode()
	argv, err := r.buildArgs(args.Target{Mode: mode, Source: r.path}, ops)
	if err != nil {
		return nil, err
	}

	backup := r.options.Resolve(r.path) + backupSuffix
	hadBackup := exists(backup)

	c, err := r.execute(ctx, mode, argv, nil, io.Discard)
	if err != nil {
		return nil, err
	}
	if !Succeeded(c) {
		return failed(ErrorMessage(c)), nil
	}

	if r.mode == OverwriteOriginalInPlace && !hadBackup {
		if err := os.Remove(backup); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Errorf("removing backup: %w", err)
		}
		zerolog.Ctx(ctx).Trace().Str("backup", backup).Msg("backup disposed")
	}

	return succeeded(nil), nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
