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

	"github.com/walteh/exifpipe/pkg/args"
	"github.com/walteh/exifpipe/pkg/tag"
	"gitlab.com/tozd/go/errors"
)

// 🌊 StreamToStreamRunner pipes the source into exiftool and captures the rewritten bytes
type StreamToStreamRunner struct {
	base
	src io.Reader
}

// 🏭 NewStreamToStreamRunner creates a runner reading src from its current position
func NewStreamToStreamRunner(opts Options, src io.Reader, ro ...Option) (*StreamToStreamRunner, error) {
	if src == nil {
		return nil, errors.WithStack(ErrNilSource)
	}
	r := &StreamToStreamRunner{src: src}
	r.init(opts, ro)
	return r, nil
}

// RunProcess implements Runner
func (r *StreamToStreamRunner) RunProcess(ctx context.Context, ops []tag.Operation) (*WriteResult, error) {
	argv, err := r.buildArgs(args.Target{Mode: args.StreamToStream}, ops)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	c, err := r.execute(ctx, args.StreamToStream, argv, contextReader{ctx: ctx, r: r.src}, &out)
	if err != nil {
		return nil, err
	}
	if !Succeeded(c) {
		return failed(ErrorMessage(c)), nil
	}
	return succeeded(bytes.NewReader(out.Bytes())), nil
}

// 💾 StreamToFileRunner rewrites a stream and stores the result in a new file
type StreamToFileRunner struct {
	base
	src io.Reader
	dst string
}

// 🏭 NewStreamToFileRunner creates a runner that never overwrites dst
func NewStreamToFileRunner(opts Options, src io.Reader, dst string, ro ...Option) (*StreamToFileRunner, error) {
	if src == nil {
		return nil, errors.WithStack(ErrNilSource)
	}
	if dst == "" {
		return nil, errors.Errorf("destination: %w", ErrEmptyPath)
	}
	r := &StreamToFileRunner{src: src, dst: dst}
	r.init(opts, ro)
	return r, nil
}

// RunProcess implements Runner. A failure while copying can leave a partial
// file at the destination; callers should remove any file present after an error.
func (r *StreamToFileRunner) RunProcess(ctx context.Context, ops []tag.Operation) (*WriteResult, error) {
	if err := r.claim(); err != nil {
		return nil, err
	}
	dst := r.options.Resolve(r.dst)
	if err := ensureAbsent(dst); err != nil {
		r.state.Store(int32(StateCompleted))
		return nil, err
	}

	inner, err := NewStreamToStreamRunner(r.options, r.src, WithExecutor(r.settings.executor))
	if err != nil {
		return nil, err
	}

	r.state.Store(int32(StateProcessRunning))
	defer r.state.Store(int32(StateCompleted))

	res, err := inner.RunProcess(ctx, ops)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return failed(res.ErrorMessage), nil
	}

	if err := writeNew(ctx, dst, res.Output); err != nil {
		return nil, err
	}
	return succeeded(nil), nil
}

func ensureAbsent(path string) error {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return errors.Errorf("%w: %s", ErrDestinationExists, path)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return errors.Errorf("checking destination: %w", err)
	}
}

// writeNew creates path exclusively and copies r into it
func writeNew(ctx context.Context, path string, r io.Reader) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return errors.Errorf("%w: %s", ErrDestinationExists, path)
		}
		return errors.Errorf("creating destination: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Errorf("closing destination: %w", cerr)
		}
	}()

	if _, cerr := io.Copy(f, contextReader{ctx: ctx, r: r}); cerr != nil {
		return errors.Errorf("copying to destination: %w", cerr)
	}
	return nil
}

// contextReader stops a copy once the context is done
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
