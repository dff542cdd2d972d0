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
	"os/exec"
	"time"

	"gitlab.com/tozd/go/errors"
)

// ErrEngineNotFound is returned when the exiftool executable cannot be started
var ErrEngineNotFound = errors.Base("exiftool executable not found")

// 🚀 Invocation describes one exiftool process
type Invocation struct {
	Path   string
	Args   []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
}

// 🏁 Completion is how the process ended
type Completion struct {
	ExitCode int
	Stderr   string
}

// ⚙️ Executor spawns a process, streams stdin/stdout and waits for it to exit.
// Returning an error means the process could not be run at all; a process
// that ran and failed is reported through Completion.
type Executor interface {
	Execute(ctx context.Context, inv Invocation) (*Completion, error)
}

// DefaultWaitDelay bounds how long a cancelled invocation waits for its
// pipes to drain once the process has been killed
const DefaultWaitDelay = time.Second

// 🏭 NewExecutor returns the os/exec backed Executor
func NewExecutor() Executor {
	return execExecutor{waitDelay: DefaultWaitDelay}
}

// NewExecutorWithWaitDelay returns the os/exec backed Executor with a custom pipe drain bound
func NewExecutorWithWaitDelay(d time.Duration) Executor {
	if d <= 0 {
		d = DefaultWaitDelay
	}
	return execExecutor{waitDelay: d}
}

type execExecutor struct {
	waitDelay time.Duration
}

// Execute kills the process when ctx is done. A source whose Read never
// returns, or a child that leaves the pipes open, cannot hold Execute past
// waitDelay after cancellation; the pending Read is abandoned.
func (e execExecutor) Execute(ctx context.Context, inv Invocation) (*Completion, error) {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = e.waitDelay

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, errors.Errorf("running %s: %w", inv.Path, ctxErr)
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return &Completion{ExitCode: 0, Stderr: stderr.String()}, nil
	case errors.As(err, &exitErr):
		return &Completion{ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}, nil
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return nil, errors.Errorf("%w: %s", ErrEngineNotFound, inv.Path)
	default:
		return nil, errors.Errorf("running %s: %w", inv.Path, err)
	}
}
