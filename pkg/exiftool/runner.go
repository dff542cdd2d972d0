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
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/walteh/exifpipe/pkg/args"
	"github.com/walteh/exifpipe/pkg/tag"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrRunnerUsed is returned when a runner is run a second time
	ErrRunnerUsed = errors.Base("runner has already been used")
	// ErrNilSource is returned when a stream runner is given no source
	ErrNilSource = errors.Base("source stream is required")
	// ErrEmptyPath is returned when a path runner is given an empty path
	ErrEmptyPath = errors.Base("path is required")
	// ErrDestinationExists is returned when a create-new destination is already present
	ErrDestinationExists = errors.Base("destination already exists")
)

// 🏃 Runner drives one exiftool invocation for one source/destination shape
type Runner interface {
	// RunProcess applies ops and reports the outcome. Engine failures are
	// returned as an unsuccessful WriteResult; the error is reserved for
	// precondition and I/O failures.
	RunProcess(ctx context.Context, ops []tag.Operation) (*WriteResult, error)
}

// 🚦 State tracks a runner through its single use
type State int32

const (
	StateIdle State = iota
	StateClaimed
	StateArgumentsBuilt
	StateProcessRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateClaimed:
		return "claimed"
	case StateArgumentsBuilt:
		return "arguments-built"
	case StateProcessRunning:
		return "process-running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Option customises how runners spawn exiftool
type Option func(*settings)

type settings struct {
	executor Executor
}

// WithExecutor replaces the os/exec backed executor
func WithExecutor(e Executor) Option {
	return func(s *settings) {
		s.executor = e
	}
}

func newSettings(opts []Option) settings {
	s := settings{executor: NewExecutor()}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// base owns the configuration, the argument building and the result
// normalisation shared by every runner variant
type base struct {
	options  Options
	settings settings
	state    atomic.Int32
}

func (b *base) init(opts Options, ro []Option) {
	b.options = opts
	b.settings = newSettings(ro)
}

// State reports where the runner is in its lifecycle
func (b *base) State() State {
	return State(b.state.Load())
}

// claim moves an idle runner forward; runners are single use
func (b *base) claim() error {
	if !b.state.CompareAndSwap(int32(StateIdle), int32(StateClaimed)) {
		return errors.WithStack(ErrRunnerUsed)
	}
	return nil
}

func (b *base) buildArgs(target args.Target, ops []tag.Operation) ([]string, error) {
	if err := b.claim(); err != nil {
		return nil, err
	}
	a, err := args.Build(b.options.argsConfig(), target, ops)
	if err != nil {
		b.state.Store(int32(StateCompleted))
		return nil, errors.Errorf("building arguments: %w", err)
	}
	b.state.Store(int32(StateArgumentsBuilt))
	return a, nil
}

// execute runs exiftool with the given arguments and standard streams
func (b *base) execute(ctx context.Context, mode args.Mode, argv []string, stdin io.Reader, stdout io.Writer) (*Completion, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("mode", mode.String()).
		Str("executable", b.options.executable()).
		Strs("args", argv).
		Msg("running exiftool")

	b.state.Store(int32(StateProcessRunning))
	defer b.state.Store(int32(StateCompleted))

	c, err := b.settings.executor.Execute(ctx, Invocation{
		Path:   b.options.executable(),
		Args:   argv,
		Dir:    b.options.WorkingDirectory,
		Stdin:  stdin,
		Stdout: stdout,
	})
	if err != nil {
		return nil, errors.Errorf("executing exiftool: %w", err)
	}

	logger.Debug().
		Str("mode", mode.String()).
		Int("exit_code", c.ExitCode).
		Str("stderr", c.Stderr).
		Msg("exiftool finished")

	return c, nil
}

// 🔍 Succeeded reports whether exiftool exited cleanly with no error on stderr.
// Warnings do not count as failure.
func Succeeded(c *Completion) bool {
	return c != nil && c.ExitCode == 0 && !hasErrorLine(c.Stderr)
}

// ErrorMessage returns the diagnostic for a failed completion
func ErrorMessage(c *Completion) string {
	if c == nil {
		return ""
	}
	if msg := strings.TrimSpace(c.Stderr); msg != "" {
		return msg
	}
	return fmt.Sprintf("exiftool exited with status %d", c.ExitCode)
}

func hasErrorLine(stderr string) bool {
	sc := bufio.NewScanner(strings.NewReader(stderr))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if len(line) >= 5 && strings.EqualFold(line[:5], "error") {
			return true
		}
	}
	return false
}
