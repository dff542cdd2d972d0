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

package operation_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/exifpipe/gen/mockery"
	"github.com/walteh/exifpipe/pkg/exiftool"
	"github.com/walteh/exifpipe/pkg/log"
	"github.com/walteh/exifpipe/pkg/operation"
	"github.com/walteh/exifpipe/pkg/status"
	"github.com/walteh/exifpipe/pkg/tag"
	"github.com/walteh/exifpipe/pkg/testutils"
	"gitlab.com/tozd/go/errors"
)

var keywordOps = []tag.Operation{
	tag.Set(tag.NewList("keywords", "first", "second")),
}

// batchEngine fails any subject named bad.jpg and creates -o destinations
func batchEngine(calls *atomic.Int32) func(context.Context, exiftool.Invocation) (*exiftool.Completion, error) {
	return func(ctx context.Context, inv exiftool.Invocation) (*exiftool.Completion, error) {
		calls.Add(1)
		subject := inv.Args[len(inv.Args)-1]
		if filepath.Base(subject) == "bad.jpg" {
			return &exiftool.Completion{ExitCode: 1, Stderr: "Error: Not a valid JPG - bad.jpg\n"}, nil
		}
		for i, a := range inv.Args {
			if a == "-o" && inv.Args[i+1] != "-" {
				if err := os.WriteFile(inv.Args[i+1], []byte("rewritten"), 0644); err != nil {
					return nil, err
				}
			}
		}
		return &exiftool.Completion{ExitCode: 0}, nil
	}
}

func TestRunner(t *testing.T) {
	for _, async := range []bool{false, true} {
		name := "sync"
		if async {
			name = "async"
		}
		t.Run(name, func(t *testing.T) {
			ctx := testutils.Context(t)
			dir := t.TempDir()

			good := filepath.Join(dir, "good.jpg")
			bad := filepath.Join(dir, "bad.jpg")
			taken := filepath.Join(dir, "taken.jpg")
			fresh := filepath.Join(dir, "fresh.jpg")
			for _, p := range []string{good, bad, taken} {
				require.NoError(t, os.WriteFile(p, []byte("jpeg"), 0644), "writing source")
			}

			var calls atomic.Int32
			executor := mockery.NewMockExecutor_exiftool(t)
			executor.EXPECT().Execute(mock.Anything, mock.Anything).RunAndReturn(batchEngine(&calls))

			tool := exiftool.New(exiftool.Options{}, exiftool.WithExecutor(executor))
			runner := operation.NewRunner(tool, nil, async, 2)

			jobs := []operation.Job{
				operation.NewJob(good, operation.KindOverwriteInPlace, keywordOps),
				operation.NewJob(bad, operation.KindOverwrite, keywordOps),
				operation.NewJob(good, operation.KindCopy, keywordOps).WithDestination(taken),
				operation.NewJob(good, operation.KindCopy, keywordOps).WithDestination(fresh),
			}

			results, err := runner.Run(ctx, jobs)
			require.NoError(t, err, "batch should complete")
			require.Len(t, results, len(jobs), "one result per job")

			for i, res := range results {
				assert.Equal(t, jobs[i].ID, res.Job.ID, "results should keep job order")
			}

			assert.Equal(t, status.OutcomeWritten, results[0].Outcome(), "in-place write should succeed")
			assert.Equal(t, status.OutcomeFailed, results[1].Outcome(), "engine failure should fail the job")
			assert.Equal(t, "Error: Not a valid JPG - bad.jpg", results[1].Message(), "engine message should be kept")
			assert.NoError(t, results[1].Err, "engine failure is not a Go error")
			assert.Equal(t, status.OutcomeSkipped, results[2].Outcome(), "existing destination should be skipped")
			assert.ErrorIs(t, results[2].Err, exiftool.ErrDestinationExists, "collision should be reported")
			assert.Equal(t, status.OutcomeWritten, results[3].Outcome(), "new destination should be written")

			assert.Equal(t, int32(3), calls.Load(), "skipped job should never reach the engine")

			content, err := os.ReadFile(taken)
			require.NoError(t, err, "reading existing destination")
			assert.Equal(t, "jpeg", string(content), "existing destination should be untouched")

			summary := runner.Tracker().Summary()
			assert.Equal(t, status.Summary{Total: 4, Written: 2, Failed: 1, Skipped: 1}, summary, "summary should count outcomes")

			info, err := runner.Tracker().GetFileInfo(ctx, fresh)
			require.NoError(t, err, "fresh destination should be tracked")
			assert.Equal(t, int64(len("rewritten")), info.Size, "written size should be recorded")
			assert.NotEmpty(t, info.Checksum, "written checksum should be recorded")
		})
	}
}

func TestRunnerCancelled(t *testing.T) {
	for _, async := range []bool{false, true} {
		t.Run(map[bool]string{false: "sync", true: "async"}[async], func(t *testing.T) {
			ctx, cancel := context.WithCancel(testutils.Context(t))
			cancel()

			executor := mockery.NewMockExecutor_exiftool(t)
			tool := exiftool.New(exiftool.Options{}, exiftool.WithExecutor(executor))
			runner := operation.NewRunner(tool, nil, async, 1)

			results, err := runner.Run(ctx, []operation.Job{
				operation.NewJob("a.jpg", operation.KindOverwrite, keywordOps),
			})
			require.Error(t, err, "cancelled batch should error")
			assert.ErrorIs(t, err, context.Canceled, "error should wrap cancellation")
			require.Len(t, results, 1, "results should still be sized to the batch")
			assert.Equal(t, status.OutcomeUnknown, results[0].Outcome(), "unstarted job should have no outcome")
		})
	}
}

func TestRunnerConsole(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	ctx := testutils.Context(t)
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.jpg")
	require.NoError(t, os.WriteFile(bad, []byte("jpeg"), 0644), "writing source")

	var calls atomic.Int32
	executor := mockery.NewMockExecutor_exiftool(t)
	executor.EXPECT().Execute(mock.Anything, mock.Anything).RunAndReturn(batchEngine(&calls))

	buf := &bytes.Buffer{}
	console := log.NewWithZerolog(buf, zerolog.Nop())

	tool := exiftool.New(exiftool.Options{}, exiftool.WithExecutor(executor))
	runner := operation.NewRunner(tool, status.New(nil), false, 1, operation.WithName("overwrite"))

	_, err := runner.Run(log.NewContext(ctx, console), []operation.Job{operation.NewJob(bad, operation.KindOverwrite, keywordOps)})
	require.NoError(t, err, "batch should complete")

	out := buf.String()
	assert.Contains(t, out, "[writing 1 file]", "batch header should be printed")
	assert.Contains(t, out, "◆ overwrite • sequential", "batch name should be printed")
	assert.Contains(t, out, "✗ "+bad, "failed file should be printed")
	assert.Contains(t, out, "Error: Not a valid JPG", "engine message should be printed")
	assert.Contains(t, out, "1 of 1 files failed", "failure count should be printed")
}

func TestRunnerConsoleFromContext(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name      string
		files     []string
		cancelled bool
		want      string
	}{
		{name: "success", files: []string{"good.jpg"}, want: "✅ 1 files processed"},
		{name: "empty", want: "ℹ️  overwrite: nothing to write"},
		{name: "cancelled", files: []string{"good.jpg"}, cancelled: true, want: "❌ overwrite cancelled after 0 of 1 files"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			buf := &bytes.Buffer{}
			ctx := log.NewContext(testutils.Context(t), log.NewWithZerolog(buf, zerolog.Nop()))
			if tt.cancelled {
				var cancel context.CancelFunc
				ctx, cancel = context.WithCancel(ctx)
				cancel()
			}

			var calls atomic.Int32
			executor := mockery.NewMockExecutor_exiftool(t)
			executor.EXPECT().Execute(mock.Anything, mock.Anything).RunAndReturn(batchEngine(&calls)).Maybe()

			var jobs []operation.Job
			for _, f := range tt.files {
				p := filepath.Join(dir, f)
				require.NoError(t, os.WriteFile(p, []byte("jpeg"), 0644), "writing source")
				jobs = append(jobs, operation.NewJob(p, operation.KindOverwrite, keywordOps))
			}

			tool := exiftool.New(exiftool.Options{}, exiftool.WithExecutor(executor))
			runner := operation.NewRunner(tool, nil, false, 1, operation.WithName("overwrite"))

			_, err := runner.Run(ctx, jobs)
			if tt.cancelled {
				require.Error(t, err, "cancelled batch should error")
			} else {
				require.NoError(t, err, "batch should complete")
			}
			assert.Contains(t, buf.String(), "◆ overwrite", "context logger should print the batch")
			assert.Contains(t, buf.String(), tt.want, "closing line should describe the batch")
		})
	}
}

func TestJob(t *testing.T) {
	job := operation.NewJob("src.jpg", operation.KindCopy, keywordOps).WithDestination("dst.jpg")
	assert.NotEqual(t, uuid.Nil, job.ID, "job should get an id")
	assert.Equal(t, "dst.jpg", job.Target(), "copy should target the destination")
	assert.Equal(t, "file", job.Kind.String(), "kind should have a name")

	other := operation.NewJob("src.jpg", operation.KindOverwriteInPlace, keywordOps)
	assert.NotEqual(t, job.ID, other.ID, "ids should be unique")
	assert.Equal(t, "src.jpg", other.Target(), "overwrite should target the source")
	assert.Equal(t, "in-place", other.Kind.String(), "kind should have a name")
	assert.Equal(t, "unknown", operation.Kind(42).String(), "unknown kind should say so")
}

func TestResultOutcome(t *testing.T) {
	tests := []struct {
		name    string
		result  operation.Result
		want    status.Outcome
		message string
	}{
		{
			name:   "success",
			result: operation.Result{Write: &exiftool.WriteResult{Success: true}},
			want:   status.OutcomeWritten,
		},
		{
			name:    "engine_failure",
			result:  operation.Result{Write: &exiftool.WriteResult{ErrorMessage: "Error: nope"}},
			want:    status.OutcomeFailed,
			message: "Error: nope",
		},
		{
			name:    "destination_exists",
			result:  operation.Result{Err: errors.Errorf("dst: %w", exiftool.ErrDestinationExists)},
			want:    status.OutcomeSkipped,
			message: "dst: destination already exists",
		},
		{
			name:    "go_error",
			result:  operation.Result{Err: errors.New("disk full")},
			want:    status.OutcomeFailed,
			message: "disk full",
		},
		{
			name:   "not_run",
			result: operation.Result{},
			want:   status.OutcomeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Outcome(), "outcome should match")
			assert.True(t, strings.HasPrefix(tt.result.Message(), tt.message), "message should match")
		})
	}
}
