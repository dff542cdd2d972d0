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

package operation

import (
	"context"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/walteh/exifpipe/pkg/exiftool"
	"github.com/walteh/exifpipe/pkg/log"
	"github.com/walteh/exifpipe/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner executes batches of jobs
type Runner struct {
	tool        *exiftool.ExifTool
	tracker     *status.Tracker
	name        string
	async       bool
	concurrency int
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithName sets the batch name shown in the console header
func WithName(name string) RunnerOption {
	return func(r *Runner) {
		r.name = name
	}
}

// 🏭 NewRunner creates a runner; a concurrency below one means one worker per CPU
func NewRunner(tool *exiftool.ExifTool, tracker *status.Tracker, async bool, concurrency int, opts ...RunnerOption) *Runner {
	if concurrency < 1 {
		concurrency = runtime.NumCPU()
	}
	if tracker == nil {
		tracker = status.New(nil)
	}
	r := &Runner{
		tool:        tool,
		tracker:     tracker,
		name:        "batch",
		async:       async,
		concurrency: concurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tracker returns the tracker results are recorded in
func (r *Runner) Tracker() *status.Tracker {
	return r.tracker
}

// 🎯 Run executes every job and returns one result per job in job order.
// A failing job never stops the batch; only context cancellation does.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))

	// results are mirrored to the console logger attached to ctx, if any
	console := log.FromContext(ctx)

	r.tracker.StartOperation(ctx, len(jobs))
	if console != nil {
		console.StartBatch(ctx, log.BatchOperation{Name: r.name, Files: len(jobs), Async: r.async})
	}

	var err error
	if r.async {
		err = r.runAsync(ctx, console, jobs, results)
	} else {
		err = r.runSync(ctx, console, jobs, results)
	}

	r.tracker.FinishOperation(ctx)
	if console != nil {
		total, failed := console.EndBatch(ctx)
		switch {
		case err != nil:
			console.Errorf("%s cancelled after %d of %d files", r.name, total, len(jobs))
		case len(jobs) == 0:
			console.Infof("%s: nothing to write", r.name)
		case failed > 0:
			console.Warningf("%d of %d files failed", failed, total)
		default:
			console.Successf("%d files processed", total)
		}
	}

	return results, err
}

func (r *Runner) runSync(ctx context.Context, console *log.Logger, jobs []Job, results []Result) error {
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("batch cancelled: %w", err)
		}
		results[i] = r.runJob(ctx, job)
		r.record(ctx, console, results[i])
	}
	return nil
}

func (r *Runner) runAsync(ctx context.Context, console *log.Logger, jobs []Job, results []Result) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.runJob(gctx, job)
			r.record(gctx, console, results[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return errors.Errorf("batch cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return errors.Errorf("batch cancelled: %w", err)
	}
	return nil
}

func (r *Runner) runJob(ctx context.Context, job Job) Result {
	logger := zerolog.Ctx(ctx).With().
		Str("job", job.ID.String()).
		Str("source", job.Source).
		Str("kind", job.Kind.String()).
		Logger()
	ctx = logger.WithContext(ctx)

	var (
		res *exiftool.WriteResult
		err error
	)
	switch job.Kind {
	case KindCopy:
		res, err = r.tool.WriteFileTagsToFile(ctx, job.Source, job.Operations, job.Destination)
	case KindOverwrite:
		res, err = r.tool.OverwriteTags(ctx, job.Source, job.Operations, exiftool.OverwriteOriginal)
	case KindOverwriteInPlace:
		res, err = r.tool.OverwriteTags(ctx, job.Source, job.Operations, exiftool.OverwriteOriginalInPlace)
	default:
		err = errors.Errorf("unknown job kind %d", job.Kind)
	}

	logger.Debug().Err(err).Bool("success", res != nil && res.Success).Msg("job finished")

	return Result{Job: job, Write: res, Err: err}
}

func (r *Runner) record(ctx context.Context, console *log.Logger, res Result) {
	info := status.FileInfo{
		Outcome: res.Outcome(),
		Message: res.Message(),
	}
	if res.Err != nil && info.Outcome == status.OutcomeFailed {
		info.Error = res.Err
	}

	target := res.Job.Target()
	if info.Outcome == status.OutcomeWritten {
		sum, size, err := status.Checksum(r.tool.Options().Resolve(target))
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("path", target).Msg("fingerprinting written file")
		} else {
			info.Checksum = sum
			info.Size = size
		}
	}

	r.tracker.TrackFile(ctx, target, info)
	r.tracker.Advance(ctx)

	if console != nil {
		console.LogFileResult(ctx, log.FileResult{
			Path:       target,
			Mode:       res.Job.Kind.String(),
			Outcome:    info.Outcome.String(),
			Message:    info.Message,
			Operations: len(res.Job.Operations),
			IsWritten:  info.Outcome == status.OutcomeWritten,
			IsFailed:   info.Outcome == status.OutcomeFailed,
			IsSkipped:  info.Outcome == status.OutcomeSkipped,
		})
	}
}
