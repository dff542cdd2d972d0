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

package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/exifpipe/cmd/exifpipe/opts"
	"github.com/walteh/exifpipe/pkg/log"
	"github.com/walteh/exifpipe/pkg/operation"
	"github.com/walteh/exifpipe/pkg/status"
	"gitlab.com/tozd/go/errors"
)

func NewOverwriteCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		flags   tagFlags
		inPlace bool
	)

	cmd := &cobra.Command{
		Use:   "overwrite [flags] <pattern>...",
		Short: "Write tags into files at their own paths",
		Long: `Overwrite edits every file matching the given patterns. Patterns support
doublestar globbing ("photos/**/*.jpg"). Files are written one after another,
or concurrently when the config sets async.

With --in-place exiftool copies the result back into the original file so its
identity (inode, creation date) is kept.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "overwrite").Logger().WithContext(cmd.Context())

			ops, err := flags.operations()
			if err != nil {
				return err
			}

			paths, err := expand(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				opts.UserLogger.LogValidation(false, "no files matched", nil)
				return errors.New("no files matched")
			}

			kind := operation.KindOverwrite
			if inPlace {
				kind = operation.KindOverwriteInPlace
			}
			jobs := make([]operation.Job, 0, len(paths))
			for _, p := range paths {
				jobs = append(jobs, operation.NewJob(p, kind, ops))
			}

			console := opts.Console(cmd.ErrOrStderr())
			console.Header(fmt.Sprintf("overwrite %s", strings.Join(args, " ")))
			ctx = log.NewContext(ctx, console)

			tracker := status.New(zerolog.Ctx(ctx))
			runner := operation.NewRunner(opts.Tool(), tracker, opts.Config.Async, opts.Config.Concurrency,
				operation.WithName("overwrite"),
			)

			if _, err := runner.Run(ctx, jobs); err != nil {
				return err
			}

			summary := tracker.Summary()
			opts.UserLogger.LogSummary(summary.Written, summary.Failed, summary.Skipped)
			if summary.Failed > 0 {
				return errors.Errorf("%d of %d files failed", summary.Failed, summary.Total)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&inPlace, "in-place", false, "keep the original file's identity")

	return cmd
}

// expand resolves glob patterns into a sorted, de-duplicated list of files
func expand(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}
