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
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/exifpipe/cmd/exifpipe/opts"
	"github.com/walteh/exifpipe/cmd/exifpipe/ui"
	"github.com/walteh/exifpipe/pkg/exiftool"
	"github.com/walteh/exifpipe/pkg/tag"
	"gitlab.com/tozd/go/errors"
)

const stdio = "-"

func NewWriteCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		flags  tagFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "write [flags] <source|->",
		Short: "Write tags to a copy of a file or stream",
		Long: `Write rewrites the source with the given tag operations and never touches it.
The source is a file path or "-" for stdin. The result goes to stdout unless
--output names a file, which must not exist yet.

  exifpipe write --set comment="hello" photo.jpg > out.jpg
  cat photo.jpg | exifpipe write --add keywords=a --add keywords=b -o out.jpg -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "write").Logger().WithContext(cmd.Context())

			ops, err := flags.operations()
			if err != nil {
				return err
			}

			res, err := write(ctx, opts.Tool(), cmd.InOrStdin(), args[0], output, ops)
			if err != nil {
				return err
			}
			if !res.Success {
				opts.UserLogger.LogFileChange(ui.FileChange{Type: ui.FileFailed, Path: args[0], Description: res.ErrorMessage})
				return errors.Errorf("exiftool failed: %s", res.ErrorMessage)
			}

			if res.Output != nil {
				if _, err := io.Copy(cmd.OutOrStdout(), res.Output); err != nil {
					return errors.Errorf("writing output: %w", err)
				}
				return nil
			}

			opts.UserLogger.LogFileChange(ui.FileChange{Type: ui.FileCreated, Path: output, Description: "from " + args[0]})
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", stdio, `destination file, or "-" for stdout`)

	return cmd
}

// write picks the runner variant from where the bytes come from and go to
func write(ctx context.Context, tool *exiftool.ExifTool, stdin io.Reader, source, output string, ops []tag.Operation) (*exiftool.WriteResult, error) {
	toStream := output == "" || output == stdio
	switch {
	case source == stdio && toStream:
		return tool.WriteTags(ctx, stdin, ops)
	case source == stdio:
		return tool.WriteTagsToFile(ctx, stdin, ops, output)
	case toStream:
		return tool.WriteFileTags(ctx, source, ops)
	default:
		return tool.WriteFileTagsToFile(ctx, source, ops, output)
	}
}
