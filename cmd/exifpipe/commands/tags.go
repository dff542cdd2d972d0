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
	"encoding/json"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/exifpipe/cmd/exifpipe/opts"
	"github.com/walteh/exifpipe/pkg/tag"
	"gitlab.com/tozd/go/errors"
)

func NewTagsCmd(opts *opts.RootOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tags <source|->",
		Short: "List the tags exiftool reads from a file or stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "tags").Logger().WithContext(cmd.Context())

			tool := opts.Tool()
			var (
				tags []tag.Tag
				err  error
			)
			if args[0] == stdio {
				tags, err = tool.GetTags(ctx, cmd.InOrStdin())
			} else {
				tags, err = tool.GetFileTags(ctx, args[0])
			}
			if err != nil {
				return err
			}

			if asJSON {
				return writeTagsJSON(cmd.OutOrStdout(), tags)
			}

			data := pterm.TableData{{"Tag", "Value"}}
			for _, t := range tags {
				data = append(data, []string{t.Name(), t.Value()})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(cmd.OutOrStdout()).Render()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON object instead of a table")

	return cmd
}

func writeTagsJSON(w io.Writer, tags []tag.Tag) error {
	obj := make(map[string]any, len(tags))
	for _, t := range tags {
		if t.IsList() {
			obj[t.Name()] = t.List()
		} else {
			obj[t.Name()] = t.Value()
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(obj); err != nil {
		return errors.Errorf("encoding tags: %w", err)
	}
	return nil
}
