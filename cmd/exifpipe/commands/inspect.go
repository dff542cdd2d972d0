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
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/exifpipe/pkg/probe"
	"gitlab.com/tozd/go/errors"
)

func NewInspectCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <file|->",
		Short: "Summarize embedded metadata without running exiftool",
		Long: `Inspect decodes EXIF blocks and audio tags natively. It is handy for checking
what a write produced on machines where exiftool is not installed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				summary *probe.Summary
				err     error
			)
			if args[0] == stdio {
				data, rerr := io.ReadAll(cmd.InOrStdin())
				if rerr != nil {
					return errors.Errorf("reading stdin: %w", rerr)
				}
				summary, err = probe.ReadBytes(data)
			} else {
				summary, err = probe.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			header := summary.Format
			if summary.Width > 0 {
				header = fmt.Sprintf("%s %dx%d", header, summary.Width, summary.Height)
			}
			fmt.Fprintln(out, header)
			if len(summary.Fields) == 0 {
				return nil
			}

			data := pterm.TableData{{"Category", "Key", "Value"}}
			for _, f := range summary.Fields {
				data = append(data, []string{f.Category, f.Key, f.Value})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(out).Render()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}
