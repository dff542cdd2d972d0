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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/exifpipe/cmd/exifpipe/commands"
	"github.com/walteh/exifpipe/cmd/exifpipe/opts"
	"github.com/walteh/exifpipe/cmd/exifpipe/ui"
	"github.com/walteh/exifpipe/pkg/config"
	"github.com/walteh/exifpipe/pkg/exiftool"
	"gitlab.com/tozd/go/errors"
)

type rootFlags struct {
	configFile string
	debug      bool
}

func newRootCmd(toolOpts ...exiftool.Option) *cobra.Command {
	var flags rootFlags
	ro := &opts.RootOpts{ToolOptions: toolOpts}

	cmd := &cobra.Command{
		Use:   "exifpipe",
		Short: "Write image and media metadata through exiftool",
		Long: `exifpipe drives the exiftool executable to write tags into files and streams.
Every write starts one exiftool process and reports whether it succeeded.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), flags.debug)
			cmd.SetContext(ctx)
			return newRootOpts(ctx, ro, flags, cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file path (.yaml, .yml, .json or .hcl)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(
		commands.NewWriteCmd(ro),
		commands.NewOverwriteCmd(ro),
		commands.NewTagsCmd(ro),
		commands.NewInspectCmd(),
		newVersionCmd(),
	)

	return cmd
}

func newRootOpts(ctx context.Context, ro *opts.RootOpts, flags rootFlags, stderr io.Writer) error {
	cfg := config.Default()
	if flags.configFile != "" {
		loaded, err := config.Load(ctx, flags.configFile)
		if err != nil {
			return errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	ro.Config = cfg
	ro.Debug = flags.debug
	ro.UserLogger = ui.NewUserLoggerWithWriter(ctx, stderr)
	return nil
}

// setupLogging applies the --debug level to the logger already in ctx
func setupLogging(ctx context.Context, debug bool) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.Ctx(ctx).Level(level).WithContext(ctx)
}
