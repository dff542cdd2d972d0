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

package opts

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/exifpipe/cmd/exifpipe/ui"
	"github.com/walteh/exifpipe/pkg/config"
	"github.com/walteh/exifpipe/pkg/exiftool"
	"github.com/walteh/exifpipe/pkg/log"
)

// RootOpts is shared by every command once the root flags are parsed
type RootOpts struct {
	Config     *config.Config
	UserLogger *ui.UserLogger
	Debug      bool

	// ToolOptions are passed to every exiftool.ExifTool the commands build
	ToolOptions []exiftool.Option
}

// Tool builds the facade from the loaded configuration
func (o *RootOpts) Tool() *exiftool.ExifTool {
	return exiftool.New(o.Config.ExifTool, o.ToolOptions...)
}

// Console builds the batch console logger writing to w
func (o *RootOpts) Console(w io.Writer) *log.Logger {
	level := zerolog.InfoLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}
	return log.New(w, level)
}
