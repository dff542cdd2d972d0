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

package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎭 UserLogger prints human-facing messages with pterm and mirrors them to zerolog.
// Everything goes to stderr so stream output on stdout stays clean.
type UserLogger struct {
	log zerolog.Logger
	out io.Writer
}

// FileChangeType describes what happened to a file
type FileChangeType int

const (
	FileWritten FileChangeType = iota
	FileCreated
	FileSkipped
	FileFailed
)

// FileChange is one user-visible file event
type FileChange struct {
	Type        FileChangeType
	Path        string
	Description string
	Error       error
}

// NewUserLogger creates a logger writing to stderr
func NewUserLogger(ctx context.Context) *UserLogger {
	return NewUserLoggerWithWriter(ctx, os.Stderr)
}

// NewUserLoggerWithWriter creates a logger writing to w
func NewUserLoggerWithWriter(ctx context.Context, w io.Writer) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: w,
	}
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style}).WithWriter(u.out)
}

func (u *UserLogger) LogFileChange(change FileChange) {
	name := filepath.Base(change.Path)

	var action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case FileWritten:
		action = "Wrote"
		printer = u.printer(pterm.Success, "✨")
	case FileCreated:
		action = "Created"
		printer = u.printer(pterm.Success, "🆕")
	case FileSkipped:
		action = "Skipped"
		printer = u.printer(pterm.Warning, "⏭️")
	default:
		action = "Failed"
		printer = u.printer(pterm.Error, "❌")
	}

	msg := fmt.Sprintf("%s %s", action, name)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	printer.Println(msg)
	if change.Error != nil {
		u.printer(pterm.Error, "❌").Println(change.Error)
		u.log.Error().Err(change.Error).Str("path", change.Path).Msg(msg)
		return
	}
	u.log.Info().Str("path", change.Path).Msg(msg)
}

func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		u.printer(pterm.Error, "❌").Println(description)
		u.printer(pterm.Error, "❌").Println(err)
		u.log.Error().Err(err).Msg(description)
		return
	}
	u.printer(pterm.Warning, "⚠️").Println(description)
	u.log.Warn().Msg(description)
}

func (u *UserLogger) LogSummary(written, failed, skipped int) {
	msg := fmt.Sprintf("%d written, %d failed, %d skipped", written, failed, skipped)
	if failed > 0 {
		u.printer(pterm.Warning, "📦").Println(msg)
	} else {
		u.printer(pterm.Info, "📦").Println(msg)
	}
	u.log.Info().Int("written", written).Int("failed", failed).Int("skipped", skipped).Msg("batch summary")
}
