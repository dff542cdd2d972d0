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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 35 // Base width for filename
	modeWidth    = 15 // Width for write mode
	outcomeWidth = 10 // Width for outcome text
)

// 🎯 FileResult represents the outcome of writing one file
type FileResult struct {
	Path       string // File path
	Mode       string // Write mode (stream/file/overwrite/in-place)
	Outcome    string // Outcome text
	Message    string // Engine message, if any
	Operations int    // Number of tag operations applied
	IsWritten  bool   // Whether the engine succeeded
	IsFailed   bool   // Whether the engine reported a failure
	IsSkipped  bool   // Whether the file was never handed to the engine
}

// 📦 BatchOperation represents a batch of files being written
type BatchOperation struct {
	Name  string // Batch name (usually the command)
	Files int    // Number of files in the batch
	Async bool   // Whether files are written concurrently
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	batch   *BatchOperation
	results []FileResult
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)
	return NewWithZerolog(console, zlog)
}

// 🏭 NewWithZerolog creates a logger that writes structured events to zlog
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or nil when none is attached
func FromContext(ctx context.Context) *Logger {
	logger, _ := ctx.Value(contextKey{}).(*Logger)
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileResult formats a file result for display
func (l *Logger) formatFileResult(r FileResult) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case r.IsFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case r.IsWritten:
		symbol = '✓'
		symbolColor = color.FgGreen
	case r.IsSkipped:
		symbol = '-'
		symbolColor = color.FgYellow
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	var modeColor color.Attribute
	switch r.Mode {
	case "in-place":
		modeColor = color.FgYellow
	case "overwrite":
		modeColor = color.FgCyan
	default:
		modeColor = color.FgBlue
	}

	line := fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, r.Path),
		color.New(modeColor).Sprint(fmt.Sprintf("%-*s", modeWidth, r.Mode)),
		fmt.Sprintf("%-*s", outcomeWidth, r.Outcome))

	if r.Message != "" {
		line += " " + color.New(color.Faint).Sprint(r.Message)
	}

	return line
}

// 📝 LogFileResult logs the outcome of one file
func (l *Logger) LogFileResult(ctx context.Context, r FileResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.results = append(l.results, r)

	fmt.Fprintln(l.console, l.formatFileResult(r))

	level := zerolog.InfoLevel
	if r.IsFailed {
		level = zerolog.WarnLevel
	}
	l.zlog.WithLevel(level).
		Str("file", r.Path).
		Str("mode", r.Mode).
		Str("outcome", r.Outcome).
		Str("message", r.Message).
		Int("operations", r.Operations).
		Bool("is_written", r.IsWritten).
		Bool("is_failed", r.IsFailed).
		Bool("is_skipped", r.IsSkipped).
		Msg("file result")
}

// 📝 StartBatch starts a new batch
func (l *Logger) StartBatch(ctx context.Context, b BatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.batch = &b
	l.results = nil

	noun := "files"
	if b.Files == 1 {
		noun = "file"
	}
	fmt.Fprintf(l.console, "[writing %s]\n",
		color.New(color.FgCyan).Sprintf("%d %s", b.Files, noun))

	strategy := "sequential"
	if b.Async {
		strategy = "concurrent"
	}
	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(b.Name),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(strategy))

	l.zlog.Info().
		Str("batch", b.Name).
		Int("files", b.Files).
		Bool("async", b.Async).
		Msg("starting batch")
}

// 📝 EndBatch ends the current batch and reports how many results were failures
func (l *Logger) EndBatch(ctx context.Context) (total int, failed int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.batch == nil {
		return 0, 0
	}

	for _, r := range l.results {
		if r.IsFailed {
			failed++
		}
	}
	total = len(l.results)

	l.zlog.Info().
		Str("batch", l.batch.Name).
		Int("files", total).
		Int("failed", failed).
		Msg("batch complete")

	l.batch = nil
	l.results = nil
	return total, failed
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("exifpipe")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
