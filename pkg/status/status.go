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

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 Outcome represents what happened to a file
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeWritten         // Engine reported success
	OutcomeFailed          // Engine reported failure or the write errored
	OutcomeSkipped         // File was never handed to the engine
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// 📝 FileInfo holds the tracked state of one file
type FileInfo struct {
	Path     string  // Path as given by the caller
	Outcome  Outcome // What happened
	Message  string  // Engine message or error text
	Size     int64   // Size of the written file, if any
	Checksum string  // sha256 of the written file, if any
	Error    error   // Go error that stopped the write, if any
}

// 📊 Summary counts outcomes across a batch
type Summary struct {
	Total   int
	Written int
	Failed  int
	Skipped int
}

// 🎯 Tracker records file outcomes and batch progress
type Tracker struct {
	logger    *zerolog.Logger
	formatter FileFormatter

	mu    sync.RWMutex
	files map[string]FileInfo

	total     int
	processed int
}

// 🏭 New creates a new tracker
func New(logger *zerolog.Logger) *Tracker {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Tracker{
		logger:    logger,
		formatter: NewDefaultFileFormatter(),
		files:     make(map[string]FileInfo),
	}
}

// 📝 TrackFile records the outcome for path, replacing any earlier record
func (t *Tracker) TrackFile(ctx context.Context, path string, info FileInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()

	info.Path = path
	t.files[path] = info

	msg := t.formatter.FormatFileResult(path, info.Outcome, info.Message)
	if info.Error != nil {
		msg = t.formatter.FormatError(info.Error)
	}
	t.logger.Info().Str("path", path).Str("outcome", info.Outcome.String()).Msg(msg)
}

// 🔍 GetFileInfo returns the record for path
func (t *Tracker) GetFileInfo(ctx context.Context, path string) (FileInfo, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	info, ok := t.files[path]
	if !ok {
		return FileInfo{}, errors.Errorf("file not tracked: %s", path)
	}
	return info, nil
}

// 📋 ListFiles returns every record sorted by path
func (t *Tracker) ListFiles(ctx context.Context) []FileInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	files := make([]FileInfo, 0, len(t.files))
	for _, info := range t.files {
		files = append(files, info)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// 📊 Summary counts the tracked outcomes
func (t *Tracker) Summary() Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := Summary{Total: len(t.files)}
	for _, info := range t.files {
		switch info.Outcome {
		case OutcomeWritten:
			s.Written++
		case OutcomeFailed:
			s.Failed++
		case OutcomeSkipped:
			s.Skipped++
		}
	}
	return s
}

// ⏳ StartOperation resets the progress counters
func (t *Tracker) StartOperation(ctx context.Context, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total = total
	t.processed = 0
	t.logger.Debug().Int("total", total).Msg(t.formatter.FormatProgress(0, total))
}

// ⏳ Advance marks one more file as processed and returns the new count
func (t *Tracker) Advance(ctx context.Context) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processed++
	t.logger.Debug().
		Int("processed", t.processed).
		Int("total", t.total).
		Msg(t.formatter.FormatProgress(t.processed, t.total))
	return t.processed
}

// ✅ FinishOperation logs the final progress line
func (t *Tracker) FinishOperation(ctx context.Context) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	t.logger.Info().
		Int("processed", t.processed).
		Int("total", t.total).
		Msg(t.formatter.FormatProgress(t.processed, t.total))
}

// 🔑 Checksum returns the sha256 and size of the file at path
func Checksum(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, errors.Errorf("opening file: %w", err)
	}
	defer f.Close()

	hash := sha256.New()
	n, err := io.Copy(hash, f)
	if err != nil {
		return "", 0, errors.Errorf("hashing file: %w", err)
	}
	return hex.EncodeToString(hash.Sum(nil)), n, nil
}
