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
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFileFormatter(t *testing.T) {
	f := NewDefaultFileFormatter()

	tests := []struct {
		name    string
		path    string
		outcome Outcome
		message string
		want    string
	}{
		{
			name:    "written_file",
			path:    "a.jpg",
			outcome: OutcomeWritten,
			want:    "✨ Wrote a.jpg",
		},
		{
			name:    "failed_file_with_message",
			path:    "b.jpg",
			outcome: OutcomeFailed,
			message: "Error: Not a valid JPG",
			want:    "❌ Failed b.jpg: Error: Not a valid JPG",
		},
		{
			name:    "skipped_file",
			path:    "c.jpg",
			outcome: OutcomeSkipped,
			message: "destination exists",
			want:    "⏭️  Skipped c.jpg: destination exists",
		},
		{
			name:    "unknown_outcome",
			path:    "d.jpg",
			outcome: OutcomeUnknown,
			want:    "❔ Unknown d.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatFileResult(tt.path, tt.outcome, tt.message), "formatted result should match")
		})
	}
}

func TestFormatProgress(t *testing.T) {
	f := NewDefaultFileFormatter()

	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{name: "start", current: 0, total: 4, want: "⏳ Progress: 0/4 (0%)"},
		{name: "halfway", current: 2, total: 4, want: "⏳ Progress: 2/4 (50%)"},
		{name: "done", current: 4, total: 4, want: "✅ Progress: 4/4 (100%)"},
		{name: "empty_batch", current: 0, total: 0, want: "✅ Progress: 0/0 (0%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatProgress(tt.current, tt.total), "progress should match")
		})
	}

	assert.Empty(t, f.FormatError(nil), "nil error should format as empty")
	assert.Equal(t, "❌ Error: boom", f.FormatError(fmt.Errorf("boom")), "error should be formatted")
}

func TestTracker(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	tracker := New(&logger)
	ctx := context.Background()

	tracker.StartOperation(ctx, 3)
	tracker.TrackFile(ctx, "b.jpg", FileInfo{Outcome: OutcomeFailed, Message: "Error: bad"})
	assert.Equal(t, 1, tracker.Advance(ctx), "advance should count")
	tracker.TrackFile(ctx, "a.jpg", FileInfo{Outcome: OutcomeWritten})
	tracker.Advance(ctx)
	tracker.TrackFile(ctx, "c.jpg", FileInfo{Outcome: OutcomeSkipped})
	assert.Equal(t, 3, tracker.Advance(ctx), "advance should count")
	tracker.FinishOperation(ctx)

	info, err := tracker.GetFileInfo(ctx, "b.jpg")
	require.NoError(t, err, "tracked file should be found")
	assert.Equal(t, "b.jpg", info.Path, "path should be recorded")
	assert.Equal(t, OutcomeFailed, info.Outcome, "outcome should match")
	assert.Equal(t, "Error: bad", info.Message, "message should match")

	_, err = tracker.GetFileInfo(ctx, "missing.jpg")
	assert.Error(t, err, "untracked file should error")

	files := tracker.ListFiles(ctx)
	require.Len(t, files, 3, "all files should be listed")
	assert.Equal(t, "a.jpg", files[0].Path, "files should be sorted")
	assert.Equal(t, "c.jpg", files[2].Path, "files should be sorted")

	assert.Equal(t, Summary{Total: 3, Written: 1, Failed: 1, Skipped: 1}, tracker.Summary(), "summary should count outcomes")

	// later records replace earlier ones
	tracker.TrackFile(ctx, "b.jpg", FileInfo{Outcome: OutcomeWritten})
	assert.Equal(t, Summary{Total: 3, Written: 2, Skipped: 1}, tracker.Summary(), "summary should reflect replacement")
}

func TestTrackerConcurrent(t *testing.T) {
	tracker := New(nil)
	ctx := context.Background()

	const n = 50
	tracker.StartOperation(ctx, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tracker.TrackFile(ctx, fmt.Sprintf("%02d.jpg", i), FileInfo{Outcome: OutcomeWritten})
			tracker.Advance(ctx)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, tracker.Summary().Written, "every file should be recorded")
}

func TestChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644), "writing file")

	sum, size, err := Checksum(path)
	require.NoError(t, err, "checksum should succeed")
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", sum, "sha256 should match")
	assert.Equal(t, int64(5), size, "size should match")

	_, _, err = Checksum(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist, "missing file should wrap not exist")
}
