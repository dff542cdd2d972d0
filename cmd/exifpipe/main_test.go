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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/exifpipe/gen/mockery"
	"github.com/walteh/exifpipe/pkg/exiftool"
	"github.com/walteh/exifpipe/pkg/testutils"
)

// fakeEngine imitates exiftool closely enough for command wiring:
// stdin is echoed with a marker, -o files are created, -j prints a listing
func fakeEngine(calls *atomic.Int32, seen *[][]string) func(context.Context, exiftool.Invocation) (*exiftool.Completion, error) {
	return func(ctx context.Context, inv exiftool.Invocation) (*exiftool.Completion, error) {
		calls.Add(1)
		*seen = append(*seen, inv.Args)

		subject := inv.Args[len(inv.Args)-1]
		if filepath.Base(subject) == "broken.jpg" {
			return &exiftool.Completion{ExitCode: 1, Stderr: "Error: Not a valid JPG - broken.jpg\n"}, nil
		}
		for i, a := range inv.Args {
			switch {
			case a == "-j":
				io.WriteString(inv.Stdout, `[{"SourceFile":"-","Comment":"hi","Keywords":["a","b"]}]`)
				return &exiftool.Completion{}, nil
			case a == "-o" && inv.Args[i+1] != "-":
				if err := os.WriteFile(inv.Args[i+1], []byte("rewritten"), 0644); err != nil {
					return nil, err
				}
				return &exiftool.Completion{}, nil
			}
		}
		if inv.Stdout != nil {
			io.WriteString(inv.Stdout, "rewritten:")
			if inv.Stdin != nil {
				io.Copy(inv.Stdout, inv.Stdin)
			}
		}
		return &exiftool.Completion{}, nil
	}
}

type cliRun struct {
	stdout string
	stderr string
	err    error
	calls  int32
	args   [][]string
}

func runCLI(t *testing.T, stdin string, args ...string) cliRun {
	t.Helper()

	var (
		calls atomic.Int32
		seen  [][]string
	)
	executor := mockery.NewMockExecutor_exiftool(t)
	executor.EXPECT().Execute(mock.Anything, mock.Anything).RunAndReturn(fakeEngine(&calls, &seen)).Maybe()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newRootCmd(exiftool.WithExecutor(executor))
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(testutils.Context(t))
	return cliRun{stdout: stdout.String(), stderr: stderr.String(), err: err, calls: calls.Load(), args: seen}
}

func TestWriteCommand(t *testing.T) {
	t.Run("stream_to_stream", func(t *testing.T) {
		res := runCLI(t, "jpeg", "write", "--set", "comment=hi", "-")
		require.NoError(t, res.err, "write should succeed")
		assert.Equal(t, "rewritten:jpeg", res.stdout, "rewritten bytes should go to stdout")
		require.Len(t, res.args, 1, "one engine run")
		assert.Equal(t, []string{"-comment=hi", "-"}, res.args[0], "arguments should match")
	})

	t.Run("file_to_file", func(t *testing.T) {
		dir := t.TempDir()
		src := testutils.WriteJPEG(t, dir, testutils.SourceFileName)
		dst := filepath.Join(dir, "out.jpg")

		res := runCLI(t, "", "write", "--add", "keywords=a", "--add", "keywords=b", "--clear", "comment", "-o", dst, src)
		require.NoError(t, res.err, "write should succeed")
		assert.Empty(t, res.stdout, "nothing should go to stdout")
		assert.Contains(t, res.stderr, "Created out.jpg", "user should be told about the new file")
		require.Len(t, res.args, 1, "one engine run")
		assert.Equal(t, []string{"-keywords=a", "-keywords=b", "-comment=", "-o", dst, src}, res.args[0], "arguments should match")
		assert.FileExists(t, dst, "destination should be written")
	})

	t.Run("clear_then_add_replaces", func(t *testing.T) {
		res := runCLI(t, "jpeg", "write", "--clear", "keywords", "--add", "keywords=a", "--add", "keywords=b", "-")
		require.NoError(t, res.err, "write should succeed")
		require.Len(t, res.args, 1, "one engine run")
		assert.Equal(t, []string{"-keywords=", "-keywords=a", "-keywords=b", "-"}, res.args[0], "flags should keep command line order")
	})

	t.Run("existing_destination", func(t *testing.T) {
		dir := t.TempDir()
		src := testutils.WriteJPEG(t, dir, "a.jpg")
		dst := testutils.WriteJPEG(t, dir, "b.jpg")

		res := runCLI(t, "", "write", "--set", "comment=hi", "-o", dst, src)
		require.Error(t, res.err, "collision should fail")
		assert.ErrorIs(t, res.err, exiftool.ErrDestinationExists, "error should name the collision")
		assert.Zero(t, res.calls, "engine should not run")
	})

	t.Run("engine_failure", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "broken.jpg")
		require.NoError(t, os.WriteFile(src, []byte("nope"), 0644), "writing source")

		res := runCLI(t, "", "write", "--set", "comment=hi", src)
		require.Error(t, res.err, "engine failure should fail the command")
		assert.Contains(t, res.err.Error(), "Not a valid JPG", "engine message should be surfaced")
		assert.Contains(t, res.stderr, "Failed broken.jpg", "user should be told")
	})

	t.Run("no_operations", func(t *testing.T) {
		res := runCLI(t, "jpeg", "write", "-")
		require.Error(t, res.err, "missing operations should fail")
		assert.Contains(t, res.err.Error(), "no tag operations", "error should explain")
		assert.Zero(t, res.calls, "engine should not run")
	})

	t.Run("bad_assignment", func(t *testing.T) {
		res := runCLI(t, "jpeg", "write", "--set", "comment", "-")
		require.Error(t, res.err, "malformed assignment should fail")
		assert.Contains(t, res.err.Error(), "expected NAME=VALUE", "error should explain")
	})
}

func TestOverwriteCommand(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0755), "creating nested dir")
	a := testutils.WriteJPEG(t, dir, "a.jpg")
	b := testutils.WriteJPEG(t, sub, "b.jpg")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644), "writing other file")

	pattern := filepath.Join(dir, "**", "*.jpg")
	res := runCLI(t, "", "overwrite", "--in-place", "--set", "artist=me", pattern)
	require.NoError(t, res.err, "overwrite should succeed")
	assert.Equal(t, int32(2), res.calls, "one engine run per matched file")

	var subjects []string
	for _, args := range res.args {
		assert.Equal(t, "-overwrite_original_in_place", args[len(args)-2], "in-place flag should be used")
		subjects = append(subjects, args[len(args)-1])
	}
	assert.ElementsMatch(t, []string{a, b}, subjects, "only jpg files should be written")
	assert.Contains(t, res.stderr, "2 written, 0 failed, 0 skipped", "summary should be printed")
	assert.Contains(t, res.stderr, "• overwrite "+pattern, "header should name the patterns")
	assert.Contains(t, res.stderr, "2 files processed", "batch should be closed on the console")

	t.Run("failure_sets_error", func(t *testing.T) {
		broken := filepath.Join(t.TempDir(), "broken.jpg")
		require.NoError(t, os.WriteFile(broken, []byte("nope"), 0644), "writing source")

		res := runCLI(t, "", "overwrite", "--set", "artist=me", broken)
		require.Error(t, res.err, "failed file should fail the command")
		assert.Contains(t, res.err.Error(), "1 of 1 files failed", "error should count failures")
	})

	t.Run("no_matches", func(t *testing.T) {
		res := runCLI(t, "", "overwrite", "--set", "artist=me", filepath.Join(t.TempDir(), "*.jpg"))
		require.Error(t, res.err, "empty match should fail")
		assert.Zero(t, res.calls, "engine should not run")
	})
}

func TestConfigFlag(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "exifpipe.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("exiftool:\n  escape_tag_values: true\n  extra_args: [\"-P\"]\n"), 0644), "writing config")

	res := runCLI(t, "jpeg", "--config", cfgPath, "write", "--set", "comment=Ğü", "-")
	require.NoError(t, res.err, "write should succeed")
	require.Len(t, res.args, 1, "one engine run")
	assert.Equal(t, []string{"-E", "-P", "-comment=&#x11E;&#xFC;", "-"}, res.args[0], "config should shape the arguments")

	res = runCLI(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "write", "--set", "a=b", "-")
	require.Error(t, res.err, "missing config should fail")
	assert.Contains(t, res.err.Error(), "loading config", "error should explain")
}

func TestTagsCommand(t *testing.T) {
	res := runCLI(t, "jpeg", "tags", "--json", "-")
	require.NoError(t, res.err, "tags should succeed")
	require.Len(t, res.args, 1, "one engine run")
	assert.Equal(t, []string{"-j", "-"}, res.args[0], "listing arguments should match")

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got), "output should be JSON")
	assert.Equal(t, "hi", got["Comment"], "scalar tag should be listed")
	assert.Equal(t, []any{"a", "b"}, got["Keywords"], "list tag should be listed")
	assert.NotContains(t, got, "SourceFile", "source file should be dropped")
}

func TestInspectCommand(t *testing.T) {
	path := testutils.WriteJPEG(t, t.TempDir(), "a.jpg")

	res := runCLI(t, "", "inspect", path)
	require.NoError(t, res.err, "inspect should succeed")
	assert.Equal(t, "JPEG 48x32\n", res.stdout, "summary should describe the image")
	assert.Zero(t, res.calls, "inspect should never run exiftool")

	res = runCLI(t, "not media", "inspect", "-")
	require.Error(t, res.err, "unrecognized input should fail")
}

func TestVersionCommand(t *testing.T) {
	res := runCLI(t, "", "version", "--json")
	require.NoError(t, res.err, "version should succeed")

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &info), "output should be JSON")
	assert.NotEmpty(t, info.GoVersion, "go version should be set")
	assert.NotEmpty(t, info.Version, "version should be set")

	assert.Contains(t, FormatVersion(&VersionInfo{Version: "v1.0.0", Modified: true}), "Version:   v1.0.0", "version should be formatted")
}
