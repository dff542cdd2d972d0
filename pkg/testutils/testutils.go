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

// Package testutils holds fixtures shared by the package tests.
package testutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// SourceFileName mirrors a real-world name with a space in it
const SourceFileName = "space test.jpg"

func fixture() image.Image {
	img := imaging.New(48, 32, color.NRGBA{R: 200, G: 80, B: 40, A: 255})
	return imaging.Blur(img, 0.5)
}

// 🖼️ JPEG returns the bytes of a small generated JPEG
func JPEG(t testing.TB) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, fixture(), imaging.JPEG), "encoding fixture")
	return buf.Bytes()
}

// 🖼️ WriteJPEG writes the fixture JPEG to dir/name and returns its path
func WriteJPEG(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(fixture(), path), "saving fixture")
	return path
}

// 🔍 RequireExifTool skips the test when exiftool is not installed
func RequireExifTool(t testing.TB) string {
	t.Helper()
	path, err := exec.LookPath("exiftool")
	if err != nil {
		t.Skip("exiftool not found on PATH")
	}
	return path
}

// 🐚 WriteScript writes an executable shell script standing in for exiftool
// and returns its path
func WriteScript(t testing.TB, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found on PATH")
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755), "writing script")
	return path
}

// 📝 Context returns a context carrying a logger that writes to the test log
func Context(t testing.TB) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}
