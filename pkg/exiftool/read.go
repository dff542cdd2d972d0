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

package exiftool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/exifpipe/pkg/tag"
	"gitlab.com/tozd/go/errors"
)

const sourceFileKey = "SourceFile"

// 📖 GetTags lists the tags of the file read from src
func (e *ExifTool) GetTags(ctx context.Context, src io.Reader) ([]tag.Tag, error) {
	if src == nil {
		return nil, errors.WithStack(ErrNilSource)
	}
	return e.listTags(ctx, "-", contextReader{ctx: ctx, r: src})
}

// 📖 GetFileTags lists the tags of the file at path
func (e *ExifTool) GetFileTags(ctx context.Context, path string) ([]tag.Tag, error) {
	if path == "" {
		return nil, errors.Errorf("source: %w", ErrEmptyPath)
	}
	return e.listTags(ctx, path, nil)
}

func (e *ExifTool) listTags(ctx context.Context, subject string, stdin io.Reader) ([]tag.Tag, error) {
	argv := []string{"-j"}
	if e.options.EscapeTagValues {
		argv = append(argv, "-E")
	}
	argv = append(argv, subject)

	zerolog.Ctx(ctx).Debug().Strs("args", argv).Msg("listing tags")

	var out bytes.Buffer
	c, err := newSettings(e.ro).executor.Execute(ctx, Invocation{
		Path:   e.options.executable(),
		Args:   argv,
		Dir:    e.options.WorkingDirectory,
		Stdin:  stdin,
		Stdout: &out,
	})
	if err != nil {
		return nil, errors.Errorf("executing exiftool: %w", err)
	}
	if !Succeeded(c) {
		return nil, errors.Errorf("listing tags: %s", ErrorMessage(c))
	}

	return ParseTagListing(out.Bytes())
}

// 🧩 ParseTagListing decodes the output of exiftool -j for a single file.
// Arrays become list tags; other values are formatted as text.
func ParseTagListing(data []byte) ([]tag.Tag, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var files []map[string]any
	if err := dec.Decode(&files); err != nil {
		return nil, errors.Errorf("decoding tag listing: %w", err)
	}
	if len(files) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(files[0]))
	for name := range files[0] {
		if name == sourceFileKey {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	tags := make([]tag.Tag, 0, len(names))
	for _, name := range names {
		switch v := files[0][name].(type) {
		case []any:
			values := make([]string, 0, len(v))
			for _, item := range v {
				values = append(values, formatValue(item))
			}
			tags = append(tags, tag.NewList(name, values...))
		default:
			tags = append(tags, tag.New(name, formatValue(v)))
		}
	}
	return tags, nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case nil:
		return ""
	case map[string]any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
