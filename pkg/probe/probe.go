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

// Package probe summarizes embedded metadata without running exiftool.
//
// It is used to check what a write produced: EXIF blocks are decoded with
// goexif, audio tags (ID3, MP4, FLAC, OGG) with dhowden/tag, and image
// dimensions come from the standard image decoders.
package probe

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/dhowden/tag"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	"gitlab.com/tozd/go/errors"
)

var ErrNoMetadata = errors.Base("no recognizable metadata")

const (
	CategoryEXIF  = "EXIF"
	CategoryAudio = "Audio"
)

// Field is one decoded metadata entry
type Field struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Category string `json:"category"`
}

// Summary is everything probe could decode from a file
type Summary struct {
	Format string  `json:"format,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Fields []Field `json:"fields"`
}

// Get returns the value of the first field named key, ignoring case
func (s *Summary) Get(key string) (string, bool) {
	for _, f := range s.Fields {
		if strings.EqualFold(f.Key, key) {
			return f.Value, true
		}
	}
	return "", false
}

// ReadFile probes the file at path
func ReadFile(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// ReadBytes probes an in-memory file, such as a stream write's output
func ReadBytes(data []byte) (*Summary, error) {
	return Read(bytes.NewReader(data))
}

// Read probes r. It returns ErrNoMetadata when r is neither an image nor
// carries EXIF or audio tags.
func Read(r io.ReadSeeker) (*Summary, error) {
	s := &Summary{Fields: []Field{}}
	recognized := false

	if err := rewind(r); err != nil {
		return nil, err
	}
	if cfg, format, err := image.DecodeConfig(r); err == nil {
		s.Format = strings.ToUpper(format)
		s.Width = cfg.Width
		s.Height = cfg.Height
		recognized = true
	}

	if err := rewind(r); err != nil {
		return nil, err
	}
	if x, err := exif.Decode(r); err == nil {
		w := &walker{}
		if err := x.Walk(w); err != nil {
			return nil, errors.Errorf("walking exif: %w", err)
		}
		sort.Slice(w.fields, func(i, j int) bool { return w.fields[i].Key < w.fields[j].Key })
		s.Fields = append(s.Fields, w.fields...)
		if s.Format == "" {
			s.Format = CategoryEXIF
		}
		recognized = true
	}

	if err := rewind(r); err != nil {
		return nil, err
	}
	if m, err := tag.ReadFrom(r); err == nil {
		s.Fields = append(s.Fields, audioFields(m)...)
		if s.Format == "" {
			s.Format = string(m.FileType())
			if s.Format == "" || s.Format == string(tag.UnknownFileType) {
				s.Format = string(m.Format())
			}
		}
		recognized = true
	}

	if !recognized {
		return nil, ErrNoMetadata
	}
	return s, nil
}

func rewind(r io.Seeker) error {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return errors.Errorf("seeking to start: %w", err)
	}
	return nil
}

type walker struct {
	fields []Field
}

func (w *walker) Walk(name exif.FieldName, t *tiff.Tag) error {
	w.fields = append(w.fields, Field{
		Key:      string(name),
		Value:    tagValue(t),
		Category: CategoryEXIF,
	})
	return nil
}

func tagValue(t *tiff.Tag) string {
	if t.Format() == tiff.StringVal {
		if v, err := t.StringVal(); err == nil {
			return strings.TrimSpace(v)
		}
	}
	return t.String()
}

func audioFields(m tag.Metadata) []Field {
	var out []Field
	add := func(key, val string) {
		if val != "" {
			out = append(out, Field{Key: key, Value: val, Category: CategoryAudio})
		}
	}

	add("Title", m.Title())
	add("Artist", m.Artist())
	add("Album", m.Album())
	add("AlbumArtist", m.AlbumArtist())
	add("Composer", m.Composer())
	add("Genre", m.Genre())
	add("Comment", m.Comment())
	if m.Year() != 0 {
		add("Year", fmt.Sprintf("%d", m.Year()))
	}
	if track, total := m.Track(); track != 0 {
		if total != 0 {
			add("Track", fmt.Sprintf("%d/%d", track, total))
		} else {
			add("Track", fmt.Sprintf("%d", track))
		}
	}
	if disc, total := m.Disc(); disc != 0 {
		if total != 0 {
			add("Disc", fmt.Sprintf("%d/%d", disc, total))
		} else {
			add("Disc", fmt.Sprintf("%d", disc))
		}
	}
	add("Lyrics", m.Lyrics())
	return out
}
