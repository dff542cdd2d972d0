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

// Package tag models metadata fields and the edits applied to them.
package tag

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrEmptyName is returned when a tag or operation has no name
	ErrEmptyName = errors.Base("tag name is required")
	// ErrNilOperation is returned when an operation list contains a nil entry
	ErrNilOperation = errors.Base("operation is nil")
)

// 🏷️ Tag is a named metadata field holding either one value or an ordered list
type Tag struct {
	name   string
	value  string
	list   []string
	isList bool
}

// 🏭 New creates a scalar tag
func New(name, value string) Tag {
	return Tag{name: name, value: value}
}

// 🏭 NewList creates a list tag; element order is kept as given
func NewList(name string, values ...string) Tag {
	list := make([]string, len(values))
	copy(list, values)
	return Tag{name: name, list: list, isList: true}
}

// Name returns the tag name as supplied
func (t Tag) Name() string { return t.name }

// Value returns the scalar value, or the list joined with ", " for list tags
func (t Tag) Value() string {
	if t.isList {
		return strings.Join(t.list, ", ")
	}
	return t.value
}

// IsList reports whether the tag carries a list of values
func (t Tag) IsList() bool { return t.isList }

// List returns a copy of the list values in insertion order
func (t Tag) List() []string {
	if !t.isList {
		return nil
	}
	out := make([]string, len(t.list))
	copy(out, t.list)
	return out
}

// Values returns the values the tag expands to, one per engine assignment
func (t Tag) Values() []string {
	if t.isList {
		return t.List()
	}
	return []string{t.value}
}

// 🔍 Is compares the tag name case-insensitively
func (t Tag) Is(name string) bool {
	return strings.EqualFold(t.name, name)
}

// Validate checks the tag has a name
func (t Tag) Validate() error {
	if strings.TrimSpace(t.name) == "" {
		return errors.WithStack(ErrEmptyName)
	}
	return nil
}

// 🔍 Find returns the first tag matching name, ignoring case
func Find(tags []Tag, name string) (Tag, bool) {
	for _, t := range tags {
		if t.Is(name) {
			return t, true
		}
	}
	return Tag{}, false
}
