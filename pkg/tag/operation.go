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

package tag

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ✏️ Operation is one requested edit; the set of variants is closed
type Operation interface {
	// TagName is the field the edit targets
	TagName() string
	isOperation()
}

// SetOperation sets a tag to its value or list
type SetOperation struct {
	Tag Tag
}

// ClearOperation removes a tag
type ClearOperation struct {
	Name string
}

// 🏭 Set returns an operation setting t
func Set(t Tag) Operation { return SetOperation{Tag: t} }

// 🏭 Clear returns an operation removing the named tag
func Clear(name string) Operation { return ClearOperation{Name: name} }

func (o SetOperation) TagName() string   { return o.Tag.Name() }
func (o ClearOperation) TagName() string { return o.Name }

func (SetOperation) isOperation()   {}
func (ClearOperation) isOperation() {}

// 🔍 Validate checks every operation before anything is handed to the engine
func Validate(ops []Operation) error {
	for i, op := range ops {
		if op == nil {
			return errors.Errorf("operation %d: %w", i, ErrNilOperation)
		}
		switch o := op.(type) {
		case SetOperation:
			if err := o.Tag.Validate(); err != nil {
				return errors.Errorf("operation %d: %w", i, err)
			}
		case ClearOperation:
			if strings.TrimSpace(o.Name) == "" {
				return errors.Errorf("operation %d: %w", i, ErrEmptyName)
			}
		default:
			return errors.Errorf("operation %d: unknown operation type %T", i, op)
		}
	}
	return nil
}
