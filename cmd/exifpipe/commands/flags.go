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

package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/walteh/exifpipe/pkg/tag"
	"gitlab.com/tozd/go/errors"
)

type flagKind int

const (
	kindSet flagKind = iota
	kindAdd
	kindClear
)

func (k flagKind) flag() string {
	switch k {
	case kindSet:
		return "--set"
	case kindAdd:
		return "--add"
	default:
		return "--clear"
	}
}

type flagEntry struct {
	kind flagKind
	raw  string
}

// tagFlags collects the tag operations shared by the write commands, in the
// order they appear on the command line
type tagFlags struct {
	entries []flagEntry
}

// orderedValue appends every occurrence of one flag to the shared entries
type orderedValue struct {
	flags *tagFlags
	kind  flagKind
	typ   string
}

var _ pflag.Value = (*orderedValue)(nil)

func (v *orderedValue) Set(s string) error {
	v.flags.entries = append(v.flags.entries, flagEntry{kind: v.kind, raw: s})
	return nil
}

func (v *orderedValue) String() string {
	var vals []string
	for _, e := range v.flags.entries {
		if e.kind == v.kind {
			vals = append(vals, e.raw)
		}
	}
	return "[" + strings.Join(vals, ",") + "]"
}

func (v *orderedValue) Type() string {
	return v.typ
}

func (f *tagFlags) register(cmd *cobra.Command) {
	cmd.Flags().VarP(&orderedValue{flags: f, kind: kindSet, typ: "NAME=VALUE"}, "set", "s", "set a tag (repeatable)")
	cmd.Flags().VarP(&orderedValue{flags: f, kind: kindAdd, typ: "NAME=VALUE"}, "add", "a", "append to a list tag (repeatable, order kept)")
	cmd.Flags().Var(&orderedValue{flags: f, kind: kindClear, typ: "NAME"}, "clear", "delete a tag (repeatable)")
}

// pending is an operation under construction; --add values gather into the
// list opened by the first --add of that name
type pending struct {
	kind  flagKind
	name  string
	value string
	list  []string
}

// operations returns the flags as operations in command line order. Repeated
// --add values for a name join one list at the position of the first, until a
// --set or --clear of the same name closes it.
func (f *tagFlags) operations() ([]tag.Operation, error) {
	var plan []*pending
	open := map[string]*pending{}

	for _, e := range f.entries {
		switch e.kind {
		case kindClear:
			name := strings.TrimSpace(e.raw)
			plan = append(plan, &pending{kind: kindClear, name: name})
			delete(open, name)
		default:
			name, value, err := splitAssignment(e.raw)
			if err != nil {
				return nil, errors.Errorf("%s: %w", e.kind.flag(), err)
			}
			if e.kind == kindSet {
				plan = append(plan, &pending{kind: kindSet, name: name, value: value})
				delete(open, name)
				continue
			}
			if p, ok := open[name]; ok {
				p.list = append(p.list, value)
				continue
			}
			p := &pending{kind: kindAdd, name: name, list: []string{value}}
			plan = append(plan, p)
			open[name] = p
		}
	}

	ops := make([]tag.Operation, 0, len(plan))
	for _, p := range plan {
		switch p.kind {
		case kindSet:
			ops = append(ops, tag.Set(tag.New(p.name, p.value)))
		case kindAdd:
			ops = append(ops, tag.Set(tag.NewList(p.name, p.list...)))
		case kindClear:
			ops = append(ops, tag.Clear(p.name))
		}
	}

	if len(ops) == 0 {
		return nil, errors.New("no tag operations given; use --set, --add or --clear")
	}
	if err := tag.Validate(ops); err != nil {
		return nil, err
	}
	return ops, nil
}

func splitAssignment(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", errors.Errorf("expected NAME=VALUE, got %q", s)
	}
	return name, value, nil
}
