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
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/exifpipe/pkg/tag"
)

func TestTagFlagsOperations(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []tag.Operation
		wantErr string
	}{
		{
			name: "clear_then_add_replaces",
			args: []string{"--clear", "keywords", "--add", "keywords=a", "--add", "keywords=b"},
			want: []tag.Operation{
				tag.Clear("keywords"),
				tag.Set(tag.NewList("keywords", "a", "b")),
			},
		},
		{
			name: "mixed_flags_keep_order",
			args: []string{"-a", "keywords=a", "-s", "comment=hi", "-a", "subject=x", "-a", "keywords=b", "--clear", "artist"},
			want: []tag.Operation{
				tag.Set(tag.NewList("keywords", "a", "b")),
				tag.Set(tag.New("comment", "hi")),
				tag.Set(tag.NewList("subject", "x")),
				tag.Clear("artist"),
			},
		},
		{
			name: "clear_between_adds_starts_a_new_list",
			args: []string{"--add", "keywords=a", "--clear", "keywords", "--add", "keywords=b"},
			want: []tag.Operation{
				tag.Set(tag.NewList("keywords", "a")),
				tag.Clear("keywords"),
				tag.Set(tag.NewList("keywords", "b")),
			},
		},
		{
			name: "value_may_contain_equals",
			args: []string{"--set", "comment=a=b"},
			want: []tag.Operation{tag.Set(tag.New("comment", "a=b"))},
		},
		{
			name:    "missing_value",
			args:    []string{"--set", "comment"},
			wantErr: "--set: expected NAME=VALUE",
		},
		{
			name:    "missing_add_name",
			args:    []string{"--add", "=x"},
			wantErr: "--add: expected NAME=VALUE",
		},
		{
			name:    "nothing_given",
			wantErr: "no tag operations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flags tagFlags
			cmd := &cobra.Command{Use: "test"}
			flags.register(cmd)
			require.NoError(t, cmd.ParseFlags(tt.args), "parsing flags")

			ops, err := flags.operations()
			if tt.wantErr != "" {
				require.Error(t, err, "operations should fail")
				assert.Contains(t, err.Error(), tt.wantErr, "error should explain")
				return
			}
			require.NoError(t, err, "operations should succeed")
			assert.Equal(t, tt.want, ops, "operations should match")
		})
	}
}

func TestTagFlagsHelp(t *testing.T) {
	var flags tagFlags
	cmd := &cobra.Command{Use: "test"}
	flags.register(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"-s", "a=1", "-a", "b=2", "-s", "c=3"}))

	assert.Equal(t, "[a=1,c=3]", cmd.Flags().Lookup("set").Value.String(), "set flag should list its values")
	assert.Equal(t, "NAME=VALUE", cmd.Flags().Lookup("add").Value.Type(), "type should describe the argument")
	assert.Equal(t, "NAME", cmd.Flags().Lookup("clear").Value.Type(), "type should describe the argument")
}
