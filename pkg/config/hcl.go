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

package config

import (
	"context"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/exifpipe/pkg/exiftool"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// home lets executable paths be written as "${home}/bin/exiftool"
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"home": cty.StringVal(homeDir()),
		},
	}

	type hclConfig struct {
		ExifTool *struct {
			ExecutablePath   string   `hcl:"executable_path,optional"`
			EscapeTagValues  bool     `hcl:"escape_tag_values,optional"`
			WorkingDirectory string   `hcl:"working_directory,optional"`
			ExtraArgs        []string `hcl:"extra_args,optional"`
			KeepBackup       bool     `hcl:"keep_backup,optional"`
		} `hcl:"exiftool,block"`
		Async       bool `hcl:"async,optional"`
		Concurrency int  `hcl:"concurrency,optional"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Async:       hclCfg.Async,
		Concurrency: hclCfg.Concurrency,
	}
	if hclCfg.ExifTool != nil {
		cfg.ExifTool = exiftool.Options{
			ExecutablePath:   hclCfg.ExifTool.ExecutablePath,
			EscapeTagValues:  hclCfg.ExifTool.EscapeTagValues,
			WorkingDirectory: hclCfg.ExifTool.WorkingDirectory,
			ExtraArgs:        hclCfg.ExifTool.ExtraArgs,
			KeepBackup:       hclCfg.ExifTool.KeepBackup,
		}
	}

	return cfg, nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
