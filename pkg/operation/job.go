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

package operation

import (
	"github.com/google/uuid"
	"github.com/walteh/exifpipe/pkg/exiftool"
	"github.com/walteh/exifpipe/pkg/status"
	"github.com/walteh/exifpipe/pkg/tag"
	"gitlab.com/tozd/go/errors"
)

// 🔀 Kind selects how a job writes its file
type Kind int

const (
	KindCopy             Kind = iota // source file to a new destination file
	KindOverwrite                    // replace the source file
	KindOverwriteInPlace             // replace the source file keeping its inode
)

func (k Kind) String() string {
	switch k {
	case KindCopy:
		return "file"
	case KindOverwrite:
		return "overwrite"
	case KindOverwriteInPlace:
		return "in-place"
	default:
		return "unknown"
	}
}

// 📦 Job is one file write in a batch
type Job struct {
	ID          uuid.UUID
	Source      string
	Destination string
	Kind        Kind
	Operations  []tag.Operation
}

// 🏭 NewJob creates a job with a fresh id
func NewJob(source string, kind Kind, ops []tag.Operation) Job {
	return Job{
		ID:         uuid.New(),
		Source:     source,
		Kind:       kind,
		Operations: ops,
	}
}

// WithDestination returns a copy of the job writing to dst
func (j Job) WithDestination(dst string) Job {
	j.Destination = dst
	return j
}

// Target is the file the job leaves behind
func (j Job) Target() string {
	if j.Kind == KindCopy {
		return j.Destination
	}
	return j.Source
}

// 📋 Result pairs a job with what happened to it
type Result struct {
	Job   Job
	Write *exiftool.WriteResult
	Err   error
}

// 📊 Outcome classifies the result for status tracking
func (r Result) Outcome() status.Outcome {
	switch {
	case r.Err != nil && errors.Is(r.Err, exiftool.ErrDestinationExists):
		return status.OutcomeSkipped
	case r.Err != nil:
		return status.OutcomeFailed
	case r.Write == nil:
		return status.OutcomeUnknown
	case r.Write.Success:
		return status.OutcomeWritten
	default:
		return status.OutcomeFailed
	}
}

// Message is the text shown next to the file
func (r Result) Message() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	if r.Write != nil {
		return r.Write.ErrorMessage
	}
	return ""
}
