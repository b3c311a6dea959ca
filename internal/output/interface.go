// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package output

import (
	"fmt"
	"io"

	"github.com/riftstat/ladder-export/internal/riot"
)

// Supported formats.
const (
	FormatCSV    = "csv"
	FormatNDJSON = "ndjson"
)

// OutputWriter writes ladder entries in one format.
type OutputWriter interface {
	// Write adds one entry.
	Write(entry riot.Entry) error

	// Close flushes everything and, for files, moves the artifact into
	// place. Nothing is visible at the destination before Close succeeds.
	Close() error

	// Discard abandons the output and removes any temporary file.
	Discard() error

	// Count returns the number of entries written.
	Count() int
}

// Extension returns the file extension for format.
func Extension(format string) (string, error) {
	switch format {
	case FormatCSV:
		return "csv", nil
	case FormatNDJSON:
		return "ndjson", nil
	}
	return "", fmt.Errorf("unsupported output format %q (want %s or %s)", format, FormatCSV, FormatNDJSON)
}

// New returns a writer for format that writes to w. Closing it does not
// close w.
func New(format string, w io.Writer) (OutputWriter, error) {
	switch format {
	case FormatCSV:
		return NewCSVWriter(w), nil
	case FormatNDJSON:
		return NewWriter(w), nil
	}
	_, err := Extension(format)
	return nil, err
}

// NewFileWriter returns a writer for format that commits to path on Close.
func NewFileWriter(format, path string) (OutputWriter, error) {
	if _, err := Extension(format); err != nil {
		return nil, err
	}

	file, err := createAtomic(path)
	if err != nil {
		return nil, err
	}

	if format == FormatCSV {
		w := NewCSVWriter(file)
		w.commit, w.abort = file.Commit, file.Abort
		return w, nil
	}
	w := NewWriter(file)
	w.commit, w.abort = file.Commit, file.Abort
	return w, nil
}
