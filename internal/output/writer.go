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
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/riftstat/ladder-export/internal/riot"
)

// Writer writes entries as newline-delimited JSON.
type Writer struct {
	mu      sync.Mutex
	output  io.Writer
	encoder *json.Encoder
	count   int
	commit  func() error
	abort   func() error
}

// NewWriter creates a new NDJSON writer that writes to the specified output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		output:  w,
		encoder: json.NewEncoder(w),
	}
}

// Write writes a single entry as one line.
func (w *Writer) Write(entry riot.Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.encoder.Encode(entry); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close commits the file if the writer owns one.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.commit != nil {
		return w.commit()
	}
	return nil
}

// Discard removes the temporary file if the writer owns one.
func (w *Writer) Discard() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.abort != nil {
		return w.abort()
	}
	return nil
}
