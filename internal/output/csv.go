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
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/riftstat/ladder-export/internal/riot"
)

// knownColumns fixes the position of the fields the ladder API documents.
// Any other key follows them in the order it was first seen.
var knownColumns = []string{
	"leagueId", "queueType", "tier", "rank",
	"summonerId", "puuid", "leaguePoints", "wins", "losses",
	"veteran", "inactive", "freshBlood", "hotStreak", "miniSeries",
}

// CSVWriter buffers entries and writes them as CSV on Close, since the
// header depends on every entry.
type CSVWriter struct {
	mu      sync.Mutex
	output  io.Writer
	entries []riot.Entry
	commit  func() error
	abort   func() error
}

// NewCSVWriter creates a CSV writer that writes to w on Close.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{output: w}
}

// Write buffers one entry.
func (w *CSVWriter) Write(entry riot.Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.entries = append(w.entries, entry)
	return nil
}

// Count returns the number of entries buffered.
func (w *CSVWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

// Close writes the header and all rows, then commits the file if the
// writer owns one. An empty result set produces an empty file.
func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.flush(); err != nil {
		if w.abort != nil {
			_ = w.abort()
		}
		return err
	}
	if w.commit != nil {
		return w.commit()
	}
	return nil
}

// Discard drops buffered entries and removes the temporary file.
func (w *CSVWriter) Discard() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.entries = nil
	if w.abort != nil {
		return w.abort()
	}
	return nil
}

func (w *CSVWriter) flush() error {
	if len(w.entries) == 0 {
		return nil
	}

	header := Header(w.entries)
	cw := csv.NewWriter(w.output)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(header))
	for i, entry := range w.entries {
		for j, key := range header {
			cell, err := formatCell(entry[key])
			if err != nil {
				return fmt.Errorf("row %d column %s: %w", i+1, key, err)
			}
			row[j] = cell
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// Header returns the union of keys across entries. Documented ladder
// fields come first in a fixed order; the rest follow in the order of the
// entry that introduced them, alphabetically within one entry.
func Header(entries []riot.Entry) []string {
	present := mapset.NewThreadUnsafeSet[string]()
	for _, e := range entries {
		for k := range e {
			present.Add(k)
		}
	}

	header := make([]string, 0, present.Cardinality())
	seen := mapset.NewThreadUnsafeSet[string]()
	for _, k := range knownColumns {
		if present.Contains(k) {
			header = append(header, k)
			seen.Add(k)
		}
	}

	for _, e := range entries {
		var extra []string
		for k := range e {
			if !seen.Contains(k) {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		for _, k := range extra {
			seen.Add(k)
			header = append(header, k)
		}
	}
	return header
}

func formatCell(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
