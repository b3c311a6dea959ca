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

package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/riftstat/ladder-export/internal/ladder"
)

// Tracker accumulates statistics while a run is in progress.
// It is not safe for concurrent use; runs are sequential.
type Tracker struct {
	startTime    time.Time
	apiCallCount int
	totalEntries int
	divisions    []DivisionStats
	index        map[string]int
	now          func() time.Time
}

// New starts a tracker at the current time.
func New() *Tracker {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Tracker {
	return &Tracker{
		startTime: now(),
		index:     make(map[string]int),
		now:       now,
	}
}

// RecordFetch notes one API call for division that returned n entries.
func (t *Tracker) RecordFetch(division string, n int) {
	t.apiCallCount++
	t.totalEntries += n

	i, ok := t.index[division]
	if !ok {
		i = len(t.divisions)
		t.index[division] = i
		t.divisions = append(t.divisions, DivisionStats{Division: division})
	}
	t.divisions[i].Fetches++
	t.divisions[i].Entries += n
	if n > 0 {
		t.divisions[i].Pages++
	}
}

// APICalls returns the number of requests recorded so far.
func (t *Tracker) APICalls() int {
	return t.apiCallCount
}

// TotalEntries returns the number of entries recorded so far.
func (t *Tracker) TotalEntries() int {
	return t.totalEntries
}

// Divisions returns per-division statistics in the order first seen.
func (t *Tracker) Divisions() []DivisionStats {
	return append([]DivisionStats(nil), t.divisions...)
}

// Elapsed returns the time since the tracker was created.
func (t *Tracker) Elapsed() time.Duration {
	return t.now().Sub(t.startTime)
}

// GenerateMetadata builds the final record for a finished run.
func (t *Tracker) GenerateMetadata(toolVersion string, f ladder.Filter, output string) *RunMetadata {
	completedAt := t.now()

	return &RunMetadata{
		ToolVersion: toolVersion,
		RunID:       fmt.Sprintf("%s-%s-%d", f.Region, f.Tier, t.startTime.Unix()),
		Parameters: RunParams{
			Region:    f.Region,
			Queue:     f.Queue,
			Tier:      f.Tier,
			Divisions: f.Divisions,
			PageMode:  f.PageMode.String(),
		},
		Results: RunResults{
			TotalEntries: t.totalEntries,
			APICallCount: t.apiCallCount,
			Divisions:    t.Divisions(),
			Duration:     completedAt.Sub(t.startTime).String(),
			StartedAt:    t.startTime,
			CompletedAt:  completedAt,
		},
		Output: output,
	}
}

// SidecarPath returns the metadata path written next to an artifact.
func SidecarPath(artifact string) string {
	return artifact + ".meta.json"
}

// SaveMetadata writes metadata to path through a temporary file and an
// atomic rename.
func SaveMetadata(metadata *RunMetadata, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metadata directory: %w", err)
	}

	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("failed to create metadata file: %w", err)
	}

	if err := WriteMetadataToWriter(metadata, file); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to close metadata file: %w", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to save metadata file: %w", err)
	}

	return nil
}

// LoadMetadata reads a metadata file written by SaveMetadata.
func LoadMetadata(path string) (*RunMetadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata file: %w", err)
	}
	defer file.Close()

	var metadata RunMetadata
	if err := json.NewDecoder(file).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	return &metadata, nil
}

// WriteMetadataToWriter writes indented JSON metadata to w.
func WriteMetadataToWriter(metadata *RunMetadata, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(metadata)
}
