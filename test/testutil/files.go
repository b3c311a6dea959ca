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

package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to name inside dir and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// FindOutput returns the single file in dir matching pattern.
func FindOutput(t *testing.T, dir, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		t.Fatalf("Bad pattern %q: %v", pattern, err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected exactly one file matching %s in %s, found %v", pattern, dir, matches)
	}
	return matches[0]
}

// AssertNoOutput checks that nothing in dir matches pattern.
func AssertNoOutput(t *testing.T, dir, pattern string) {
	t.Helper()

	matches, _ := filepath.Glob(filepath.Join(dir, pattern))
	if len(matches) != 0 {
		t.Fatalf("Expected no files matching %s, found %v", pattern, matches)
	}
}

// AssertFileExists checks that a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks that a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("Expected file to not exist: %s", path)
	}
}

// ReadCSV parses a CSV artifact into its header and data rows.
func ReadCSV(t *testing.T, path string) (header []string, rows [][]string) {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV %s: %v", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], records[1:]
}

// Column returns the values of column name across rows.
func Column(t *testing.T, header []string, rows [][]string, name string) []string {
	t.Helper()

	idx := -1
	for i, h := range header {
		if h == name {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("Column %q not in header %v", name, header)
	}

	values := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row[idx]
	}
	return values
}
