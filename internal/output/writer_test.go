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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/riftstat/ladder-export/internal/riot"
)

func TestWriter_Write(t *testing.T) {
	tests := []struct {
		name    string
		entries []riot.Entry
		want    []string
	}{
		{
			name:    "single entry",
			entries: []riot.Entry{{"rank": "I", "wins": json.Number("12")}},
			want:    []string{`{"rank":"I","wins":12}`},
		},
		{
			name: "multiple entries",
			entries: []riot.Entry{
				{"rank": "I", "hotStreak": true},
				{"rank": "II", "hotStreak": false},
			},
			want: []string{
				`{"hotStreak":true,"rank":"I"}`,
				`{"hotStreak":false,"rank":"II"}`,
			},
		},
		{
			name:    "no entries",
			entries: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			writer := NewWriter(&buf)

			for _, e := range tt.entries {
				if err := writer.Write(e); err != nil {
					t.Fatalf("Write failed: %v", err)
				}
			}
			if err := writer.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			got := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if buf.Len() == 0 {
				got = []string{}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
			if writer.Count() != len(tt.entries) {
				t.Errorf("Count() = %d, want %d", writer.Count(), len(tt.entries))
			}
		})
	}
}

func TestHeader(t *testing.T) {
	entries := []riot.Entry{
		{"wins": 1, "rank": "I", "zeta": "z", "alpha": "a"},
		{"rank": "II", "leagueId": "x", "beta": "b", "alpha": "a"},
	}

	want := []string{"leagueId", "rank", "wins", "alpha", "zeta", "beta"}
	if diff := cmp.Diff(want, Header(entries)); diff != "" {
		t.Errorf("Header() mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)

	entries := []riot.Entry{
		{"summonerId": "s1", "leaguePoints": json.Number("75"), "veteran": true},
		{"summonerId": "s,2", "leaguePoints": json.Number("0"), "miniSeries": map[string]any{"wins": json.Number("1")}},
	}
	for _, e := range entries {
		if err := w.Write(e); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if buf.Len() != 0 {
		t.Error("CSV written before Close")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	want := "summonerId,leaguePoints,veteran,miniSeries\n" +
		"s1,75,true,\n" +
		"\"s,2\",0,,\"{\"\"wins\"\":1}\"\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
	if w.Count() != 2 {
		t.Errorf("Count() = %d, want 2", w.Count())
	}
}

func TestCSVWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty result set wrote %q", buf.String())
	}
}

func TestNewFileWriter_CommitsOnClose(t *testing.T) {
	for _, format := range []string{FormatCSV, FormatNDJSON} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "sub", "out."+format)

			w, err := NewFileWriter(format, path)
			if err != nil {
				t.Fatalf("NewFileWriter failed: %v", err)
			}
			if err := w.Write(riot.Entry{"rank": "IV"}); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Fatalf("artifact visible before Close: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile failed: %v", err)
			}
			if !strings.Contains(string(data), "IV") {
				t.Errorf("artifact = %q", data)
			}

			files, _ := os.ReadDir(filepath.Dir(path))
			if len(files) != 1 {
				t.Errorf("directory has %d files, want only the artifact", len(files))
			}
		})
	}
}

func TestNewFileWriter_Discard(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	w, err := NewFileWriter(FormatCSV, path)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	_ = w.Write(riot.Entry{"rank": "I"})
	if err := w.Discard(); err != nil {
		t.Fatalf("Discard failed: %v", err)
	}

	files, _ := os.ReadDir(dir)
	if len(files) != 0 {
		t.Errorf("Discard left %d files behind", len(files))
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	if _, err := New("xlsx", &bytes.Buffer{}); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := NewFileWriter("xlsx", filepath.Join(t.TempDir(), "x")); err == nil {
		t.Error("expected error for unsupported format")
	}
}
