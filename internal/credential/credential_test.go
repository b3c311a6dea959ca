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

package credential

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	keyPath := filepath.Join(dir, "api_key.txt")
	if err := os.WriteFile(keyPath, []byte("  RGAPI-test-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(keyPath)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got != "RGAPI-test-key" {
		t.Errorf("LoadFile() = %q, want %q", got, "RGAPI-test-key")
	}

	got, err = LoadFile(filepath.Join(dir, "missing.txt"))
	if err != nil {
		t.Fatalf("LoadFile() on missing file error = %v, want nil", err)
	}
	if got != "" {
		t.Errorf("LoadFile() on missing file = %q, want empty", got)
	}

	if _, err := LoadFile(dir); err == nil {
		t.Error("LoadFile() on a directory should fail")
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "key.txt")
	if err := os.WriteFile(keyPath, []byte("from-file"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		flagKey string
		envKey  string
		path    string
		want    string
	}{
		{
			name:    "flag wins",
			flagKey: "from-flag",
			envKey:  "from-env",
			path:    keyPath,
			want:    "from-flag",
		},
		{
			name:   "env beats file",
			envKey: "from-env",
			path:   keyPath,
			want:   "from-env",
		},
		{
			name: "file",
			path: keyPath,
			want: "from-file",
		},
		{
			name: "nothing configured",
			path: filepath.Join(dir, "absent.txt"),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvVar, tt.envKey)

			got, err := Resolve(tt.flagKey, tt.path)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}
