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
	"os"
	"path/filepath"
)

// atomicFile is written under a temporary name and renamed on Commit.
type atomicFile struct {
	*os.File
	path string
	done bool
}

func createAtomic(path string) (*atomicFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &atomicFile{File: file, path: path}, nil
}

// Commit closes the temporary file and renames it to the final path.
func (a *atomicFile) Commit() error {
	if a.done {
		return nil
	}
	a.done = true

	if err := a.File.Close(); err != nil {
		_ = os.Remove(a.Name())
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Chmod(a.Name(), 0o644); err != nil {
		_ = os.Remove(a.Name())
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := os.Rename(a.Name(), a.path); err != nil {
		_ = os.Remove(a.Name())
		return fmt.Errorf("failed to save output file: %w", err)
	}
	return nil
}

// Abort closes and removes the temporary file.
func (a *atomicFile) Abort() error {
	if a.done {
		return nil
	}
	a.done = true

	_ = a.File.Close()
	if err := os.Remove(a.Name()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove temporary output: %w", err)
	}
	return nil
}
