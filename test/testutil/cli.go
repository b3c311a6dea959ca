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
	"bufio"
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// Exit codes of the ladder-export binary.
const (
	ExitOK          = 0
	ExitGeneral     = 1
	ExitFetchFailed = 3
)

const generatedSuffix = " successfully generated."

var (
	binaryOnce sync.Once
	binaryPath string
	buildErr   error
)

// BuildBinary compiles cmd/ladder-export once per test binary.
func BuildBinary(t *testing.T) string {
	t.Helper()

	binaryOnce.Do(func() {
		// Outlives any single test so every test can reuse the build.
		tmpDir, err := os.MkdirTemp("", "ladder-export-bin")
		if err != nil {
			buildErr = err
			return
		}
		binaryPath = filepath.Join(tmpDir, "ladder-export")

		root, err := moduleRoot()
		if err != nil {
			buildErr = err
			return
		}

		cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/ladder-export")
		cmd.Dir = root
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = err
			t.Logf("go build output: %s", out)
		}
	})

	if buildErr != nil {
		t.Fatalf("Failed to build ladder-export: %v", buildErr)
	}
	return binaryPath
}

// Run is the outcome of one ladder-export invocation.
type Run struct {
	Dir      string
	ExitCode int
	Stdout   string
	Stderr   string
}

// RunCLI executes ladder-export in dir. HOME points at dir and RIOT_API_KEY
// is cleared so neither user configuration nor a real key leaks in; env
// entries are applied on top.
func RunCLI(t *testing.T, dir string, args []string, env map[string]string) Run {
	t.Helper()

	cmd := exec.Command(BuildBinary(t), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+dir, "RIOT_API_KEY=")
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	run := Run{Dir: dir}
	if err := cmd.Run(); err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			t.Fatalf("Failed to start ladder-export: %v", err)
		}
		run.ExitCode = exitErr.ExitCode()
	}
	run.Stdout = stdout.String()
	run.Stderr = stderr.String()
	return run
}

// RunWithRiotServer runs ladder-export in dir against server with a test key.
func RunWithRiotServer(t *testing.T, server *RiotServer, dir string, args ...string) Run {
	t.Helper()

	return RunCLI(t, dir, args, map[string]string{
		"RIOT_API_KEY":      "test-key",
		"RIOT_API_BASE_URL": server.URL,
	})
}

// AssertGenerated checks that the run exited 0 and announced a generated
// file, and returns that file's path.
func AssertGenerated(t *testing.T, run Run) string {
	t.Helper()

	AssertExitCode(t, run, ExitOK)

	var name string
	scanner := bufio.NewScanner(strings.NewReader(run.Stdout))
	for scanner.Scan() {
		if line := scanner.Text(); strings.HasSuffix(line, generatedSuffix) {
			name = strings.TrimSuffix(line, generatedSuffix)
		}
	}
	if name == "" {
		t.Fatalf("No %q line in stdout:\n%s\nStderr: %s", strings.TrimSpace(generatedSuffix), run.Stdout, run.Stderr)
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(run.Dir, path)
	}
	AssertFileExists(t, path)
	return path
}

// AssertUsage checks that the run printed the usage table and exited 0
// without generating anything.
func AssertUsage(t *testing.T, run Run) {
	t.Helper()

	AssertExitCode(t, run, ExitOK)
	if !strings.Contains(run.Stdout, "Incorrect arguments") {
		t.Errorf("Usage not printed:\n%s", run.Stdout)
	}
	assertNotGenerated(t, run)
}

// AssertValidationReport checks that the run exited 0 with a report that
// mentions every problem in want and ends with the case-sensitivity note.
func AssertValidationReport(t *testing.T, run Run, want ...string) {
	t.Helper()

	AssertExitCode(t, run, ExitOK)
	for _, w := range want {
		if !strings.Contains(run.Stdout, w) {
			t.Errorf("Validation report does not mention %q:\n%s", w, run.Stdout)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(run.Stdout), "CASE SENSITIVE.") {
		t.Errorf("Validation report lacks the case-sensitivity note:\n%s", run.Stdout)
	}
	assertNotGenerated(t, run)
}

// AssertFetchFailed checks that the run exited 3 with the fetch error on
// stderr and generated nothing.
func AssertFetchFailed(t *testing.T, run Run) {
	t.Helper()

	AssertExitCode(t, run, ExitFetchFailed)
	if !strings.Contains(run.Stderr, "Error: ") || !strings.Contains(run.Stderr, "ladder fetch failed") {
		t.Errorf("Fetch error not reported on stderr:\n%s", run.Stderr)
	}
	assertNotGenerated(t, run)
}

// AssertExitCode checks the exit code of run.
func AssertExitCode(t *testing.T, run Run, want int) {
	t.Helper()

	if run.ExitCode != want {
		t.Fatalf("Exit code = %d, want %d\nStdout: %s\nStderr: %s", run.ExitCode, want, run.Stdout, run.Stderr)
	}
}

func assertNotGenerated(t *testing.T, run Run) {
	t.Helper()

	if strings.Contains(run.Stdout, generatedSuffix) {
		t.Errorf("Unexpected generated file:\n%s", run.Stdout)
	}
	AssertNoOutput(t, run.Dir, "*.csv")
	AssertNoOutput(t, run.Dir, "*.ndjson")
}

// moduleRoot walks up from the working directory to the directory
// holding go.mod.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
