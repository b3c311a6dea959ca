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

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	ladderrors "github.com/riftstat/ladder-export/internal/errors"
	"github.com/riftstat/ladder-export/internal/ladder"
	"github.com/riftstat/ladder-export/internal/metadata"
	"github.com/riftstat/ladder-export/test/testutil"
)

// setupEnv isolates a run from user configuration and points it at server.
func setupEnv(t *testing.T, baseURL string) string {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)
	t.Setenv("RIOT_API_KEY", "test-key")
	t.Setenv("RIOT_API_BASE_URL", baseURL)
	for _, env := range []string{"RIOT_API_KEY_FILE", "LADDER_OUTPUT_DIR", "LADDER_OUTPUT_FORMAT", "LADDER_RATE_LIMIT", "LADDER_MAX_RETRIES", "LADDER_LOG_FORMAT"} {
		t.Setenv(env, "")
	}

	fixed := time.Date(2025, 2, 3, 4, 5, 0, 0, time.Local)
	prev := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = prev })

	return dir
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		want   ladder.RawFilter
		wantOK bool
	}{
		{
			name:   "special tier with three arguments",
			args:   []string{"kr", "RANKED_SOLO_5x5", "CHALLENGER"},
			want:   ladder.RawFilter{Region: "kr", Queue: "RANKED_SOLO_5x5", Tier: "CHALLENGER", GetAll: "True"},
			wantOK: true,
		},
		{
			name: "divisioned tier with five arguments",
			args: []string{"oc1", "RANKED_SOLO_5x5", "SILVER", "I, IV", "False"},
			want: ladder.RawFilter{
				Region: "oc1", Queue: "RANKED_SOLO_5x5", Tier: "SILVER",
				Divisions: []string{"I", "IV"}, GetAll: "False",
			},
			wantOK: true,
		},
		{
			name: "divisioned tier with three arguments",
			args: []string{"oc1", "RANKED_SOLO_5x5", "SILVER"},
		},
		{
			name: "four arguments",
			args: []string{"oc1", "RANKED_SOLO_5x5", "CHALLENGER", "I"},
		},
		{
			name: "special tier with empty divisions and get all",
			args: []string{"oc1", "RANKED_SOLO_5x5", "CHALLENGER", "", "True"},
		},
		{
			name: "special tier with divisions and get all",
			args: []string{"oc1", "RANKED_SOLO_5x5", "CHALLENGER", "I", "True"},
		},
		{
			name: "lowercase special tier with five arguments is left to validation",
			args: []string{"oc1", "RANKED_SOLO_5x5", "challenger", "I", "True"},
			want: ladder.RawFilter{
				Region: "oc1", Queue: "RANKED_SOLO_5x5", Tier: "challenger",
				Divisions: []string{"I"}, GetAll: "True",
			},
			wantOK: true,
		},
		{
			name: "no arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseArgs(tt.args)
			if ok != tt.wantOK {
				t.Fatalf("parseArgs() ok = %v, want %v", ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRun_WrongArityPrintsUsage(t *testing.T) {
	server := testutil.NewRiotServer(t)
	dir := setupEnv(t, server.URL)

	stdout, _, err := execute(t, "oc1", "RANKED_SOLO_5x5", "GOLD")
	require.NoError(t, err)
	require.Contains(t, stdout, "Incorrect arguments")
	for _, v := range []string{"br1", "RANKED_FLEX_TT", "GRANDMASTER", "IV", ladder.CaseSensitiveNote} {
		require.Contains(t, stdout, v)
	}
	require.Zero(t, server.RequestCount())
	testutil.AssertNoOutput(t, dir, "league_data_*")
}

func TestRun_SpecialTierWithFiveArgumentsPrintsUsage(t *testing.T) {
	server := testutil.NewRiotServer(t)
	server.SetLeague("RANKED_SOLO_5x5", "GRANDMASTER", testutil.Entries("GRANDMASTER", "I", 0, 2))
	dir := setupEnv(t, server.URL)

	for _, divisions := range []string{"", " ", "I"} {
		stdout, _, err := execute(t, "oc1", "RANKED_SOLO_5x5", "GRANDMASTER", divisions, "False")
		require.NoError(t, err)
		require.Contains(t, stdout, "Incorrect arguments")
		require.NotContains(t, stdout, "successfully generated")
	}
	require.Zero(t, server.RequestCount())
	testutil.AssertNoOutput(t, dir, "league_data_*")
}

func TestRun_ValidationReport(t *testing.T) {
	server := testutil.NewRiotServer(t)
	dir := setupEnv(t, server.URL)

	stdout, _, err := execute(t, "oc1", "RANKED_SOLO_5x5", "gold", "I,V", "yes")
	require.NoError(t, err)
	require.Contains(t, stdout, `Invalid tier "gold"`)
	require.Contains(t, stdout, `Invalid division: "V"`)
	require.Contains(t, stdout, `"get all" "yes"`)
	require.True(t, strings.HasSuffix(strings.TrimSpace(stdout), ladder.CaseSensitiveNote))
	require.Zero(t, server.RequestCount())
	testutil.AssertNoOutput(t, dir, "league_data_*")
}

func TestRun_DivisionedAllPages(t *testing.T) {
	server := testutil.NewRiotServer(t)
	server.AddDivision("RANKED_SOLO_5x5", "GOLD", "II",
		testutil.Entries("GOLD", "II", 0, 3),
		testutil.Entries("GOLD", "II", 3, 1))
	server.AddDivision("RANKED_SOLO_5x5", "GOLD", "IV",
		testutil.Entries("GOLD", "IV", 10, 2))
	dir := setupEnv(t, server.URL)

	stdout, _, err := execute(t, "euw1", "RANKED_SOLO_5x5", "GOLD", "II,IV", "True", "--metadata")
	require.NoError(t, err)

	want := []string{
		"/entries/RANKED_SOLO_5x5/GOLD/II/?page=1",
		"/entries/RANKED_SOLO_5x5/GOLD/II/?page=2",
		"/entries/RANKED_SOLO_5x5/GOLD/II/?page=3",
		"/entries/RANKED_SOLO_5x5/GOLD/IV/?page=1",
		"/entries/RANKED_SOLO_5x5/GOLD/IV/?page=2",
	}
	if diff := cmp.Diff(want, server.Requests()); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}

	name := "league_data_GOLD_II-IV_PAGES-ALL_2025-02-03_04-05.csv"
	path := filepath.Join(".", name)
	require.Contains(t, stdout, path+" successfully generated.")

	header, rows := testutil.ReadCSV(t, filepath.Join(dir, name))
	require.Len(t, rows, 6)
	require.Equal(t, "leagueId", header[0])
	require.Equal(t, []string{"II", "II", "II", "II", "IV", "IV"}, testutil.Column(t, header, rows, "rank"))
	require.Equal(t, "summoner-10", testutil.Column(t, header, rows, "summonerId")[4])

	meta, err := metadata.LoadMetadata(metadata.SidecarPath(filepath.Join(dir, name)))
	require.NoError(t, err)
	require.Equal(t, 5, meta.Results.APICallCount)
	require.Equal(t, 6, meta.Results.TotalEntries)
	require.Equal(t, []string{"II", "IV"}, meta.Parameters.Divisions)
}

func TestRun_SpecialTier(t *testing.T) {
	server := testutil.NewRiotServer(t)
	server.SetLeague("RANKED_SOLO_5x5", "CHALLENGER", testutil.Entries("CHALLENGER", "I", 0, 3))
	dir := setupEnv(t, server.URL)

	stdout, _, err := execute(t, "kr", "RANKED_SOLO_5x5", "CHALLENGER", "--summary")
	require.NoError(t, err)
	require.Equal(t, []string{"/challengerleagues/by-queue/RANKED_SOLO_5x5"}, server.Requests())
	require.Equal(t, []string{"test-key"}, server.APIKeys())

	path := testutil.FindOutput(t, dir, "league_data_CHALLENGER_TIER_ALL_*.csv")
	_, rows := testutil.ReadCSV(t, path)
	require.Len(t, rows, 3)

	summary := strings.ToUpper(stdout)
	require.Contains(t, summary, "CHALLENGER RANKED_SOLO_5X5 (KR)")
	require.Contains(t, summary, "TOTAL")
}

func TestRun_StdoutNDJSON(t *testing.T) {
	server := testutil.NewRiotServer(t)
	server.AddDivision("RANKED_FLEX_SR", "IRON", "IV", testutil.Entries("IRON", "IV", 0, 2))
	dir := setupEnv(t, server.URL)

	stdout, _, err := execute(t, "na1", "RANKED_FLEX_SR", "IRON", "IV", "False", "--format", "ndjson", "-o", "-")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], `"summonerId":"summoner-0"`)
	require.NotContains(t, stdout, "successfully generated")
	require.Equal(t, 1, server.RequestCount())
	testutil.AssertNoOutput(t, dir, "league_data_*")
}

func TestRun_FetchFailureWritesNothing(t *testing.T) {
	server := testutil.NewRiotServer(t)
	server.AddDivision("RANKED_SOLO_5x5", "SILVER", "I", testutil.Entries("SILVER", "I", 0, 2))
	server.FailWith(http.StatusForbidden, 1)
	dir := setupEnv(t, server.URL)

	_, _, err := execute(t, "oc1", "RANKED_SOLO_5x5", "SILVER", "I", "True")
	require.Error(t, err)
	require.True(t, errors.Is(err, ladderrors.ErrFetchFailed))
	require.Equal(t, 3, mapErrorToExitCode(err))
	testutil.AssertNoOutput(t, dir, "league_data_*")
}

func TestRun_MalformedResponse(t *testing.T) {
	server := testutil.NewMalformedServer(t)
	dir := setupEnv(t, server.URL)

	_, _, err := execute(t, "oc1", "RANKED_SOLO_5x5", "BRONZE", "III", "False")
	require.ErrorIs(t, err, ladderrors.ErrMalformedResponse)
	require.Equal(t, 3, mapErrorToExitCode(err))
	testutil.AssertNoOutput(t, dir, "league_data_*")
}

func TestRun_OutputDirFlag(t *testing.T) {
	server := testutil.NewRiotServer(t)
	server.AddDivision("RANKED_SOLO_5x5", "DIAMOND", "I", testutil.Entries("DIAMOND", "I", 0, 1))
	dir := setupEnv(t, server.URL)
	outDir := filepath.Join(dir, "exports")

	_, _, err := execute(t, "kr", "RANKED_SOLO_5x5", "DIAMOND", "I", "False", "--output-dir", outDir)
	require.NoError(t, err)
	testutil.FindOutput(t, outDir, "league_data_DIAMOND_TIER_PAGE-1_*.csv")
}

func TestRun_UnwritableOutput(t *testing.T) {
	server := testutil.NewRiotServer(t)
	server.AddDivision("RANKED_SOLO_5x5", "DIAMOND", "I", testutil.Entries("DIAMOND", "I", 0, 1))
	dir := setupEnv(t, server.URL)

	blocker := testutil.WriteFile(t, dir, "blocker", "not a directory")
	_, _, err := execute(t, "kr", "RANKED_SOLO_5x5", "DIAMOND", "I", "False", "--output-dir", filepath.Join(blocker, "out"))
	require.ErrorIs(t, err, ladderrors.ErrOutput)
	require.Equal(t, 1, mapErrorToExitCode(err))
}

func TestRun_ConfigFile(t *testing.T) {
	server := testutil.NewRiotServer(t)
	server.AddDivision("RANKED_SOLO_5x5", "EMERALD", "II", testutil.Entries("EMERALD", "II", 0, 1))
	dir := setupEnv(t, "")

	testutil.WriteFile(t, dir, ".ladder-export.yaml", fmt.Sprintf(`
riot:
  base_url: %s
output:
  prefix: ranks
  format: ndjson
`, server.URL))

	_, _, err := execute(t, "eun1", "RANKED_SOLO_5x5", "EMERALD", "II", "False")
	require.NoError(t, err)
	testutil.FindOutput(t, dir, "ranks_EMERALD_TIER_PAGE-1_*.ndjson")
}

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"fetch", fmt.Errorf("x: %w", ladderrors.ErrFetchFailed), 3},
		{"rate limit", fmt.Errorf("x: %w: %w", ladderrors.ErrFetchFailed, ladderrors.ErrRateLimit), 3},
		{"malformed", ladderrors.ErrMalformedResponse, 3},
		{"output", fmt.Errorf("%w: disk full", ladderrors.ErrOutput), 1},
		{"other", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorToExitCode(tt.err); got != tt.want {
				t.Errorf("mapErrorToExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
