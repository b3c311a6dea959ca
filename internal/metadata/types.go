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

// Package metadata records what a ladder run fetched so the artifact can
// be traced back to its parameters.
package metadata

import (
	"time"
)

// RunMetadata contains complete information about one ladder run.
type RunMetadata struct {
	ToolVersion string     `json:"tool_version"`
	RunID       string     `json:"run_id"`
	Parameters  RunParams  `json:"parameters"`
	Results     RunResults `json:"results"`
	Output      string     `json:"output,omitempty"`
}

// RunParams captures the validated filter the run was started with.
type RunParams struct {
	Region    string   `json:"region"`
	Queue     string   `json:"queue"`
	Tier      string   `json:"tier"`
	Divisions []string `json:"divisions,omitempty"`
	PageMode  string   `json:"page_mode"`
}

// RunResults summarizes what was fetched.
type RunResults struct {
	TotalEntries int             `json:"total_entries"`
	APICallCount int             `json:"api_calls_made"`
	Divisions    []DivisionStats `json:"divisions"`
	Duration     string          `json:"duration"`
	StartedAt    time.Time       `json:"started_at"`
	CompletedAt  time.Time       `json:"completed_at"`
}

// DivisionStats counts the requests and entries of one division. Special
// tiers report a single pseudo-division named after the tier.
type DivisionStats struct {
	Division string `json:"division"`
	Fetches  int    `json:"fetches"`
	Pages    int    `json:"non_empty_pages"`
	Entries  int    `json:"entries"`
}
