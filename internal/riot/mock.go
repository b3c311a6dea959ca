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

package riot

import (
	"context"
	"fmt"
	"strings"

	ladderrors "github.com/riftstat/ladder-export/internal/errors"
)

// Call records one request made against a MockClient.
type Call struct {
	Queue    string
	Tier     string
	Division string
	Page     int
}

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	// Pages holds the pages of each division, keyed by division label.
	// Page n is Pages[division][n-1]; anything past the end is empty.
	Pages map[string][][]Entry

	// AlwaysPage, when set, is returned for every division page request
	// regardless of the page number.
	AlwaysPage []Entry

	// League is returned by FetchLeague.
	League *LeagueList

	// Error is returned by every call once FailAfter calls have succeeded.
	Error     error
	FailAfter int

	// Calls records every request in order.
	Calls []Call
}

// NewMockClient creates a mock with no data: every division is empty.
func NewMockClient() *MockClient {
	return &MockClient{Pages: make(map[string][][]Entry)}
}

// FetchDivisionPage implements the Client interface
func (m *MockClient) FetchDivisionPage(ctx context.Context, queue, tier, division string, page int) ([]Entry, error) {
	m.Calls = append(m.Calls, Call{Queue: queue, Tier: tier, Division: division, Page: page})

	if err := m.check(ctx); err != nil {
		return nil, err
	}

	if m.AlwaysPage != nil {
		return m.AlwaysPage, nil
	}
	pages := m.Pages[division]
	if page < 1 || page > len(pages) {
		return []Entry{}, nil
	}
	return pages[page-1], nil
}

// FetchLeague implements the Client interface
func (m *MockClient) FetchLeague(ctx context.Context, queue, tier string) (*LeagueList, error) {
	m.Calls = append(m.Calls, Call{Queue: queue, Tier: tier})

	if err := m.check(ctx); err != nil {
		return nil, err
	}

	if m.League == nil {
		return &LeagueList{Tier: tier, Queue: queue}, nil
	}
	return m.League, nil
}

func (m *MockClient) check(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if m.Error != nil && len(m.Calls) > m.FailAfter {
		return m.Error
	}
	return nil
}

// MockOption allows configuring the mock client
type MockOption func(*MockClient)

// WithDivisionPages sets the pages returned for a division.
func WithDivisionPages(division string, pages ...[]Entry) MockOption {
	return func(m *MockClient) {
		m.Pages[division] = pages
	}
}

// WithLeague sets the listing returned for special tiers.
func WithLeague(list *LeagueList) MockOption {
	return func(m *MockClient) {
		m.League = list
	}
}

// WithFetchFailure makes every call after the first n fail with a generic
// fetch error.
func WithFetchFailure(n int) MockOption {
	return func(m *MockClient) {
		m.FailAfter = n
		m.Error = fmt.Errorf("status 403: Forbidden: %w", ladderrors.ErrFetchFailed)
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}

// GenerateEntries builds n plausible entries for a division, numbered
// from start so entries of different pages are distinguishable.
func GenerateEntries(tier, division string, start, n int) []Entry {
	entries := make([]Entry, 0, n)
	for i := start; i < start+n; i++ {
		entries = append(entries, Entry{
			"leagueId":     fmt.Sprintf("league-%s", strings.ToLower(tier)),
			"queueType":    "RANKED_SOLO_5x5",
			"tier":         tier,
			"rank":         division,
			"summonerId":   fmt.Sprintf("summoner-%d", i),
			"puuid":        fmt.Sprintf("puuid-%d", i),
			"leaguePoints": i % 100,
			"wins":         100 + i,
			"losses":       90 + i,
			"veteran":      false,
			"inactive":     false,
			"freshBlood":   i%2 == 0,
			"hotStreak":    false,
		})
	}
	return entries
}
