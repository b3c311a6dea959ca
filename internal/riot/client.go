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

import "context"

// Client defines the ladder API operations used by the collector.
// This interface allows for easy mocking in tests.
type Client interface {
	// FetchDivisionPage retrieves one page of a division's standings.
	// Pages start at 1. An empty slice means the division is exhausted.
	FetchDivisionPage(ctx context.Context, queue, tier, division string, page int) ([]Entry, error)

	// FetchLeague retrieves the complete listing of a division-less tier.
	FetchLeague(ctx context.Context, queue, tier string) (*LeagueList, error)
}
