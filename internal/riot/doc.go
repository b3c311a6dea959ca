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

// Package riot provides a client for the LEAGUE-v4 ranked ladder endpoints.
//
// Two resource shapes are exposed:
//   - divisioned tiers (IRON..DIAMOND) are paginated per division and
//     return a JSON array; an empty array marks the end of a division;
//   - special tiers (MASTER, GRANDMASTER, CHALLENGER) are served by one
//     unpaginated listing whose "entries" field holds every player.
//
// Entries are decoded verbatim into maps so every field the API returns
// reaches the output, including ones added after this client was written.
//
// Basic usage:
//
//	client := riot.NewRESTClient(riot.Options{
//	    BaseURL: "https://oc1.api.riotgames.com/lol/league/v4",
//	    APIKey:  key,
//	})
//	entries, err := client.FetchDivisionPage(ctx, "RANKED_SOLO_5x5", "GOLD", "I", 1)
package riot
