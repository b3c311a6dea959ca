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

package collector

import "github.com/riftstat/ladder-export/internal/ladder"

// State is the position of a walk: which division (index into
// Filter.Divisions) and which page is requested next.
type State struct {
	Division int
	Page     int
	Done     bool
}

// Start returns the first position for f. A divisioned filter without
// divisions has nothing to fetch and starts done.
func Start(f ladder.Filter) State {
	if !f.IsSpecial() && len(f.Divisions) == 0 {
		return State{Done: true}
	}
	return State{Division: 0, Page: 1}
}

// Next returns the position after the request at s returned a page that
// was empty or not. It does not touch the network.
func Next(s State, f ladder.Filter, empty bool) State {
	if s.Done || f.IsSpecial() {
		return State{Done: true}
	}

	last := s.Division >= len(f.Divisions)-1
	if !empty && f.PageMode == ladder.AllPages {
		return State{Division: s.Division, Page: s.Page + 1}
	}
	// FirstPageOnly stops the whole walk after the final division's first
	// page; an empty page does the same for any mode.
	if last {
		return State{Done: true}
	}
	return State{Division: s.Division + 1, Page: 1}
}
