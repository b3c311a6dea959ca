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

// Package ladder defines the ranked-ladder vocabulary (regions, queues,
// tiers, divisions) and validates user-supplied filters against it.
//
// All literals are case-sensitive: "GOLD" is a tier, "gold" is not.
package ladder

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Ordered option lists. Their order is the order shown in usage output.
var (
	Regions = []string{
		"br1", "eun1", "euw1", "jp1", "kr", "la1", "la2", "na1",
		"oc1", "ph2", "ru", "sg2", "th2", "tr1", "tw2", "vn2",
	}

	Queues = []string{
		"RANKED_SOLO_5x5",
		"RANKED_FLEX_SR",
		"RANKED_FLEX_TT",
	}

	Tiers = []string{
		"IRON",
		"BRONZE",
		"SILVER",
		"GOLD",
		"PLATINUM",
		"EMERALD",
		"DIAMOND",
		"MASTER",
		"GRANDMASTER",
		"CHALLENGER",
	}

	Divisions = []string{"I", "II", "III", "IV"}
)

// Membership sets, built once from the ordered lists above.
var (
	regionSet   = mapset.NewThreadUnsafeSet(Regions...)
	queueSet    = mapset.NewThreadUnsafeSet(Queues...)
	tierSet     = mapset.NewThreadUnsafeSet(Tiers...)
	divisionSet = mapset.NewThreadUnsafeSet(Divisions...)

	// specialTiers have no divisions and a single unpaginated listing.
	specialTiers = mapset.NewThreadUnsafeSet("MASTER", "GRANDMASTER", "CHALLENGER")
)

// SpecialTiers returns the tiers that have no divisions, in ladder order.
func SpecialTiers() []string {
	out := make([]string, 0, specialTiers.Cardinality())
	for _, t := range Tiers {
		if specialTiers.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// IsSpecialTier reports whether tier is one of the division-less top tiers.
// The comparison is case-sensitive.
func IsSpecialTier(tier string) bool {
	return specialTiers.Contains(tier)
}

// TierKind distinguishes the two resource shapes a tier maps to.
type TierKind int

const (
	// DivisionedTier tiers are split into divisions, each paginated.
	DivisionedTier TierKind = iota
	// SpecialTier tiers are served by one unpaginated by-queue listing.
	SpecialTier
)

func (k TierKind) String() string {
	if k == SpecialTier {
		return "special"
	}
	return "divisioned"
}

// PageMode selects how much of each division is fetched.
type PageMode int

const (
	// FirstPageOnly fetches page 1 of every division.
	FirstPageOnly PageMode = iota
	// AllPages walks every division until an empty page.
	AllPages
)

func (m PageMode) String() string {
	if m == AllPages {
		return "all-pages"
	}
	return "first-page"
}

// Filter is a validated ladder query. Divisions is empty exactly when
// Kind is SpecialTier.
type Filter struct {
	Region    string
	Queue     string
	Tier      string
	Kind      TierKind
	Divisions []string
	PageMode  PageMode
}

// IsSpecial reports whether the filter targets a division-less tier.
func (f Filter) IsSpecial() bool {
	return f.Kind == SpecialTier
}

// RawFilter holds unvalidated command-line input.
type RawFilter struct {
	Region    string
	Queue     string
	Tier      string
	Divisions []string
	// GetAll must be the literal "True" or "False".
	GetAll string
}
