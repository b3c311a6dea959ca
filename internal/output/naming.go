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
	"strings"
	"time"

	"github.com/riftstat/ladder-export/internal/ladder"
)

// DefaultTimeLayout renders the timestamp part of generated file names.
const DefaultTimeLayout = "2006-01-02_15-04"

// FileName derives the artifact name for a run:
//
//	<prefix>_<TIER>_<DIVISIONS|TIER>_<ALL|PAGES-ALL|PAGE-1>_<timestamp>.<ext>
//
// The divisions token is TIER for special tiers and for a single division,
// otherwise the divisions joined by hyphens in the order given.
func FileName(prefix string, f ladder.Filter, ts time.Time, layout, ext string) string {
	if layout == "" {
		layout = DefaultTimeLayout
	}

	divisions := "TIER"
	if !f.IsSpecial() && len(f.Divisions) > 1 {
		divisions = strings.Join(f.Divisions, "-")
	}

	var pages string
	switch {
	case f.IsSpecial():
		pages = "ALL"
	case f.PageMode == ladder.AllPages:
		pages = "PAGES-ALL"
	default:
		pages = "PAGE-1"
	}

	return fmt.Sprintf("%s_%s_%s_%s_%s.%s", prefix, f.Tier, divisions, pages, ts.Format(layout), ext)
}
