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
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/riftstat/ladder-export/internal/ladder"
	"github.com/riftstat/ladder-export/internal/metadata"
)

// printUsage lists every accepted value for each positional argument.
func printUsage(w io.Writer, args []string) {
	fmt.Fprintln(w, "Incorrect arguments. Format: <region> <queue> <tier> <divisions> <get all>")
	fmt.Fprintf(w, "Arguments provided: %q\n", args)

	special := strings.Join(ladder.SpecialTiers(), ", ")

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Argument", "Options"})
	t.AppendRow(table.Row{"Region", strings.Join(ladder.Regions, ", ")})
	t.AppendRow(table.Row{"Queue", strings.Join(ladder.Queues, ", ")})
	t.AppendRow(table.Row{"Tier", strings.Join(ladder.Tiers, ", ")})
	t.AppendRow(table.Row{"Divisions", strings.Join(ladder.Divisions, ", ") + "\n(required unless tier is " + special + ";\nseparate several with commas)"})
	t.AppendRow(table.Row{"Get all", "True, False\n(omit when tier is " + special + ")"})
	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Fprintln(w, `Example A: ladder-export oc1 RANKED_SOLO_5x5 SILVER "I,II,III,IV" True`)
	fmt.Fprintln(w, `Example B: ladder-export oc1 RANKED_SOLO_5x5 CHALLENGER`)
	fmt.Fprintln(w, ladder.CaseSensitiveNote)
}

// printSummary renders what a finished run fetched per division.
func printSummary(w io.Writer, f ladder.Filter, tracker *metadata.Tracker) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s %s (%s)", f.Tier, f.Queue, f.Region))
	t.AppendHeader(table.Row{"Division", "Requests", "Pages", "Entries"})

	for _, d := range tracker.Divisions() {
		t.AppendRow(table.Row{d.Division, d.Fetches, d.Pages, d.Entries})
	}
	t.AppendFooter(table.Row{"Total", tracker.APICalls(), "", tracker.TotalEntries()})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
