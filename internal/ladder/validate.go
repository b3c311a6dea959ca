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

package ladder

import (
	"fmt"
	"strings"
)

// CaseSensitiveNote is appended to every validation report.
const CaseSensitiveNote = "Note: parameter arguments are CASE SENSITIVE."

// Validate checks raw input and returns either a Filter or the list of
// problems found, never both. Every check runs even when an earlier one
// failed, so a single report lists everything the caller got wrong.
func Validate(raw RawFilter) (Filter, []string) {
	var problems []string

	if !regionSet.Contains(raw.Region) {
		problems = append(problems, fmt.Sprintf("Invalid region %q. Options: %s", raw.Region, optionList(Regions)))
	}
	if !queueSet.Contains(raw.Queue) {
		problems = append(problems, fmt.Sprintf("Invalid queue %q. Options: %s", raw.Queue, optionList(Queues)))
	}
	if !tierSet.Contains(raw.Tier) {
		problems = append(problems, fmt.Sprintf("Invalid tier %q. Options: %s", raw.Tier, optionList(Tiers)))
	}

	kind := DivisionedTier
	if IsSpecialTier(raw.Tier) {
		kind = SpecialTier
		if len(raw.Divisions) > 0 {
			problems = append(problems, fmt.Sprintf(
				"Tier %q has no divisions, do not provide divisions (got %s)",
				raw.Tier, optionList(raw.Divisions)))
		}
	} else {
		problems = append(problems, checkDivisions(raw.Divisions)...)
	}

	mode := FirstPageOnly
	switch raw.GetAll {
	case "True":
		mode = AllPages
	case "False":
	default:
		problems = append(problems, fmt.Sprintf(
			"Invalid option for \"get all\" %q (returns all pages of results if \"True\", or only first if \"False\"). Options: \"True\" or \"False\"",
			raw.GetAll))
	}

	if len(problems) > 0 {
		return Filter{}, problems
	}

	f := Filter{
		Region:   raw.Region,
		Queue:    raw.Queue,
		Tier:     raw.Tier,
		Kind:     kind,
		PageMode: mode,
	}
	if kind == DivisionedTier {
		f.Divisions = append([]string(nil), raw.Divisions...)
	}
	return f, nil
}

func checkDivisions(divisions []string) []string {
	if len(divisions) == 0 {
		return []string{fmt.Sprintf("No divisions specified. Options: %s", optionList(Divisions))}
	}

	var invalid []string
	for _, d := range divisions {
		if !divisionSet.Contains(d) {
			invalid = append(invalid, d)
		}
	}
	if len(invalid) == 0 {
		return nil
	}

	label := "Invalid division"
	if len(invalid) > 1 {
		label += "s"
	}
	return []string{
		fmt.Sprintf("%s: %s. Options: %s", label, quoteAll(invalid), optionList(Divisions)),
		`Separate multiple divisions by comma. Example: "I,IV" will return "I" and "IV" only.`,
	}
}

// SplitDivisions splits a comma-separated division argument, trimming
// surrounding whitespace and dropping empty elements.
func SplitDivisions(arg string) []string {
	var out []string
	for _, part := range strings.Split(arg, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FormatProblems renders a validation report for the terminal.
func FormatProblems(problems []string) string {
	var b strings.Builder
	for _, p := range problems {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(CaseSensitiveNote)
	return b.String()
}

func optionList(values []string) string {
	return "[" + quoteAll(values) + "]"
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
