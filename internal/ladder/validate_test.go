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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func raw(tier string, divisions []string, getAll string) RawFilter {
	return RawFilter{
		Region:    "oc1",
		Queue:     "RANKED_SOLO_5x5",
		Tier:      tier,
		Divisions: divisions,
		GetAll:    getAll,
	}
}

func TestValidate_SpecialTiers(t *testing.T) {
	for _, tier := range SpecialTiers() {
		t.Run(tier, func(t *testing.T) {
			f, problems := Validate(raw(tier, nil, "True"))
			if len(problems) != 0 {
				t.Fatalf("Validate() problems = %v, want none", problems)
			}
			if f.Kind != SpecialTier {
				t.Errorf("Kind = %v, want %v", f.Kind, SpecialTier)
			}
			if len(f.Divisions) != 0 {
				t.Errorf("Divisions = %v, want empty", f.Divisions)
			}

			_, problems = Validate(raw(tier, []string{"I"}, "True"))
			if len(problems) == 0 {
				t.Fatal("expected divisions to be rejected for a special tier")
			}
			if !strings.Contains(problems[0], tier) {
				t.Errorf("problem %q does not name tier %s", problems[0], tier)
			}
		})
	}
}

func TestValidate_DivisionedTier(t *testing.T) {
	tests := []struct {
		name         string
		divisions    []string
		wantProblems int
		wantMention  []string
	}{
		{
			name:         "valid divisions",
			divisions:    []string{"I", "II", "III", "IV"},
			wantProblems: 0,
		},
		{
			name:         "no divisions",
			divisions:    nil,
			wantProblems: 1,
			wantMention:  []string{"No divisions specified"},
		},
		{
			name:         "every invalid division is reported",
			divisions:    []string{"I", "V", "X"},
			wantProblems: 2,
			wantMention:  []string{`"V"`, `"X"`, "Invalid divisions"},
		},
		{
			name:         "single invalid division is singular",
			divisions:    []string{"ii"},
			wantProblems: 2,
			wantMention:  []string{`Invalid division: "ii"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, problems := Validate(raw("GOLD", tt.divisions, "False"))
			if len(problems) != tt.wantProblems {
				t.Fatalf("Validate() problems = %v, want %d", problems, tt.wantProblems)
			}
			joined := strings.Join(problems, "\n")
			for _, m := range tt.wantMention {
				if !strings.Contains(joined, m) {
					t.Errorf("problems %q do not mention %q", joined, m)
				}
			}
			if tt.wantProblems == 0 {
				want := Filter{
					Region:    "oc1",
					Queue:     "RANKED_SOLO_5x5",
					Tier:      "GOLD",
					Kind:      DivisionedTier,
					Divisions: tt.divisions,
					PageMode:  FirstPageOnly,
				}
				if diff := cmp.Diff(want, f); diff != "" {
					t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestValidate_CaseSensitive(t *testing.T) {
	if _, problems := Validate(raw("GOLD", []string{"I"}, "True")); len(problems) != 0 {
		t.Fatalf("GOLD rejected: %v", problems)
	}

	_, problems := Validate(raw("gold", []string{"I"}, "True"))
	if len(problems) != 1 || !strings.Contains(problems[0], `Invalid tier "gold"`) {
		t.Errorf("gold problems = %v, want one invalid tier problem", problems)
	}

	if _, problems := Validate(raw("GOLD", []string{"I"}, "true")); len(problems) != 1 {
		t.Errorf("get all %q accepted, want rejection", "true")
	}
}

func TestValidate_AccumulatesAllProblems(t *testing.T) {
	_, problems := Validate(RawFilter{
		Region:    "mars1",
		Queue:     "ARAM",
		Tier:      "WOOD",
		Divisions: []string{"V"},
		GetAll:    "maybe",
	})

	// region, queue, tier, divisions (two lines), get all
	if len(problems) != 6 {
		t.Fatalf("got %d problems, want 6: %v", len(problems), problems)
	}
}

func TestValidate_CopiesDivisions(t *testing.T) {
	divs := []string{"II", "IV"}
	f, _ := Validate(raw("SILVER", divs, "True"))
	divs[0] = "I"
	if f.Divisions[0] != "II" {
		t.Error("Filter shares its division slice with the caller")
	}
	if f.PageMode != AllPages {
		t.Errorf("PageMode = %v, want %v", f.PageMode, AllPages)
	}
}

func TestSplitDivisions(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"I,II,III", []string{"I", "II", "III"}},
		{"I, IV", []string{"I", "IV"}},
		{"IV", []string{"IV"}},
		{"", nil},
		{" , ", nil},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, SplitDivisions(tt.input)); diff != "" {
			t.Errorf("SplitDivisions(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestFormatProblems(t *testing.T) {
	out := FormatProblems([]string{"Invalid queue \"x\"."})
	if !strings.HasPrefix(out, "Invalid queue") {
		t.Errorf("FormatProblems() = %q", out)
	}
	if !strings.HasSuffix(out, CaseSensitiveNote) {
		t.Errorf("FormatProblems() missing case note: %q", out)
	}
}
