// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"testing"

	"github.com/zagdt/e-library-backend-sub001/pkg/types"
)

func titles(records []types.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

func TestRankExactMatchFirst(t *testing.T) {
	records := []types.Record{
		{Title: "A Survey of Deep Learning Methods", Year: "2024"},
		{Title: "Deep Learning", Year: "2015"},
		{Title: "Reinforcement Basics", Year: "2023"},
	}

	Rank(records, "deep learning")
	if records[0].Title != "Deep Learning" {
		t.Errorf("records[0] = %q, want the exact title match despite its older year", records[0].Title)
	}
}

func TestRankSubstringBeforeNonMatch(t *testing.T) {
	records := []types.Record{
		{Title: "Reinforcement Basics", Year: "2024"},
		{Title: "A Survey of Deep Learning Methods", Year: "2010"},
	}

	Rank(records, "deep learning")
	if records[0].Title != "A Survey of Deep Learning Methods" {
		t.Errorf("records[0] = %q, substring containment must outrank recency", records[0].Title)
	}
}

func TestRankYearDescendingWithinTier(t *testing.T) {
	records := []types.Record{
		{Title: "Deep Learning in Vision", Year: "2019"},
		{Title: "Deep Learning in Speech", Year: "2023"},
		{Title: "Deep Learning in Biology", Year: "2021"},
	}

	Rank(records, "deep learning")
	want := []string{"Deep Learning in Speech", "Deep Learning in Biology", "Deep Learning in Vision"}
	got := titles(records)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestRankPresentYearBeatsAbsent(t *testing.T) {
	records := []types.Record{
		{Title: "Deep Learning Alpha"},
		{Title: "Deep Learning Beta", Year: "1997"},
	}

	Rank(records, "deep learning")
	if records[0].Title != "Deep Learning Beta" {
		t.Errorf("records[0] = %q, a record with any year must outrank one without", records[0].Title)
	}
}

func TestRankLexicalTieBreak(t *testing.T) {
	records := []types.Record{
		{Title: "Deep Learning Zeta", Year: "2020"},
		{Title: "Deep Learning Alpha", Year: "2020"},
	}

	Rank(records, "deep learning")
	if records[0].Title != "Deep Learning Alpha" {
		t.Errorf("records[0] = %q, want lexical ascending tie-break", records[0].Title)
	}
}

func TestRankDeterministic(t *testing.T) {
	make3 := func() []types.Record {
		return []types.Record{
			{Title: "Deep Learning Zeta", Year: "2020"},
			{Title: "Deep Learning", Year: "2015"},
			{Title: "Unrelated", Year: "garbled"},
			{Title: "Deep Learning Alpha", Year: "2020"},
		}
	}

	a := make3()
	Rank(a, "deep learning")
	// Re-ranking an already ranked list is a no-op.
	b := make([]types.Record, len(a))
	copy(b, a)
	Rank(b, "deep learning")
	for i := range a {
		if a[i].Title != b[i].Title {
			t.Fatalf("re-rank changed order at %d: %q vs %q", i, a[i].Title, b[i].Title)
		}
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"2021", 2021, true},
		{"2021-05-01", 2021, true},
		{"c. 2019", 2019, true},
		{"", 0, false},
		{"unknown", 0, false},
		{"19", 0, false},
		{"1-2-3-4", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseYear(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("parseYear(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
