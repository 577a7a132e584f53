// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"testing"

	"github.com/zagdt/e-library-backend-sub001/pkg/types"
)

func TestDedupeFirstOccurrenceWins(t *testing.T) {
	records := []types.Record{
		{ID: "arxiv:1", Title: "Machine Learning", Authors: []string{"A. Smith"}, Source: "arxiv"},
		{ID: "s2:9", Title: "machine learning", Authors: []string{"a. smith", "B. Jones"}, Source: "semanticscholar"},
		{ID: "arxiv:2", Title: "Deep Learning", Authors: []string{"B. Jones"}, Source: "arxiv"},
	}

	out := Dedupe(records)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	// First occurrence survives untouched; no field merging.
	if out[0].ID != "arxiv:1" || out[0].Source != "arxiv" {
		t.Errorf("survivor = %+v, want the first occurrence", out[0])
	}
	if len(out[0].Authors) != 1 {
		t.Errorf("Authors = %v, fields must not be merged from the duplicate", out[0].Authors)
	}
	if out[1].ID != "arxiv:2" {
		t.Errorf("out[1].ID = %q, want arxiv:2", out[1].ID)
	}
}

func TestDedupeDifferentFirstAuthorKept(t *testing.T) {
	records := []types.Record{
		{Title: "Machine Learning", Authors: []string{"A. Smith"}},
		{Title: "Machine Learning", Authors: []string{"C. Brown"}},
	}

	out := Dedupe(records)
	if len(out) != 2 {
		t.Errorf("len(out) = %d, want 2 (same title, different first author)", len(out))
	}
}

func TestDedupeOnlyFirstAuthorConsidered(t *testing.T) {
	records := []types.Record{
		{Title: "Machine Learning", Authors: []string{"A. Smith", "B. Jones"}},
		{Title: "Machine Learning", Authors: []string{"A. Smith", "C. Brown"}},
	}

	out := Dedupe(records)
	if len(out) != 1 {
		t.Errorf("len(out) = %d, want 1 (co-authors beyond the first are ignored)", len(out))
	}
}

func TestDedupeNoAuthors(t *testing.T) {
	records := []types.Record{
		{Title: "Anonymous Report"},
		{Title: "Anonymous Report"},
		{Title: "Another Report"},
	}

	out := Dedupe(records)
	if len(out) != 2 {
		t.Errorf("len(out) = %d, want 2", len(out))
	}
}

func TestDedupeIdempotent(t *testing.T) {
	records := []types.Record{
		{Title: "Paper A", Authors: []string{"Smith"}},
		{Title: "Paper A", Authors: []string{"Smith"}},
		{Title: "Paper B", Authors: []string{"Jones"}},
	}

	once := Dedupe(records)
	twice := Dedupe(once)
	if len(once) != len(twice) {
		t.Fatalf("second pass changed size: %d -> %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Title != twice[i].Title {
			t.Errorf("second pass reordered records at %d", i)
		}
	}
}

func TestDedupeEmpty(t *testing.T) {
	out := Dedupe(nil)
	if out == nil {
		t.Error("out is nil, want empty non-nil slice")
	}
	if len(out) != 0 {
		t.Errorf("len(out) = %d, want 0", len(out))
	}
}
