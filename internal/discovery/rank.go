// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"sort"
	"strings"

	"github.com/zagdt/e-library-backend-sub001/pkg/types"
)

// Rank sorts records in place by relevance to term. The order is a
// deterministic total order so repeated requests paginate identically:
//
//  1. exact case-insensitive title match ranks first
//  2. case-insensitive substring containment of the term in the title
//  3. parsed publication year, descending; a record with a year ranks
//     above one without, and two unparseable years are equal at this step
//  4. case-insensitive lexical title order, ascending, as the final tie-break
func Rank(records []types.Record, term string) {
	needle := strings.ToLower(strings.TrimSpace(term))
	sort.SliceStable(records, func(i, j int) bool {
		return compareRecords(records[i], records[j], needle) < 0
	})
}

// compareRecords returns a negative value when a ranks above b. The needle
// must already be lower-cased and trimmed.
func compareRecords(a, b types.Record, needle string) int {
	titleA := strings.ToLower(strings.TrimSpace(a.Title))
	titleB := strings.ToLower(strings.TrimSpace(b.Title))

	if c := compareBool(titleA == needle, titleB == needle); c != 0 {
		return c
	}
	if c := compareBool(strings.Contains(titleA, needle), strings.Contains(titleB, needle)); c != 0 {
		return c
	}

	yearA, okA := parseYear(a.Year)
	yearB, okB := parseYear(b.Year)
	switch {
	case okA && okB:
		if yearA != yearB {
			if yearA > yearB {
				return -1
			}
			return 1
		}
	case okA:
		// A present year always ranks above an absent one.
		return -1
	case okB:
		return 1
	}

	return strings.Compare(titleA, titleB)
}

// compareBool ranks true above false.
func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}

// parseYear extracts the first four-digit run from a free-text year field
// (e.g. "2021", "2021-05-01", "c. 2019"). Reports false when none exists.
func parseYear(s string) (int, bool) {
	run := 0
	year := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			year = year*10 + int(r-'0')
			run++
			if run == 4 {
				return year, true
			}
			continue
		}
		run = 0
		year = 0
	}
	return 0, false
}
