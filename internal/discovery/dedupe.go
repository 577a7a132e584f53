// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"strings"

	"github.com/zagdt/e-library-backend-sub001/pkg/types"
)

// Dedupe collapses records that represent the same underlying work across
// sources. Two records collide when they share a lower-cased title and
// lower-cased first author; the first occurrence in input order survives.
// Input order is otherwise preserved, so Dedupe is idempotent.
//
// The key is a heuristic: distinct works sharing a title and first author
// over-merge, and differently cased or reordered author strings under-merge.
// That trade-off is deliberate; exact cross-source identity resolution is
// not attempted.
func Dedupe(records []types.Record) []types.Record {
	seen := make(map[string]bool, len(records))
	out := make([]types.Record, 0, len(records))
	for _, r := range records {
		key := identityKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// identityKey builds the heuristic cross-source identity key for a record.
func identityKey(r types.Record) string {
	return strings.ToLower(strings.TrimSpace(r.Title)) + "|" +
		strings.ToLower(strings.TrimSpace(r.FirstAuthor()))
}
