// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import "github.com/zagdt/e-library-backend-sub001/pkg/types"

// Paginate slices the ranked, deduplicated list into the requested page and
// computes pagination metadata against the merged set's true size. A page
// past the end yields an empty slice, not an error. The returned slice is
// never nil so it serializes as [].
func Paginate(records []types.Record, page, limit int) ([]types.Record, types.Pagination) {
	total := len(records)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	out := make([]types.Record, end-start)
	copy(out, records[start:end])

	return out, types.Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
