// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/zagdt/e-library-backend-sub001/pkg/types"
)

// FormatTable writes one result page as a human-readable table to w.
func FormatTable(page types.ResultPage, w io.Writer) {
	if len(page.Records) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %s\n",
		"Rank", "Title", "Authors", "Year", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	offset := (page.Pagination.Page - 1) * page.Pagination.Limit
	for i, r := range page.Records {
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %s\n",
			offset+i+1, truncate(r.Title, 60), formatAuthors(r.Authors), r.Year, r.Source)
	}

	fmt.Fprintf(w, "\n%d results from %s (page %d of %d)\n",
		page.Pagination.Total,
		strings.Join(page.Pagination.Sources, ", "),
		page.Pagination.Page, page.Pagination.TotalPages)
}

// FormatJSON writes one result page as indented JSON to w.
func FormatJSON(page types.ResultPage, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(page)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
