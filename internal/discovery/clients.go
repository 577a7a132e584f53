// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import "strings"

// titleOrUntitled normalizes a provider-supplied title, substituting the
// canonical fallback when the provider omits one.
func titleOrUntitled(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Untitled"
	}
	return s
}

// yearOf returns the leading year fragment of a provider date string
// ("2021-05-03" → "2021"). The fragment is kept as free text; ranking
// parses it leniently.
func yearOf(date string) string {
	date = strings.TrimSpace(date)
	if len(date) >= 4 {
		return date[:4]
	}
	return date
}
