// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the discovery service.
package types

// Record is the canonical normalized shape for one work returned by an
// external source. Records are built fresh per request and are never
// persisted; identifiers are unique only within their source's namespace.
type Record struct {
	// ID is the source-local identifier (arXiv ID, DOI, PMID, ...).
	ID string `json:"id" yaml:"id"`

	// Title is the work title. Sources that omit a title get "Untitled".
	Title string `json:"title" yaml:"title"`

	// Authors lists author display names in source order. May be empty.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the abstract or description, when the source provides one.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Year is the publication year as free text (e.g. "2021"). Not validated.
	Year string `json:"year,omitempty" yaml:"year,omitempty"`

	// Source identifies which client produced this record (e.g. "doaj").
	Source string `json:"source" yaml:"source"`

	// URL is the canonical landing page. Clients construct one when the
	// source supplies none.
	URL string `json:"url" yaml:"url"`

	// PDFURL is a direct download link, when available.
	PDFURL string `json:"pdfUrl,omitempty" yaml:"pdf_url,omitempty"`

	// DOI is the bare DOI without resolver prefix, when available.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Subjects lists topic or category tags, when available.
	Subjects []string `json:"subjects,omitempty" yaml:"subjects,omitempty"`
}

// FirstAuthor returns the first author name, or "" when the list is empty.
func (r Record) FirstAuthor() string {
	if len(r.Authors) == 0 {
		return ""
	}
	return r.Authors[0]
}

// Pagination describes the merged result space of one federated query. Total
// counts the deduplicated merged set, not the sum of provider-reported totals.
type Pagination struct {
	Total      int      `json:"total" yaml:"total"`
	Page       int      `json:"page" yaml:"page"`
	Limit      int      `json:"limit" yaml:"limit"`
	TotalPages int      `json:"totalPages" yaml:"total_pages"`
	Sources    []string `json:"sources" yaml:"sources"`
}

// ResultPage is one page of the merged, deduplicated, ranked result set.
type ResultPage struct {
	Records    []Record   `json:"records" yaml:"records"`
	Pagination Pagination `json:"pagination" yaml:"pagination"`
}

// SourceInfo is static catalog metadata about one registered source.
type SourceInfo struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Free        bool   `json:"free" yaml:"free"`
}
