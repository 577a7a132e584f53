// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/zagdt/e-library-backend-sub001/pkg/types"
)

// SourceArxiv is the arXiv source identifier.
const SourceArxiv = "arxiv"

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivClient queries the arXiv Atom API.
type ArxivClient struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the source identifier.
func (c *ArxivClient) Name() string { return SourceArxiv }

// Search queries arXiv. Pagination maps to start/max_results with a zero-based
// offset.
func (c *ArxivClient) Search(ctx context.Context, q Query) (Outcome, error) {
	params := url.Values{
		"search_query": {"all:" + q.Term},
		"start":        {strconv.Itoa((q.Page - 1) * q.Limit)},
		"max_results":  {strconv.Itoa(q.Limit)},
		"sortBy":       {"relevance"},
		"sortOrder":    {"descending"},
	}
	reqURL := arxivAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Outcome{}, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return Outcome{}, fmt.Errorf("parsing arXiv response: %w", err)
	}

	out := Outcome{Total: feed.TotalResults}
	for _, entry := range feed.Entries {
		arxivID := extractArxivID(entry.ID)
		if arxivID == "" {
			continue
		}

		r := newArxivRecord(arxivID, entry)
		out.Records = append(out.Records, r)
	}
	if out.Total == 0 {
		out.Total = len(out.Records)
	}
	return out, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	TotalResults int          `xml:"totalResults"`
	Entries      []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      string          `xml:"title"`
	Summary    string          `xml:"summary"`
	Published  string          `xml:"published"`
	DOI        string          `xml:"doi"`
	Authors    []arxivAuthor   `xml:"author"`
	Categories []arxivCategory `xml:"category"`
	Links      []arxivLink     `xml:"link"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

// newArxivRecord maps one Atom entry into the canonical record shape.
func newArxivRecord(arxivID string, entry arxivEntry) (r types.Record) {
	r.ID = arxivID
	r.Title = titleOrUntitled(collapseWhitespace(entry.Title))
	r.Abstract = strings.TrimSpace(entry.Summary)
	r.Year = yearOf(entry.Published)
	r.Source = SourceArxiv
	r.URL = "https://arxiv.org/abs/" + arxivID
	r.PDFURL = "https://arxiv.org/pdf/" + arxivID
	r.DOI = entry.DOI

	for _, a := range entry.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			r.Authors = append(r.Authors, name)
		}
	}
	for _, cat := range entry.Categories {
		if cat.Term != "" {
			r.Subjects = append(r.Subjects, cat.Term)
		}
	}
	for _, l := range entry.Links {
		if l.Title == "pdf" && l.Href != "" {
			r.PDFURL = l.Href
		}
	}
	return r
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}

// collapseWhitespace joins wrapped Atom text onto one line.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
