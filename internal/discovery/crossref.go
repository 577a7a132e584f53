// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/zagdt/e-library-backend-sub001/pkg/types"
)

// SourceCrossref is the Crossref source identifier.
const SourceCrossref = "crossref"

// crossrefAPIBase is the Crossref works search endpoint. Declared as a var
// so tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// CrossrefClient queries the Crossref REST API.
type CrossrefClient struct {
	Client    *http.Client
	UserAgent string
	// Mailto is sent as the mailto parameter for polite pool access.
	Mailto string
}

// Name returns the source identifier.
func (c *CrossrefClient) Name() string { return SourceCrossref }

// Search queries Crossref. Pagination maps to rows/offset.
func (c *CrossrefClient) Search(ctx context.Context, q Query) (Outcome, error) {
	params := url.Values{
		"query":  {q.Term},
		"rows":   {strconv.Itoa(q.Limit)},
		"offset": {strconv.Itoa((q.Page - 1) * q.Limit)},
	}
	if c.Mailto != "" {
		params.Set("mailto", c.Mailto)
	}
	reqURL := crossrefAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("Crossref API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Outcome{}, fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return Outcome{}, fmt.Errorf("parsing Crossref response: %w", err)
	}

	out := Outcome{Total: cr.Message.TotalResults}
	for _, item := range cr.Message.Items {
		r := types.Record{
			ID:       item.DOI,
			Title:    titleOrUntitled(firstOf(item.Title)),
			Abstract: stripJATS(item.Abstract),
			Source:   SourceCrossref,
			URL:      item.URL,
			DOI:      item.DOI,
			Subjects: item.Subject,
		}
		if r.URL == "" && item.DOI != "" {
			r.URL = "https://doi.org/" + item.DOI
		}
		if year := crossrefYear(item.Issued); year != "" {
			r.Year = year
		}
		for _, a := range item.Authors {
			name := strings.TrimSpace(strings.TrimSpace(a.Given) + " " + strings.TrimSpace(a.Family))
			if name != "" {
				r.Authors = append(r.Authors, name)
			}
		}
		for _, l := range item.Links {
			if l.ContentType == "application/pdf" && l.URL != "" {
				r.PDFURL = l.URL
				break
			}
		}
		out.Records = append(out.Records, r)
	}
	if out.Total == 0 {
		out.Total = len(out.Records)
	}
	return out, nil
}

// firstOf returns the first element of a Crossref string list field.
func firstOf(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}

// crossrefYear extracts the year from an issued date-parts field.
func crossrefYear(issued crossrefDate) string {
	if len(issued.DateParts) == 0 || len(issued.DateParts[0]) == 0 {
		return ""
	}
	return strconv.Itoa(issued.DateParts[0][0])
}

// stripJATS removes JATS markup tags from a Crossref abstract
// ("<jats:p>text</jats:p>" → "text").
func stripJATS(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Crossref API JSON structures.
type crossrefResponse struct {
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	TotalResults int            `json:"total-results"`
	Items        []crossrefItem `json:"items"`
}

type crossrefItem struct {
	DOI      string           `json:"DOI"`
	Title    []string         `json:"title"`
	Abstract string           `json:"abstract"`
	URL      string           `json:"URL"`
	Subject  []string         `json:"subject"`
	Authors  []crossrefAuthor `json:"author"`
	Issued   crossrefDate     `json:"issued"`
	Links    []crossrefLink   `json:"link"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

type crossrefLink struct {
	URL         string `json:"URL"`
	ContentType string `json:"content-type"`
}
