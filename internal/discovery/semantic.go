// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zagdt/e-library-backend-sub001/internal/httputil"
	"github.com/zagdt/e-library-backend-sub001/pkg/types"
)

// SourceSemanticScholar is the Semantic Scholar source identifier.
const SourceSemanticScholar = "semanticscholar"

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,abstract,authors,externalIds,year,url,openAccessPdf,fieldsOfStudy"

// SemanticScholarClient queries the Semantic Scholar Graph API. The API key
// is optional; without one the shared public rate limit applies, so 429
// responses are retried with backoff.
type SemanticScholarClient struct {
	Client    *http.Client
	UserAgent string
	APIKey    string
}

// Name returns the source identifier.
func (c *SemanticScholarClient) Name() string { return SourceSemanticScholar }

// Search queries Semantic Scholar. Pagination maps to offset/limit.
func (c *SemanticScholarClient) Search(ctx context.Context, q Query) (Outcome, error) {
	params := url.Values{
		"query":  {q.Term},
		"offset": {strconv.Itoa((q.Page - 1) * q.Limit)},
		"limit":  {strconv.Itoa(q.Limit)},
		"fields": {semanticFields},
	}
	reqURL := semanticAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return Outcome{}, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Outcome{}, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return Outcome{}, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	out := Outcome{Total: sr.Total}
	for _, paper := range sr.Data {
		r := types.Record{
			ID:       paper.PaperID,
			Title:    titleOrUntitled(paper.Title),
			Abstract: paper.Abstract,
			Source:   SourceSemanticScholar,
			URL:      paper.URL,
			PDFURL:   paper.OpenAccessPdf.URL,
			DOI:      paper.ExternalIDs.DOI,
			Subjects: paper.FieldsOfStudy,
		}
		if r.URL == "" {
			r.URL = "https://www.semanticscholar.org/paper/" + paper.PaperID
		}
		if paper.Year > 0 {
			r.Year = strconv.Itoa(paper.Year)
		}
		for _, a := range paper.Authors {
			if a.Name != "" {
				r.Authors = append(r.Authors, a.Name)
			}
		}
		out.Records = append(out.Records, r)
	}
	if out.Total == 0 {
		out.Total = len(out.Records)
	}
	return out, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID       string              `json:"paperId"`
	Title         string              `json:"title"`
	Abstract      string              `json:"abstract"`
	Year          int                 `json:"year"`
	URL           string              `json:"url"`
	Authors       []semanticAuthor    `json:"authors"`
	ExternalIDs   semanticExternalIDs `json:"externalIds"`
	OpenAccessPdf semanticPdf         `json:"openAccessPdf"`
	FieldsOfStudy []string            `json:"fieldsOfStudy"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}

type semanticPdf struct {
	URL string `json:"url"`
}
