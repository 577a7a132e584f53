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

// SourceCORE is the CORE source identifier.
const SourceCORE = "core"

// coreAPIBase is the CORE works search endpoint. Declared as a var so tests
// can substitute an httptest server.
var coreAPIBase = "https://api.core.ac.uk/v3/search/works"

// COREClient queries the CORE aggregator. CORE requires an API key; without
// one the client short-circuits to an empty outcome instead of issuing a
// doomed request.
type COREClient struct {
	Client    *http.Client
	UserAgent string
	APIKey    string
}

// Name returns the source identifier.
func (c *COREClient) Name() string { return SourceCORE }

// Search queries CORE. Pagination maps to limit/offset.
func (c *COREClient) Search(ctx context.Context, q Query) (Outcome, error) {
	if c.APIKey == "" {
		return Outcome{}, nil
	}

	params := url.Values{
		"q":      {q.Term},
		"limit":  {strconv.Itoa(q.Limit)},
		"offset": {strconv.Itoa((q.Page - 1) * q.Limit)},
	}
	reqURL := coreAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return Outcome{}, fmt.Errorf("CORE API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Outcome{}, fmt.Errorf("CORE API returned HTTP %d", resp.StatusCode)
	}

	var cr coreResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return Outcome{}, fmt.Errorf("parsing CORE response: %w", err)
	}

	out := Outcome{Total: cr.TotalHits}
	for _, work := range cr.Results {
		r := types.Record{
			ID:       strconv.FormatInt(work.ID, 10),
			Title:    titleOrUntitled(work.Title),
			Abstract: work.Abstract,
			Source:   SourceCORE,
			PDFURL:   work.DownloadURL,
			DOI:      work.DOI,
		}
		if work.YearPublished > 0 {
			r.Year = strconv.Itoa(work.YearPublished)
		}
		for _, a := range work.Authors {
			if a.Name != "" {
				r.Authors = append(r.Authors, a.Name)
			}
		}
		for _, l := range work.Links {
			if l.Type == "display" && l.URL != "" {
				r.URL = l.URL
				break
			}
		}
		if r.URL == "" {
			r.URL = "https://core.ac.uk/works/" + r.ID
		}
		out.Records = append(out.Records, r)
	}
	if out.Total == 0 {
		out.Total = len(out.Records)
	}
	return out, nil
}

// CORE API JSON structures.
type coreResponse struct {
	TotalHits int        `json:"totalHits"`
	Results   []coreWork `json:"results"`
}

type coreWork struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	Abstract      string       `json:"abstract"`
	YearPublished int          `json:"yearPublished"`
	DownloadURL   string       `json:"downloadUrl"`
	DOI           string       `json:"doi"`
	Authors       []coreAuthor `json:"authors"`
	Links         []coreLink   `json:"links"`
}

type coreAuthor struct {
	Name string `json:"name"`
}

type coreLink struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}
