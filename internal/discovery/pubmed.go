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
	"sync"
	"time"

	"github.com/zagdt/e-library-backend-sub001/pkg/types"
)

// SourcePubMed is the PubMed source identifier.
const SourcePubMed = "pubmed"

// pubmedAPIBase is the NCBI E-utilities endpoint. Declared as a var so
// tests can substitute an httptest server.
var pubmedAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// defaultPubMedInterval spaces requests to stay inside NCBI's unkeyed
// limit of three requests per second.
const defaultPubMedInterval = 350 * time.Millisecond

// PubMedClient queries PubMed through the NCBI E-utilities. One search is
// two calls (esearch for PMIDs, esummary for metadata), and NCBI enforces a
// per-client request rate, so the client spaces its own outbound calls: if
// less than the minimum interval has elapsed since the previous request it
// waits out the remainder first. The cooldown timestamp is instance state
// guarded by a mutex, safe when one instance serves concurrent requests.
type PubMedClient struct {
	Client    *http.Client
	UserAgent string
	APIKey    string

	minInterval time.Duration
	mu          sync.Mutex
	nextAllowed time.Time
}

// NewPubMedClient returns a PubMed client. A zero minInterval selects the
// NCBI-safe default.
func NewPubMedClient(client *http.Client, userAgent, apiKey string, minInterval time.Duration) *PubMedClient {
	if minInterval <= 0 {
		minInterval = defaultPubMedInterval
	}
	return &PubMedClient{
		Client:      client,
		UserAgent:   userAgent,
		APIKey:      apiKey,
		minInterval: minInterval,
	}
}

// Name returns the source identifier.
func (c *PubMedClient) Name() string { return SourcePubMed }

// Search queries PubMed. Pagination maps to retstart/retmax on the esearch
// call; esummary then resolves the returned PMIDs.
func (c *PubMedClient) Search(ctx context.Context, q Query) (Outcome, error) {
	ids, total, err := c.esearch(ctx, q)
	if err != nil {
		return Outcome{}, err
	}
	if len(ids) == 0 {
		return Outcome{Total: total}, nil
	}

	records, err := c.esummary(ctx, ids)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Records: records, Total: total}, nil
}

// cooldown blocks until the minimum interval since the previous request has
// elapsed. Concurrent callers queue behind each other.
func (c *PubMedClient) cooldown(ctx context.Context) error {
	c.mu.Lock()
	now := time.Now()
	sendAt := c.nextAllowed
	if sendAt.Before(now) {
		sendAt = now
	}
	c.nextAllowed = sendAt.Add(c.minInterval)
	c.mu.Unlock()

	wait := time.Until(sendAt)
	if wait <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

// get issues one rate-limited E-utilities call and decodes the JSON body.
func (c *PubMedClient) get(ctx context.Context, endpoint string, params url.Values, v any) error {
	if err := c.cooldown(ctx); err != nil {
		return err
	}

	params.Set("retmode", "json")
	if c.APIKey != "" {
		params.Set("api_key", c.APIKey)
	}
	reqURL := pubmedAPIBase + "/" + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("PubMed %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("PubMed %s returned HTTP %d", endpoint, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing PubMed %s response: %w", endpoint, err)
	}
	return nil
}

func (c *PubMedClient) esearch(ctx context.Context, q Query) ([]string, int, error) {
	params := url.Values{
		"db":       {"pubmed"},
		"term":     {q.Term},
		"retstart": {strconv.Itoa((q.Page - 1) * q.Limit)},
		"retmax":   {strconv.Itoa(q.Limit)},
		"sort":     {"relevance"},
	}
	var sr pubmedSearchResponse
	if err := c.get(ctx, "esearch.fcgi", params, &sr); err != nil {
		return nil, 0, err
	}
	total, _ := strconv.Atoi(sr.Result.Count)
	return sr.Result.IDList, total, nil
}

func (c *PubMedClient) esummary(ctx context.Context, ids []string) ([]types.Record, error) {
	params := url.Values{
		"db": {"pubmed"},
		"id": {strings.Join(ids, ",")},
	}
	var sr pubmedSummaryResponse
	if err := c.get(ctx, "esummary.fcgi", params, &sr); err != nil {
		return nil, err
	}

	// Preserve esearch relevance order; the summary result is keyed by PMID.
	var records []types.Record
	for _, id := range ids {
		raw, ok := sr.Result[id]
		if !ok {
			continue
		}
		var doc pubmedSummary
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}

		r := types.Record{
			ID:       id,
			Title:    titleOrUntitled(doc.Title),
			Year:     yearOf(doc.PubDate),
			Source:   SourcePubMed,
			URL:      "https://pubmed.ncbi.nlm.nih.gov/" + id + "/",
			Subjects: doc.Keywords,
		}
		for _, a := range doc.Authors {
			if a.Name != "" {
				r.Authors = append(r.Authors, a.Name)
			}
		}
		for _, aid := range doc.ArticleIDs {
			if strings.EqualFold(aid.IDType, "doi") {
				r.DOI = aid.Value
				break
			}
		}
		records = append(records, r)
	}
	return records, nil
}

// PubMed E-utilities JSON structures. The esummary result object mixes a
// "uids" list with one dynamic key per PMID, so it decodes as a raw map.
type pubmedSearchResponse struct {
	Result pubmedSearchResult `json:"esearchresult"`
}

type pubmedSearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
}

type pubmedSummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type pubmedSummary struct {
	Title      string            `json:"title"`
	PubDate    string            `json:"pubdate"`
	Authors    []pubmedAuthor    `json:"authors"`
	ArticleIDs []pubmedArticleID `json:"articleids"`
	Keywords   []string          `json:"keywords"`
}

type pubmedAuthor struct {
	Name string `json:"name"`
}

type pubmedArticleID struct {
	IDType string `json:"idtype"`
	Value  string `json:"value"`
}
