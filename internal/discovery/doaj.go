// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/zagdt/e-library-backend-sub001/pkg/types"
)

// SourceDOAJ is the DOAJ source identifier.
const SourceDOAJ = "doaj"

// doajAPIBase is the DOAJ article search endpoint. Declared as a var so
// tests can substitute an httptest server.
var doajAPIBase = "https://doaj.org/api/search/articles"

// doajOAIBase is the DOAJ OAI-PMH harvesting endpoint, used as a fallback
// when the search API is unavailable.
var doajOAIBase = "https://doaj.org/oai"

// DOAJClient queries the Directory of Open Access Journals. The JSON search
// API is the primary path; when it fails for any reason the client falls
// back to harvesting the OAI-PMH Dublin Core feed. The feed has no query
// capability, so the fallback filters records locally by term and slices
// the filtered set itself.
type DOAJClient struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the source identifier.
func (c *DOAJClient) Name() string { return SourceDOAJ }

// Search queries DOAJ, preferring the search API over the OAI-PMH fallback.
func (c *DOAJClient) Search(ctx context.Context, q Query) (Outcome, error) {
	out, err := c.searchAPI(ctx, q)
	if err == nil {
		return out, nil
	}
	return c.harvestOAI(ctx, q)
}

// searchAPI queries the JSON search endpoint. Pagination maps to
// page/pageSize.
func (c *DOAJClient) searchAPI(ctx context.Context, q Query) (Outcome, error) {
	params := url.Values{
		"page":     {strconv.Itoa(q.Page)},
		"pageSize": {strconv.Itoa(q.Limit)},
	}
	reqURL := doajAPIBase + "/" + url.PathEscape(q.Term) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("DOAJ API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Outcome{}, fmt.Errorf("DOAJ API returned HTTP %d", resp.StatusCode)
	}

	var dr doajResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return Outcome{}, fmt.Errorf("parsing DOAJ response: %w", err)
	}

	out := Outcome{Total: dr.Total}
	for _, article := range dr.Results {
		bib := article.Bibjson
		r := types.Record{
			ID:       article.ID,
			Title:    titleOrUntitled(bib.Title),
			Abstract: bib.Abstract,
			Year:     bib.Year,
			Source:   SourceDOAJ,
			URL:      "https://doaj.org/article/" + article.ID,
		}
		for _, a := range bib.Authors {
			if a.Name != "" {
				r.Authors = append(r.Authors, a.Name)
			}
		}
		for _, s := range bib.Subjects {
			if s.Term != "" {
				r.Subjects = append(r.Subjects, s.Term)
			}
		}
		for _, l := range bib.Links {
			if l.Type == "fulltext" && l.URL != "" {
				r.URL = l.URL
				break
			}
		}
		for _, id := range bib.Identifiers {
			if strings.EqualFold(id.Type, "doi") {
				r.DOI = id.ID
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

// harvestOAI lists the Dublin Core feed and performs the query work locally:
// case-insensitive term matching over title and description, then page
// slicing of the filtered set.
func (c *DOAJClient) harvestOAI(ctx context.Context, q Query) (Outcome, error) {
	params := url.Values{
		"verb":           {"ListRecords"},
		"metadataPrefix": {"oai_dc"},
	}
	reqURL := doajOAIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("DOAJ OAI-PMH request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Outcome{}, fmt.Errorf("DOAJ OAI-PMH returned HTTP %d", resp.StatusCode)
	}

	var feed oaiPMH
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return Outcome{}, fmt.Errorf("parsing DOAJ OAI-PMH response: %w", err)
	}

	needle := strings.ToLower(q.Term)
	var matched []types.Record
	for _, rec := range feed.ListRecords.Records {
		dc := rec.Metadata.DC
		if !strings.Contains(strings.ToLower(dc.Title), needle) &&
			!strings.Contains(strings.ToLower(strings.Join(dc.Descriptions, " ")), needle) {
			continue
		}

		r := types.Record{
			ID:      rec.Header.Identifier,
			Title:   titleOrUntitled(dc.Title),
			Authors: dc.Creators,
			Source:  SourceDOAJ,
		}
		if len(dc.Descriptions) > 0 {
			r.Abstract = strings.TrimSpace(dc.Descriptions[0])
		}
		if len(dc.Dates) > 0 {
			r.Year = yearOf(dc.Dates[0])
		}
		for _, id := range dc.Identifiers {
			switch {
			case strings.HasPrefix(id, "http"):
				if r.URL == "" {
					r.URL = id
				}
			case strings.HasPrefix(id, "10."):
				r.DOI = id
			}
		}
		if r.URL == "" {
			r.URL = "https://doaj.org/article/" + strings.TrimPrefix(rec.Header.Identifier, "oai:doaj.org/article:")
		}
		for _, s := range dc.Subjects {
			if s != "" {
				r.Subjects = append(r.Subjects, s)
			}
		}
		matched = append(matched, r)
	}

	// The upstream feed cannot paginate a filtered set, so slice it here.
	page, _ := Paginate(matched, q.Page, q.Limit)
	return Outcome{Records: page, Total: len(matched)}, nil
}

// DOAJ search API JSON structures.
type doajResponse struct {
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	Results  []doajArticle `json:"results"`
}

type doajArticle struct {
	ID      string      `json:"id"`
	Bibjson doajBibjson `json:"bibjson"`
}

type doajBibjson struct {
	Title       string           `json:"title"`
	Abstract    string           `json:"abstract"`
	Year        string           `json:"year"`
	Authors     []doajAuthor     `json:"author"`
	Subjects    []doajSubject    `json:"subject"`
	Links       []doajLink       `json:"link"`
	Identifiers []doajIdentifier `json:"identifier"`
}

type doajAuthor struct {
	Name string `json:"name"`
}

type doajSubject struct {
	Term string `json:"term"`
}

type doajLink struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type doajIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// OAI-PMH Dublin Core XML structures.
type oaiPMH struct {
	ListRecords oaiListRecords `xml:"ListRecords"`
}

type oaiListRecords struct {
	Records []oaiRecord `xml:"record"`
}

type oaiRecord struct {
	Header   oaiHeader   `xml:"header"`
	Metadata oaiMetadata `xml:"metadata"`
}

type oaiHeader struct {
	Identifier string `xml:"identifier"`
}

type oaiMetadata struct {
	DC oaiDublinCore `xml:"dc"`
}

type oaiDublinCore struct {
	Title        string   `xml:"title"`
	Creators     []string `xml:"creator"`
	Descriptions []string `xml:"description"`
	Dates        []string `xml:"date"`
	Identifiers  []string `xml:"identifier"`
	Subjects     []string `xml:"subject"`
}
