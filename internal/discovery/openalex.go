// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/zagdt/e-library-backend-sub001/pkg/types"
)

// SourceOpenAlex is the OpenAlex source identifier.
const SourceOpenAlex = "openalex"

// openAlexSearchBase is the OpenAlex Works search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openAlexSearchBase = "https://api.openalex.org/works"

// OpenAlexClient queries the OpenAlex API.
type OpenAlexClient struct {
	Client    *http.Client
	UserAgent string
	// Email is sent as mailto parameter for polite pool access.
	Email string
}

// Name returns the source identifier.
func (c *OpenAlexClient) Name() string { return SourceOpenAlex }

// Search queries OpenAlex. Pagination maps directly to page/per_page.
func (c *OpenAlexClient) Search(ctx context.Context, q Query) (Outcome, error) {
	params := url.Values{
		"search":   {q.Term},
		"page":     {strconv.Itoa(q.Page)},
		"per_page": {strconv.Itoa(q.Limit)},
	}
	if c.Email != "" {
		params.Set("mailto", c.Email)
	}

	reqURL := openAlexSearchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Outcome{}, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var oar openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&oar); err != nil {
		return Outcome{}, fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	out := Outcome{Total: oar.Meta.Count}
	for _, work := range oar.Results {
		r := types.Record{
			ID:       work.ID,
			Title:    titleOrUntitled(work.Title),
			Abstract: reconstructAbstract(work.AbstractInvertedIndex),
			Source:   SourceOpenAlex,
			URL:      work.ID,
			PDFURL:   work.OpenAccess.OAURL,
		}

		// OpenAlex is DOI-centric; strip the resolver prefix for the bare DOI.
		if work.DOI != "" {
			r.DOI = strings.TrimPrefix(work.DOI, "https://doi.org/")
			r.URL = work.DOI
		}
		if r.URL == "" {
			r.URL = "https://openalex.org/works"
		}

		if work.PublicationDate != "" {
			r.Year = yearOf(work.PublicationDate)
		} else if work.PublicationYear > 0 {
			r.Year = strconv.Itoa(work.PublicationYear)
		}

		for _, authorship := range work.Authorships {
			if authorship.Author.DisplayName != "" {
				r.Authors = append(r.Authors, authorship.Author.DisplayName)
			}
		}
		for _, concept := range work.Concepts {
			if concept.DisplayName != "" {
				r.Subjects = append(r.Subjects, concept.DisplayName)
			}
		}

		out.Records = append(out.Records, r)
	}
	if out.Total == 0 {
		out.Total = len(out.Records)
	}
	return out, nil
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The inverted index maps each word to the positions where that
// word appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Meta    openAlexMeta   `json:"meta"`
	Results []openAlexWork `json:"results"`
}

type openAlexMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
}

type openAlexWork struct {
	ID                    string               `json:"id"`
	Title                 string               `json:"title"`
	DOI                   string               `json:"doi"`
	PublicationDate       string               `json:"publication_date"`
	PublicationYear       int                  `json:"publication_year"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	Concepts              []openAlexConcept    `json:"concepts"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
	OpenAccess            openAlexOpenAccess   `json:"open_access"`
}

type openAlexAuthorship struct {
	Author openAlexAuthor `json:"author"`
}

type openAlexAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type openAlexConcept struct {
	DisplayName string `json:"display_name"`
}

type openAlexOpenAccess struct {
	IsOA     bool   `json:"is_oa"`
	OAStatus string `json:"oa_status"`
	OAURL    string `json:"oa_url"`
}
