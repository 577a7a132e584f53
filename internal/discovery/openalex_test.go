// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleOpenAlexJSON = `{
  "meta": {"count": 312, "per_page": 20, "page": 1},
  "results": [
    {
      "id": "https://openalex.org/W2741809807",
      "title": "Attention Is All You Need",
      "doi": "https://doi.org/10.5555/3295222.3295349",
      "publication_date": "2017-06-12",
      "publication_year": 2017,
      "authorships": [
        {"author": {"id": "A1", "display_name": "Ashish Vaswani"}},
        {"author": {"id": "A2", "display_name": "Noam Shazeer"}}
      ],
      "concepts": [
        {"display_name": "Artificial intelligence"},
        {"display_name": "Machine translation"}
      ],
      "abstract_inverted_index": {
        "We": [0],
        "propose": [1],
        "attention": [2]
      },
      "open_access": {"is_oa": true, "oa_status": "green", "oa_url": "https://arxiv.org/pdf/1706.03762"}
    },
    {
      "id": "https://openalex.org/W3210812345",
      "title": "BERT",
      "doi": "",
      "publication_date": "",
      "publication_year": 2018,
      "authorships": [{"author": {"id": "A3", "display_name": "Jacob Devlin"}}],
      "abstract_inverted_index": {},
      "open_access": {"is_oa": false, "oa_status": "closed", "oa_url": ""}
    }
  ]
}`

func openAlexTestServer(statusCode int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

func TestOpenAlexClientSearch(t *testing.T) {
	ts := openAlexTestServer(http.StatusOK, sampleOpenAlexJSON)
	defer ts.Close()

	old := openAlexSearchBase
	openAlexSearchBase = ts.URL
	defer func() { openAlexSearchBase = old }()

	c := &OpenAlexClient{Client: ts.Client(), UserAgent: "test/0.1"}
	out, err := c.Search(context.Background(), Query{Term: "attention", Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if out.Total != 312 {
		t.Errorf("Total = %d, want reported 312", out.Total)
	}
	if len(out.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(out.Records))
	}

	r0 := out.Records[0]
	if r0.DOI != "10.5555/3295222.3295349" {
		t.Errorf("DOI = %q, want resolver prefix stripped", r0.DOI)
	}
	if r0.URL != "https://doi.org/10.5555/3295222.3295349" {
		t.Errorf("URL = %q, want the DOI resolver URL", r0.URL)
	}
	if r0.Abstract != "We propose attention" {
		t.Errorf("Abstract = %q, want reconstructed inverted index", r0.Abstract)
	}
	if r0.Year != "2017" {
		t.Errorf("Year = %q, want 2017", r0.Year)
	}
	if r0.PDFURL != "https://arxiv.org/pdf/1706.03762" {
		t.Errorf("PDFURL = %q", r0.PDFURL)
	}
	if len(r0.Subjects) != 2 || r0.Subjects[0] != "Artificial intelligence" {
		t.Errorf("Subjects = %v", r0.Subjects)
	}

	// No DOI: the OpenAlex work URL doubles as ID and URL; bare year used.
	r1 := out.Records[1]
	if r1.URL != "https://openalex.org/W3210812345" {
		t.Errorf("URL = %q, want OpenAlex work URL", r1.URL)
	}
	if r1.Year != "2018" {
		t.Errorf("Year = %q, want publication_year fallback", r1.Year)
	}
	if r1.Abstract != "" {
		t.Errorf("Abstract = %q, want empty for empty inverted index", r1.Abstract)
	}
}

func TestOpenAlexClientMailto(t *testing.T) {
	var gotMailto, gotPage, gotPerPage string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMailto = r.URL.Query().Get("mailto")
		gotPage = r.URL.Query().Get("page")
		gotPerPage = r.URL.Query().Get("per_page")
		fmt.Fprint(w, `{"meta":{"count":0},"results":[]}`)
	}))
	defer ts.Close()

	old := openAlexSearchBase
	openAlexSearchBase = ts.URL
	defer func() { openAlexSearchBase = old }()

	c := &OpenAlexClient{Client: ts.Client(), Email: "ops@example.com"}
	if _, err := c.Search(context.Background(), Query{Term: "x", Page: 2, Limit: 10}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotMailto != "ops@example.com" {
		t.Errorf("mailto = %q", gotMailto)
	}
	if gotPage != "2" || gotPerPage != "10" {
		t.Errorf("page/per_page = %s/%s, want 2/10", gotPage, gotPerPage)
	}

	c = &OpenAlexClient{Client: ts.Client()}
	_, _ = c.Search(context.Background(), Query{Term: "x", Page: 1, Limit: 10})
	if gotMailto != "" {
		t.Errorf("mailto = %q, want absent without configured email", gotMailto)
	}
}

func TestOpenAlexClientErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantSubstr string
	}{
		{"server error", http.StatusInternalServerError, "", "HTTP 500"},
		{"malformed json", http.StatusOK, "{not json", "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := openAlexTestServer(tt.statusCode, tt.body)
			defer ts.Close()

			old := openAlexSearchBase
			openAlexSearchBase = ts.URL
			defer func() { openAlexSearchBase = old }()

			c := &OpenAlexClient{Client: ts.Client()}
			_, err := c.Search(context.Background(), Query{Term: "x", Page: 1, Limit: 20})
			if err == nil || !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("err = %v, want substring %q", err, tt.wantSubstr)
			}
		})
	}
}

func TestReconstructAbstract(t *testing.T) {
	tests := []struct {
		name  string
		index map[string][]int
		want  string
	}{
		{"nil map", nil, ""},
		{"single word", map[string][]int{"hello": {0}}, "hello"},
		{
			"repeated word",
			map[string][]int{"the": {0, 4}, "cat": {1}, "sat": {2}, "on": {3}, "mat": {5}},
			"the cat sat on the mat",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reconstructAbstract(tt.index); got != tt.want {
				t.Errorf("reconstructAbstract() = %q, want %q", got, tt.want)
			}
		})
	}
}
