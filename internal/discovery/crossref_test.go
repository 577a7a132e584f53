// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleCrossrefJSON = `{
  "message": {
    "total-results": 1502,
    "items": [
      {
        "DOI": "10.1038/nature14539",
        "title": ["Deep learning"],
        "abstract": "<jats:p>Deep learning allows computational models\nto learn representations.</jats:p>",
        "URL": "https://doi.org/10.1038/nature14539",
        "subject": ["Multidisciplinary"],
        "author": [
          {"given": "Yann", "family": "LeCun"},
          {"given": "Yoshua", "family": "Bengio"}
        ],
        "issued": {"date-parts": [[2015, 5, 27]]},
        "link": [
          {"URL": "https://www.nature.com/articles/nature14539.pdf", "content-type": "application/pdf"},
          {"URL": "https://www.nature.com/articles/nature14539", "content-type": "text/html"}
        ]
      },
      {
        "DOI": "10.1000/empty",
        "title": [],
        "URL": "",
        "author": [{"family": "Solo"}],
        "issued": {"date-parts": []}
      }
    ]
  }
}`

func crossrefTestServer(statusCode int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

func TestCrossrefClientSearch(t *testing.T) {
	ts := crossrefTestServer(http.StatusOK, sampleCrossrefJSON)
	defer ts.Close()

	old := crossrefAPIBase
	crossrefAPIBase = ts.URL
	defer func() { crossrefAPIBase = old }()

	c := &CrossrefClient{Client: ts.Client(), UserAgent: "test/0.1"}
	out, err := c.Search(context.Background(), Query{Term: "deep learning", Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if out.Total != 1502 {
		t.Errorf("Total = %d, want 1502", out.Total)
	}
	if len(out.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(out.Records))
	}

	r0 := out.Records[0]
	if r0.Title != "Deep learning" {
		t.Errorf("Title = %q", r0.Title)
	}
	if r0.Abstract != "Deep learning allows computational models to learn representations." {
		t.Errorf("Abstract = %q, want JATS markup stripped", r0.Abstract)
	}
	if r0.Year != "2015" {
		t.Errorf("Year = %q, want 2015 from date-parts", r0.Year)
	}
	if len(r0.Authors) != 2 || r0.Authors[0] != "Yann LeCun" {
		t.Errorf("Authors = %v", r0.Authors)
	}
	if r0.PDFURL != "https://www.nature.com/articles/nature14539.pdf" {
		t.Errorf("PDFURL = %q, want the application/pdf link", r0.PDFURL)
	}

	// Empty title list, empty URL, family-only author, empty date-parts.
	r1 := out.Records[1]
	if r1.Title != "Untitled" {
		t.Errorf("Title = %q, want Untitled placeholder", r1.Title)
	}
	if r1.URL != "https://doi.org/10.1000/empty" {
		t.Errorf("URL = %q, want constructed DOI URL", r1.URL)
	}
	if len(r1.Authors) != 1 || r1.Authors[0] != "Solo" {
		t.Errorf("Authors = %v", r1.Authors)
	}
	if r1.Year != "" {
		t.Errorf("Year = %q, want empty", r1.Year)
	}
}

func TestCrossrefClientMailtoAndPagination(t *testing.T) {
	var gotMailto, gotRows, gotOffset string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMailto = r.URL.Query().Get("mailto")
		gotRows = r.URL.Query().Get("rows")
		gotOffset = r.URL.Query().Get("offset")
		fmt.Fprint(w, `{"message":{"total-results":0,"items":[]}}`)
	}))
	defer ts.Close()

	old := crossrefAPIBase
	crossrefAPIBase = ts.URL
	defer func() { crossrefAPIBase = old }()

	c := &CrossrefClient{Client: ts.Client(), Mailto: "ops@example.com"}
	if _, err := c.Search(context.Background(), Query{Term: "x", Page: 4, Limit: 25}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotMailto != "ops@example.com" {
		t.Errorf("mailto = %q", gotMailto)
	}
	if gotRows != "25" || gotOffset != "75" {
		t.Errorf("rows/offset = %s/%s, want 25/75", gotRows, gotOffset)
	}
}

func TestStripJATS(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "No markup here.", "No markup here."},
		{"simple tags", "<jats:p>Hello world.</jats:p>", "Hello world."},
		{"nested tags", "<jats:p><jats:italic>Deep</jats:italic> learning</jats:p>", "Deep learning"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripJATS(tt.in); got != tt.want {
				t.Errorf("stripJATS(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
