// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/zagdt/e-library-backend-sub001/pkg/types"
)

// QueryFile is the on-disk representation of a federated query and the page
// it returned. A saved search can be reloaded and re-run later without
// retyping the parameters.
type QueryFile struct {
	Query   QueryParams    `yaml:"query"`
	Results []types.Record `yaml:"results"`
	Summary QuerySummary   `yaml:"summary"`
}

// QueryParams stores the query parameters in a serializable form.
type QueryParams struct {
	Term    string   `yaml:"term"`
	Page    int      `yaml:"page,omitempty"`
	Limit   int      `yaml:"limit,omitempty"`
	Sources []string `yaml:"sources,omitempty"`
}

// QuerySummary stores page statistics and a timestamp.
type QuerySummary struct {
	Total      int       `yaml:"total"`
	TotalPages int       `yaml:"total_pages"`
	Sources    []string  `yaml:"sources"`
	Timestamp  time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves query parameters and one result page to a YAML file.
func WriteQueryFile(path string, q Query, page types.ResultPage) error {
	qf := QueryFile{
		Query: QueryParams{
			Term:    q.Term,
			Page:    q.Page,
			Limit:   q.Limit,
			Sources: q.Sources,
		},
		Results: page.Records,
		Summary: QuerySummary{
			Total:      page.Pagination.Total,
			TotalPages: page.Pagination.TotalPages,
			Sources:    page.Pagination.Sources,
			Timestamp:  time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToQuery converts stored QueryParams back into a Query.
func (p QueryParams) ToQuery() Query {
	return Query{
		Term:    p.Term,
		Page:    p.Page,
		Limit:   p.Limit,
		Sources: p.Sources,
	}
}
