// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discovery implements federated search across external academic
// content providers. One query fans out to every targeted source client
// concurrently; per-source outcomes are collected without one failure
// aborting the others, then merged, deduplicated, ranked, and paginated
// against the merged set's true size.
package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/zagdt/e-library-backend-sub001/pkg/types"
)

const (
	// MinTermLength is the shortest accepted search term after trimming.
	MinTermLength = 2

	// DefaultPageSize is used when a query specifies no page size.
	DefaultPageSize = 20

	// MaxPageSize bounds the requested page size to limit provider load.
	MaxPageSize = 50
)

// Query holds the canonical search parameters shared by all source clients.
type Query struct {
	// Term is the free-text search string.
	Term string

	// Page is the requested page, 1-based.
	Page int

	// Limit is the requested page size.
	Limit int

	// Sources optionally restricts the query to a subset of source
	// identifiers. Empty means all registered sources.
	Sources []string
}

// Validate reports whether the query is acceptable. Defaults must already
// be applied; see Aggregator.normalize.
func (q Query) Validate() error {
	if len(strings.TrimSpace(q.Term)) < MinTermLength {
		return fmt.Errorf("search term must be at least %d characters", MinTermLength)
	}
	if q.Page < 1 {
		return fmt.Errorf("page must be 1 or greater, got %d", q.Page)
	}
	if q.Limit < 1 || q.Limit > MaxPageSize {
		return fmt.Errorf("limit must be between 1 and %d, got %d", MaxPageSize, q.Limit)
	}
	return nil
}

// Outcome is one client's result for one query attempt. Total is the
// provider-reported match count; it is diagnostic only and never drives
// pagination of the merged set.
type Outcome struct {
	Records []types.Record
	Total   int
}

// Client searches a single external source. Implementations own the
// provider's endpoint, headers, pagination parameter mapping, and the
// mapping from the provider's raw response into Records.
type Client interface {
	Name() string
	Search(ctx context.Context, q Query) (Outcome, error)
}

// Aggregator orchestrates concurrent fan-out across a registry of source
// clients and shapes the merged response.
type Aggregator struct {
	registry *Registry
	cfg      types.DiscoveryConfig
	log      *zap.Logger
}

// NewAggregator returns an Aggregator over reg. A nil logger disables
// observability output.
func NewAggregator(reg *Registry, cfg types.DiscoveryConfig, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{registry: reg, cfg: cfg, log: log}
}

// normalize applies configured defaults to unset query fields.
func (a *Aggregator) normalize(q Query) Query {
	q.Term = strings.TrimSpace(q.Term)
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = a.cfg.DefaultPageSize
	}
	if q.Limit == 0 {
		q.Limit = DefaultPageSize
	}
	return q
}

// Search runs one federated query: validate, fan out to every targeted
// client concurrently, join, dedupe, rank, paginate. Per-source failures
// are absorbed into empty outcomes and logged; only validation failures
// surface as errors. When every source fails the result is a well-formed
// empty page, not an error.
func (a *Aggregator) Search(ctx context.Context, q Query) (types.ResultPage, error) {
	q = a.normalize(q)
	if err := q.Validate(); err != nil {
		return types.ResultPage{}, err
	}

	clients, names := a.registry.Resolve(q.Sources)

	type sourceOutcome struct {
		name string
		out  Outcome
		err  error
	}

	ch := make(chan sourceOutcome, len(clients))
	var wg sync.WaitGroup

	for _, c := range clients {
		wg.Add(1)
		go func(c Client) {
			defer wg.Done()
			out, err := c.Search(ctx, q)
			ch <- sourceOutcome{name: c.Name(), out: out, err: err}
		}(c)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	// Join barrier: every targeted client reports exactly once. Failures
	// are logged and contribute an empty outcome; completion order is
	// irrelevant because ranking imposes the visible order.
	var merged []types.Record
	rawTotal := 0
	for so := range ch {
		if so.err != nil {
			a.log.Warn("source failed",
				zap.String("source", so.name),
				zap.Error(so.err))
			continue
		}
		a.log.Info("source returned results",
			zap.String("source", so.name),
			zap.Int("count", len(so.out.Records)),
			zap.Int("reported_total", so.out.Total))
		merged = append(merged, so.out.Records...)
		rawTotal += so.out.Total
	}

	deduped := Dedupe(merged)
	Rank(deduped, q.Term)
	records, pagination := Paginate(deduped, q.Page, q.Limit)
	pagination.Sources = names

	a.log.Debug("federated search merged",
		zap.String("term", q.Term),
		zap.Int("raw_total", rawTotal),
		zap.Int("merged_total", len(deduped)),
		zap.Int("duplicates_removed", len(merged)-len(deduped)))

	return types.ResultPage{Records: records, Pagination: pagination}, nil
}
