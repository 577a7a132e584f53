// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zagdt/e-library-backend-sub001/internal/discovery"
	"github.com/zagdt/e-library-backend-sub001/internal/searchlog"
	"github.com/zagdt/e-library-backend-sub001/pkg/types"
)

// maxTermLength bounds the accepted q parameter.
const maxTermLength = 200

// searchEnvelope is the /discovery/search response shape.
type searchEnvelope struct {
	Success    bool             `json:"success"`
	Data       []types.Record   `json:"data"`
	Pagination types.Pagination `json:"pagination"`
	Message    string           `json:"message"`
}

// sourcesEnvelope is the /discovery/sources response shape.
type sourcesEnvelope struct {
	Success bool               `json:"success"`
	Data    []types.SourceInfo `json:"data"`
}

// errorEnvelope is the validation failure shape.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorEnvelope{Success: false, Message: message})
}

// handleSearch runs one federated query. Only validation failures produce
// an error status; per-source degradation is reflected in result
// completeness and a fully degraded search returns an empty page with 200.
func (s *Server) handleSearch(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if len(term) < discovery.MinTermLength {
		badRequest(c, fmt.Sprintf("query parameter q must be at least %d characters", discovery.MinTermLength))
		return
	}
	if len(term) > maxTermLength {
		badRequest(c, fmt.Sprintf("query parameter q must be at most %d characters", maxTermLength))
		return
	}

	page := 1
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			badRequest(c, "page must be an integer of 1 or greater")
			return
		}
		page = n
	}

	// Zero means "use the configured default page size".
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > discovery.MaxPageSize {
			badRequest(c, fmt.Sprintf("limit must be an integer between 1 and %d", discovery.MaxPageSize))
			return
		}
		limit = n
	}

	query := discovery.Query{
		Term:    term,
		Page:    page,
		Limit:   limit,
		Sources: sourceParams(c),
	}

	start := time.Now()
	result, err := s.aggregator.Search(c.Request.Context(), query)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	s.recordSearch(query, result, time.Since(start))

	c.JSON(http.StatusOK, searchEnvelope{
		Success:    true,
		Data:       result.Records,
		Pagination: result.Pagination,
		Message: fmt.Sprintf("found %d results across %d sources",
			result.Pagination.Total, len(result.Pagination.Sources)),
	})
}

// handleSources returns the static source catalog.
func (s *Server) handleSources(c *gin.Context) {
	c.JSON(http.StatusOK, sourcesEnvelope{
		Success: true,
		Data:    s.registry.Catalog(),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// recordSearch appends to the audit log when enabled. Failures are logged
// and never affect the response.
func (s *Server) recordSearch(q discovery.Query, result types.ResultPage, elapsed time.Duration) {
	if s.audit == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := s.audit.Record(ctx, searchlog.Entry{
		Term:     q.Term,
		Sources:  result.Pagination.Sources,
		Total:    result.Pagination.Total,
		Duration: elapsed,
	})
	if err != nil {
		s.log.Warn("recording search log entry", zap.Error(err))
	}
}

// sourceParams collects the repeatable source parameter, splitting
// comma-separated values.
func sourceParams(c *gin.Context) []string {
	var sources []string
	for _, raw := range c.QueryArray("source") {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				sources = append(sources, part)
			}
		}
	}
	return sources
}
