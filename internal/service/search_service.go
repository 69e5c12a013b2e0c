package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"docsearch-be/internal/config"
	"docsearch-be/internal/dto"
	"docsearch-be/internal/entity"
	"docsearch-be/internal/pkg/apperror"
	"docsearch-be/internal/pkg/logger"
	"docsearch-be/internal/repository/contract"
	"docsearch-be/pkg/candidate"
	"docsearch-be/pkg/events"
	"docsearch-be/pkg/filesearch"
	"docsearch-be/pkg/metrics"
	"docsearch-be/pkg/retrieval"
)

// Result-count cap bounds. Anything the caller sends resolves into
// [MinMaxResults, MaxMaxResults]; non-numeric input falls back to the
// default first.
const (
	MinMaxResults     = 1
	MaxMaxResults     = 50
	DefaultMaxResults = 10
)

type ISearchService interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
}

// searchService queries the remote engine unscoped (the engine has no
// category concept at query time) and narrows the raw matches against a
// fresh manifest read.
type searchService struct {
	engine           filesearch.Engine
	manifest         contract.ManifestRepository
	publisherService IPublisherService
	metrics          *metrics.Metrics
	logger           logger.ILogger
	cfg              *config.Config
}

func NewSearchService(
	engine filesearch.Engine,
	manifest contract.ManifestRepository,
	publisherService IPublisherService,
	metrics *metrics.Metrics,
	logger logger.ILogger,
	cfg *config.Config,
) ISearchService {
	return &searchService{
		engine:           engine,
		manifest:         manifest,
		publisherService: publisherService,
		metrics:          metrics,
		logger:           logger,
		cfg:              cfg,
	}
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, apperror.Validation("query must not be empty")
	}
	category, err := entity.ParseCategory(req.Category)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if s.cfg.FileSearch.APIKey == "" {
		return nil, apperror.Configuration("remote service credential is not configured")
	}
	if s.cfg.FileSearch.VectorStoreId == "" {
		return nil, apperror.Configuration("remote index identifier is not configured")
	}

	maxResults := ClampMaxResults(req.MaxResults)

	response, err := s.engine.Search(ctx, query, maxResults)
	if err != nil {
		s.metrics.RemoteFailuresTotal.WithLabelValues("search").Inc()
		return nil, apperror.RemoteSearch(err)
	}

	candidates := candidate.FromResponse(response)
	records := s.manifest.ReadAll(ctx)
	results := retrieval.FilterByCategory(candidates, category, records)

	s.metrics.SearchesTotal.WithLabelValues(category.String()).Inc()
	s.metrics.SearchResultsCount.Observe(float64(len(results)))
	s.publishActivity(ctx, map[string]interface{}{
		"query":    query,
		"category": category,
		"results":  len(results),
	})

	return &dto.SearchResponse{
		Ok:      true,
		Results: results,
	}, nil
}

// ClampMaxResults coerces whatever the caller sent for max_results into the
// allowed range. JSON numbers decode as float64; numeric strings are
// accepted too; everything else takes the default. Never rejects.
func ClampMaxResults(value interface{}) int {
	n := DefaultMaxResults
	switch v := value.(type) {
	case float64:
		n = int(v)
	case int:
		n = v
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			n = parsed
		}
	}

	if n < MinMaxResults {
		return MinMaxResults
	}
	if n > MaxMaxResults {
		return MaxMaxResults
	}
	return n
}

func (s *searchService) publishActivity(ctx context.Context, data map[string]interface{}) {
	evt := events.BaseEvent{
		Type:       events.TypeSearchPerformed,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.publisherService.Publish(ctx, evt); err != nil {
		s.logger.Warn("search", "Failed to publish activity event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
