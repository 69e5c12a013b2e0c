package dto

import (
	"docsearch-be/internal/entity"
	"docsearch-be/pkg/retrieval"
)

// SearchRequest is the /api/search body. MaxResults stays untyped on
// purpose: callers send numbers, numeric strings, or garbage, and all of it
// is clamped rather than rejected.
type SearchRequest struct {
	Query      string      `json:"query" validate:"required"`
	Category   string      `json:"category" validate:"required,oneof=Basic Web Mobile"`
	MaxResults interface{} `json:"max_results"`
}

type SearchResponse struct {
	Ok      bool                       `json:"ok"`
	Results []retrieval.RankedDocument `json:"results"`
}

type StatsResponse struct {
	Ok    bool          `json:"ok"`
	Stats ActivityStats `json:"stats"`
}

// ActivityStats is the operator view: lifetime counters plus the set of
// ingestions stuck before manifest registration.
type ActivityStats struct {
	Uploads        int64                 `json:"uploads"`
	Searches       int64                 `json:"searches"`
	RemoteFailures int64                 `json:"remote_failures"`
	Pending        []entity.IngestRecord `json:"pending"`
}
