package contract

import (
	"context"

	"docsearch-be/internal/entity"
)

// ManifestRepository is the local source of truth for category membership.
// Reads never fail: a missing or corrupt manifest is an empty one. Writes
// replace the whole collection and do fail, since losing category
// assignments is worse than failing the request.
//
// Not safe for concurrent writers; the deployment model is single-process
// with low concurrency and last-writer-wins is the accepted conflict policy.
type ManifestRepository interface {
	ReadAll(ctx context.Context) []entity.DocumentRecord
	WriteAll(ctx context.Context, records []entity.DocumentRecord) error
	Upsert(ctx context.Context, record entity.DocumentRecord) error
	FindByCategory(ctx context.Context, category entity.Category) []entity.DocumentRecord
}
