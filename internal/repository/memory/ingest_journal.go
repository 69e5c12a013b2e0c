package memory

import (
	"sort"
	"time"

	"github.com/patrickmn/go-cache"

	"docsearch-be/internal/entity"
	"docsearch-be/internal/repository/contract"
)

// IngestJournalRepository tracks ingestion progress in process memory.
// Records that reach IngestStateRegistered expire after 24 hours; records
// stuck earlier are kept without expiry as the pending-reconciliation set.
type IngestJournalRepository struct {
	cache *cache.Cache
	now   func() time.Time
}

func NewIngestJournalRepository() *IngestJournalRepository {
	// Registered entries linger a day for /api/stats, purged every hour.
	c := cache.New(24*time.Hour, 1*time.Hour)
	return &IngestJournalRepository{
		cache: c,
		now:   time.Now,
	}
}

var _ contract.IngestJournal = (*IngestJournalRepository)(nil)

func (r *IngestJournalRepository) Record(record entity.IngestRecord) {
	record.UpdatedAt = r.now()
	r.cache.Set(record.DocumentId, record, expirationFor(record.State))
}

func (r *IngestJournalRepository) Advance(documentID string, state entity.IngestState) {
	x, found := r.cache.Get(documentID)
	if !found {
		return
	}
	record := x.(entity.IngestRecord)
	record.State = state
	record.UpdatedAt = r.now()
	r.cache.Set(documentID, record, expirationFor(state))
}

func (r *IngestJournalRepository) Pending() []entity.IngestRecord {
	pending := make([]entity.IngestRecord, 0)
	for _, item := range r.cache.Items() {
		record := item.Object.(entity.IngestRecord)
		if record.State != entity.IngestStateRegistered {
			pending = append(pending, record)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].UpdatedAt.Before(pending[j].UpdatedAt)
	})
	return pending
}

func expirationFor(state entity.IngestState) time.Duration {
	if state == entity.IngestStateRegistered {
		return cache.DefaultExpiration
	}
	// Stuck records must not silently vanish before an operator sees them.
	return cache.NoExpiration
}
