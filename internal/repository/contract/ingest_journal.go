package contract

import "docsearch-be/internal/entity"

// IngestJournal is advisory bookkeeping for the non-atomic ingestion
// pipeline. Records that never reach IngestStateRegistered mark documents an
// operator must reconcile manually; the manifest stays the sole source of
// truth for category membership.
type IngestJournal interface {
	Record(record entity.IngestRecord)
	Advance(documentID string, state entity.IngestState)
	Pending() []entity.IngestRecord
}
