package entity

import "time"

// IngestState tracks how far a document got through the ingestion pipeline:
// stored remotely, attached to the semantic index, registered in the local
// manifest.
type IngestState string

const (
	IngestStateStored     IngestState = "stored"
	IngestStateIndexed    IngestState = "indexed"
	IngestStateRegistered IngestState = "registered"
)

// IngestRecord is the journal entry for one ingestion attempt. A record that
// never reaches IngestStateRegistered marks a document needing manual
// reconciliation: stored remotely but not searchable, or searchable but
// missing from the manifest.
type IngestRecord struct {
	DocumentId string      `json:"document_id"`
	Filename   string      `json:"filename"`
	Category   Category    `json:"category"`
	State      IngestState `json:"state"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
