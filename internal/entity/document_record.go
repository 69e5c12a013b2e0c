package entity

import "time"

// DocumentRecord is one manifest row: the local source of truth for which
// category a remotely stored document belongs to. DocumentId is assigned by
// the remote store and never changes; the other fields follow last-write-wins
// on upsert.
type DocumentRecord struct {
	DocumentId string    `json:"document_id"`
	Category   Category  `json:"category"`
	Filename   string    `json:"filename"`
	CreatedAt  time.Time `json:"created_at"`
}
