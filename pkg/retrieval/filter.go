// Package retrieval reconciles raw search candidates against the local
// manifest. The remote engine searches the whole shared index, so category
// membership is re-derived here from the manifest rather than trusted from
// the engine's response.
package retrieval

import (
	"docsearch-be/internal/entity"
	"docsearch-be/pkg/candidate"
)

// UnknownFilename is the display fallback when a retained candidate has no
// filename anywhere: not in the response, not in the manifest.
const UnknownFilename = "Unknown file"

// RankedDocument is one category-correct search result as returned to the
// caller.
type RankedDocument struct {
	DocumentID string   `json:"document_id"`
	Filename   string   `json:"filename"`
	Text       string   `json:"text"`
	Score      *float64 `json:"score,omitempty"`
}

// FilterByCategory keeps only candidates whose document is registered under
// cat in the manifest, in their original order, and fills empty filenames
// from the matching record. A document the engine returned for some other
// category's file can never pass: membership comes from records, not from
// the engine.
func FilterByCategory(candidates []candidate.Candidate, cat entity.Category, records []entity.DocumentRecord) []RankedDocument {
	members := make(map[string]entity.DocumentRecord)
	for _, record := range records {
		if record.Category == cat {
			members[record.DocumentId] = record
		}
	}

	results := make([]RankedDocument, 0, len(candidates))
	for _, c := range candidates {
		record, ok := members[c.DocumentID]
		if !ok {
			continue
		}

		filename := c.Filename
		if filename == "" {
			filename = record.Filename
		}
		if filename == "" {
			// Guards against a manifest record mutated between the set build
			// and this pass.
			filename = UnknownFilename
		}

		results = append(results, RankedDocument{
			DocumentID: c.DocumentID,
			Filename:   filename,
			Text:       c.Text,
			Score:      c.Score,
		})
	}
	return results
}
