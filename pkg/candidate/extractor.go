// Package candidate normalizes the remote engine's heterogeneous search
// response into a flat list of match candidates. The engine spells fields
// inconsistently and ships match content as a string, an array, or an object
// depending on the document, so extraction works over generically decoded
// JSON rather than a fixed schema.
package candidate

import (
	"sort"
	"strings"

	"docsearch-be/pkg/filesearch"
)

// Candidate is one unfiltered match pulled from the raw response. Score is
// nil when the engine reported none.
type Candidate struct {
	DocumentID string
	Filename   string
	Text       string
	Score      *float64
}

// FromResponse flattens every file_search_call item of the response into
// candidates, preserving the order matches appeared in. Pure; assumes the
// decoded response is a finite acyclic tree.
func FromResponse(resp *filesearch.SearchResponse) []Candidate {
	candidates := make([]Candidate, 0)
	if resp == nil {
		return candidates
	}

	for _, item := range resp.Output {
		if item.Type != filesearch.ItemTypeFileSearchCall {
			continue
		}
		for _, raw := range item.Results {
			candidates = append(candidates, fromRawResult(raw))
		}
	}
	return candidates
}

func fromRawResult(raw map[string]any) Candidate {
	c := Candidate{
		DocumentID: stringField(raw, "file_id", "fileId"),
		Filename:   stringField(raw, "filename", "file_name"),
		Text:       strings.TrimSpace(FlattenContent(raw["content"])),
	}
	if score, ok := raw["score"].(float64); ok {
		c.Score = &score
	}
	return c
}

// stringField tries each spelling in order and settles for "" when none is
// present as a string.
func stringField(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := raw[key].(string); ok {
			return value
		}
	}
	return ""
}

// FlattenContent reduces a generically decoded content value to plain text.
// Strings pass through; arrays flatten element-wise joined by single spaces;
// objects reduce to their "text" field when it is a string, otherwise to
// their flattened field values in sorted key order (Go map iteration is
// unordered, sorting keeps the transform deterministic). Anything else
// (nil, number, bool) contributes nothing.
func FlattenContent(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		return joinFlattened(v)
	case map[string]any:
		if text, ok := v["text"].(string); ok {
			return text
		}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		values := make([]any, 0, len(keys))
		for _, key := range keys {
			values = append(values, v[key])
		}
		return joinFlattened(values)
	default:
		return ""
	}
}

func joinFlattened(values []any) string {
	pieces := make([]string, 0, len(values))
	for _, value := range values {
		if piece := FlattenContent(value); piece != "" {
			pieces = append(pieces, piece)
		}
	}
	return strings.Join(pieces, " ")
}
