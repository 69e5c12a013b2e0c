// Package filesearch is the client for the remote document store and
// semantic index. The service is treated as a black box with three verbs:
// store raw bytes, attach a stored document to the index, and run a ranked
// passage search over the whole index.
package filesearch

import (
	"context"
	"io"
)

// Engine is the remote collaborator contract. StoreDocument returns the
// opaque document id that joins the local manifest to the remote index.
type Engine interface {
	StoreDocument(ctx context.Context, r io.Reader, filename string) (string, error)
	IndexDocument(ctx context.Context, documentID string, attributes map[string]string) error
	Search(ctx context.Context, query string, maxResults int) (*SearchResponse, error)
}

// ItemTypeFileSearchCall tags the output items that carry search results.
const ItemTypeFileSearchCall = "file_search_call"

// SearchResponse is the raw answer from the engine's search endpoint. Output
// interleaves item kinds; only file_search_call items matter here.
type SearchResponse struct {
	Id     string       `json:"id"`
	Model  string       `json:"model"`
	Output []OutputItem `json:"output"`
}

// OutputItem is one entry of the response output. Results stay generic maps:
// the engine is not consistent about field spellings, and content arrives as
// a string, an array, or an object depending on the match.
type OutputItem struct {
	Type    string           `json:"type"`
	Id      string           `json:"id,omitempty"`
	Status  string           `json:"status,omitempty"`
	Queries []string         `json:"queries,omitempty"`
	Results []map[string]any `json:"results,omitempty"`
}
