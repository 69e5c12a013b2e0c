package retrieval

import (
	"testing"
	"time"

	"docsearch-be/internal/entity"
	"docsearch-be/pkg/candidate"
)

func score(v float64) *float64 { return &v }

func manifestFixture() []entity.DocumentRecord {
	now := time.Now()
	return []entity.DocumentRecord{
		{DocumentId: "doc-web", Category: entity.CategoryWeb, Filename: "web.pdf", CreatedAt: now},
		{DocumentId: "doc-web-2", Category: entity.CategoryWeb, Filename: "web2.pdf", CreatedAt: now},
		{DocumentId: "doc-mobile", Category: entity.CategoryMobile, Filename: "mobile.pdf", CreatedAt: now},
	}
}

func TestFilterByCategoryExcludesUnregisteredDocuments(t *testing.T) {
	candidates := []candidate.Candidate{
		{DocumentID: "doc-web", Text: "match"},
		{DocumentID: "ghost", Text: "never registered"},
	}

	for _, cat := range entity.Categories() {
		results := FilterByCategory(candidates, cat, manifestFixture())
		for _, r := range results {
			if r.DocumentID == "ghost" {
				t.Fatalf("unregistered document leaked into category %q", cat)
			}
		}
	}
}

func TestFilterByCategoryCrossCategoryIsolation(t *testing.T) {
	// The engine returned a Mobile document for a Web search; it must not
	// pass.
	candidates := []candidate.Candidate{
		{DocumentID: "doc-mobile", Text: "wrong category"},
		{DocumentID: "doc-web", Text: "right category"},
	}

	results := FilterByCategory(candidates, entity.CategoryWeb, manifestFixture())
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].DocumentID != "doc-web" {
		t.Fatalf("expected doc-web, got %q", results[0].DocumentID)
	}
}

func TestFilterByCategoryPreservesOrderAndEnriches(t *testing.T) {
	candidates := []candidate.Candidate{
		{DocumentID: "doc-web-2", Filename: "", Text: "second registered", Score: score(0.8)},
		{DocumentID: "doc-mobile", Text: "filtered"},
		{DocumentID: "doc-web", Filename: "from-engine.pdf", Text: "first registered", Score: score(0.5)},
	}

	results := FilterByCategory(candidates, entity.CategoryWeb, manifestFixture())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// Stable filter: candidate order survives, no re-ranking by score.
	if results[0].DocumentID != "doc-web-2" || results[1].DocumentID != "doc-web" {
		t.Fatalf("order not preserved: %+v", results)
	}

	// Empty filename filled from the manifest; engine-provided one kept.
	if results[0].Filename != "web2.pdf" {
		t.Fatalf("expected manifest filename, got %q", results[0].Filename)
	}
	if results[1].Filename != "from-engine.pdf" {
		t.Fatalf("expected engine filename kept, got %q", results[1].Filename)
	}

	if results[0].Score == nil || *results[0].Score != 0.8 {
		t.Fatalf("score not carried through: %+v", results[0])
	}
}

func TestFilterByCategoryUnknownFilenameFallback(t *testing.T) {
	records := []entity.DocumentRecord{
		{DocumentId: "doc-x", Category: entity.CategoryBasic, Filename: ""},
	}
	candidates := []candidate.Candidate{{DocumentID: "doc-x", Text: "t"}}

	results := FilterByCategory(candidates, entity.CategoryBasic, records)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Filename != UnknownFilename {
		t.Fatalf("expected %q, got %q", UnknownFilename, results[0].Filename)
	}
}

func TestFilterByCategoryEmptyInputs(t *testing.T) {
	if got := FilterByCategory(nil, entity.CategoryWeb, manifestFixture()); len(got) != 0 {
		t.Fatalf("expected no results for no candidates, got %d", len(got))
	}
	candidates := []candidate.Candidate{{DocumentID: "doc-web"}}
	if got := FilterByCategory(candidates, entity.CategoryWeb, nil); len(got) != 0 {
		t.Fatalf("expected no results for empty manifest, got %d", len(got))
	}
}
