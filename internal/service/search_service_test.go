package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsearch-be/internal/dto"
	"docsearch-be/internal/entity"
	"docsearch-be/internal/pkg/apperror"
	"docsearch-be/pkg/events"
	"docsearch-be/pkg/filesearch"
)

func TestClampMaxResults(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  int
	}{
		{name: "nil takes default", value: nil, want: DefaultMaxResults},
		{name: "zero clamps up", value: float64(0), want: 1},
		{name: "negative clamps up", value: float64(-5), want: 1},
		{name: "huge clamps down", value: float64(1000), want: 50},
		{name: "in range stays", value: float64(25), want: 25},
		{name: "int in range", value: 7, want: 7},
		{name: "numeric string", value: "30", want: 30},
		{name: "numeric string clamps", value: "9000", want: 50},
		{name: "garbage string takes default", value: "abc", want: DefaultMaxResults},
		{name: "bool takes default", value: true, want: DefaultMaxResults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampMaxResults(tt.value)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, MinMaxResults)
			assert.LessOrEqual(t, got, MaxMaxResults)
		})
	}
}

type searchFixture struct {
	engine    *fakeEngine
	manifest  *fakeManifest
	publisher *recordingPublisher
	service   ISearchService
}

func newSearchFixture(t *testing.T) *searchFixture {
	t.Helper()
	f := &searchFixture{
		engine:    &fakeEngine{searchResponse: &filesearch.SearchResponse{}},
		manifest:  &fakeManifest{},
		publisher: &recordingPublisher{},
	}
	f.service = NewSearchService(
		f.engine,
		f.manifest,
		f.publisher,
		testMetrics(),
		nopLogger{},
		testConfig(t.TempDir()),
	)
	return f
}

func TestSearchValidation(t *testing.T) {
	f := newSearchFixture(t)
	ctx := context.Background()

	for _, req := range []*dto.SearchRequest{
		{Query: "   ", Category: "Web"},
		{Query: "q", Category: "Desktop"},
	} {
		_, err := f.service.Search(ctx, req)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
	}

	// Nothing reached the engine.
	assert.Empty(t, f.engine.searchQueries)
}

func TestSearchMissingConfiguration(t *testing.T) {
	f := newSearchFixture(t)
	cfg := testConfig(t.TempDir())
	cfg.FileSearch.VectorStoreId = ""
	f.service = NewSearchService(f.engine, f.manifest, f.publisher, testMetrics(), nopLogger{}, cfg)

	_, err := f.service.Search(context.Background(), &dto.SearchRequest{Query: "q", Category: "Web"})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindConfiguration, appErr.Kind)
	assert.Empty(t, f.engine.searchQueries)
}

func TestSearchRemoteFailure(t *testing.T) {
	f := newSearchFixture(t)
	f.engine.searchErr = errors.New("engine returned 429: rate limit exceeded")

	_, err := f.service.Search(context.Background(), &dto.SearchRequest{Query: "q", Category: "Web"})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindRemoteSearch, appErr.Kind)
	assert.Contains(t, appErr.Detail, "rate limit exceeded")
}

func TestSearchFiltersByFreshManifest(t *testing.T) {
	f := newSearchFixture(t)
	ctx := context.Background()

	require.NoError(t, f.manifest.Upsert(ctx, entity.DocumentRecord{DocumentId: "doc-web", Category: entity.CategoryWeb, Filename: "web.pdf"}))
	require.NoError(t, f.manifest.Upsert(ctx, entity.DocumentRecord{DocumentId: "doc-mobile", Category: entity.CategoryMobile, Filename: "mobile.pdf"}))

	// The engine returns matches across categories; only Web survives.
	f.engine.searchResponse = &filesearch.SearchResponse{
		Output: []filesearch.OutputItem{
			{
				Type: filesearch.ItemTypeFileSearchCall,
				Results: []map[string]any{
					{"file_id": "doc-mobile", "score": 0.99, "content": "wrong category"},
					{"file_id": "doc-web", "score": 0.42, "content": "refund policy passage"},
					{"file_id": "doc-unknown", "content": "not in manifest"},
				},
			},
		},
	}

	res, err := f.service.Search(ctx, &dto.SearchRequest{Query: " refund policy ", Category: "Web", MaxResults: float64(5)})
	require.NoError(t, err)
	assert.True(t, res.Ok)

	require.Len(t, res.Results, 1)
	assert.Equal(t, "doc-web", res.Results[0].DocumentID)
	assert.Equal(t, "web.pdf", res.Results[0].Filename)
	assert.Equal(t, "refund policy passage", res.Results[0].Text)

	// Query trimmed, cap passed through; the engine is never asked to filter
	// by category.
	assert.Equal(t, []string{"refund policy"}, f.engine.searchQueries)
	assert.Equal(t, []int{5}, f.engine.searchCaps)

	assert.Contains(t, f.publisher.typesSeen(), events.TypeSearchPerformed)
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	f := newSearchFixture(t)

	res, err := f.service.Search(context.Background(), &dto.SearchRequest{Query: "anything", Category: "Mobile"})
	require.NoError(t, err)
	assert.True(t, res.Ok)
	assert.NotNil(t, res.Results)
	assert.Empty(t, res.Results)
}
