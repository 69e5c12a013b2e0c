package service

import (
	"context"
	"io"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"docsearch-be/internal/config"
	"docsearch-be/internal/entity"
	"docsearch-be/internal/repository/contract"
	"docsearch-be/pkg/events"
	"docsearch-be/pkg/filesearch"
	"docsearch-be/pkg/metrics"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// fakeEngine scripts the remote collaborator per call.
type fakeEngine struct {
	storeID     string
	storeErr    error
	storedNames []string

	indexErr   error
	indexedIDs []string
	indexAttrs map[string]string

	searchResponse *filesearch.SearchResponse
	searchErr      error
	searchQueries  []string
	searchCaps     []int
}

func (f *fakeEngine) StoreDocument(_ context.Context, r io.Reader, filename string) (string, error) {
	if f.storeErr != nil {
		return "", f.storeErr
	}
	io.Copy(io.Discard, r)
	f.storedNames = append(f.storedNames, filename)
	return f.storeID, nil
}

func (f *fakeEngine) IndexDocument(_ context.Context, documentID string, attributes map[string]string) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	f.indexedIDs = append(f.indexedIDs, documentID)
	f.indexAttrs = attributes
	return nil
}

func (f *fakeEngine) Search(_ context.Context, query string, maxResults int) (*filesearch.SearchResponse, error) {
	f.searchQueries = append(f.searchQueries, query)
	f.searchCaps = append(f.searchCaps, maxResults)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResponse, nil
}

// fakeManifest is an in-memory stand-in for the JSON-file store.
type fakeManifest struct {
	mu       sync.Mutex
	records  []entity.DocumentRecord
	writeErr error
}

func (m *fakeManifest) ReadAll(context.Context) []entity.DocumentRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.DocumentRecord, len(m.records))
	copy(out, m.records)
	return out
}

func (m *fakeManifest) WriteAll(_ context.Context, records []entity.DocumentRecord) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = records
	return nil
}

func (m *fakeManifest) Upsert(ctx context.Context, record entity.DocumentRecord) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].DocumentId == record.DocumentId {
			m.records[i] = record
			return nil
		}
	}
	m.records = append(m.records, record)
	return nil
}

func (m *fakeManifest) FindByCategory(ctx context.Context, category entity.Category) []entity.DocumentRecord {
	matched := make([]entity.DocumentRecord, 0)
	for _, r := range m.ReadAll(ctx) {
		if r.Category == category {
			matched = append(matched, r)
		}
	}
	return matched
}

var _ contract.ManifestRepository = (*fakeManifest)(nil)

// recordingPublisher captures activity events instead of using the bus.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BaseEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events.BaseEvent{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	return nil
}

func (p *recordingPublisher) typesSeen() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

func testConfig(tmpDir string) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			UploadTmpDir: tmpDir,
		},
		FileSearch: config.FileSearchConfig{
			APIKey:        "test-key",
			VectorStoreId: "vs_test",
			Model:         "gpt-4o-mini",
		},
	}
}

func testMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}
