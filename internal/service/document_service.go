package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"docsearch-be/internal/config"
	"docsearch-be/internal/dto"
	"docsearch-be/internal/entity"
	"docsearch-be/internal/pkg/apperror"
	"docsearch-be/internal/pkg/logger"
	"docsearch-be/internal/repository/contract"
	"docsearch-be/pkg/events"
	"docsearch-be/pkg/filesearch"
	"docsearch-be/pkg/metrics"
)

type IDocumentService interface {
	Ingest(ctx context.Context, src io.Reader, filename string, categoryLabel string) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context, categoryLabel string) (*dto.ListDocumentsResponse, error)
}

// documentService runs the two-phase ingestion: store bytes remotely, attach
// to the semantic index, then register the category locally. The phases are
// not atomic; the journal records how far each document got so an operator
// can reconcile the gaps by hand.
type documentService struct {
	engine           filesearch.Engine
	manifest         contract.ManifestRepository
	journal          contract.IngestJournal
	publisherService IPublisherService
	metrics          *metrics.Metrics
	logger           logger.ILogger
	cfg              *config.Config
}

func NewDocumentService(
	engine filesearch.Engine,
	manifest contract.ManifestRepository,
	journal contract.IngestJournal,
	publisherService IPublisherService,
	metrics *metrics.Metrics,
	logger logger.ILogger,
	cfg *config.Config,
) IDocumentService {
	return &documentService{
		engine:           engine,
		manifest:         manifest,
		journal:          journal,
		publisherService: publisherService,
		metrics:          metrics,
		logger:           logger,
		cfg:              cfg,
	}
}

func (s *documentService) Ingest(ctx context.Context, src io.Reader, filename string, categoryLabel string) (*dto.UploadDocumentResponse, error) {
	category, err := entity.ParseCategory(categoryLabel)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := s.checkRemoteConfig(); err != nil {
		return nil, err
	}

	// Spool the upload to disk so the remote call reads a stable file. The
	// copy is removed on every exit path.
	tmpPath, err := s.spool(src, filename)
	if err != nil {
		return nil, fmt.Errorf("spool upload: %w", err)
	}
	defer os.Remove(tmpPath)

	tmpFile, err := os.Open(tmpPath)
	if err != nil {
		return nil, err
	}
	defer tmpFile.Close()

	documentID, err := s.engine.StoreDocument(ctx, tmpFile, filename)
	if err != nil {
		s.metrics.RemoteFailuresTotal.WithLabelValues("store").Inc()
		return nil, apperror.RemoteIngestion(err)
	}

	s.journal.Record(entity.IngestRecord{
		DocumentId: documentID,
		Filename:   filename,
		Category:   category,
		State:      entity.IngestStateStored,
	})

	err = s.engine.IndexDocument(ctx, documentID, map[string]string{
		"category": category.String(),
		"filename": filename,
	})
	if err != nil {
		// The document now exists remotely but is not searchable. No remote
		// rollback; the journal keeps the record at Stored for the operator.
		s.metrics.RemoteFailuresTotal.WithLabelValues("index").Inc()
		s.publishActivity(ctx, events.TypeIngestionGap, map[string]interface{}{
			"document_id": documentID,
			"filename":    filename,
			"category":    category,
			"stage":       "index",
		})
		return nil, apperror.RemoteIndexing(err)
	}
	s.journal.Advance(documentID, entity.IngestStateIndexed)

	err = s.manifest.Upsert(ctx, entity.DocumentRecord{
		DocumentId: documentID,
		Category:   category,
		Filename:   filename,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		// Searchable remotely but unknown locally; journal stays at Indexed.
		s.publishActivity(ctx, events.TypeIngestionGap, map[string]interface{}{
			"document_id": documentID,
			"filename":    filename,
			"category":    category,
			"stage":       "register",
		})
		return nil, fmt.Errorf("register document in manifest: %w", err)
	}
	s.journal.Advance(documentID, entity.IngestStateRegistered)

	s.metrics.UploadsTotal.WithLabelValues(category.String()).Inc()
	s.publishActivity(ctx, events.TypeDocumentIngested, map[string]interface{}{
		"document_id": documentID,
		"filename":    filename,
		"category":    category,
	})

	return &dto.UploadDocumentResponse{
		Ok:         true,
		DocumentId: documentID,
		Filename:   filename,
		Category:   category,
	}, nil
}

func (s *documentService) List(ctx context.Context, categoryLabel string) (*dto.ListDocumentsResponse, error) {
	category, err := entity.ParseCategory(categoryLabel)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	return &dto.ListDocumentsResponse{
		Ok:        true,
		Documents: s.manifest.FindByCategory(ctx, category),
	}, nil
}

func (s *documentService) checkRemoteConfig() error {
	if s.cfg.FileSearch.APIKey == "" {
		return apperror.Configuration("remote service credential is not configured")
	}
	if s.cfg.FileSearch.VectorStoreId == "" {
		return apperror.Configuration("remote index identifier is not configured")
	}
	return nil
}

func (s *documentService) spool(src io.Reader, filename string) (string, error) {
	if err := os.MkdirAll(s.cfg.App.UploadTmpDir, 0o755); err != nil {
		return "", err
	}

	tmpPath := filepath.Join(s.cfg.App.UploadTmpDir, uuid.NewString()+filepath.Ext(filename))
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmpFile, src); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	return tmpPath, nil
}

func (s *documentService) publishActivity(ctx context.Context, eventType string, data map[string]interface{}) {
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	// Activity is auxiliary; a dead bus must not fail the upload.
	if err := s.publisherService.Publish(ctx, evt); err != nil {
		s.logger.Warn("document", "Failed to publish activity event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
