package implementation

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"docsearch-be/internal/entity"
	"docsearch-be/internal/pkg/logger"
	"docsearch-be/internal/repository/contract"
)

// manifestRepository persists the manifest as one pretty-printed JSON array,
// rewritten whole on every mutation. Human-readable on purpose: operators
// repair partial ingestion states by editing this file.
type manifestRepository struct {
	path   string
	logger logger.ILogger
}

func NewManifestRepository(path string, logger logger.ILogger) contract.ManifestRepository {
	return &manifestRepository{
		path:   path,
		logger: logger,
	}
}

func (r *manifestRepository) ReadAll(ctx context.Context) []entity.DocumentRecord {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn("manifest", "Manifest unreadable, treating as empty", map[string]interface{}{
				"path":  r.path,
				"error": err.Error(),
			})
		}
		return []entity.DocumentRecord{}
	}

	var records []entity.DocumentRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		// Self-heal: the next write replaces the corrupt file.
		r.logger.Warn("manifest", "Manifest corrupt, treating as empty", map[string]interface{}{
			"path":  r.path,
			"error": err.Error(),
		})
		return []entity.DocumentRecord{}
	}
	if records == nil {
		return []entity.DocumentRecord{}
	}
	return records
}

func (r *manifestRepository) WriteAll(ctx context.Context, records []entity.DocumentRecord) error {
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// Write-then-rename so a crash mid-write never leaves a torn manifest.
	tmp, err := os.CreateTemp(dir, "manifest-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (r *manifestRepository) Upsert(ctx context.Context, record entity.DocumentRecord) error {
	records := r.ReadAll(ctx)

	replaced := false
	for i := range records {
		if records[i].DocumentId == record.DocumentId {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	}

	return r.WriteAll(ctx, records)
}

func (r *manifestRepository) FindByCategory(ctx context.Context, category entity.Category) []entity.DocumentRecord {
	matched := make([]entity.DocumentRecord, 0)
	for _, record := range r.ReadAll(ctx) {
		if record.Category == category {
			matched = append(matched, record)
		}
	}
	return matched
}
