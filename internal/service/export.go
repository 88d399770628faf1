package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blogapi/internal/storage"
)

// exportURLExpiry bounds how long a presigned snapshot URL stays valid.
const exportURLExpiry = 15 * time.Minute

// ExportResult describes a stored article snapshot.
type ExportResult struct {
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ExportService writes detailed article snapshots to object storage.
type ExportService interface {
	// Export stores the detailed view of the article as JSON and returns a download URL.
	Export(ctx context.Context, id int64) (*ExportResult, error)
}

type exportService struct {
	articles ArticleService
	store    storage.Storage
	now      func() time.Time
}

// NewExportService constructs a new ExportService. A nil store disables exports.
func NewExportService(articles ArticleService, store storage.Storage) ExportService {
	return &exportService{articles: articles, store: store, now: defaultNow}
}

func (s *exportService) Export(ctx context.Context, id int64) (*ExportResult, error) {
	if s.store == nil {
		return nil, ErrExportDisabled
	}

	detail, err := s.articles.GetDetailed(ctx, id)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(detail)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	now := s.now()
	key := storage.SnapshotKey(id, uuid.NewString())
	info, err := s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
		Snapshot:    storage.SnapshotMeta{ArticleID: id, ExportedAt: now},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	url, err := s.store.PresignGet(ctx, info.Key, exportURLExpiry)
	if err != nil {
		// Rollback: an object nobody can reach is useless.
		if delErr := s.store.Delete(ctx, info.Key); delErr != nil {
			return nil, fmt.Errorf("presign failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("presign failed: %w", err)
	}

	return &ExportResult{
		Key:       info.Key,
		Size:      info.Size,
		URL:       url,
		ExpiresAt: now.Add(exportURLExpiry),
	}, nil
}
