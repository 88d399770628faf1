// Package storage keeps exported article snapshots in an S3-compatible object store.
// Every object lives under SnapshotPrefix; implementations stream and never touch local disk.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// SnapshotPrefix is the key namespace of article snapshots.
const SnapshotPrefix = "articles/"

// ErrInvalidKey is returned for keys outside SnapshotPrefix.
var ErrInvalidKey = errors.New("object key outside the snapshot namespace")

// SnapshotKey returns the key of snapshot name of an article: articles/<id>/<name>.json.
func SnapshotKey(articleID int64, name string) string {
	return SnapshotPrefix + strconv.FormatInt(articleID, 10) + "/" + name + ".json"
}

func checkKey(key string) error {
	rest, ok := strings.CutPrefix(key, SnapshotPrefix)
	if !ok || rest == "" || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// SnapshotMeta is stored as object user metadata next to a snapshot.
type SnapshotMeta struct {
	ArticleID  int64
	ExportedAt time.Time
}

func (m SnapshotMeta) userMetadata() map[string]string {
	return map[string]string{
		"article-id":  strconv.FormatInt(m.ArticleID, 10),
		"exported-at": m.ExportedAt.UTC().Format(time.RFC3339),
	}
}

// PutObjectOptions describe an upload.
// Size should be the exact number of bytes if known, -1 otherwise.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Snapshot    SnapshotMeta
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	LastModified time.Time
}

// Storage is the snapshot store used by article export.
type Storage interface {
	// Put uploads a snapshot under key.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes a snapshot by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL that needs no credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
