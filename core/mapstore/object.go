package mapstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"item-sync/core/reconcile"
	"item-sync/core/storage"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
)

// DefaultObject is the object key used when none is configured.
const DefaultObject = "state/mapping.json"

// snapshotVersion is bumped on incompatible snapshot layout changes.
const snapshotVersion = 1

// Snapshot is the persisted JSON document.
type Snapshot struct {
	Version int               `json:"version"`
	SavedAt time.Time         `json:"saved_at"`
	Pairs   *reconcile.Mapping `json:"pairs"`
}

// ObjectStore persists the mapping as a JSON snapshot in a bucket.
type ObjectStore struct {
	client storage.Client
	bucket string
	object string
	now    func() time.Time
}

// NewObjectStore returns a store writing object (DefaultObject when empty) in bucket.
func NewObjectStore(client storage.Client, bucket, object string) *ObjectStore {
	if object == "" {
		object = DefaultObject
	}
	return &ObjectStore{client: client, bucket: bucket, object: object, now: time.Now}
}

// Load downloads and decodes the snapshot. A missing object yields an empty mapping.
func (s *ObjectStore) Load(ctx context.Context) (*reconcile.Mapping, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return reconcile.NewMapping(), nil
		}
		return nil, fmt.Errorf("failed to get %s: %w", s.object, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		// minio defers the not-found error to the first read
		if storage.IsNotFound(err) {
			return reconcile.NewMapping(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.object, err)
	}

	snap := Snapshot{Pairs: reconcile.NewMapping()}
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.object, err)
	}
	if snap.Version > snapshotVersion {
		return nil, fmt.Errorf("%s has unsupported snapshot version %d", s.object, snap.Version)
	}
	if snap.Pairs == nil {
		return reconcile.NewMapping(), nil
	}
	return snap.Pairs, nil
}

// Save encodes m and uploads it, replacing the previous snapshot.
func (s *ObjectStore) Save(ctx context.Context, m *reconcile.Mapping) error {
	data, err := json.Marshal(Snapshot{Version: snapshotVersion, SavedAt: s.now().UTC(), Pairs: m})
	if err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", s.object, err)
	}
	return nil
}

// Check verifies the bucket and the snapshot and returns the number of pairs.
func (s *ObjectStore) Check(ctx context.Context) (int, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return 0, fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		return 0, fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	m, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	return m.Len(), nil
}

// Describe names the backend.
func (s *ObjectStore) Describe() string {
	return fmt.Sprintf("object %s/%s", s.bucket, s.object)
}
