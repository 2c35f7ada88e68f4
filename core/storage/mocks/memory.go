package mocks

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
)

// MemoryClient is an in-memory storage.Client for tests that need real state.
type MemoryClient struct {
	mu      sync.Mutex
	buckets map[string]map[string][]byte
}

// NewMemoryClient returns a client holding the given buckets, all empty.
func NewMemoryClient(buckets ...string) *MemoryClient {
	c := &MemoryClient{buckets: make(map[string]map[string][]byte)}
	for _, b := range buckets {
		c.buckets[b] = make(map[string][]byte)
	}
	return c
}

// Object returns the stored content of key.
func (c *MemoryClient) Object(bucket, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.buckets[bucket][key]
	return data, ok
}

// Keys lists the keys of bucket, sorted.
func (c *MemoryClient) Keys(bucket string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.buckets[bucket]))
	for k := range c.buckets[bucket] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *MemoryClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.buckets[bucketName]
	return ok, nil
}

func (c *MemoryClient) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.buckets[bucketName]; !ok {
		c.buckets[bucketName] = make(map[string][]byte)
	}
	return nil
}

func (c *MemoryClient) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	bucket, ok := c.buckets[bucketName]
	if !ok {
		return minio.UploadInfo{}, noSuch("NoSuchBucket", bucketName, "")
	}
	bucket[objectName] = data
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: int64(len(data))}, nil
}

func (c *MemoryClient) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bucket, ok := c.buckets[bucketName]
	if !ok {
		return nil, noSuch("NoSuchBucket", bucketName, "")
	}
	data, ok := bucket[objectName]
	if !ok {
		return nil, noSuch("NoSuchKey", bucketName, objectName)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (c *MemoryClient) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	keys := c.Keys(bucketName)
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		if strings.HasPrefix(k, opts.Prefix) {
			ch <- minio.ObjectInfo{Key: k}
		}
	}
	close(ch)
	return ch
}

func (c *MemoryClient) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.buckets[bucketName], objectName)
	return nil
}

func noSuch(code, bucket, key string) error {
	return minio.ErrorResponse{Code: code, BucketName: bucket, Key: key, StatusCode: http.StatusNotFound}
}
