// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so the task side and
// the mapping snapshot store can be tested against core/storage/mocks. Both AWS S3
// and self-hosted MinIO are supported.
//
// # Helpers
//
//   - EnsureBucket: creates the configured bucket on first use.
//   - IsNotFound: recognizes missing key and missing bucket errors.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
