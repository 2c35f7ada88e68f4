// Package tasks implements side B of the sync: to-do tasks stored as one JSON
// object per task in an S3/MinIO bucket.
//
// Objects live under a configurable prefix as <prefix><id>.json. IDs are random
// UUIDs minted on creation.
package tasks
