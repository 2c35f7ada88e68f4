package tasks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"item-sync/core/reconcile"
	"item-sync/core/storage"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// DefaultPrefix is the object prefix used when none is configured.
const DefaultPrefix = "tasks/"

var _ reconcile.SideAdapter = (*Side)(nil)

// Side stores tasks in a bucket.
type Side struct {
	client storage.Client
	bucket string
	prefix string

	now   func() time.Time
	newID func() string
}

// NewSide returns the task side writing under prefix in bucket.
func NewSide(client storage.Client, bucket, prefix string) *Side {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Side{
		client: client,
		bucket: bucket,
		prefix: prefix,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Key returns the object key of task id.
func (s *Side) Key(id string) string {
	return path.Join(s.prefix, id+".json")
}

// Create stores a new task under a fresh UUID.
func (s *Side) Create(ctx context.Context, item reconcile.Item) (string, error) {
	task, err := asTask(item)
	if err != nil {
		return "", err
	}
	task.ID = s.newID()
	if err := s.put(ctx, task); err != nil {
		return "", err
	}
	return task.ID, nil
}

// Update replaces the synchronized fields of task id. Completed is owned by the
// task side and keeps its stored value.
func (s *Side) Update(ctx context.Context, id string, item reconcile.Item) error {
	task, err := asTask(item)
	if err != nil {
		return err
	}
	current, err := s.read(ctx, id)
	if err != nil {
		return err
	}
	task.ID = id
	task.Completed = current.Completed
	return s.put(ctx, task)
}

// Delete removes task id. RemoveObject succeeds on missing keys, so existence is checked first.
func (s *Side) Delete(ctx context.Context, id string) error {
	if _, err := s.read(ctx, id); err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, s.Key(id), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove task %s: %w", id, err)
	}
	return nil
}

// Get returns task id as *Task.
func (s *Side) Get(ctx context.Context, id string) (reconcile.Item, error) {
	task, err := s.read(ctx, id)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Side) read(ctx context.Context, id string) (*Task, error) {
	if id == "" {
		return nil, fmt.Errorf("task with empty id: %w", reconcile.ErrNotFound)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, s.Key(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, s.readErr(id, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.readErr(id, err)
	}

	var task Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("failed to decode task %s: %w", id, err)
	}
	task.ID = id
	return &task, nil
}

func (s *Side) readErr(id string, err error) error {
	if storage.IsNotFound(err) {
		return fmt.Errorf("task %s: %w", id, reconcile.ErrNotFound)
	}
	return fmt.Errorf("failed to get task %s: %w", id, err)
}

func (s *Side) put(ctx context.Context, task Task) error {
	task.UpdatedAt = s.now().UTC()
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode task: %w", err)
	}
	_, err = s.client.PutObject(ctx, s.bucket, s.Key(task.ID), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to put task %s: %w", task.ID, err)
	}
	return nil
}

func asTask(item reconcile.Item) (Task, error) {
	switch t := item.(type) {
	case *Task:
		if t == nil {
			return Task{}, errors.New("nil task")
		}
		return *t, nil
	case Task:
		return t, nil
	default:
		return Task{}, fmt.Errorf("task side cannot store %T", item)
	}
}
