package calendar

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"item-sync/core/reconcile"

	"gorm.io/gorm"
)

var _ reconcile.SideAdapter = (*Side)(nil)

// Side stores events in the calendar_events table.
type Side struct {
	db *gorm.DB
}

// NewSide returns the calendar side backed by db.
func NewSide(db *gorm.DB) *Side {
	return &Side{db: db}
}

// Migrate creates or updates the events table.
func (s *Side) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&Event{})
}

// Create inserts a new event and returns its ID.
func (s *Side) Create(ctx context.Context, item reconcile.Item) (string, error) {
	ev, err := asEvent(item)
	if err != nil {
		return "", err
	}
	ev.ID = 0
	if err := s.db.WithContext(ctx).Create(&ev).Error; err != nil {
		return "", fmt.Errorf("failed to insert event: %w", err)
	}
	return formatID(ev.ID), nil
}

// Update overwrites every field of event id.
func (s *Side) Update(ctx context.Context, id string, item reconcile.Item) error {
	ev, err := asEvent(item)
	if err != nil {
		return err
	}
	pk, err := parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current Event
		if err := tx.First(&current, pk).Error; err != nil {
			return notFound(id, err)
		}
		ev.ID = pk
		if err := tx.Model(&current).Select("title", "description", "location", "starts_at", "ends_at", "all_day").Updates(&ev).Error; err != nil {
			return fmt.Errorf("failed to update event %s: %w", id, err)
		}
		return nil
	})
}

// Delete removes event id.
func (s *Side) Delete(ctx context.Context, id string) error {
	pk, err := parseID(id)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&Event{}, pk)
	if res.Error != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("event %s: %w", id, reconcile.ErrNotFound)
	}
	return nil
}

// Get returns event id as *Event.
func (s *Side) Get(ctx context.Context, id string) (reconcile.Item, error) {
	pk, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var ev Event
	if err := s.db.WithContext(ctx).First(&ev, pk).Error; err != nil {
		return nil, notFound(id, err)
	}
	return &ev, nil
}

func asEvent(item reconcile.Item) (Event, error) {
	switch ev := item.(type) {
	case *Event:
		if ev == nil {
			return Event{}, errors.New("nil event")
		}
		return *ev, nil
	case Event:
		return ev, nil
	default:
		return Event{}, fmt.Errorf("calendar side cannot store %T", item)
	}
}

func parseID(id string) (uint, error) {
	pk, err := strconv.ParseUint(id, 10, 64)
	if err != nil || pk == 0 {
		return 0, fmt.Errorf("event %q: %w", id, reconcile.ErrNotFound)
	}
	return uint(pk), nil
}

func formatID(pk uint) string {
	return strconv.FormatUint(uint64(pk), 10)
}

func notFound(id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("event %s: %w", id, reconcile.ErrNotFound)
	}
	return fmt.Errorf("failed to read event %s: %w", id, err)
}
