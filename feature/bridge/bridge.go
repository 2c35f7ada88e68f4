package bridge

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"item-sync/core/reconcile"
	"item-sync/feature/calendar"
	"item-sync/feature/tasks"
)

var (
	_ reconcile.Converter = EventToTask
	_ reconcile.Converter = TaskToEvent
)

// ErrMissingTitle is returned for items without a title.
var ErrMissingTitle = errors.New("item has no title")

// ErrMissingDue is returned for tasks that cannot be placed on a calendar.
var ErrMissingDue = errors.New("task has no due date")

// EventToTask converts a *calendar.Event into a tasks.Task.
func EventToTask(item reconcile.Item) (reconcile.Item, error) {
	ev, ok := item.(*calendar.Event)
	if !ok || ev == nil {
		return nil, fmt.Errorf("expected *calendar.Event, got %T", item)
	}
	if strings.TrimSpace(ev.Title) == "" {
		return nil, ErrMissingTitle
	}
	if ev.EndsAt.Before(ev.StartsAt) {
		return nil, fmt.Errorf("event ends at %s before it starts at %s", ev.EndsAt, ev.StartsAt)
	}

	due := ev.StartsAt
	return tasks.Task{
		Title:           ev.Title,
		Notes:           ev.Description,
		Location:        ev.Location,
		Due:             &due,
		DurationMinutes: int(ev.EndsAt.Sub(ev.StartsAt) / time.Minute),
		AllDay:          ev.AllDay,
	}, nil
}

// TaskToEvent converts a *tasks.Task into a calendar.Event. Tasks without a due
// date cannot be converted.
func TaskToEvent(item reconcile.Item) (reconcile.Item, error) {
	task, ok := item.(*tasks.Task)
	if !ok || task == nil {
		return nil, fmt.Errorf("expected *tasks.Task, got %T", item)
	}
	if strings.TrimSpace(task.Title) == "" {
		return nil, ErrMissingTitle
	}
	if task.Due == nil || task.Due.IsZero() {
		return nil, ErrMissingDue
	}
	if task.DurationMinutes < 0 {
		return nil, fmt.Errorf("task has negative duration %d", task.DurationMinutes)
	}

	start := task.Due.UTC()
	return calendar.Event{
		Title:       task.Title,
		Description: task.Notes,
		Location:    task.Location,
		StartsAt:    start,
		EndsAt:      start.Add(time.Duration(task.DurationMinutes) * time.Minute),
		AllDay:      task.AllDay,
	}, nil
}
