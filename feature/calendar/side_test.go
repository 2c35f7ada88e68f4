package calendar

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"item-sync/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestSide(t *testing.T, dbName string) *Side {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	side := NewSide(db)
	require.NoError(t, side.Migrate(context.Background()))
	return side
}

func sampleEvent() *Event {
	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	return &Event{
		Title:    "Standup",
		Location: "Room 4",
		StartsAt: start,
		EndsAt:   start.Add(15 * time.Minute),
	}
}

func TestSide_Lifecycle(t *testing.T) {
	ctx := context.Background()
	side := setupTestSide(t, "calendar_lifecycle")

	id, err := side.Create(ctx, sampleEvent())
	require.NoError(t, err)
	assert.Equal(t, "1", id)

	item, err := side.Get(ctx, id)
	require.NoError(t, err)
	ev := item.(*Event)
	assert.Equal(t, "Standup", ev.Title)
	assert.False(t, ev.ModifiedAt().IsZero())

	changed := sampleEvent()
	changed.Title = "Retro"
	changed.AllDay = true
	require.NoError(t, side.Update(ctx, id, *changed))

	item, err = side.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Retro", item.(*Event).Title)
	assert.True(t, item.(*Event).AllDay)

	require.NoError(t, side.Delete(ctx, id))
	_, err = side.Get(ctx, id)
	assert.True(t, errors.Is(err, reconcile.ErrNotFound))
}

func TestSide_NotFound(t *testing.T) {
	ctx := context.Background()
	side := setupTestSide(t, "calendar_notfound")

	tests := []struct {
		name string
		call func() error
	}{
		{"Get", func() error { _, err := side.Get(ctx, "42"); return err }},
		{"Update", func() error { return side.Update(ctx, "42", sampleEvent()) }},
		{"Delete", func() error { return side.Delete(ctx, "42") }},
		{"Malformed ID", func() error { _, err := side.Get(ctx, "not-a-number"); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.call(), reconcile.ErrNotFound))
		})
	}
}

func TestSide_RejectsForeignItems(t *testing.T) {
	side := setupTestSide(t, "calendar_foreign")

	_, err := side.Create(context.Background(), "an event, honestly")
	assert.ErrorContains(t, err, "cannot store string")
}

func TestSide_DeleteMySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)
	side := NewSide(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `calendar_events` WHERE `calendar_events`.`id` = ?")).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, side.Delete(context.Background(), "7"))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `calendar_events`")).
		WithArgs(8).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err = side.Delete(context.Background(), "8")
	assert.True(t, errors.Is(err, reconcile.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
