package syncjob

import (
	"context"
	"fmt"
	"testing"
	"time"

	"item-sync/core/storage/mocks"
	"item-sync/feature/calendar"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	comps  *Components
	svc    *Service
	client *mocks.MemoryClient
	db     *gorm.DB
}

func testConfig() Config {
	return Config{
		Enabled:        true,
		Strategy:       "prefer-a",
		Workers:        2,
		SideAName:      "Calendar",
		SideBName:      "Tasks",
		MappingBackend: BackendDatabase,
		MappingTable:   "id_mappings",
		MappingObject:  "state/mapping.json",
		TasksPrefix:    "tasks/",
	}
}

func setupEnv(t *testing.T, dbName string, cfg Config) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	client := mocks.NewMemoryClient()
	deps := Deps{DB: db, Client: client, Bucket: "sync"}

	comps, err := Build(cfg, deps, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, comps.Prepare(context.Background(), deps))

	return &testEnv{
		comps:  comps,
		svc:    NewService(comps.Engine, comps.Store, zap.NewNop()),
		client: client,
		db:     db,
	}
}

func (e *testEnv) createEvent(t *testing.T, title string) string {
	t.Helper()
	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	id, err := e.comps.Calendar.Create(context.Background(), &calendar.Event{
		Title:    title,
		StartsAt: start,
		EndsAt:   start.Add(30 * time.Minute),
	})
	require.NoError(t, err)
	return id
}
