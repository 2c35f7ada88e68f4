package mapstore

import (
	"context"
	"fmt"
	"time"

	"item-sync/core/database"
	"item-sync/core/reconcile"

	"gorm.io/gorm"
)

// DefaultTable is the table used when none is configured.
const DefaultTable = "id_mappings"

// Record is one persisted pair.
type Record struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	IDA       string    `gorm:"column:id_a;size:191;not null;uniqueIndex"`
	IDB       string    `gorm:"column:id_b;size:191;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName returns the default table name.
func (Record) TableName() string {
	return DefaultTable
}

// SQLStore persists the mapping in a SQL table.
type SQLStore struct {
	db    *gorm.DB
	table string
}

// NewSQLStore returns a store writing to table (DefaultTable when empty).
func NewSQLStore(db *gorm.DB, table string) *SQLStore {
	if table == "" {
		table = DefaultTable
	}
	return &SQLStore{db: db, table: table}
}

// Migrate creates or updates the mapping table.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Table(s.table).AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("failed to migrate mapping table %s: %w", s.table, err)
	}
	return nil
}

// Load reads every row into a mapping.
func (s *SQLStore) Load(ctx context.Context) (*reconcile.Mapping, error) {
	var rows []Record
	if err := s.db.WithContext(ctx).Table(s.table).Order("id_a").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load mapping from %s: %w", s.table, err)
	}

	pairs := make([]reconcile.Pair, len(rows))
	for i, r := range rows {
		pairs[i] = reconcile.Pair{A: r.IDA, B: r.IDB}
	}
	m, err := reconcile.MappingFromPairs(pairs)
	if err != nil {
		return nil, fmt.Errorf("mapping table %s is not a bijection: %w", s.table, err)
	}
	return m, nil
}

// Save diffs m against the table and applies the difference in one transaction:
// stale rows are deleted before new rows are inserted so the unique indexes hold
// at every step.
func (s *SQLStore) Save(ctx context.Context, m *reconcile.Mapping) error {
	want := make(map[string]string, m.Len())
	for _, p := range m.Pairs() {
		want[p.A] = p.B
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []Record
		if err := tx.Table(s.table).Find(&rows).Error; err != nil {
			return fmt.Errorf("failed to read mapping table %s: %w", s.table, err)
		}

		kept := make(map[string]struct{}, len(rows))
		var stale []uint
		for _, r := range rows {
			if idB, ok := want[r.IDA]; ok && idB == r.IDB {
				kept[r.IDA] = struct{}{}
				continue
			}
			stale = append(stale, r.ID)
		}

		if len(stale) > 0 {
			if err := tx.Table(s.table).Where("id IN ?", stale).Delete(&Record{}).Error; err != nil {
				return fmt.Errorf("failed to delete stale pairs: %w", err)
			}
		}

		var fresh []Record
		for _, p := range m.Pairs() {
			if _, ok := kept[p.A]; !ok {
				fresh = append(fresh, Record{IDA: p.A, IDB: p.B})
			}
		}
		if len(fresh) > 0 {
			if err := tx.Table(s.table).CreateInBatches(&fresh, 500).Error; err != nil {
				return fmt.Errorf("failed to insert pairs: %w", err)
			}
		}
		return nil
	})
}

// Check verifies the table schema and returns the number of pairs.
func (s *SQLStore) Check(ctx context.Context) (int, error) {
	missing, err := database.MissingColumns(s.db.WithContext(ctx), s.table, "id_a", "id_b")
	if err != nil {
		return 0, err
	}
	if len(missing) > 0 {
		return 0, fmt.Errorf("mapping table %s lacks columns %v", s.table, missing)
	}

	m, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	return m.Len(), nil
}

// Describe names the backend.
func (s *SQLStore) Describe() string {
	return fmt.Sprintf("%s table %s", s.db.Dialector.Name(), s.table)
}
