package syncjob

import (
	"fmt"

	"item-sync/core/reconcile"
)

// Mapping store backends.
const (
	BackendDatabase = "database"
	BackendStorage  = "storage"
)

// Config holds configuration for sync passes.
type Config struct {
	// Enabled mounts the HTTP routes.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Strategy is the conflict resolution strategy name.
	Strategy string `mapstructure:"strategy" default:"prefer-a"`
	// Workers bounds concurrent dispatch.
	Workers int `mapstructure:"workers" default:"4"`
	// FailFast aborts a pass on the first failed item.
	FailFast bool `mapstructure:"fail_fast" default:"false"`
	// SideAName and SideBName are used in summaries.
	SideAName string `mapstructure:"side_a_name" default:"Calendar"`
	SideBName string `mapstructure:"side_b_name" default:"Tasks"`
	// MappingBackend selects where the mapping is persisted (database, storage).
	MappingBackend string `mapstructure:"mapping_backend" default:"database"`
	// MappingTable is the SQL table of the database backend.
	MappingTable string `mapstructure:"mapping_table" default:"id_mappings"`
	// MappingObject is the object key of the storage backend.
	MappingObject string `mapstructure:"mapping_object" default:"state/mapping.json"`
	// TasksPrefix is the object prefix of side-B tasks.
	TasksPrefix string `mapstructure:"tasks_prefix" default:"tasks/"`
}

// Validate checks the strategy and backend names.
func (c Config) Validate() error {
	if _, err := reconcile.NewResolver(c.Strategy); err != nil {
		return err
	}
	switch c.MappingBackend {
	case BackendDatabase, BackendStorage:
	default:
		return fmt.Errorf("unknown mapping backend %q (available: %s, %s)", c.MappingBackend, BackendDatabase, BackendStorage)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}
