// Package database handles database connections and schema inspection.
//
// Connect wraps GORM and opens either a MySQL connection (production) or a SQLite
// database (local runs and tests) depending on Config.Driver.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live schema of a table. The
// mapping check command uses them to verify that the identifier mapping table
// carries the columns the SQL mapping store expects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "id_mappings", "id_a", "id_b")
package database
