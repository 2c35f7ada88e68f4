package checks

import (
	"fmt"

	"item-sync/core/database"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a schema check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// Table pairs a table with the GORM model describing its columns.
// An empty Name uses the model's own table name.
type Table struct {
	Name  string
	Model any
}

// CheckSchema verifies the database schema using GORM models as the source of truth.
func CheckSchema(db *gorm.DB, tables ...Table) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, tbl := range tables {
		name, columns, err := ExpectedColumns(db, tbl.Model)
		if err != nil {
			return nil, err
		}
		if tbl.Name != "" {
			name = tbl.Name
		}

		missing, err := database.MissingColumns(db, name, columns...)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", name, err))
			report.Tables[name] = TableReport{MissingColumns: columns, Status: "error"}
			report.Matched = false
			continue
		}

		tblReport := TableReport{MissingColumns: []string{}, Status: "ok"}
		if len(missing) > 0 {
			tblReport.MissingColumns = missing
			tblReport.Status = "error"
			report.Matched = false
		}
		report.Tables[name] = tblReport
	}

	return report, nil
}

// ExpectedColumns parses model with the connection's naming strategy and returns
// its table name and column names.
func ExpectedColumns(db *gorm.DB, model any) (string, []string, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return "", nil, fmt.Errorf("failed to parse model %T: %w", model, err)
	}
	return stmt.Schema.Table, stmt.Schema.DBNames, nil
}
