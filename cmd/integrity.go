package cmd

import (
	"context"
	"fmt"

	"item-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the integrity command
	fixIntegrity bool
	skipPairs    bool
)

// integrityCmd runs the backend health checks.
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check bucket structure, table schema and stored pairs",
	Long: `Run the integrity checks against the configured backends.

The pair check looks up both items of every stored pair and reports pairs whose
item is gone on either side.

Examples:
  # Report only
  integrity

  # Create missing folders and prune dangling pairs
  integrity --fix

  # Skip the (slow) pair lookup
  integrity --skip-pairs`,
	RunE: runIntegrity,
}

func init() {
	integrityCmd.Flags().BoolVar(&fixIntegrity, "fix", false, "Create missing folders and prune dangling pairs")
	integrityCmd.Flags().BoolVar(&skipPairs, "skip-pairs", false, "Skip looking up every stored pair")

	RootCmd.AddCommand(integrityCmd)
}

func runIntegrity(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	s, err := openSession(ctx, nil)
	if err != nil {
		return err
	}
	defer s.close()

	l := s.logger
	svc := s.service()
	checker := integrity.NewService(integrity.DepsFor(s.cfg.Sync, s.deps, s.components, svc.Locker()), s.cfg.Integrity.Workers, l)
	healthy := true

	missing, err := checker.CheckStructure(ctx)
	if err != nil {
		return fmt.Errorf("failed to check structure: %w", err)
	}
	if len(missing) > 0 {
		if fixIntegrity {
			if err := checker.FixStructure(ctx, missing); err != nil {
				return fmt.Errorf("failed to fix structure: %w", err)
			}
		} else {
			l.Warn("Missing folders", zap.Strings("missing", missing))
			healthy = false
		}
	}

	schema, err := checker.CheckSchema()
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	for name, tbl := range schema.Tables {
		if tbl.Status != "ok" {
			l.Warn("Table mismatch", zap.String("table", name), zap.Strings("missing_columns", tbl.MissingColumns))
		}
	}
	if !schema.Matched {
		healthy = false
	}

	if !skipPairs {
		if fixIntegrity {
			report, removed, err := checker.PrunePairs(ctx)
			if err != nil {
				return fmt.Errorf("failed to prune pairs: %w", err)
			}
			l.Info("Pair check completed", zap.Int("checked", report.Checked), zap.Int("removed", removed))
		} else {
			report, err := checker.CheckPairs(ctx)
			if err != nil {
				return fmt.Errorf("failed to check pairs: %w", err)
			}
			for _, d := range report.Dangling {
				l.Warn("Dangling pair",
					zap.String("id_a", d.IDA),
					zap.String("id_b", d.IDB),
					zap.Bool("missing_a", d.MissingA),
					zap.Bool("missing_b", d.MissingB),
				)
			}
			l.Info("Pair check completed", zap.Int("checked", report.Checked), zap.Int("dangling", len(report.Dangling)))
			if len(report.Dangling) > 0 {
				healthy = false
			}
		}
	}

	if !healthy {
		return fmt.Errorf("integrity checks found problems; rerun with --fix to repair")
	}
	l.Info("All integrity checks passed")
	return nil
}
