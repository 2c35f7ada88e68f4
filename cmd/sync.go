package cmd

import (
	"context"
	"fmt"
	"os"

	"item-sync/core/reconcile"
	"item-sync/feature/syncjob"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags shared by the sync and plan commands
	changesAFile string
	changesBFile string
	strategyFlag string
	workersFlag  int
	failFast     bool
	dryRunSync   bool
	jsonOutput   bool
)

// syncCmd runs one reconciliation pass.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile reported changes between calendar events and tasks",
	Long: `Run one sync pass over the changes each side reported since the previous pass.

A change set file holds {"inserted":[...],"updated":[...],"deleted":[...]}.
A side without a file is treated as having no changes.

Examples:
  # Propagate calendar changes only
  sync --changes-a calendar.json

  # Both sides changed, most recent edit wins conflicts
  sync --changes-a calendar.json --changes-b tasks.json --strategy most-recent

  # Stop at the first failed item
  sync --changes-a calendar.json --fail-fast

  # Print the full report as JSON
  sync --changes-a calendar.json --json`,
	RunE: runSync,
}

// planCmd computes a pass without writing anything.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the actions a sync pass would perform",
	Long: `Compute a sync pass without touching either side or the mapping.

Examples:
  plan --changes-a calendar.json --changes-b tasks.json
  plan --changes-b tasks.json --strategy delete-wins --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRunSync = true
		return runSync(cmd, args)
	},
}

func init() {
	for _, c := range []*cobra.Command{syncCmd, planCmd} {
		c.Flags().StringVar(&changesAFile, "changes-a", "", "Change set file of side A (calendar)")
		c.Flags().StringVar(&changesBFile, "changes-b", "", "Change set file of side B (tasks)")
		c.Flags().StringVar(&strategyFlag, "strategy", "", "Conflict resolution strategy (overrides SYNC_STRATEGY)")
		c.Flags().IntVar(&workersFlag, "workers", 0, "Concurrent dispatch workers (overrides SYNC_WORKERS)")
		c.Flags().BoolVar(&jsonOutput, "json", false, "Print the full report as JSON")
	}
	syncCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Abort on the first failed item")
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Compute the plan without writing")

	RootCmd.AddCommand(syncCmd)
	RootCmd.AddCommand(planCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	req := syncjob.Request{DryRun: dryRunSync}
	var err error
	if req.A, err = readChangeSet(changesAFile); err != nil {
		return err
	}
	if req.B, err = readChangeSet(changesBFile); err != nil {
		return err
	}

	s, err := openSession(ctx, applySyncFlags)
	if err != nil {
		return err
	}
	defer s.close()

	l := s.logger
	l.Info("Starting sync pass",
		zap.String("strategy", s.cfg.Sync.Strategy),
		zap.String("mapping", s.components.Store.Describe()),
		zap.Int("changes_a", req.A.Len()),
		zap.Int("changes_b", req.B.Len()),
		zap.Bool("dry_run", req.DryRun),
	)

	report, runErr := s.service().Run(ctx, req, l)
	if report != nil {
		if err := printReport(report); err != nil {
			return err
		}
	}
	if runErr != nil {
		return fmt.Errorf("failed to run sync pass: %w", runErr)
	}
	if report.HasFailures() {
		return fmt.Errorf("sync pass finished with %d failed items", report.Summary.Failed)
	}
	return nil
}

func applySyncFlags(c *syncjob.Config) {
	if strategyFlag != "" {
		c.Strategy = strategyFlag
	}
	if workersFlag > 0 {
		c.Workers = workersFlag
	}
	if failFast {
		c.FailFast = true
	}
}

// readChangeSet decodes a change set file. An empty path yields an empty set.
func readChangeSet(path string) (reconcile.ChangeSet, error) {
	if path == "" {
		return reconcile.NewChangeSet(nil, nil, nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return reconcile.ChangeSet{}, fmt.Errorf("failed to read change set %s: %w", path, err)
	}
	var cs reconcile.ChangeSet
	if err := json.Unmarshal(data, &cs); err != nil {
		return reconcile.ChangeSet{}, fmt.Errorf("failed to parse change set %s: %w", path, err)
	}
	return cs, nil
}

func printReport(report *reconcile.Report) error {
	if jsonOutput {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if report.DryRun {
		fmt.Printf("Planned %d actions for %d items (strategy %s)\n\n",
			report.ActionCount(), report.Summary.Processed, report.Strategy)
		for _, e := range report.Entries {
			for _, a := range e.Actions {
				fmt.Printf("  %-10s %s -> %s\n", a.Type, e.ID, a.TargetID)
			}
		}
		fmt.Println()
	}
	fmt.Println(report.Summary.String())

	for _, e := range report.Unresolved() {
		fmt.Printf("Unresolved conflict: %s/%s (%s)\n", e.Side, e.ID, e.State)
	}
	for _, e := range report.Failures() {
		fmt.Printf("Failed: %s/%s: %s\n", e.Side, e.ID, e.Error)
	}
	return nil
}
