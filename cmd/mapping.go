package cmd

import (
	"context"
	"fmt"

	"item-sync/core/reconcile"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// mappingCmd is the parent command for identifier mapping operations.
var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Inspect the identifier mapping between calendar events and tasks",
}

var mappingGetCmd = &cobra.Command{
	Use:   "get <side> <id>",
	Short: "Print the counterpart of an item id",
	Long: `Print the id paired with the given item.

Examples:
  # Task paired with calendar event 42
  mapping get a 42

  # Event paired with a task
  mapping get b 6f1c2a`,
	Args: cobra.ExactArgs(2),
	RunE: runMappingGet,
}

var mappingListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every stored pair",
	RunE:  runMappingList,
}

var mappingCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the mapping store and count its pairs",
	Long: `Verify that the configured mapping backend is reachable, that its schema
is complete and that the stored pairs form a one-to-one mapping.`,
	RunE: runMappingCheck,
}

func init() {
	mappingListCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print pairs as JSON")

	mappingCmd.AddCommand(mappingGetCmd)
	mappingCmd.AddCommand(mappingListCmd)
	mappingCmd.AddCommand(mappingCheckCmd)
	RootCmd.AddCommand(mappingCmd)
}

func runMappingGet(cmd *cobra.Command, args []string) error {
	side, err := reconcile.ParseSide(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	s, err := openSession(ctx, nil)
	if err != nil {
		return err
	}
	defer s.close()

	counterpart, ok, err := s.service().Lookup(ctx, side, args[1])
	if err != nil {
		return fmt.Errorf("failed to load mapping: %w", err)
	}
	if !ok {
		return fmt.Errorf("%s id %q is not mapped", side, args[1])
	}
	fmt.Println(counterpart)
	return nil
}

func runMappingList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	s, err := openSession(ctx, nil)
	if err != nil {
		return err
	}
	defer s.close()

	pairs, err := s.service().Mappings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load mapping: %w", err)
	}

	if jsonOutput {
		out, err := json.MarshalIndent(pairs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode pairs: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("%-40s %s\n", s.cfg.Sync.SideAName, s.cfg.Sync.SideBName)
	for _, p := range pairs {
		fmt.Printf("%-40s %s\n", p.A, p.B)
	}
	fmt.Printf("\n%d pairs\n", len(pairs))
	return nil
}

func runMappingCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	s, err := openSession(ctx, nil)
	if err != nil {
		return err
	}
	defer s.close()

	store := s.components.Store
	count, err := store.Check(ctx)
	if err != nil {
		return fmt.Errorf("mapping check failed for %s: %w", store.Describe(), err)
	}
	s.logger.Info("Mapping store healthy",
		zap.String("store", store.Describe()),
		zap.Int("pairs", count),
	)
	return nil
}
