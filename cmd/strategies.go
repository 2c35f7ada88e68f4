package cmd

import (
	"fmt"

	"item-sync/core/reconcile"

	"github.com/spf13/cobra"
)

var strategyHelp = map[string]string{
	reconcile.StrategyPreferA:     "side A's state wins every conflict",
	reconcile.StrategyPreferB:     "side B's state wins every conflict",
	reconcile.StrategyMostRecent:  "the most recently modified item wins, a surviving item beats a deleted one",
	reconcile.StrategyLeastRecent: "the least recently modified item wins, a surviving item beats a deleted one",
	reconcile.StrategyDeleteWins:  "partial deletions delete both items, other conflicts prefer side A",
	reconcile.StrategyManual:      "conflicts are reported and left untouched",
}

// strategiesCmd lists the conflict resolution strategies.
var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List conflict resolution strategies",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range reconcile.Strategies() {
			fmt.Printf("%-14s %s\n", name, strategyHelp[name])
		}
	},
}

func init() {
	RootCmd.AddCommand(strategiesCmd)
}
