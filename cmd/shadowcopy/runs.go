// Runs command for the shadowcopy CLI.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shadowcopy/internal/journal"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded mirror runs, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20,
		"maximum number of runs to list (0 for all)")
}

func runRuns(cmd *cobra.Command, args []string) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	j, err := journal.Open(dataDir)
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.Runs(flagRunsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
		return nil
	}

	for _, r := range runs {
		clean := ""
		if r.Clean {
			clean = " clean"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s -> %s%s  %d copied, %d skipped, %d failed\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.Source, r.Destination, clean,
			r.Copied, r.Skipped, r.Failed)
	}
	return nil
}
