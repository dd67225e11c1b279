// Mirror command for the shadowcopy CLI.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shadowcopy/internal/journal"
	"github.com/mesh-intelligence/shadowcopy/pkg/mirror"
)

var (
	flagClean   bool
	flagJournal bool
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror <source> <destination>",
	Short: "Mirror a source directory tree into a destination",
	Long: `Mirror copies every file under <source> into <destination>,
creating destination directories as needed and skipping files whose
destination copy is already at least as new. Individual copy failures are
logged and do not abort the run. With --clean the destination tree is
deleted before copying starts.`,
	Args: cobra.ExactArgs(2),
	RunE: runMirror,
}

func init() {
	mirrorCmd.Flags().BoolVar(&flagClean, "clean", false,
		"delete the destination tree before copying")
	mirrorCmd.Flags().BoolVar(&flagJournal, "journal", false,
		"record this run in the journal database")
}

func runMirror(cmd *cobra.Command, args []string) error {
	source, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve source: %w", err)
	}
	destination, err := filepath.Abs(args[1])
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}

	run := journal.NewRun(source, destination, flagClean)
	log := logger.With().Str("run_id", run.ID).Logger()

	st, err := mirror.New(osfs.New("/"), log).Run(source, destination, flagClean)
	if err != nil {
		return err
	}

	if flagJournal || cfg.GetBool(cfgKeyJournal) {
		if err := recordRun(run, st); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "mirrored %s -> %s: %d copied, %d skipped, %d failed\n",
		source, destination, st.FilesCopied, st.FilesSkipped, st.FilesFailed)
	return nil
}

func recordRun(run journal.Run, st mirror.Stats) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	j, err := journal.Open(dataDir)
	if err != nil {
		return err
	}
	defer j.Close()
	return j.Record(run, st)
}
