// Package main provides the shadowcopy CLI.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/shadowcopy/internal/logging"
	"github.com/mesh-intelligence/shadowcopy/internal/paths"
)

var (
	// flagConfigDir and flagDataDir are set by the global flags.
	flagConfigDir string
	flagDataDir   string

	// cfg and logger are initialized on startup, before any subcommand runs.
	cfg    *viper.Viper
	logger zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shadowcopy",
	Short: "Incremental one-way directory mirroring",
	Long: `Shadowcopy mirrors a source directory tree into a destination,
copying only files whose source copy is newer, and exposes the environment
queries a deployment host needs (template expansion, variable lookup,
working directory, search path).`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "",
		"configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "",
		"data directory for the run journal")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mirrorCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(envCmd)
}

// initApp resolves the config directory, loads config.yaml, and configures
// logging for every subcommand.
func initApp(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	cfg, err = loadConfig(configDir)
	if err != nil {
		return err
	}

	logger = logging.Configure(cfg.GetString(cfgKeyLogLevel))
	return nil
}

// resolveDataDir returns the journal directory from flag, config, env, or
// the CWD-relative default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, cfg.GetString(cfgKeyDataDir))
}
