// Env command for the shadowcopy CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shadowcopy/pkg/envq"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Query the process environment through the native resolver",
}

var envExpandCmd = &cobra.Command{
	Use:   "expand <template>",
	Short: "Expand %NAME% references in a template string",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		expanded, err := envq.ExpandTemplate(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), expanded)
		return nil
	},
}

var envGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print the value of an environment variable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, ok, err := envq.LookupVariable(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("environment variable %q is not set", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var envCwdCmd = &cobra.Command{
	Use:   "cwd",
	Short: "Print the current working directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := envq.CurrentDirectory()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}

var envSearchPathCmd = &cobra.Command{
	Use:   "searchpath [dir]",
	Short: "Print or set the library search path directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return envq.SetSearchPathDirectory(args[0])
		}
		dir, err := envq.SearchPathDirectory()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}

func init() {
	envCmd.AddCommand(envExpandCmd)
	envCmd.AddCommand(envGetCmd)
	envCmd.AddCommand(envCwdCmd)
	envCmd.AddCommand(envSearchPathCmd)
}
