package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/phase0/internal/naming"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <path>",
	Short: "Derive base name, directory and identifier from a path",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func init() {
	addResolveFlags(resolveCmd)
	rootCmd.AddCommand(resolveCmd)
}

// addResolveFlags registers CLI flags for the resolve subcommand.
func addResolveFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("ext", nil, "extensions to strip (default: component_extensions from config)")
	cmd.Flags().Bool("pascal", false, "convert the snake_case base name to a PascalCase identifier")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	exts := cfg.ComponentExtensions
	if cmd.Flags().Changed("ext") {
		exts, _ = cmd.Flags().GetStringSlice("ext")
	}
	convert := naming.CaseNone
	if pascal, _ := cmd.Flags().GetBool("pascal"); pascal {
		convert = naming.CasePascal
	}

	d := naming.Resolve(args[0], exts, convert)
	return writeFields(cmd.OutOrStdout(), d.Fields(), cfg.Format)
}
