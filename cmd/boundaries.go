package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/phase0/internal/boundary"
)

var boundariesCmd = &cobra.Command{
	Use:   "boundaries",
	Short: "Manage and check module boundary rules (init, classify, check)",
}

var boundariesInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter boundary configuration",
	Args:  cobra.NoArgs,
	RunE:  runBoundariesInit,
}

var boundariesClassifyCmd = &cobra.Command{
	Use:   "classify <path>...",
	Short: "Print the module type of each path",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBoundariesClassify,
}

func init() {
	boundariesInitCmd.Flags().Bool("force", false, "overwrite an existing config")

	boundariesCmd.AddCommand(boundariesInitCmd)
	boundariesCmd.AddCommand(boundariesClassifyCmd)
	rootCmd.AddCommand(boundariesCmd)
}

func runBoundariesInit(cmd *cobra.Command, args []string) error {
	cfg, printer, err := loadConfig()
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(cfg.BoundariesFile); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfg.BoundariesFile)
	}

	if err := boundary.WriteFile(cfg.BoundariesFile, boundary.DefaultConfig()); err != nil {
		return err
	}
	printer.Success("wrote " + cfg.BoundariesFile)
	return nil
}

// errUnclassified is returned when classify leaves paths without a type.
var errUnclassified = errors.New("some paths match no element; add a pattern or an ignore entry")

func runBoundariesClassify(cmd *cobra.Command, args []string) error {
	cfg, printer, err := loadConfig()
	if err != nil {
		return err
	}
	pol, err := boundary.Load(cfg.BoundariesFile)
	if err != nil {
		return err
	}
	printer.Debug(fmt.Sprintf("loaded %s", cfg.BoundariesFile))

	out := cmd.OutOrStdout()
	missing := 0
	for _, p := range args {
		switch t := pol.Classify(p); {
		case pol.Ignored(p):
			fmt.Fprintf(out, "%s\t(ignored)\n", p)
		case t == boundary.Unclassified:
			fmt.Fprintf(out, "%s\t(unclassified)\n", p)
			missing++
		default:
			fmt.Fprintf(out, "%s\t%s\n", p, t)
		}
	}
	if missing > 0 {
		return errUnclassified
	}
	return nil
}
