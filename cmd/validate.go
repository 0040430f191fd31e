package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/phase0/internal/boundary"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and compile the boundary configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, printer, err := loadConfig()
		if err != nil {
			return err
		}

		pol, err := boundary.Load(cfg.BoundariesFile)
		if err != nil {
			var ce *boundary.ConfigError
			if errors.As(err, &ce) {
				printer.Error(ce.Error())
				return errors.New("boundary configuration is invalid")
			}
			return err
		}

		printer.PolicySummary(cfg.BoundariesFile, pol)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
