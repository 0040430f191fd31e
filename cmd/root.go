package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/phase0/internal/config"
	"github.com/papapumpkin/phase0/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "phase0",
	Short: "Scaffolding name resolution and module boundary checks",
	Long: "phase0 derives template fields (names, directories, class names) from prompt answers " +
		"and checks imports against per-module boundary rules.",
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .phase0.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("format", "", "output format for field maps: json, toml or env")
	rootCmd.PersistentFlags().String("boundaries", "", "boundary config file (default .phase0/boundaries.toml)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("boundaries_file", rootCmd.PersistentFlags().Lookup("boundaries"))
}

func initConfig() {
	// A missing .env is the common case.
	_ = godotenv.Load()

	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".phase0")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("PHASE0")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// loadConfig loads the config and a printer honouring its verbosity.
func loadConfig() (config.Config, *ui.Printer, error) {
	printer := ui.New()
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, printer, fmt.Errorf("failed to load config: %w", err)
	}
	printer.SetVerbose(cfg.Verbose)
	if used := viper.ConfigFileUsed(); used != "" {
		printer.Debug("config file: " + used)
	}
	return cfg, printer, nil
}
