// Package cli wires the cobra command tree. Running the bare binary starts
// the card carousel; subcommands cover config bootstrap, component
// management, and CSV export.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agustinfitipaldi/blood/internal/config"
	"github.com/agustinfitipaldi/blood/internal/store"
)

// Persistent flags shared by every command.
var (
	configFlag string
	dbFlag     string
)

var rootCmd = &cobra.Command{
	Use:   "blood",
	Short: "Track lab panel results in the terminal",
	Long: `A local rolodex for lab panel results.

Each tracked component (HbA1c, LDL, creatinine, ...) gets a card showing its
recent values and a trend graph against its normal range. Everything lives in
a single SQLite file; nothing leaves the machine.

Running 'blood' with no arguments opens the carousel.

Keyboard shortcuts:
  j / down    Next card
  k / up      Previous card
  Enter       Full history for the selected component
  n           Record a new value
  e           Edit an entry
  d           Delete an entry
  c           Create a component
  q / Ctrl+C  Quit`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rolodexCommand()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "path to the SQLite database (overrides config)")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration with flag overrides applied.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return nil, err
	}
	if dbFlag != "" {
		cfg.Database = dbFlag
	}
	return cfg, nil
}

// openStore loads config and opens the database in one step, the common
// preamble of every data-touching command.
func openStore() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.Database)
}
