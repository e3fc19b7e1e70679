package main

import (
	"fmt"
	"os"

	"github.com/rankmath/repair-action-scheduler/pkg/config"
	apperrors "github.com/rankmath/repair-action-scheduler/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	v = config.New()

	rootCmd = &cobra.Command{
		Use:   "ras",
		Short: "Repair Action Scheduler - one-shot repair of the Action Scheduler tables",
		Long: `ras inspects the four Action Scheduler tables (actions, claims, groups, logs).
Missing tables are created. If any table lost its PRIMARY KEY or AUTO_INCREMENT,
all four are renamed aside with a shared suffix and recreated empty.

The outcome is stored once and shown on the next invocation, after which the
tool disables itself. Use "ras clean" to allow another run.`,
		Version:       Version,
		RunE:          runRepair,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("prefix", "", "table prefix (default wp_)")
	rootCmd.PersistentFlags().String("db-name", "", "database name")

	// Bind flags to viper
	v.BindPFlag("db.prefix", rootCmd.PersistentFlags().Lookup("prefix"))
	v.BindPFlag("db.name", rootCmd.PersistentFlags().Lookup("db-name"))
}

func initConfig() {
	config.LoadDotEnv()
}

// hint suggests a next step for the error classes an operator can act on
func hint(err error) string {
	switch {
	case apperrors.IsConflict(err):
		return "an archived table with this name already exists; drop or rename it, then run \"ras clean\""
	case apperrors.IsDatabase(err):
		return "check the db.* settings and that the user may run CREATE and ALTER"
	case apperrors.IsValidation(err):
		return "fix the setting named above in the config file or its RAS_* environment variable"
	case apperrors.IsNotFound(err):
		return "run \"ras schema\" to list the known tables"
	}
	return ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if h := hint(err); h != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", h)
		}
		os.Exit(1)
	}
}
