package cmd

import (
	"errors"
	"fmt"
	"os"

	"loot-ledger/core/ledgerfile"
	"loot-ledger/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "loot-ledger",
	Short: "Loot Ledger Reconciler",
	Long: `Loot Ledger reconciles loot-log and soft-reserve exports into a
durable per-character item history used for fairness auditing across
recurring raid sessions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			// Log the error with structured logger (Console encoding will make it pretty)
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}

		// Failed ledger saves get a distinct exit status so schedulers can
		// tell "state not persisted" apart from ordinary failures.
		if errors.Is(err, ledgerfile.ErrSaveFailed) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
