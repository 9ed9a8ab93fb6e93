package main

import (
	"os"
	"time"

	"github.com/obentoo/upgrade-notifier/internal/common/logger"
	"github.com/obentoo/upgrade-notifier/internal/notifier"
	"github.com/obentoo/upgrade-notifier/internal/state"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the notification frequency and when the next check is due",
	Args:  cobra.NoArgs,
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		logger.Error("loading config: %v", err)
		exitCode = notifier.ExitFailure
		return
	}

	path, err := cfg.StatePath()
	if err != nil {
		logger.Error("%v", err)
		exitCode = notifier.ExitFailure
		return
	}

	if err := notifier.Status(os.Stdout, state.NewStore(path), time.Now); err != nil {
		logger.Error("%v", err)
		exitCode = notifier.ExitFailure
	}
}
