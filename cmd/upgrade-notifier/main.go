package main

import (
	"context"
	"fmt"
	"os"

	"github.com/obentoo/upgrade-notifier/internal/common/config"
	"github.com/obentoo/upgrade-notifier/internal/common/logger"
	"github.com/obentoo/upgrade-notifier/internal/common/output"
	"github.com/obentoo/upgrade-notifier/internal/frequency"
	"github.com/obentoo/upgrade-notifier/internal/notifier"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	noColor      bool
	logFile      bool
	configPath   string
	timeout      float64
	force        bool
	setFrequency string

	// exitCode is set by commands and returned from main after cleanup
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "upgrade-notifier",
	Short: "Notify when a new Ubuntu release is available",
	Long: `Check whether do-release-upgrade reports a new Ubuntu release and print a
notice if it does. Meant to run at shell start: it stays silent unless a
release is available, and checks at most once per notification frequency.

Examples:
  upgrade-notifier                        Check now if the frequency allows it
  upgrade-notifier -v                     Check and explain what happened
  upgrade-notifier --force                Check regardless of the frequency
  upgrade-notifier --set-frequency weekly Notify at most once a week
  upgrade-notifier --set-frequency never  Disable notifications`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetVerbose(true)
		}
		if quiet {
			logger.SetQuiet(true)
		}
		if noColor || !output.IsTerminal() {
			output.NoColor()
		}
		if logFile {
			if err := logger.Default().EnableFileLogging(); err != nil {
				logger.Warn("file logging disabled: %v", err)
			}
		}
	},
	Run: runNotify,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Echo query output and explain failures")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&logFile, "log-file", false, "Also append log messages to the log file")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file")

	rootCmd.Flags().Float64VarP(&timeout, "timeout", "t", config.DefaultTimeoutSeconds, "Seconds to wait for the release query")
	rootCmd.Flags().BoolVar(&force, "force", false, "Check even if the notification frequency does not allow it")
	rootCmd.Flags().StringVarP(&setFrequency, "set-frequency", "f", "",
		"Set the notification frequency ("+frequency.Names()+") and exit")
	rootCmd.MarkFlagsMutuallyExclusive("set-frequency", "force")
	rootCmd.MarkFlagsMutuallyExclusive("set-frequency", "timeout")
}

// loadConfig reads the config file named by --config or the default location
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

func runNotify(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		logger.Error("loading config: %v", err)
		exitCode = notifier.ExitFailure
		return
	}

	if cmd.Flags().Changed("timeout") {
		cfg.Query.TimeoutSeconds = timeout
		if err := cfg.Validate(); err != nil {
			logger.Error("--timeout: %v", err)
			exitCode = notifier.ExitFailure
			return
		}
	}

	exitCode = notifier.Run(context.Background(), notifier.Options{
		Config:       cfg,
		Verbose:      verbose,
		Force:        force,
		SetFrequency: setFrequency,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	})
}

// execute runs the root command, turning errors and panics into exit codes
func execute() (code int) {
	defer func() {
		if r := recover(); r != nil {
			if verbose {
				fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			}
			code = notifier.ExitFailure
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return notifier.ExitFailure
	}
	return exitCode
}

func main() {
	code := execute()
	logger.Default().Close()
	os.Exit(code)
}
