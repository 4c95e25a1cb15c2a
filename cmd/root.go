package main

import (
	"github.com/spf13/cobra"

	"fptclock/internal/logging"
)

const (
	appName = "fptclock"
	appID   = "com.fptclock.app"
)

type rootOptions struct {
	stages   string
	logLevel string
	monitor  bool
	mute     bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Presentation timer with a pie clock, operator controls and a confidence monitor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(opts.logLevel, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClock(cmd.Context(), opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.stages, "stages", "s", "", "Stage program file (.csv, .yaml, .toml); defaults to states.csv")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&opts.monitor, "monitor", false, "Open the clock window at startup")
	rootCmd.Flags().BoolVar(&opts.mute, "mute", false, "Never play the warning tone")

	rootCmd.AddCommand(newListCommand(opts))
	rootCmd.AddCommand(newCheckCommand(opts))

	return rootCmd
}
