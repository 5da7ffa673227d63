package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var dirFlag string
	var configFlag string

	ctx := newCommandContext(&dirFlag, &configFlag)

	rootCmd := &cobra.Command{
		Use:           "logviewer",
		Short:         "Browse, filter and prune log files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", "", "Log directory (overrides LOG_DIR)")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newFilesCommand(ctx))
	rootCmd.AddCommand(newReadCommand(ctx))
	rootCmd.AddCommand(newClearCommand(ctx))
	rootCmd.AddCommand(newDeleteCommand(ctx))
	rootCmd.AddCommand(newHashPasswordCommand())

	return rootCmd
}
