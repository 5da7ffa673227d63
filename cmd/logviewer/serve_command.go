package main

import (
	"github.com/spf13/cobra"

	"go-log-viewer/internal/app"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var port string
	var framework string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP log viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.ServerPort = port
			}
			if framework != "" {
				cfg.HTTPFramework = framework
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			application, err := app.NewWithConfig(cfg)
			if err != nil {
				return err
			}
			return application.Run()
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides SERVER_PORT)")
	cmd.Flags().StringVar(&framework, "framework", "", "HTTP framework: chi or gin")
	return cmd
}
