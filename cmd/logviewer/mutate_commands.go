package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"go-log-viewer/internal/handler"
	"go-log-viewer/pkg/apierror"
)

func newClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear FILE",
		Short: "Truncate a log file to zero bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := ctx.logService()
			if err != nil {
				return err
			}

			if err := svc.Clear(cmd.Context(), args[0], cliActor()); err != nil {
				return mutationError(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), handler.MutationSuccess(args[0], "cleared").Message)
			return nil
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete FILE",
		Short: "Remove a log file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := ctx.logService()
			if err != nil {
				return err
			}

			if err := svc.Delete(cmd.Context(), args[0], cliActor()); err != nil {
				return mutationError(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), handler.MutationSuccess(args[0], "deleted").Message)
			return nil
		},
	}
}

func mutationError(err error) error {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.Message)
	}
	return err
}
