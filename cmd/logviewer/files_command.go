package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"go-log-viewer/internal/model"
)

func newFilesCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List log files under the log directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := ctx.logService()
			if err != nil {
				return err
			}

			files, err := svc.ListFiles(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, model.FilesResponse{Files: files})
			}

			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No log files found")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderFiles(files, time.Now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func renderFiles(files []model.FileRecord, now time.Time) string {
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{
			f.Name,
			humanize.IBytes(uint64(f.Size)),
			humanize.RelTime(f.Modified, now, "ago", "from now"),
		})
	}

	return renderTable([]string{"Name", "Size", "Modified"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft})
}
