package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"go-log-viewer/internal/model"
)

var levelStyles = map[string]lipgloss.Style{
	"CRITICAL": lipgloss.NewStyle().Foreground(lipgloss.Color("#f85149")).Bold(true),
	"ERROR":    lipgloss.NewStyle().Foreground(lipgloss.Color("#f85149")),
	"WARNING":  lipgloss.NewStyle().Foreground(lipgloss.Color("#d29922")),
	"DEBUG":    lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e")),
	"INFO":     lipgloss.NewStyle().Foreground(lipgloss.Color("#58a6ff")),
}

var levelOrder = []string{"CRITICAL", "ERROR", "WARNING", "DEBUG", "INFO"}

func newReadCommand(ctx *commandContext) *cobra.Command {
	var (
		lines   int
		level   string
		search  string
		page    int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "read [FILE]",
		Short: "Print the newest entries of a log file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := ctx.logService()
			if err != nil {
				return err
			}

			file := "app.log"
			if len(args) == 1 {
				file = args[0]
			}
			if !cmd.Flags().Changed("lines") {
				lines = cfg.DefaultLines
			}

			result := svc.Read(cmd.Context(), model.ContentQuery{
				File:   file,
				Lines:  lines,
				Level:  level,
				Search: search,
				Page:   page,
			})

			if jsonOut {
				return writeJSON(cmd, result)
			}
			if result.Error != "" {
				return errors.New(result.Error)
			}

			renderEntries(cmd.OutOrStdout(), result, shouldColorize(cmd.OutOrStdout()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 500, "Entries per page (0 for all)")
	cmd.Flags().StringVarP(&level, "level", "l", "", "Only entries containing this level")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only entries containing this text (case-insensitive)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number, 1 is the newest")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func renderEntries(w io.Writer, result model.ReadResult, colorize bool) {
	for _, entry := range result.Lines {
		if colorize {
			if style, ok := levelStyles[detectLevel(entry)]; ok {
				entry = style.Render(entry)
			}
		}
		fmt.Fprintln(w, entry)
	}

	fmt.Fprintf(w, "-- page %d of %d (%d entries)\n", result.Page, result.TotalPages, result.Total)
}

func detectLevel(entry string) string {
	for _, level := range levelOrder {
		if strings.Contains(entry, level+":") || strings.Contains(entry, level+" ") {
			return level
		}
	}
	return ""
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
