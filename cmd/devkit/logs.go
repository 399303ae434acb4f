package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/systemstart/devkit/pkg/logs"
	"github.com/systemstart/devkit/pkg/ui"
)

func newLogsCmd(dir *string) *cobra.Command {
	var (
		follow bool
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "List or follow the project's log files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := loadManifest(*dir)

			if !follow {
				entries, err := logs.List(m.LogDir(), m.Logs.Patterns)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(os.Stderr, ui.InfoMsg("no log files yet, run %s first", ui.Accent("devkit setup")))
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{e.Name, formatSize(e.Size), e.ModTime.Format(time.DateTime)})
				}
				fmt.Println(ui.Table([]string{"FILE", "SIZE", "MODIFIED"}, rows))
				return nil
			}

			paths := []string{m.ServerLogPath()}
			if all {
				paths = append(paths, m.ActivityLogPath())
			}
			fmt.Fprintln(os.Stderr, ui.InfoMsg("following %d file(s), interrupt to stop", len(paths)))
			return logs.Follow(cmd.Context(), os.Stdout, paths...)
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Stream appended log data until interrupted")
	cmd.Flags().BoolVar(&all, "all", false, "Also follow the activity log")
	return cmd
}

func formatSize(n int64) string {
	const kib = 1024
	switch {
	case n >= kib*kib:
		return fmt.Sprintf("%.1f MiB", float64(n)/(kib*kib))
	case n >= kib:
		return fmt.Sprintf("%.1f KiB", float64(n)/kib)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
