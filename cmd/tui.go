package cmd

import (
	"fmt"

	"github.com/simonvc/ratedash/internal/client"
	"github.com/simonvc/ratedash/internal/config"
	"github.com/simonvc/ratedash/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		// The screen belongs to the UI, so logs go to a file.
		logger, closer, err := config.OpenLogFile(flagLogFile, flagLogLevel)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer closer.Close()

		serverAddr := flagServer
		if !cmd.Flags().Changed("server") {
			addr, cleanup, err := startEmbedded(logger)
			if err != nil {
				return err
			}
			defer cleanup()
			serverAddr = addr
		}

		c := client.New(serverAddr, client.WithLogger(logger))
		app := tui.NewApp(c, tui.WithLogger(logger), tui.WithDebounce(cfg.Debounce))
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
