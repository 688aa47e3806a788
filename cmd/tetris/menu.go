package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start the menu: Single Player, Local Multiplayer, Controls and Exit.

On the Local Multiplayer entry, left/right changes the number of players.
Players beyond the configured keymaps get generated keys; Controls shows
them. Quitting a match returns to the menu.`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	logger, closer, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := tui.Options{
		Config:  cfg,
		Runtime: runtimeConfig(cfg.Players.Default),
		Logger:  logger,
	}

	runErr := tui.RunSession(opts)
	closer.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running menu: %v\n", runErr)
		os.Exit(1)
	}
}
