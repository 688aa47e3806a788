package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var flagPlayers int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a match",
	Long: `Start a match right away, without the menu.

Each player has their own keys; run 'tetris keys' to see them.
Restart and quit are shared by every player. After a game over they are
ignored for a moment so a key held down does not skip the result.

Examples:
  tetris play
  tetris play --players 2
  tetris play --players 3 --seed 42`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagPlayers, "players", 0, "Number of players (0 = config default)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	players := flagPlayers
	if players <= 0 {
		players = cfg.Players.Default
	}
	if cfg.Players.Max > 0 && players > cfg.Players.Max {
		fmt.Fprintf(os.Stderr, "Error: at most %d players\n", cfg.Players.Max)
		os.Exit(1)
	}

	keymaps, err := cfg.PlayerKeymaps(players, keymapRand())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closer, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := tui.Options{
		Config:  cfg,
		Runtime: runtimeConfig(players),
		Logger:  logger,
	}
	logger.Info("starting match", "players", players, "seed", flagSeed)

	runErr := tui.RunMatch(opts, keymaps)
	closer.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running match: %v\n", runErr)
		os.Exit(1)
	}
}
