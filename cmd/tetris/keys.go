package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var (
	flagKeysPlayers int
	flagKeysYAML    bool
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show key bindings",
	Long: `Shows every player's key bindings. Players beyond the configured
keymaps get generated keys; pass --seed to get the same ones as a match
started with that seed.

With --yaml the effective configuration is printed instead, ready to be
saved as ~/.tetris/configs/tetris.yaml.`,
	Run: runKeys,
}

func init() {
	keysCmd.Flags().IntVar(&flagKeysPlayers, "players", 0, "Number of players (0 = config default)")
	keysCmd.Flags().BoolVar(&flagKeysYAML, "yaml", false, "Print the effective config as YAML")
}

func runKeys(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	if flagKeysYAML {
		data, err := config.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(data))
		return
	}

	players := flagKeysPlayers
	if players <= 0 {
		players = cfg.Players.Default
	}

	keymaps, err := cfg.PlayerKeymaps(players, keymapRand())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for i, km := range keymaps {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(tui.FormatKeymap(core.PlayerFromIndex(i), km))
	}
}
