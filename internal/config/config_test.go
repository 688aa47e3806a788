package config

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(defaultTetrisYAML)
	if err != nil {
		t.Fatalf("parse(embedded) error = %v", err)
	}
	def := DefaultConfig()

	if cfg.Board != def.Board {
		t.Errorf("Board = %+v, expected %+v", cfg.Board, def.Board)
	}
	if cfg.Timing != def.Timing {
		t.Errorf("Timing = %+v, expected %+v", cfg.Timing, def.Timing)
	}
	if cfg.Gravity != def.Gravity {
		t.Errorf("Gravity = %+v, expected %+v", cfg.Gravity, def.Gravity)
	}
	if len(cfg.Keymaps) != 2 {
		t.Errorf("len(Keymaps) = %d, expected 2", len(cfg.Keymaps))
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte(`
board:
  width: 12
timing:
  countdown_step: 1s
keymaps:
  - left: h
    right: l
    down: j
    rotate: k
    drop: space
    hold: c
    restart: r
    quit: q
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Board.Width != 12 {
		t.Errorf("Board.Width = %d, expected 12", cfg.Board.Width)
	}
	if cfg.Board.Height != 22 {
		t.Errorf("Board.Height = %d, expected default 22", cfg.Board.Height)
	}
	if cfg.Timing.CountdownStep != time.Second {
		t.Errorf("CountdownStep = %v, expected 1s", cfg.Timing.CountdownStep)
	}
	if cfg.Timing.GameOverDelay != 800*time.Millisecond {
		t.Errorf("GameOverDelay = %v, expected default 800ms", cfg.Timing.GameOverDelay)
	}

	maps, err := cfg.ParseKeymaps()
	if err != nil {
		t.Fatalf("ParseKeymaps() error = %v", err)
	}
	if len(maps) != 1 {
		t.Fatalf("len(maps) = %d, expected 1", len(maps))
	}
	if k, _ := maps[0].Key(core.ActionLeft); k != 'h' {
		t.Errorf("left = %v, expected h", k)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		target  error
	}{
		{
			name:    "unknown action",
			content: "keymaps:\n  - jump: space\n",
			target:  ErrUnknownAction,
		},
		{
			name: "unknown key",
			content: `keymaps:
  - left: hyperspace
    right: right
    down: down
    rotate: up
    drop: space
    hold: l
    restart: r
    quit: q
`,
			target: ErrUnknownKey,
		},
		{
			name:    "incomplete keymap",
			content: "keymaps:\n  - left: a\n",
			target:  ErrIncompleteKeymap,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, tc.target) {
				t.Errorf("Load() error = %v, expected %v", err, tc.target)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	cfg.Board.Height = cfg.Board.Visible
	cfg.Timing.PollInterval = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject missing headroom and a zero poll interval")
	}
}

func TestFallSpeed(t *testing.T) {
	g := DefaultGravity()

	if got := g.FallSpeed(1); got != time.Second {
		t.Errorf("FallSpeed(1) = %v, expected 1s", got)
	}
	if got := g.FallSpeed(0); got != time.Second {
		t.Errorf("FallSpeed(0) = %v, expected level 1 speed", got)
	}

	// (0.8 - 0.007)^1 = 0.793s
	if got := g.FallSpeed(2); got < 792*time.Millisecond || got > 794*time.Millisecond {
		t.Errorf("FallSpeed(2) = %v, expected about 793ms", got)
	}

	prev := g.FallSpeed(1)
	for level := 2; level <= 40; level++ {
		cur := g.FallSpeed(level)
		if cur > prev {
			t.Errorf("FallSpeed(%d) = %v is slower than level %d (%v)", level, cur, level-1, prev)
		}
		if cur < g.MinInterval {
			t.Errorf("FallSpeed(%d) = %v is below the floor", level, cur)
		}
		prev = cur
	}

	if got := g.FallSpeed(500); got != g.MinInterval {
		t.Errorf("FallSpeed(500) = %v, expected floor %v", got, g.MinInterval)
	}
}

func TestPlayerKeymaps(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(1))

	maps, err := cfg.PlayerKeymaps(4, rng)
	if err != nil {
		t.Fatalf("PlayerKeymaps(4) error = %v", err)
	}
	if len(maps) != 4 {
		t.Fatalf("len(maps) = %d, expected 4", len(maps))
	}

	restart, _ := maps[0].Key(core.ActionRestart)
	quit, _ := maps[0].Key(core.ActionQuit)
	seen := make(map[core.KeyCode]int)
	for i, km := range maps {
		if missing := km.Missing(); len(missing) > 0 {
			t.Errorf("keymap %d misses %v", i, missing)
		}
		for _, b := range km {
			if b.Action.Shared() {
				if b.Action == core.ActionRestart && b.Key != restart {
					t.Errorf("keymap %d restart = %v, expected shared %v", i, b.Key, restart)
				}
				if b.Action == core.ActionQuit && b.Key != quit {
					t.Errorf("keymap %d quit = %v, expected shared %v", i, b.Key, quit)
				}
				continue
			}
			seen[b.Key]++
		}
	}
	for k, n := range seen {
		if n > 1 {
			t.Errorf("key %v bound %d times across players", k, n)
		}
	}

	single, err := cfg.PlayerKeymaps(1, rng)
	if err != nil || len(single) != 1 {
		t.Errorf("PlayerKeymaps(1) = %d maps, %v", len(single), err)
	}
}

func TestGenerateKeymapExhaustsPool(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pool := []core.KeyCode{'x', 'y', 'z'}

	_, err := GenerateKeymap(rng, pool, nil)
	if !errors.Is(err, ErrCannotAllocateKeymap) {
		t.Errorf("GenerateKeymap() error = %v, expected ErrCannotAllocateKeymap", err)
	}

	_, err = GenerateKeymap(rng, nil, nil)
	if !errors.Is(err, ErrCannotAllocateKeymap) {
		t.Errorf("GenerateKeymap(empty pool) error = %v, expected ErrCannotAllocateKeymap", err)
	}
}
