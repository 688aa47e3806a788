package config

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// MaxKeyAllocAttempts bounds the random draws spent on one action when
// generating a keymap.
const MaxKeyAllocAttempts = 100

var (
	ErrUnknownAction        = errors.New("unknown action")
	ErrUnknownKey           = errors.New("unknown key")
	ErrIncompleteKeymap     = errors.New("keymap does not bind every action")
	ErrCannotAllocateKeymap = errors.New("cannot allocate keymap")
)

// ParseKeymap converts an action name -> key name map into a keymap in
// canonical action order.
func ParseKeymap(m map[string]string) (core.Keymap, error) {
	km := make(core.Keymap, 0, len(m))
	for name, keyName := range m {
		action, ok := core.ParseAction(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
		}
		key, ok := core.ParseKey(keyName)
		if !ok {
			return nil, fmt.Errorf("%w: %q for action %s", ErrUnknownKey, keyName, action)
		}
		km = append(km, core.Binding{Action: action, Key: key})
	}
	if missing := km.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %v", ErrIncompleteKeymap, missing)
	}
	return km.Sorted(), nil
}

// ParseKeymaps parses every configured keymap.
func (c TetrisConfig) ParseKeymaps() ([]core.Keymap, error) {
	out := make([]core.Keymap, 0, len(c.Keymaps))
	for i, m := range c.Keymaps {
		km, err := ParseKeymap(m)
		if err != nil {
			return nil, fmt.Errorf("keymap %d: %w", i+1, err)
		}
		out = append(out, km)
	}
	return out, nil
}

// ParseKeyPool resolves the generator pool. Unknown names are an error.
func (c TetrisConfig) ParseKeyPool() ([]core.KeyCode, error) {
	pool := make([]core.KeyCode, 0, len(c.KeyPool))
	for _, name := range c.KeyPool {
		k, ok := core.ParseKey(name)
		if !ok {
			return nil, fmt.Errorf("key_pool: %w: %q", ErrUnknownKey, name)
		}
		pool = append(pool, k)
	}
	return pool, nil
}

// PlayerKeymaps returns one keymap per player. Configured keymaps are used
// first; the rest are generated from the key pool.
func (c TetrisConfig) PlayerKeymaps(players int, rng *rand.Rand) ([]core.Keymap, error) {
	maps, err := c.ParseKeymaps()
	if err != nil {
		return nil, err
	}
	if players <= len(maps) {
		return maps[:players], nil
	}
	pool, err := c.ParseKeyPool()
	if err != nil {
		return nil, err
	}
	for len(maps) < players {
		km, err := GenerateKeymap(rng, pool, maps)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", len(maps)+1, err)
		}
		maps = append(maps, km)
	}
	return maps, nil
}

// GenerateKeymap draws a keymap from pool that shares no key with existing.
// Restart and quit are copied from the first existing keymap so every
// player can end the match with the same keys.
func GenerateKeymap(rng *rand.Rand, pool []core.KeyCode, existing []core.Keymap) (core.Keymap, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: empty key pool", ErrCannotAllocateKeymap)
	}
	used := make(map[core.KeyCode]bool)
	for _, km := range existing {
		for _, k := range km.Codes() {
			used[k] = true
		}
	}

	km := make(core.Keymap, 0, len(core.Actions()))
	for _, a := range core.Actions() {
		if a.Shared() && len(existing) > 0 {
			if k, ok := existing[0].Key(a); ok {
				km = append(km, core.Binding{Action: a, Key: k})
				continue
			}
		}
		key := pool[rng.Intn(len(pool))]
		attempts := 0
		for used[key] {
			attempts++
			if attempts > MaxKeyAllocAttempts {
				return nil, fmt.Errorf("%w: no free key for %s", ErrCannotAllocateKeymap, a)
			}
			key = pool[rng.Intn(len(pool))]
		}
		used[key] = true
		km = append(km, core.Binding{Action: a, Key: key})
	}
	return km, nil
}
