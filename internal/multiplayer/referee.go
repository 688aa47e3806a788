package multiplayer

import (
	"context"
	"sort"

	"github.com/vovakirdan/tui-tetris/internal/game"
)

// referee consumes driver signals until a restart or quit is accepted.
// Signals already queued when one arrives are handled as one batch.
func (m *Match) referee(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-m.overs:
			if m.settle(s) {
				return errMatchClosed
			}
		case s := <-m.signals:
			if m.settle(s) {
				return errMatchClosed
			}
		}
	}
}

// settle handles s together with every signal already queued on either
// channel. It reports whether the match is over.
func (m *Match) settle(s Signal) bool {
	batch := []Signal{s}
more:
	for {
		select {
		case s := <-m.overs:
			batch = append(batch, s)
		case s := <-m.signals:
			batch = append(batch, s)
		default:
			break more
		}
	}
	o, done := m.handle(batch)
	if done {
		m.outcome = o
	}
	return done
}

// handle applies a batch: eliminations first, then control signals in
// arrival order. It reports the outcome once a restart or quit is accepted.
func (m *Match) handle(batch []Signal) (Outcome, bool) {
	var over []PlayerID
	var control []Signal
	for _, s := range batch {
		if s.Kind == SignalGameOver {
			over = append(over, s.Player)
		} else {
			control = append(control, s)
		}
	}
	if len(over) > 0 {
		m.eliminate(over)
	}

	for _, s := range control {
		if m.quiet() {
			m.log.Debug("ignored during game over delay", "player", s.Player, "kind", s.Kind)
			continue
		}
		switch s.Kind {
		case SignalRestart:
			m.log.Info("restart requested", "player", s.Player)
			return OutcomeRestart, true
		case SignalQuit:
			m.log.Info("quit requested", "player", s.Player)
			return OutcomeQuit, true
		}
	}
	return 0, false
}

// quiet reports whether a terminal screen opened too recently for restart
// and quit to count.
func (m *Match) quiet() bool {
	return m.clock.Now().Before(m.quietUntil)
}

// eliminate handles the players that topped out together. Alone, a player
// gets the neutral game over screen. In a match every eliminated player is
// defeated and a lone survivor wins; if nobody survives the batch, the batch
// all get the game over screen and there is no winner. Once the match has
// ended, later eliminations are ignored so the result screens stay as sent.
func (m *Match) eliminate(players []PlayerID) {
	if m.ended {
		m.log.Debug("elimination after match end ignored", "players", players)
		return
	}
	sort.Slice(players, func(i, j int) bool { return players[i] < players[j] })

	batch := players[:0]
	for i, p := range players {
		if i > 0 && p == players[i-1] {
			continue
		}
		idx, ok := m.byID[p]
		if !ok || !m.alive[idx] {
			continue
		}
		m.alive[idx] = false
		batch = append(batch, p)
	}
	if len(batch) == 0 {
		return
	}

	remaining := 0
	survivor := -1
	for i, a := range m.alive {
		if a {
			remaining++
			survivor = i
		}
	}

	switch {
	case len(m.drivers) == 1:
		m.show(batch[0], game.OverlayGameOver)
		m.end(MatchEndReasonGameOver, 0)

	case remaining == 0:
		for _, p := range batch {
			m.show(p, game.OverlayGameOver)
		}
		m.end(MatchEndReasonDraw, 0)

	default:
		for _, p := range batch {
			m.log.Info("player eliminated", "player", p, "remaining", remaining)
			m.show(p, game.OverlayDefeat)
		}
		if remaining == 1 {
			winner := m.drivers[survivor].ID()
			m.show(winner, game.OverlayVictory)
			m.end(MatchEndReasonVictory, winner)
		}
	}

	m.quietUntil = m.clock.Now().Add(m.gameOverDelay)
}

func (m *Match) show(p PlayerID, o game.Overlay) {
	m.drivers[m.byID[p]].SetOverlay(o)
	m.sink.Send(ScreenEvent{MatchID: m.id, Player: p, Overlay: o})
}

func (m *Match) end(reason MatchEndReason, winner PlayerID) {
	if m.ended {
		return
	}
	m.ended = true
	m.log.Info("match ended", "reason", reason, "winner", winner)
	m.sink.Send(MatchEndedEvent{
		MatchID: m.id,
		Reason:  reason,
		Winner:  winner,
		Scores:  m.Scores(),
	})
}
