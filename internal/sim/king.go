// SPDX-License-Identifier: MIT

package sim

import (
	"time"

	"tidekeep/internal/config"
	"tidekeep/internal/world"
)

// KingArbiter throttles king arbitration to at most once per second
// (spec.md §4.9) and remembers the last announced king so a broadcast is
// only emitted on change.
type KingArbiter struct {
	lastCheck time.Time
	current   world.PlayerID
}

// Maybe runs king arbitration if at least one second has elapsed since the
// previous check, appending a KingUpdate event only if the king changed
// (including transitions to/from absent).
func (k *KingArbiter) Maybe(state *world.State, cfg *config.Config, now time.Time, events *[]Event) {
	if !k.lastCheck.IsZero() && now.Sub(k.lastCheck) < time.Second {
		return
	}
	k.lastCheck = now

	tallest, _ := tallestTowerExcept(state, cfg, "")
	if tallest == nil {
		if k.current != "" {
			k.current = ""
			*events = append(*events, KingUpdate{KingID: ""})
		}
		return
	}

	top := tallest.TopAltitude(cfg.Stone.Depth)
	threshold := 1.3 * cfg.Tower.BaseRadius

	var king world.PlayerID
	state.ForEachSession(func(session *world.Session) {
		if king != "" {
			return
		}
		if session.Position.HorizontalDistance(tallest.Position) > threshold {
			return
		}
		if abs32(session.Position.Y-top) > 3 {
			return
		}
		king = session.ID
	})

	if king != k.current {
		k.current = king
		*events = append(*events, KingUpdate{KingID: king})
	}
}
