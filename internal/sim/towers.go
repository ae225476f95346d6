// SPDX-License-Identifier: MIT

package sim

import (
	"github.com/chewxy/math32"

	"tidekeep/internal/config"
	"tidekeep/internal/world"
)

// AdvanceTowers runs tower formation and leveling (spec.md §4.6) once per
// tick, after physics integration. Phase A associates settled stones with
// existing towers (first match wins, towers iterated in formation order);
// Phase B forms at most one new tower per tick from whatever settled stones
// remain.
func AdvanceTowers(state *world.State, cfg *config.Config, events *[]Event) {
	groupRadius := cfg.Tower.GroupRadius
	k := cfg.Tower.StonesPerLevel

	settled := settledStones(state)
	if len(settled) == 0 {
		return
	}

	consumed := make(map[world.StoneID]bool)
	claimed := make(map[world.StoneID]bool) // associated with an earlier tower

	// Phase A: level-up.
	state.ForEachTowerInOrder(func(tower *world.Tower) {
		var associated []*world.Stone
		for _, s := range settled {
			if consumed[s.ID] || claimed[s.ID] {
				continue
			}
			if s.Position.HorizontalDistance(tower.Position) <= groupRadius {
				associated = append(associated, s)
				claimed[s.ID] = true
			}
		}

		if len(associated) < k {
			return
		}

		group := associated[:k]
		ids := make([]world.StoneID, 0, k)
		for _, s := range group {
			ids = append(ids, s.ID)
			consumed[s.ID] = true
			state.RemoveStone(s.ID)
		}

		tower.Level++
		*events = append(*events, TowerUpdate{
			TowerID:        tower.ID,
			NewLevel:       tower.Level,
			ConsumedStones: ids,
			WasDestacked:   false,
		})
	})

	// Phase B: new tower, at most one per tick.
	for _, s := range settled {
		if consumed[s.ID] {
			continue
		}
		if state.Stone(s.ID) == nil {
			continue
		}

		var neighbors []*world.Stone
		for _, other := range settled {
			if other.ID == s.ID || consumed[other.ID] {
				continue
			}
			if state.Stone(other.ID) == nil {
				continue
			}
			if other.Position.HorizontalDistance(s.Position) <= groupRadius {
				neighbors = append(neighbors, other)
			}
		}

		if len(neighbors) < k-1 {
			continue
		}

		group := append([]*world.Stone{s}, neighbors[:k-1]...)
		var sum world.Vector3
		ids := make([]world.StoneID, 0, k)
		for _, g := range group {
			sum = sum.Add(g.Position)
			ids = append(ids, g.ID)
		}
		position := sum.Mul(1.0 / float32(k))

		tower := world.Tower{
			ID:       world.NewTowerID(),
			Position: position,
			Level:    1,
		}
		state.AddTower(&tower)

		for _, g := range group {
			state.RemoveStone(g.ID)
		}

		*events = append(*events, TowerCreate{Tower: tower, ConsumedStones: ids})
		break
	}
}

// settledStones returns the stones currently eligible for association,
// per the ¬isHeld ∧ isThrown ∧ isStatic definition in §4.6.
func settledStones(state *world.State) []*world.Stone {
	var out []*world.Stone
	state.ForEachStone(func(s *world.Stone) {
		if s.Settled() {
			out = append(out, s)
		}
	})
	return out
}

// Destack handles a tower_destack request per spec.md §4.8. It returns
// false if the request is invalid (no such tower, or player too far). authed
// bypasses the distance check, the one basic authority check (§7/Non-goals)
// this server relaxes for a request bearing the server's -auth code.
func Destack(state *world.State, cfg *config.Config, playerID world.PlayerID, towerID world.TowerID, authed bool, events *[]Event) bool {
	tower := state.Tower(towerID)
	if tower == nil {
		return false
	}

	player := state.Session(playerID)
	if player == nil {
		return false
	}
	if !authed && player.Position.HorizontalDistance(tower.Position) > cfg.Tower.BaseRadius {
		return false
	}

	k := cfg.Tower.StonesPerLevel
	top := tower.TopAltitude(cfg.Stone.Depth)

	for i := 0; i < k; i++ {
		angle := (math32.Pi * 2 / float32(k)) * float32(i)
		stone := world.Stone{
			ID: world.NewStoneID(),
			Position: world.Vector3{
				X: tower.Position.X + 2*math32.Cos(angle),
				Y: top + 2,
				Z: tower.Position.Z + 2*math32.Sin(angle),
			},
		}
		state.AddStone(&stone)
		*events = append(*events, StoneSpawned{Stone: stone})
	}

	if tower.Level == 1 {
		idx := state.RemoveTower(towerID)
		*events = append(*events, TowerDestroy{TowerIndex: idx})
		return true
	}

	tower.Level--
	*events = append(*events, TowerUpdate{
		TowerID:      tower.ID,
		NewLevel:     tower.Level,
		WasDestacked: true,
	})
	return true
}
