// SPDX-License-Identifier: MIT

package sim

import (
	"math/rand"
	"time"

	"github.com/chewxy/math32"

	"tidekeep/internal/config"
	"tidekeep/internal/world"
)

const (
	destructionTriggerRadius = 15
	movingDuration           = 3 * time.Second
	rainingDuration          = 2 * time.Second
	floodingDuration         = 2 * time.Second
	returnPathDuration       = 5 * time.Second
)

// AdvanceClouds runs cloud wander (§4.5), destruction-trigger detection and
// FSM advancement (§4.7), and return-path interpolation once per tick.
func AdvanceClouds(state *world.State, cfg *config.Config, now time.Time, dt float32, events *[]Event) {
	state.ForEachCloud(func(cloud *world.Cloud) {
		if state.Sequence(cloud.ID) != nil {
			return
		}
		if path := state.ReturnPath(cloud.ID); path != nil {
			advanceReturnPath(state, cloud, path, now)
			return
		}

		wander(cloud, cfg, dt)
		tryTriggerDestruction(state, cfg, cloud, now, events)
	})

	advanceSequences(state, cfg, now, events)
}

func wander(cloud *world.Cloud, cfg *config.Config, dt float32) {
	cloud.Position.X += cloud.Direction.X * cloud.Speed * dt
	cloud.Position.Z += cloud.Direction.Z * cloud.Speed * dt

	half := cfg.World.Size / 2
	reflected := false
	if cloud.Position.X > half || cloud.Position.X < -half {
		cloud.Direction.X = -cloud.Direction.X
		reflected = true
	}
	if cloud.Position.Z > half || cloud.Position.Z < -half {
		cloud.Direction.Z = -cloud.Direction.Z
		reflected = true
	}
	if !reflected {
		return
	}

	cloud.Direction.X += (rand.Float32()*2 - 1) * 0.1
	cloud.Direction.Z += (rand.Float32()*2 - 1) * 0.1
	length := math32.Hypot(cloud.Direction.X, cloud.Direction.Z)
	if length > 0 {
		cloud.Direction.X /= length
		cloud.Direction.Z /= length
	}
}

// tryTriggerDestruction implements §4.7's trigger condition: for every
// player, within destructionTriggerRadius of the cloud, the tallest tower
// the player is not currently standing on becomes the target — unconditional
// on the player standing on a tower at all (see SPEC_FULL.md §5's resolution
// of this ambiguity; "not standing on" degenerates to "any tower" for a
// player standing on none).
func tryTriggerDestruction(state *world.State, cfg *config.Config, cloud *world.Cloud, now time.Time, events *[]Event) {
	state.ForEachSession(func(player *world.Session) {
		if state.Sequence(cloud.ID) != nil {
			return // already triggered this tick by an earlier player
		}

		if player.Position.HorizontalDistance(cloud.Position) >= destructionTriggerRadius {
			return
		}

		standingOn := towerPlayerStandsOn(state, cfg, player)
		target, index := tallestTowerExcept(state, cfg, standingOn)
		if target == nil || state.TowerHasActiveSequence(target.ID) {
			return
		}

		seq := world.DestructionSequence{
			CloudID:       cloud.ID,
			TowerID:       target.ID,
			TowerIndex:    index,
			TowerPosition: target.Position,
			StartPosition: cloud.Position,
			Phase:         world.PhaseMoving,
			StartTime:     now,
			MovingFor:     movingDuration,
			RainingFor:    rainingDuration,
			FloodingFor:   floodingDuration,
		}
		state.StartSequence(&seq)
		*events = append(*events, TowerStartDestruction{Sequence: seq})
	})
}

// towerPlayerStandsOn returns the id of the tower whose base the player is
// within, or "" if the player is not standing on any tower.
func towerPlayerStandsOn(state *world.State, cfg *config.Config, player *world.Session) world.TowerID {
	var found world.TowerID
	state.ForEachTowerInOrder(func(tower *world.Tower) {
		if found != "" {
			return
		}
		if player.Position.HorizontalDistance(tower.Position) < cfg.Tower.BaseRadius {
			found = tower.ID
		}
	})
	return found
}

// tallestTowerExcept returns the tallest tower by TopAltitude (§4.9's same
// notion of "top" used by king arbitration) other than except, and its
// formation-order index, ties broken by first-encountered order.
func tallestTowerExcept(state *world.State, cfg *config.Config, except world.TowerID) (*world.Tower, int) {
	var best *world.Tower
	bestIdx := -1
	idx := 0
	state.ForEachTowerInOrder(func(tower *world.Tower) {
		defer func() { idx++ }()
		if tower.ID == except {
			return
		}
		if best == nil || tower.TopAltitude(cfg.Stone.Depth) > best.TopAltitude(cfg.Stone.Depth) {
			best = tower
			bestIdx = idx
		}
	})
	return best, bestIdx
}

func advanceSequences(state *world.State, cfg *config.Config, now time.Time, events *[]Event) {
	state.ForEachSequence(func(seq *world.DestructionSequence) {
		cloud := state.Cloud(seq.CloudID)
		if cloud == nil {
			state.EndSequence(seq.CloudID)
			return
		}

		elapsed := now.Sub(seq.StartTime)

		switch seq.Phase {
		case world.PhaseMoving:
			if elapsed >= seq.MovingFor {
				cloud.Position.X = seq.TowerPosition.X
				cloud.Position.Z = seq.TowerPosition.Z
				seq.Phase = world.PhaseRaining
				seq.StartTime = now
				*events = append(*events, TowerUpdateDestruction{
					CloudID: cloud.ID, TowerID: seq.TowerID, Phase: world.PhaseRaining,
				})
				return
			}
			t := float32(elapsed) / float32(seq.MovingFor)
			cloud.Position.X = seq.StartPosition.X + (seq.TowerPosition.X-seq.StartPosition.X)*t
			cloud.Position.Z = seq.StartPosition.Z + (seq.TowerPosition.Z-seq.StartPosition.Z)*t
			*events = append(*events, CloudUpdate{Clouds: []world.Cloud{*cloud}})

		case world.PhaseRaining:
			if elapsed >= seq.RainingFor {
				seq.Phase = world.PhaseFlooding
				seq.StartTime = now
				*events = append(*events, TowerUpdateDestruction{
					CloudID: cloud.ID, TowerID: seq.TowerID, Phase: world.PhaseFlooding,
				})
			}

		case world.PhaseFlooding:
			if elapsed >= seq.FloodingFor {
				idx := state.RemoveTower(seq.TowerID)
				*events = append(*events, TowerDestroy{TowerIndex: idx})
				state.EndSequence(seq.CloudID)

				half := cfg.World.Size
				path := world.ReturnPath{
					CloudID:       cloud.ID,
					StartPosition: cloud.Position,
					EndPosition: world.Vector3{
						X: (rand.Float32()*2 - 1) * half / 3,
						Y: cfg.World.CloudHeight,
						Z: (rand.Float32()*2 - 1) * half / 3,
					},
					StartTime: now,
					Duration:  returnPathDuration,
				}
				state.StartReturnPath(&path)
			}
		}
	})
}

func advanceReturnPath(state *world.State, cloud *world.Cloud, path *world.ReturnPath, now time.Time) {
	elapsed := now.Sub(path.StartTime)
	if elapsed >= path.Duration {
		cloud.Position = path.EndPosition
		state.EndReturnPath(cloud.ID)
		return
	}

	t := float32(elapsed) / float32(path.Duration)
	cloud.Position = path.StartPosition.Add(path.EndPosition.Sub(path.StartPosition).Mul(t))
}
