package protocol

import (
	"tidekeep/internal/sim"
	"tidekeep/internal/world"
)

// Outbound wire structs, one per catalogue entry in spec.md §6. Field
// names carry json tags directly; there is no mk48-style sync.Pool reuse
// since these are small, short-lived values.

type InitialState struct {
	Players []world.Session `json:"players"`
	Towers  []world.Tower   `json:"towers"`
	Stones  []world.Stone   `json:"stones"`
	Clouds  []world.Cloud   `json:"clouds"`
}

type PlayerJoinOut struct {
	PlayerID world.PlayerID `json:"playerId"`
	Username string         `json:"username"`
	Position world.Vector3  `json:"position"`
	Rotation world.Vector3  `json:"rotation"`
}

type PlayerLeaveOut struct {
	PlayerID world.PlayerID `json:"playerId"`
}

type PlayerUpdateOut struct {
	PlayerID   world.PlayerID  `json:"playerId"`
	Position   world.Vector3   `json:"position"`
	Rotation   world.Vector3   `json:"rotation"`
	HeldStones []world.StoneID `json:"heldStones"`
}

type StoneSpawnedOut struct {
	Stone world.Stone `json:"stone"`
}

type StoneUpdateOut struct {
	Stones []world.Stone `json:"stones"`
}

type StonePickupOut struct {
	StoneID  world.StoneID  `json:"stoneId"`
	PlayerID world.PlayerID `json:"playerId"`
	Position world.Vector3  `json:"position"`
}

type StoneThrowOut struct {
	StoneID  world.StoneID  `json:"stoneId"`
	PlayerID world.PlayerID `json:"playerId"`
	Position world.Vector3  `json:"position"`
	Velocity world.Vector3  `json:"velocity"`
}

type TowerCreateOut struct {
	Tower          world.Tower     `json:"tower"`
	ConsumedStones []world.StoneID `json:"consumedStones"`
}

type TowerUpdateOut struct {
	TowerID        world.TowerID   `json:"towerId"`
	NewLevel       int             `json:"newLevel"`
	ConsumedStones []world.StoneID `json:"consumedStones,omitempty"`
	WasDestacked   bool            `json:"wasDestacked,omitempty"`
}

type TowerDestroyOut struct {
	TowerIndex int `json:"towerIndex"`
}

type CloudUpdateOut struct {
	Clouds []world.Cloud `json:"clouds"`
}

type TowerStartDestructionOut struct {
	Sequence world.DestructionSequence `json:"sequence"`
}

type TowerUpdateDestructionOut struct {
	CloudID world.CloudID          `json:"cloudId"`
	TowerID world.TowerID          `json:"towerId"`
	Phase   world.DestructionPhase `json:"phase"`
}

type KingUpdateOut struct {
	KingID *world.PlayerID `json:"kingId"` // null means absent, per §6
}

// Translate converts one internal/sim.Event into its wire-format
// counterpart. The protocol layer owns this mapping so sim never imports
// json tags or wire types (see internal/sim/events.go's package doc).
func Translate(event sim.Event) interface{} {
	switch e := event.(type) {
	case sim.StoneSpawned:
		return StoneSpawnedOut{Stone: e.Stone}
	case sim.StoneUpdate:
		return StoneUpdateOut{Stones: e.Stones}
	case sim.StonePickup:
		return StonePickupOut{StoneID: e.StoneID, PlayerID: e.PlayerID, Position: e.Position}
	case sim.StoneThrow:
		return StoneThrowOut{StoneID: e.StoneID, PlayerID: e.PlayerID, Position: e.Position, Velocity: e.Velocity}
	case sim.TowerCreate:
		return TowerCreateOut{Tower: e.Tower, ConsumedStones: e.ConsumedStones}
	case sim.TowerUpdate:
		return TowerUpdateOut{
			TowerID: e.TowerID, NewLevel: e.NewLevel,
			ConsumedStones: e.ConsumedStones, WasDestacked: e.WasDestacked,
		}
	case sim.TowerDestroy:
		return TowerDestroyOut{TowerIndex: e.TowerIndex}
	case sim.CloudUpdate:
		return CloudUpdateOut{Clouds: e.Clouds}
	case sim.TowerStartDestruction:
		return TowerStartDestructionOut{Sequence: e.Sequence}
	case sim.TowerUpdateDestruction:
		return TowerUpdateDestructionOut{CloudID: e.CloudID, TowerID: e.TowerID, Phase: e.Phase}
	case sim.KingUpdate:
		if e.KingID == "" {
			return KingUpdateOut{KingID: nil}
		}
		id := e.KingID
		return KingUpdateOut{KingID: &id}
	case sim.PlayerJoin:
		return PlayerJoinOut{
			PlayerID: e.Session.ID, Username: e.Session.Username,
			Position: e.Session.Position, Rotation: e.Session.Rotation,
		}
	case sim.PlayerLeave:
		return PlayerLeaveOut{PlayerID: e.PlayerID}
	case sim.PlayerUpdate:
		return PlayerUpdateOut{
			PlayerID: e.Session.ID, Position: e.Session.Position,
			Rotation: e.Session.Rotation, HeldStones: e.Session.HeldStones,
		}
	default:
		return nil
	}
}

// BuildInitialState snapshots World State into the initial_state message
// sent to a single requester, per §6.
func BuildInitialState(state *world.State) InitialState {
	var out InitialState
	state.ForEachSession(func(s *world.Session) { out.Players = append(out.Players, *s) })
	state.ForEachTowerInOrder(func(t *world.Tower) { out.Towers = append(out.Towers, *t) })
	state.ForEachStone(func(s *world.Stone) { out.Stones = append(out.Stones, *s) })
	state.ForEachCloud(func(c *world.Cloud) { out.Clouds = append(out.Clouds, *c) })
	return out
}
