package protocol

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/rs/zerolog/log"

	"tidekeep/internal/config"
	"tidekeep/internal/sim"
	"tidekeep/internal/world"
)

// Dispatcher is the surface Inbound messages use to reach World State and
// produce events, implemented by internal/hub.Hub. It exists so protocol
// never has to know about hub's channel plumbing.
type Dispatcher interface {
	State() *world.State
	Config() *config.Config
	Now() time.Time
	Emit(events []sim.Event)
}

func angleOf(x, z float32) float32 {
	return math32.Atan2(z, x)
}

func init() {
	registerInbound(
		&PlayerJoin{},
		&PlayerUpdate{},
		&RequestState{},
		&StonePickup{},
		&StoneThrow{},
		&TowerDestack{},
	)
}

// PlayerJoin registers a session per §6/§4.10. A playerId collision with a
// live session is an authority violation (§7): logged and ignored.
type PlayerJoin struct {
	PlayerID world.PlayerID `json:"playerId"`
	Username string         `json:"username"`
	Position world.Vector3  `json:"position"`
	Rotation world.Vector3  `json:"rotation"`
}

func (m *PlayerJoin) Process(d Dispatcher, _ string) {
	state := d.State()
	if state.Session(m.PlayerID) != nil {
		log.Warn().Str("playerId", string(m.PlayerID)).Msg("player_join: playerId already live, ignoring")
		return
	}

	var events []sim.Event
	sim.Join(state, world.Session{
		ID:         m.PlayerID,
		Username:   sanitizeUsername(m.Username),
		Position:   m.Position,
		Rotation:   m.Rotation,
		LastUpdate: d.Now(),
	}, &events)
	d.Emit(events)
}

type PlayerUpdate struct {
	PlayerID   world.PlayerID   `json:"playerId"`
	Position   world.Vector3    `json:"position"`
	Rotation   world.Vector3    `json:"rotation"`
	HeldStones []world.StoneID  `json:"heldStones"`
}

func (m *PlayerUpdate) Process(d Dispatcher, _ string) {
	var events []sim.Event
	if !sim.UpdateSession(d.State(), m.PlayerID, m.Position, m.Rotation, m.HeldStones, d.Now(), &events) {
		log.Debug().Str("playerId", string(m.PlayerID)).Msg("player_update: unknown session")
		return
	}
	d.Emit(events)
}

// RequestState asks for a full initial_state snapshot, sent only to the
// requester (handled by the hub, since only it knows the requesting
// connection).
type RequestState struct{}

func (m *RequestState) Process(_ Dispatcher, _ string) {
	// Handled directly by the hub's inbound dispatch, which has access to
	// the requesting connection; see internal/hub.
}

type StonePickup struct {
	StoneID world.StoneID `json:"stoneId"`
}

func (m *StonePickup) Process(d Dispatcher, sessionID string) {
	var events []sim.Event
	if !sim.Pickup(d.State(), world.PlayerID(sessionID), m.StoneID, &events) {
		log.Debug().Str("stoneId", string(m.StoneID)).Msg("stone_pickup: rejected")
		return
	}
	d.Emit(events)
}

type StoneThrow struct {
	StoneID  world.StoneID `json:"stoneId"`
	Position world.Vector3 `json:"position"`
	Velocity world.Vector3 `json:"velocity"` // direction hint, see §6
}

func (m *StoneThrow) Process(d Dispatcher, sessionID string) {
	// The client supplies a velocity hint; only its horizontal angle is
	// authoritative input, per §4.10's "Compute throw velocity from the
	// client-supplied direction".
	angle := angleOf(m.Velocity.X, m.Velocity.Z)

	var events []sim.Event
	if !sim.Throw(d.State(), world.PlayerID(sessionID), m.StoneID, angle, d.Now(), &events) {
		log.Debug().Str("stoneId", string(m.StoneID)).Msg("stone_throw: rejected")
		return
	}
	d.Emit(events)
}

type TowerDestack struct {
	TowerID world.TowerID `json:"towerId"`
	// Auth is checked against Config.Auth to bypass the base-radius
	// distance check, mirroring mk48's inbound.go authed-bypass pattern
	// (its `-auth` flag relaxes its own restrictions the same way).
	Auth string `json:"auth,omitempty"`
}

func (m *TowerDestack) Process(d Dispatcher, sessionID string) {
	cfg := d.Config()
	authed := cfg.Auth != "" && m.Auth == cfg.Auth

	var events []sim.Event
	if !sim.Destack(d.State(), cfg, world.PlayerID(sessionID), m.TowerID, authed, &events) {
		log.Debug().Str("towerId", string(m.TowerID)).Msg("tower_destack: rejected")
		return
	}
	d.Emit(events)
}
