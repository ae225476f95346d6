// Package hub implements the single-goroutine event loop that owns World
// State, dispatches inbound client messages, advances the fixed-rate
// physics-and-rules tick, and fans out the resulting broadcasts — C7/C8/C9
// from spec.md §2. It is adapted from mk48's server/hub.go, generalized
// from mk48's per-ship-spawn model to this spec's join-by-message model.
package hub

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/chewxy/math32"
	"github.com/rs/zerolog/log"

	"tidekeep/internal/config"
	"tidekeep/internal/metrics"
	"tidekeep/internal/protocol"
	"tidekeep/internal/report"
	"tidekeep/internal/sim"
	"tidekeep/internal/world"
)

const (
	tickPeriod  = time.Second / 60
	debugPeriod = 5 * time.Second

	maxConnsPerIP = 10
)

type signedInbound struct {
	client  Client
	message protocol.Inbound
}

// Hub maintains the set of active clients and owns the single World State
// instance, mirroring mk48's Hub but keyed on this spec's session model.
type Hub struct {
	cfg   *config.Config
	state *world.State
	tick  *sim.Ticker

	clients ClientList

	metrics  *metrics.Metrics
	reporter report.Reporter

	ipMu    sync.RWMutex
	ipConns map[string]int

	inbound    chan signedInbound
	register   chan Client
	unregister chan Client
	shutdown   chan chan struct{}

	updateTicker *time.Ticker
	debugTicker  *time.Ticker
}

func New(cfg *config.Config, m *metrics.Metrics, reporter report.Reporter) *Hub {
	terrain := world.NewTerrain(
		cfg.World.Size, 128,
		cfg.World.TerrainXScale, cfg.World.TerrainYScale,
		cfg.World.MaxTerrainHeight, cfg.World.MinTerrainHeight, cfg.World.EdgeFalloff,
	)
	state := world.NewState(terrain)
	seedClouds(state, cfg)

	return &Hub{
		cfg:          cfg,
		state:        state,
		tick:         sim.NewTicker(cfg),
		metrics:      m,
		reporter:     reporter,
		ipConns:      make(map[string]int),
		inbound:      make(chan signedInbound, 256),
		register:     make(chan Client, 16),
		unregister:   make(chan Client, 16),
		shutdown:     make(chan chan struct{}),
		updateTicker: time.NewTicker(tickPeriod),
		debugTicker:  time.NewTicker(debugPeriod),
	}
}

func seedClouds(state *world.State, cfg *config.Config) {
	const cloudCount = 3
	radius := cfg.World.Size / 4
	for i := 0; i < cloudCount; i++ {
		angle := float32(i) * (math32.Pi * 2 / cloudCount)
		dx, dz := math32.Cos(angle), math32.Sin(angle)
		c := world.Cloud{
			ID:        world.NewCloudID(),
			Position:  world.Vector3{X: dx * radius, Y: cfg.World.CloudHeight, Z: dz * radius},
			Direction: world.Vector3{X: dx, Y: 0, Z: dz},
			Speed:     1.0,
		}
		state.AddCloud(&c)
	}
}

// Run blocks, processing registrations, inbound messages, and timer events
// on a single goroutine, until Shutdown is called; it returns after
// draining the clients. Callers run it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients.Add(client)
			client.Data().Hub = h
			client.Init()
			h.metrics.ActiveConnections.Inc()

		case client := <-h.unregister:
			client.Close()
			data := client.Data()
			if data.SessionID != "" {
				var events []sim.Event
				sim.Disconnect(h.state, data.SessionID, time.Now(), &events)
				h.broadcastAll(events, nil)
			}
			data.Hub = nil
			h.clients.Remove(client)
			h.metrics.ActiveConnections.Dec()
			h.releaseIP(client)

		case in := <-h.inbound:
			n := len(h.inbound) + 1
			for i := 0; i < n; i++ {
				if i > 0 {
					in = <-h.inbound
				}
				h.dispatch(in)
			}

		case now := <-h.updateTicker.C:
			start := time.Now()
			dt := float32(tickPeriod) / float32(time.Second)
			events := h.tick.Tick(h.state, now, dt)
			h.broadcastAll(events, nil)
			h.metrics.TickDuration.Observe(time.Since(start).Seconds())
			h.metrics.ActiveStones.Set(float64(h.state.StoneCount()))
			h.metrics.ActiveTowers.Set(float64(h.state.TowerCount()))
			h.metrics.ActiveClouds.Set(float64(h.state.CloudCount()))
			for _, e := range events {
				switch e.(type) {
				case sim.TowerDestroy:
					h.metrics.TowersDestroyed.Inc()
				case sim.KingUpdate:
					h.metrics.KingChanges.Inc()
				}
			}

		case <-h.debugTicker.C:
			h.reporter.Report(report.Snapshot{
				Players: h.state.SessionCount(),
				Towers:  h.state.TowerCount(),
				Stones:  h.state.StoneCount(),
			})

		case done := <-h.shutdown:
			h.drainClients()
			close(done)
			return
		}
	}
}

// Shutdown drains every connected client (sending a close frame via each
// Client's Close) and stops Run, per SPEC_FULL.md §4's graceful shutdown.
// Blocks until the drain completes; safe to call from any goroutine.
func (h *Hub) Shutdown() {
	done := make(chan struct{})
	h.shutdown <- done
	<-done
}

func (h *Hub) drainClients() {
	for c := h.clients.First; c != nil; c = c.Data().Next {
		c.Close()
	}
}

// dispatch processes one inbound message, special-casing player_join (to
// bind the connection's SessionID) and request_state (single-recipient
// reply), per SPEC_FULL.md §5's resolved join protocol.
func (h *Hub) dispatch(in signedInbound) {
	data := in.client.Data()

	switch msg := in.message.(type) {
	case *protocol.PlayerJoin:
		if data.SessionID != "" {
			log.Warn().Msg("player_join: connection already has a session")
			return
		}
		msg.Process(h.dispatcherFor(in.client), "")
		if h.state.Session(msg.PlayerID) != nil {
			data.SessionID = msg.PlayerID
		}

	case *protocol.RequestState:
		in.client.Send(protocol.BuildInitialState(h.state))

	default:
		if data.SessionID == "" {
			log.Debug().Msg("message from connection with no session, ignoring")
			return
		}
		in.message.Process(h.dispatcherFor(in.client), string(data.SessionID))
	}
}

// broadcastAll translates and fans events out to every connected client
// except, if non-nil, the excluded one (used for "broadcast to others").
func (h *Hub) broadcastAll(events []sim.Event, except Client) {
	for _, e := range events {
		out := protocol.Translate(e)
		if out == nil {
			continue
		}
		for c := h.clients.First; c != nil; c = c.Data().Next {
			if c == except {
				continue
			}
			c.Send(out)
		}
	}
}

func (h *Hub) releaseIP(client Client) {
	sc, ok := client.(*SocketClient)
	if !ok || sc.ip == "" {
		return
	}
	h.ipMu.Lock()
	defer h.ipMu.Unlock()
	if h.ipConns[sc.ip] <= 1 {
		delete(h.ipConns, sc.ip)
	} else {
		h.ipConns[sc.ip]--
	}
}

// ServeSocket upgrades an HTTP connection to a WebSocket client and
// registers it, mirroring mk48's server/http.go ServeSocket including its
// per-IP connection cap.
func (h *Hub) ServeSocket(w http.ResponseWriter, r *http.Request) {
	ipStr := clientIP(r)

	if ipStr != "" {
		h.ipMu.RLock()
		count := h.ipConns[ipStr]
		h.ipMu.RUnlock()
		if count >= maxConnsPerIP {
			http.Error(w, "too many connections", http.StatusTooManyRequests)
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("websocket upgrade error")
		return
	}

	if ipStr != "" {
		h.ipMu.Lock()
		h.ipConns[ipStr]++
		h.ipMu.Unlock()
	}

	h.register <- NewSocketClient(conn, ipStr)
}

func clientIP(r *http.Request) string {
	raw := r.Header.Get("X-Forwarded-For")
	if ip := net.ParseIP(raw); ip != nil {
		return ip.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// dispatcher implements protocol.Dispatcher, binding one inbound message's
// excluded client (so Emit can broadcast to everyone else) to the Hub's
// state and config.
type dispatcher struct {
	hub    *Hub
	except Client
}

func (h *Hub) dispatcherFor(except Client) dispatcher {
	return dispatcher{hub: h, except: except}
}

func (d dispatcher) State() *world.State      { return d.hub.state }
func (d dispatcher) Config() *config.Config   { return d.hub.cfg }
func (d dispatcher) Now() time.Time           { return time.Now() }
func (d dispatcher) Emit(events []sim.Event)  { d.hub.broadcastAll(events, d.except) }

// StatusJSON returns a small debug snapshot for the /status endpoint
// (SPEC_FULL.md §4 supplemented feature).
func (h *Hub) StatusJSON() map[string]interface{} {
	return map[string]interface{}{
		"players": h.state.SessionCount(),
		"stones":  h.state.StoneCount(),
		"towers":  h.state.TowerCount(),
		"clouds":  h.state.CloudCount(),
	}
}
