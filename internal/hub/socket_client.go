// SPDX-License-Identifier: MIT

package hub

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"tidekeep/internal/protocol"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// outboundQueueSize bounds the per-connection outbound queue per
	// spec.md §5: slow consumers drop or close rather than block the tick.
	outboundQueueSize = 32
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// SocketClient is a middleman between the websocket connection and the hub,
// adapted from mk48's server/socket_client.go.
type SocketClient struct {
	ClientData
	conn *websocket.Conn
	ip   string
	send chan interface{}
	once sync.Once
}

func NewSocketClient(conn *websocket.Conn, ip string) *SocketClient {
	return &SocketClient{
		conn: conn,
		ip:   ip,
		send: make(chan interface{}, outboundQueueSize),
	}
}

func (c *SocketClient) Close() { close(c.send) }

func (c *SocketClient) Data() *ClientData { return &c.ClientData }

func (c *SocketClient) Destroy() {
	c.once.Do(func() {
		hub := c.Hub
		if hub != nil {
			select {
			case hub.unregister <- c:
			default:
				go func() { hub.unregister <- c }()
			}
		}
		_ = c.conn.Close()
	})
}

func (c *SocketClient) Init() {
	go c.writePump()
	go c.readPump()
}

func (c *SocketClient) Send(out interface{}) {
	select {
	case c.send <- out:
	default:
		// Not responsive; spec.md §5 says drop-or-close on overflow.
		c.Destroy()
	}
}

func (c *SocketClient) readPump() {
	defer c.Destroy()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Str("ip", c.ip).Msg("websocket close error")
			}
			break
		}

		in, err := protocol.DecodeInbound(raw)
		if err != nil {
			// Malformed message per spec.md §7: log and drop, keep the
			// connection open.
			log.Debug().Err(err).Msg("malformed inbound message")
			continue
		}

		hub := c.Hub
		if hub == nil {
			continue
		}
		hub.inbound <- signedInbound{client: c, message: in}
	}
}

func (c *SocketClient) writePump() {
	pingTicker := time.NewTicker(pingPeriod)
	defer func() {
		pingTicker.Stop()
		c.Destroy()
	}()

	for {
		select {
		case out, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}

			raw, err := protocol.EncodeOutbound(out)
			if err != nil {
				log.Error().Err(err).Msg("encode outbound error")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-pingTicker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
