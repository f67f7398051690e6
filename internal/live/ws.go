package live

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/matchday-hq/matchday-service/internal/service"
	"github.com/matchday-hq/matchday-service/pkg/response"
)

const (
	writeDeadline = 5 * time.Second
	pongWait      = 30 * time.Second
	pingInterval  = 20 * time.Second
)

var upgrader = websocket.Upgrader{
	// Spectator streams are read-only and unauthenticated; origin checks
	// belong to the fronting proxy.
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// WSHandler upgrades spectator requests and streams committed snapshots.
type WSHandler struct {
	hub   *Hub
	games service.GameService
	log   zerolog.Logger
}

func NewWSHandler(hub *Hub, games service.GameService, logger zerolog.Logger) *WSHandler {
	return &WSHandler{hub: hub, games: games, log: logger.With().Str("module", "live").Str("component", "ws").Logger()}
}

// Serve handles GET /api/v1/games/:id/live. The current snapshot is sent
// first so a spectator joining mid-game sees state immediately, then every
// committed change follows.
func (h *WSHandler) Serve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be a valid integer"}}))
		return
	}

	// Resolve before upgrading so a bad id stays a plain HTTP error.
	game, err := h.games.GetGame(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Int64("game_id", id).Msg("websocket upgrade failed")
		return
	}

	sub := h.hub.Subscribe(id)
	h.log.Info().Int64("game_id", id).Msg("spectator connected")

	done := make(chan struct{})
	go h.readPump(conn, done)
	h.writePump(conn, sub, game, done)
}

// writePump owns the connection: it sends the initial snapshot, drains the
// subscription, and on exit unsubscribes and closes the socket.
func (h *WSHandler) writePump(conn *websocket.Conn, sub *Subscriber, initial interface{}, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		h.hub.Unsubscribe(sub)
		_ = conn.Close()
		h.log.Info().Int64("game_id", sub.gameID).Msg("spectator disconnected")
	}()

	_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	if err := conn.WriteJSON(initial); err != nil {
		return
	}

	for {
		select {
		case msg, ok := <-sub.C():
			if !ok {
				// Dropped by the hub for falling behind.
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-done:
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump keeps the connection alive with pongs and surfaces close frames.
// Spectators send nothing meaningful upstream.
func (h *WSHandler) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
