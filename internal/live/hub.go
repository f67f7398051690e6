// Package live fans out committed game snapshots to websocket spectators.
// The hub is read-only: spectators never send anything upstream, they just
// watch the score and the clock move.
package live

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/matchday-hq/matchday-service/internal/model"
)

const subscriberBuf = 16

// Subscriber receives marshaled snapshots for a single game.
type Subscriber struct {
	gameID int64
	send   chan []byte
}

// C is the stream of committed snapshots, newest last. The channel is closed
// only when the subscriber is dropped for falling behind.
func (s *Subscriber) C() <-chan []byte { return s.send }

// Hub keeps a per-game registry of subscribers. Publish is called on the
// committing goroutine and must never block it, so slow consumers get
// dropped rather than buffered without bound.
type Hub struct {
	mu   sync.Mutex
	subs map[int64]map[*Subscriber]struct{}
	log  zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		subs: make(map[int64]map[*Subscriber]struct{}),
		log:  logger.With().Str("module", "live").Logger(),
	}
}

// Subscribe registers a new spectator for the given game.
func (h *Hub) Subscribe(gameID int64) *Subscriber {
	sub := &Subscriber{gameID: gameID, send: make(chan []byte, subscriberBuf)}
	h.mu.Lock()
	if h.subs[gameID] == nil {
		h.subs[gameID] = make(map[*Subscriber]struct{})
	}
	h.subs[gameID][sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unsubscribe removes the spectator. Safe to call twice.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if set, ok := h.subs[sub.gameID]; ok {
		if _, ok := set[sub]; ok {
			delete(set, sub)
			close(sub.send)
		}
		if len(set) == 0 {
			delete(h.subs, sub.gameID)
		}
	}
	h.mu.Unlock()
}

// Publish fans a committed snapshot out to the game's subscribers. It
// implements service.SnapshotPublisher. Enqueue is non-blocking; a
// subscriber whose buffer is full is disconnected on the spot.
func (h *Hub) Publish(g model.Game) {
	data, err := json.Marshal(g)
	if err != nil {
		h.log.Error().Err(err).Int64("game_id", g.ID).Msg("snapshot marshal failed")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[g.ID] {
		select {
		case sub.send <- data:
		default:
			h.log.Warn().Int64("game_id", g.ID).Msg("dropping slow live subscriber")
			delete(h.subs[g.ID], sub)
			close(sub.send)
		}
	}
	if len(h.subs[g.ID]) == 0 {
		delete(h.subs, g.ID)
	}
}

// SubscriberCount reports how many spectators are watching a game.
func (h *Hub) SubscriberCount(gameID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[gameID])
}
