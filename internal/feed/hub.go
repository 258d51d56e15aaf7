// Package feed streams per-turn decisions to websocket viewers.
package feed

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Event types sent to viewers.
const (
	EventConnected    = "connected"
	EventMatchStarted = "match_started"
	EventTurnDecided  = "turn_decided"
	EventMatchEnded   = "match_ended"
	EventError        = "error"
)

// Event is the envelope for all feed messages.
type Event struct {
	Type    string `json:"type"`
	MatchID string `json:"match_id"`
	Data    any    `json:"data"`
}

// ClientMessage is the envelope for messages sent by a viewer.
type ClientMessage struct {
	Action  string `json:"action"` // "subscribe" or "unsubscribe"
	MatchID string `json:"match_id"`
}

// Viewer wraps a websocket connection with its identity and allowed match.
type Viewer struct {
	conn     *websocket.Conn
	viewerID string
	canView  func(matchID string) bool
	send     chan []byte
}

// Hub manages viewer connections and match subscriptions.
type Hub struct {
	mu      sync.RWMutex
	viewers map[*Viewer]bool
	matches map[string]map[*Viewer]bool // matchID -> subscribers
	latest  map[string][]byte           // matchID -> last turn event
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		viewers: make(map[*Viewer]bool),
		matches: make(map[string]map[*Viewer]bool),
		latest:  make(map[string][]byte),
	}
}

// Register adds a viewer to the hub.
func (h *Hub) Register(v *Viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewers[v] = true
}

// Unregister removes a viewer and all its subscriptions.
func (h *Hub) Unregister(v *Viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.viewers[v] {
		return
	}
	delete(h.viewers, v)
	for matchID, subs := range h.matches {
		delete(subs, v)
		if len(subs) == 0 {
			delete(h.matches, matchID)
		}
	}
	close(v.send)
}

// Subscribe adds a viewer to a match and replays the match's latest turn.
// It reports false when the viewer's token does not cover the match.
func (h *Hub) Subscribe(v *Viewer, matchID string) bool {
	if v.canView != nil && !v.canView(matchID) {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.matches[matchID] == nil {
		h.matches[matchID] = make(map[*Viewer]bool)
	}
	h.matches[matchID][v] = true
	if data, ok := h.latest[matchID]; ok {
		select {
		case v.send <- data:
		default:
		}
	}
	return true
}

// Unsubscribe removes a viewer from a match.
func (h *Hub) Unsubscribe(v *Viewer, matchID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.matches[matchID]; ok {
		delete(subs, v)
		if len(subs) == 0 {
			delete(h.matches, matchID)
		}
	}
}

// Broadcast sends an event to every subscriber of a match without blocking.
// Slow viewers whose buffers are full miss the event.
func (h *Hub) Broadcast(matchID string, event Event) {
	event.MatchID = matchID
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("matchId", matchID).Msg("Failed to marshal feed event")
		return
	}

	h.mu.Lock()
	switch event.Type {
	case EventTurnDecided:
		h.latest[matchID] = data
	case EventMatchEnded:
		delete(h.latest, matchID)
	}
	h.mu.Unlock()

	h.mu.RLock()
	defer h.mu.RUnlock()
	for v := range h.matches[matchID] {
		select {
		case v.send <- data:
		default:
			log.Warn().Str("viewerId", v.viewerID).Str("matchId", matchID).Msg("Dropping feed event, buffer full")
		}
	}
}

// ViewerCount returns the number of connected viewers.
func (h *Hub) ViewerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// SubscriberCount returns the number of viewers subscribed to a match.
func (h *Hub) SubscriberCount(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.matches[matchID])
}
