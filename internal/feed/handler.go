package feed

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/samurai/internal/auth"
	"github.com/freeeve/samurai/internal/logger"
	"github.com/freeeve/samurai/internal/middleware"
	"github.com/freeeve/samurai/internal/model"
	"github.com/freeeve/samurai/internal/repository"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = 54 * time.Second // Must be less than pongWait
	maxMsgSize  = 4096
	sendBufSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // tokens gate access, not origins
	},
}

// Handler upgrades viewer connections.
type Handler struct {
	hub    *Hub
	jwtMgr *auth.JWTManager
}

// NewHandler creates a Handler.
func NewHandler(hub *Hub, jwtMgr *auth.JWTManager) *Handler {
	return &Handler{hub: hub, jwtMgr: jwtMgr}
}

// ServeWS handles GET /feed. Auth via ?token=; an optional ?match= subscribes
// immediately.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	claims, err := h.jwtMgr.ValidateToken(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusUnauthorized)
		return
	}
	matchID := r.URL.Query().Get("match")
	if matchID != "" && !claims.CanView(matchID) {
		http.Error(w, `{"error":"token does not cover this match"}`, http.StatusForbidden)
		return
	}

	l := logger.FromContext(logger.WithMatchID(r.Context(), matchID))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	v := &Viewer{
		conn:     conn,
		viewerID: claims.ViewerID,
		canView:  claims.CanView,
		send:     make(chan []byte, sendBufSize),
	}
	h.hub.Register(v)

	welcome, _ := json.Marshal(Event{Type: EventConnected, Data: map[string]any{"viewer_id": claims.ViewerID}})
	v.send <- welcome
	if matchID != "" {
		h.hub.Subscribe(v, matchID)
	}

	go h.writePump(v)
	go h.readPump(v)

	l.Info().Str("viewerId", claims.ViewerID).Int("total", h.hub.ViewerCount()).Msg("Feed viewer connected")
}

func (h *Handler) readPump(v *Viewer) {
	defer func() {
		h.hub.Unregister(v)
		v.conn.Close()
		log.Info().Str("viewerId", v.viewerID).Msg("Feed viewer disconnected")
	}()

	v.conn.SetReadLimit(maxMsgSize)
	v.conn.SetReadDeadline(time.Now().Add(pongWait))
	v.conn.SetPongHandler(func(string) error {
		v.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := v.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("viewerId", v.viewerID).Msg("Feed viewer unexpected close")
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil || msg.MatchID == "" {
			continue
		}

		switch msg.Action {
		case "subscribe":
			if !h.hub.Subscribe(v, msg.MatchID) {
				h.reject(v, msg.MatchID)
			}
		case "unsubscribe":
			h.hub.Unsubscribe(v, msg.MatchID)
		}
	}
}

func (h *Handler) reject(v *Viewer, matchID string) {
	data, _ := json.Marshal(Event{Type: EventError, MatchID: matchID, Data: map[string]any{"error": "forbidden"}})
	select {
	case v.send <- data:
	default:
	}
}

func (h *Handler) writePump(v *Viewer) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		v.conn.Close()
	}()

	for {
		select {
		case message, ok := <-v.send:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				v.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := v.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// History serves a match's journaled turns as JSON.
type History struct {
	reader repository.TurnReader
	jwtMgr *auth.JWTManager
}

// NewHistory creates a History handler.
func NewHistory(reader repository.TurnReader, jwtMgr *auth.JWTManager) *History {
	return &History{reader: reader, jwtMgr: jwtMgr}
}

// ServeTurns handles GET /matches/{id}/turns. Auth via ?token=.
func (h *History) ServeTurns(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	matchID := r.PathValue("id")
	claims, err := h.jwtMgr.ValidateToken(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusUnauthorized)
		return
	}
	if !claims.CanView(matchID) {
		http.Error(w, `{"error":"token does not cover this match"}`, http.StatusForbidden)
		return
	}

	ctx := logger.WithMatchID(r.Context(), matchID)
	turns, err := h.reader.ListByMatch(ctx, matchID)
	if err != nil {
		l := logger.FromContext(ctx)
		l.Error().Err(err).Msg("Failed to list turns")
		http.Error(w, `{"error":"history unavailable"}`, http.StatusInternalServerError)
		return
	}
	if turns == nil {
		turns = []model.TurnRecord{}
	}
	json.NewEncoder(w).Encode(turns)
}

// NewServer builds the feed HTTP server with /feed and /healthz routes, plus
// /matches/{id}/turns when history is non-nil.
func NewServer(addr string, hub *Hub, jwtMgr *auth.JWTManager, history repository.TurnReader) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("GET /feed", NewHandler(hub, jwtMgr).ServeWS)
	if history != nil {
		mux.HandleFunc("GET /matches/{id}/turns", NewHistory(history, jwtMgr).ServeTurns)
	}

	return &http.Server{
		Addr:        addr,
		Handler:     middleware.Chain(mux, middleware.Logger(logger.Get()), middleware.CORS("*")),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
}
