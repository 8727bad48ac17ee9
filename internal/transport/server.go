// Package transport is a gorilla/mux + gorilla/websocket + rs/cors
// HTTP front door: the one sanctioned non-driver-goroutine ingress
// point. Remote agents POST their responses here, and the server
// translates them into DistributedAgentResponsePayload-wrapped
// messages pushed onto the simulation's ThreadSafeQueue rather than
// mutating any book or balance directly.
package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/axonsim/exchange-sim/internal/event"
	"github.com/axonsim/exchange-sim/internal/message"
	"github.com/axonsim/exchange-sim/internal/registry"
)

// Server is the transport-thread HTTP/WebSocket front door.
type Server struct {
	router  *mux.Router
	queue   *message.ThreadSafeQueue
	factory *message.Factory
	log     *zap.Logger

	upgrader websocket.Upgrader
	subs     map[event.BookID]*registry.Registry[*websocket.Conn]
}

// New builds a Server that decodes incoming payloads with factory and
// pushes resulting messages onto queue.
func New(queue *message.ThreadSafeQueue, factory *message.Factory, log *zap.Logger) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		queue:    queue,
		factory:  factory,
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		subs:     make(map[event.BookID]*registry.Registry[*websocket.Conn]),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/agents/{agentId}/responses", s.handleAgentResponse).Methods("POST")
	s.router.HandleFunc("/ws/books/{bookId}/trades", s.handleTradeSubscribe)
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Start runs the CORS-wrapped HTTP server on addr. Blocks until the
// server errors; it has no shutdown hook.
func (s *Server) Start(addr string) error {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
	})
	s.log.Info("transport listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, c.Handler(s.router))
}

// agentResponseRequest is the wire shape a remote agent's response
// arrives in: the original payload type/body plus routing metadata the
// kernel needs to build the wrapping message.
type agentResponseRequest struct {
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Occurrence int64           `json:"occurrence"`
	Delay      int64           `json:"delay"`
}

func (s *Server) handleAgentResponse(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.NewString()
	vars := mux.Vars(r)
	agentIDStr := vars["agentId"]

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	var req agentResponseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON request")
		return
	}

	inner, err := s.factory.Decode(req.Type, req.Payload)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var agentID event.AgentID
	if _, err := parseInt(agentIDStr, &agentID); err != nil {
		respondError(w, http.StatusBadRequest, "invalid agentId")
		return
	}

	wrapped := &message.DistributedAgentResponsePayload{AgentID: agentID, Inner: inner}
	msg := message.New(req.Occurrence, req.Delay, message.ExchangeTarget, message.ExchangeTarget, wrapped.PayloadType(), wrapped)

	s.queue.Push(message.NewPrioritizedMessage(msg))
	s.log.Debug("queued distributed agent response",
		zap.String("traceId", traceID), zap.Int64("agentId", int64(agentID)), zap.String("type", req.Type))

	respondJSON(w, map[string]string{"status": "queued"})
}

func (s *Server) handleTradeSubscribe(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var bookID event.BookID
	if _, err := parseInt(vars["bookId"], &bookID); err != nil {
		http.Error(w, "invalid bookId", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	reg, ok := s.subs[bookID]
	if !ok {
		reg = registry.New[*websocket.Conn]()
		s.subs[bookID] = reg
	}
	reg.Add(conn)
}

// BroadcastTrade pushes a trade event to every connection subscribed
// to its book.
func (s *Server) BroadcastTrade(bookID event.BookID, trade event.Trade) {
	reg, ok := s.subs[bookID]
	if !ok {
		return
	}
	for _, conn := range reg.Subs() {
		if err := conn.WriteJSON(trade); err != nil {
			s.log.Warn("websocket write failed", zap.Error(err))
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
