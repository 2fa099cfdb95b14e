package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"digital.vasic.storefront/pkg/logging"
)

// writeWait bounds how long a broadcast waits on one client.
const writeWait = 5 * time.Second

// Server exposes live run events over WebSocket plus a JSON
// dashboard snapshot endpoint.
type Server struct {
	mu        sync.Mutex
	collector *EventCollector
	dashboard *Dashboard
	logger    logging.Logger
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]struct{}
	server    *http.Server
	addr      string
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets the logger.
func WithServerLogger(logger logging.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a monitor server listening on addr.
func NewServer(
	addr string,
	collector *EventCollector,
	dashboard *Dashboard,
	opts ...ServerOption,
) *Server {
	s := &Server{
		addr:      addr,
		collector: collector,
		dashboard: dashboard,
		logger:    logging.NullLogger{},
		clients:   make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			// The dashboard is a local development aid.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler serving /ws, /dashboard and
// /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/dashboard", s.handleDashboard)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// Start begins serving and broadcasting collector events. It
// blocks until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.collector.OnEvent(func(event TestEvent) {
		s.dashboard.UpdateFromEvent(event)
		s.Broadcast(event)
	})

	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.server.Close()
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("monitor server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Broadcast sends an event to every connected client. Clients
// that cannot keep up are dropped.
func (s *Server) Broadcast(event TestEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("marshal event", logging.ErrorField(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.Debug("drop slow client", logging.ErrorField(err))
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", logging.ErrorField(err))
		return
	}

	// New clients get the current dashboard state before any
	// live events.
	snapshot, err := json.Marshal(s.dashboard.Snapshot())
	if err == nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, snapshot); err != nil {
			conn.Close()
			return
		}
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	// Drain the read side to notice disconnects.
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	snapshot := s.dashboard.Snapshot()
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		s.logger.Warn("encode dashboard", logging.ErrorField(err))
	}
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
