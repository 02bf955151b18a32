package decisionserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/nlhe/decisionengine/internal/policy"
)

// Server exposes PolicyEngine.Decide over a WebSocket control channel: a
// bot connects, posts state_update frames describing the hand it's facing,
// and reads back decision frames. It holds no game/table orchestration of
// its own -- callers own the game loop and only ask this server "what
// would the engine do here", the "network table-state acquisition"
// collaborator the decision engine itself stays independent of.
type Server struct {
	engine   *policy.Engine
	logger   *log.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
	http     *http.Server
}

// NewServer builds a Server around a shared PolicyEngine. logger is
// prefixed per connection the same way internal/server does.
func NewServer(engine *policy.Engine, logger *log.Logger) *Server {
	s := &Server{
		engine: engine,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/health", s.handleHealth)
	return s
}

// ListenAndServe binds addr and blocks until the server stops or ctx is
// canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.http = &http.Server{Addr: addr, Handler: s.mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return s.http.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		return
	}
	c := NewConnection(conn, s.engine, s.logger)
	c.Start()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
