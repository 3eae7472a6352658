// pattern: Imperative Shell

package touch

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"splitkit/internal/logging"
)

//go:embed static
var staticFiles embed.FS

// Config holds the bridge's listen address.
type Config struct {
	Bind string
	Port int
}

// Server accepts touch surfaces on /touch and forwards their events to the
// host program through notify, typically tea.Program.Send.
type Server struct {
	httpServer *http.Server
	notify     func(any)
	state      func() State
	logger     *logging.ScopedLogger
	addr       string
	listener   net.Listener
	nextConn   atomic.Int64
}

// New creates a bridge. state may be nil, in which case /api/state serves
// an empty State.
func New(cfg Config, notify func(any), state func() State, logProvider logging.LoggerProvider) *Server {
	if notify == nil {
		notify = func(any) {}
	}
	if state == nil {
		state = func() State { return State{} }
	}

	s := &Server{
		notify: notify,
		state:  state,
		logger: logProvider.For("touch"),
		addr:   fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /touch", s.handleTouch)
	mux.Handle("GET /", s.staticHandler())

	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) staticHandler() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		s.logger.Error("failed to open embedded touch page", "error", err)
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(sub))
}

// Listen binds the configured address. Call Serve with the listener;
// splitting the two lets callers read the bound address for port 0.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, fmt.Errorf("touch bridge listen: %w", err)
	}
	s.listener = ln
	return ln, nil
}

// Serve accepts connections until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("touch bridge started", "addr", ln.Addr().String())
	err := s.httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Addr returns the bound address after Listen, the configured one before.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("touch bridge shutting down")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state())
}

// handleTouch streams pointer events from one surface. A socket that goes
// away with its pointer still down is reported as a cancel, so the host
// never keeps a drag alive for a surface that is gone.
func (s *Server) handleTouch(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"127.0.0.1:*", "localhost:*"},
	})
	if err != nil {
		s.logger.Error("websocket accept failed", "error", err)
		return
	}
	defer func() { _ = conn.CloseNow() }()
	conn.SetReadLimit(4096)

	id := int(s.nextConn.Add(1))
	logger := s.logger.With("conn", id)
	s.notify(ConnMsg{Conn: id, Remote: r.RemoteAddr, Connected: true})
	logger.Info("touch surface connected", "remote", r.RemoteAddr)

	ctx := context.Background()
	down := false
	var last PointerEvent
	for {
		var ev PointerEvent
		if err := wsjson.Read(ctx, conn, &ev); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				logger.Debug("touch read ended", "error", err)
			}
			break
		}
		if err := ev.Validate(); err != nil {
			logger.Warn("touch event rejected", "error", err)
			continue
		}

		switch ev.Phase {
		case PhaseDown:
			down = true
		case PhaseUp, PhaseCancel:
			down = false
		}
		last = ev
		s.notify(PointerMsg{Conn: id, Event: ev})
	}

	if down {
		logger.Info("touch surface lost mid-gesture, cancelling")
		s.notify(PointerMsg{Conn: id, Event: PointerEvent{Phase: PhaseCancel, X: last.X, Y: last.Y, Normalized: last.Normalized}})
	}
	s.notify(ConnMsg{Conn: id, Remote: r.RemoteAddr, Connected: false})
	logger.Info("touch surface disconnected")
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
