package devtools

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/widgetdom/internal/errors"
	"github.com/vango-dev/widgetdom/pkg/registry"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:7070"

const shutdownTimeout = 5 * time.Second

// Server serves the devtools endpoints.
type Server struct {
	addr     string
	hub      *Hub
	registry *registry.Registry
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithGatherer sets where /metrics reads from. Default:
// prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) ServerOption {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates a devtools server. An empty addr uses DefaultAddr.
func NewServer(addr string, hub *Hub, reg *registry.Registry, opts ...ServerOption) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	s := &Server{
		addr:     addr,
		hub:      hub,
		registry: reg,
		gatherer: prometheus.DefaultGatherer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "devtools")
	return s
}

// TagInfo describes one registered element.
type TagInfo struct {
	Tag      string `json:"tag"`
	Name     string `json:"name"`
	Flags    string `json:"flags"`
	Strategy string `json:"strategy"`
}

// Handler returns the router with every devtools route.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/registry", s.handleRegistry)
	r.Get("/mutations", s.handleMutations)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/ws", s.hub.HandleWebSocket)
	return r
}

func (s *Server) handleRegistry(w http.ResponseWriter, _ *http.Request) {
	entries := s.registry.Entries()
	out := make([]TagInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, TagInfo{
			Tag:      e.Tag,
			Name:     e.Name,
			Flags:    e.Meta.ViewFlags.String(),
			Strategy: e.Strategy.String(),
		})
	}
	s.writeJSON(w, out)
}

func (s *Server) handleMutations(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.hub.History())
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "error", err)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully and
// disconnects WebSocket clients.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.New("W032").WithDetailf("listen on %s", s.addr).Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve is like Run but accepts connections on ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("devtools listening", "addr", ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.New("W032").Wrap(fmt.Errorf("serve: %w", err))
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info("devtools shutting down")

		s.hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("devtools shutdown", "error", err)
		}
		return nil
	})

	return g.Wait()
}
