// Package server assembles the almapacd HTTP surface: the demonstration API routes
// behind the gateway middleware, logout, health and the metrics endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	gateway "github.com/AdolfoCB/almapac-gateway"
	"github.com/AdolfoCB/almapac-gateway/internal/db"
	"github.com/AdolfoCB/almapac-gateway/middleware"
	"github.com/AdolfoCB/almapac-gateway/permission"
	"github.com/AdolfoCB/almapac-gateway/response"
)

// Role ids known to the API.
const (
	RoleAdministrador = 1
	RoleMuellero      = 2
	RoleOperaciones   = 4
)

// RoleCatalog returns the frozen catalog of roles routes may reference.
func RoleCatalog() *permission.Catalog {
	c := permission.NewCatalog()
	for id, name := range map[int]string{
		RoleAdministrador: "ADMINISTRADOR",
		RoleMuellero:      "MUELLERO",
		RoleOperaciones:   "OPERACIONES",
	} {
		if err := c.Register(id, name); err != nil {
			panic(err)
		}
	}
	c.Freeze()
	return c
}

const (
	MsgSessionEnded     = "Sesión finalizada"
	MsgAllSessionsEnded = "Sesiones finalizadas en todos los dispositivos"
)

// Barcos is the read side of the vessel registry.
type Barcos interface {
	ListBarcos(ctx context.Context) ([]db.Barco, error)
	GetBarco(ctx context.Context, id uint) (db.Barco, error)
}

type Options struct {
	Gateway *gateway.Gateway
	Barcos  Barcos
	// Metrics is served at GET /metrics when non-nil.
	Metrics http.Handler
	Logger  *slog.Logger
}

// Server routes requests. The zero value is not usable; use New.
type Server struct {
	gw      *gateway.Gateway
	barcos  Barcos
	metrics http.Handler
	log     *slog.Logger
	roles   *permission.Catalog
	handler http.Handler
}

func New(opts Options) (*Server, error) {
	if opts.Gateway == nil {
		return nil, errors.New("server: gateway is required")
	}
	if opts.Barcos == nil {
		return nil, errors.New("server: barcos repository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		gw:      opts.Gateway,
		barcos:  opts.Barcos,
		metrics: opts.Metrics,
		log:     logger,
		roles:   RoleCatalog(),
	}

	readAllow, err := s.roles.Set(RoleAdministrador, RoleOperaciones)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	readers := middleware.RequireSet(s.gw, readAllow)

	mux := http.NewServeMux()
	mux.Handle("GET /api/session", middleware.RequireAuthenticated(s.gw)(http.HandlerFunc(s.handleSession)))
	mux.Handle("GET /api/barcos", readers(http.HandlerFunc(s.handleListBarcos)))
	mux.Handle("GET /api/barcos/{id}", readers(http.HandlerFunc(s.handleGetBarco)))
	mux.HandleFunc("POST /api/logout", s.handleLogout)
	mux.Handle("POST /api/logout/all", middleware.RequireAuthenticated(s.gw)(http.HandlerFunc(s.handleLogoutAll)))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		_ = response.Write(w, response.NotFound())
	})

	s.handler = middleware.Recover(logger)(logRequests(logger, mux))
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	id, _ := gateway.IdentityFromContext(r.Context())
	if id.RoleName == "" {
		id.RoleName, _ = s.roles.Name(id.RoleID)
	}
	_ = response.Write(w, response.OK(id))
}

func (s *Server) handleListBarcos(w http.ResponseWriter, r *http.Request) {
	barcos, err := s.barcos.ListBarcos(r.Context())
	if err != nil {
		s.gw.Respond(w, err)
		return
	}
	_ = response.Write(w, response.OK(barcos))
}

func (s *Server) handleGetBarco(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id == 0 {
		_ = response.Write(w, response.BadRequest(response.WithError("id", "Identificador inválido")))
		return
	}
	barco, err := s.barcos.GetBarco(r.Context(), uint(id))
	if err != nil {
		s.gw.Respond(w, err)
		return
	}
	_ = response.Write(w, response.OK(barco))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := s.gw.EndSession(r.Context(), r)
	if err != nil {
		s.log.WarnContext(r.Context(), "logout failed", "event", "logout_failed", "error", err)
		_ = response.Write(w, response.ServiceUnavailable())
		return
	}
	http.SetCookie(w, cookie)
	_ = response.Write(w, response.OK(nil, response.WithMessage(MsgSessionEnded)))
}

func (s *Server) handleLogoutAll(w http.ResponseWriter, r *http.Request) {
	cookie, n, err := s.gw.EndAllSessions(r.Context(), r)
	if err != nil {
		s.log.WarnContext(r.Context(), "logout all failed", "event", "logout_all_failed", "error", err)
		_ = response.Write(w, response.ServiceUnavailable())
		return
	}
	http.SetCookie(w, cookie)
	_ = response.Write(w, response.OK(map[string]int{"sesiones": n}, response.WithMessage(MsgAllSessionsEnded)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	latency, err := s.gw.Ping(r.Context())
	if err != nil {
		s.log.WarnContext(r.Context(), "health check failed", "event", "health_failed", "error", err)
		_ = response.Write(w, response.ServiceUnavailable())
		return
	}
	_ = response.Write(w, response.OK(map[string]any{"redisLatencyMs": latency.Milliseconds()}))
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout. Requests in flight when ctx is cancelled keep
// running until they finish or the timeout expires.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger, shutdownTimeout time.Duration) error {
	sock, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return Serve(ctx, sock, handler, logger, shutdownTimeout)
}

// Serve is ListenAndServe over an existing listener. It closes sock.
func Serve(ctx context.Context, sock net.Listener, handler http.Handler, logger *slog.Logger, shutdownTimeout time.Duration) error {
	if logger == nil {
		logger = slog.Default()
	}

	srv := &http.Server{
		Handler:           handler,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "listening", "event", "http_listening", "addr", sock.Addr().String())
		errCh <- srv.Serve(sock)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
