package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/journal-relay/backend/internal/cargo"
	"github.com/journal-relay/backend/internal/material"
	"github.com/journal-relay/backend/internal/dispatch"
	"github.com/journal-relay/backend/internal/supervise"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// GameProbe reports whether a process with the given name is running.
type GameProbe func(ctx context.Context, name string) (bool, error)

// StatusPayload is served by /api/status.
type StatusPayload struct {
	Game    GameStatus         `json:"game"`
	Tasks   []supervise.Status `json:"tasks"`
	Clients int                `json:"clients"`
}

type GameStatus struct {
	Process string `json:"process"`
	Running bool   `json:"running"`
	Error   string `json:"error,omitempty"`
}

type Server struct {
	log            zerolog.Logger
	broadcaster    *Broadcaster
	registry       *dispatch.Registry
	supervisor     *supervise.Supervisor
	cargo          *cargo.Monitor
	materials      *material.Monitor
	gameProcess    string
	gameProbe      GameProbe
	allowedOrigins map[string]bool
	allowedHosts   map[string]bool
	authToken      string
}

func NewServer(logger zerolog.Logger, broadcaster *Broadcaster, registry *dispatch.Registry, allowedOrigins []string, authToken string) *Server {
	s := &Server{
		log:            logger.With().Str("component", "http").Logger(),
		broadcaster:    broadcaster,
		registry:       registry,
		allowedOrigins: make(map[string]bool),
		allowedHosts:   make(map[string]bool),
		authToken:      authToken,
	}

	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		s.allowedOrigins[trimmed] = true
		if parsed, err := url.Parse(trimmed); err == nil && parsed.Host != "" {
			s.allowedHosts[parsed.Host] = true
		}
	}

	return s
}

// SetSupervisor exposes supervised task status on /api/status. Must be
// called before SetupRoutes.
func (s *Server) SetSupervisor(sup *supervise.Supervisor) {
	s.supervisor = sup
}

// SetCargo enables /api/cargo. Must be called before SetupRoutes.
func (s *Server) SetCargo(m *cargo.Monitor) {
	s.cargo = m
}

// SetMaterials enables /api/materials. Must be called before SetupRoutes.
func (s *Server) SetMaterials(m *material.Monitor) {
	s.materials = m
}

// SetGameProbe configures game process detection for /api/status.
func (s *Server) SetGameProbe(process string, probe GameProbe) {
	s.gameProcess = process
	s.gameProbe = probe
}

func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/observers", s.handleObservers)
	mux.HandleFunc("/api/status", s.handleStatus)
	if s.cargo != nil {
		mux.HandleFunc("/api/cargo", s.handleCargo)
	}
	if s.materials != nil {
		mux.HandleFunc("/api/materials", s.handleMaterials)
	}
	mux.Handle("/metrics", promhttp.Handler())
}

// Handler returns every route wrapped with the standard security headers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.SetupRoutes(mux)
	return securityHeaders(mux)
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Content-Security-Policy", "default-src 'self'")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: s.checkOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	c, err := s.broadcaster.AddClient(conn)
	if err != nil {
		s.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("Rejecting WebSocket client")
		msg := websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error())
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		conn.Close()
		return
	}
	s.log.Info().Str("remote", r.RemoteAddr).Msg("WebSocket client connected")

	go func() {
		defer func() {
			s.broadcaster.RemoveClient(c)
			s.log.Info().Str("remote", r.RemoteAddr).Msg("WebSocket client disconnected")
		}()
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				return
			}
		}
	}()
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, s.broadcaster.Snapshot())
}

func (s *Server) handleCargo(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, s.cargo.Inventory())
}

func (s *Server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, s.materials.Inventory())
}

func (s *Server) handleObservers(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, s.registry.Observers())
	case http.MethodPost:
		name := r.URL.Query().Get("name")
		enabled, err := strconv.ParseBool(r.URL.Query().Get("enabled"))
		if name == "" || err != nil {
			http.Error(w, "name and enabled=true|false required", http.StatusBadRequest)
			return
		}
		if err := s.registry.SetEnabled(name, enabled); err != nil {
			if errors.Is(err, dispatch.ErrUnknownObserver) {
				http.Error(w, "observer not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		s.log.Info().Str("observer", name).Bool("enabled", enabled).Msg("Observer toggled")
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	status := StatusPayload{
		Game:    GameStatus{Process: s.gameProcess},
		Tasks:   []supervise.Status{},
		Clients: s.broadcaster.ClientCount(),
	}
	if s.gameProbe != nil && s.gameProcess != "" {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		running, err := s.gameProbe(ctx, s.gameProcess)
		cancel()
		status.Game.Running = running
		if err != nil {
			status.Game.Error = err.Error()
		}
	}
	if s.supervisor != nil {
		status.Tasks = s.supervisor.Statuses()
	}
	writeJSON(w, status)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) authorize(r *http.Request) bool {
	if s.authToken == "" {
		return true
	}

	if r.URL.Query().Get("token") == s.authToken {
		return true
	}

	if r.Header.Get("X-Journal-Relay-Token") == s.authToken {
		return true
	}

	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.authToken {
		return true
	}

	return false
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if len(s.allowedOrigins) > 0 {
		if s.allowedOrigins[origin] {
			return true
		}
		if parsed, err := url.Parse(origin); err == nil && parsed.Host != "" {
			return s.allowedHosts[parsed.Host]
		}
		return false
	}

	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := parsed.Host
	if host == "" {
		return false
	}

	if host == r.Host {
		return true
	}

	if strings.HasPrefix(host, "localhost:") || host == "localhost" {
		return true
	}
	if strings.HasPrefix(host, "127.0.0.1:") || host == "127.0.0.1" {
		return true
	}
	if strings.HasPrefix(host, "[::1]:") || host == "::1" {
		return true
	}

	return false
}

// ListenAndServe serves handler on addr until ctx is done, then shuts the
// server down gracefully.
func ListenAndServe(ctx context.Context, logger zerolog.Logger, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
