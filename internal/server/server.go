// Package server exposes resolution and verification over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/languoid-cli/internal/geometry"
	"github.com/sells-group/languoid-cli/internal/languoid"
	"github.com/sells-group/languoid-cli/internal/resolver"
)

// Resolver resolves candidate languoids near a location.
type Resolver interface {
	Resolve(ctx context.Context, loc geometry.Location, bufferKM float64, rank string) ([]languoid.Node, error)
}

// Verifier checks a name against the authoritative record for a glottocode.
type Verifier interface {
	Verify(ctx context.Context, name, id string) (bool, error)
}

// Server wires the resolver and verifier into an HTTP API.
type Server struct {
	resolver Resolver
	verifier Verifier
	port     int
	log      *zap.Logger
}

func New(r Resolver, v Verifier, port int) *Server {
	return &Server{
		resolver: r,
		verifier: v,
		port:     port,
		log:      zap.L().With(zap.String("component", "server")),
	}
}

// Router builds the chi routing tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/resolve", s.handleResolve)
	r.Post("/v1/verify", s.handleVerify)

	return r
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	s.log.Info("starting server", zap.Int("port", s.port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type resolveRequest struct {
	Lon      *float64 `json:"lon"`
	Lat      *float64 `json:"lat"`
	BufferKM float64  `json:"buffer_km"`
	Rank     string   `json:"rank"`
}

type resolveResponse struct {
	Candidates []languoid.Node `json:"candidates"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Lon == nil || req.Lat == nil {
		writeError(w, http.StatusBadRequest, "lon and lat are required")
		return
	}
	if req.Rank == "" {
		req.Rank = languoid.RankAll
	}

	loc := geometry.Coordinate{Lon: *req.Lon, Lat: *req.Lat}
	nodes, err := s.resolver.Resolve(r.Context(), loc, req.BufferKM, req.Rank)
	if err != nil {
		switch {
		case eris.Is(err, resolver.ErrInvalidRank), eris.Is(err, geometry.ErrUnsupportedLocation):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.log.Error("resolve failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "resolution failed")
		}
		return
	}
	if nodes == nil {
		nodes = []languoid.Node{}
	}

	writeJSON(w, http.StatusOK, resolveResponse{Candidates: nodes})
}

type verifyRequest struct {
	Name       string `json:"name"`
	Glottocode string `json:"glottocode"`
}

type verifyResponse struct {
	Name       string `json:"name"`
	Glottocode string `json:"glottocode"`
	Verified   bool   `json:"verified"`
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Glottocode == "" {
		writeError(w, http.StatusBadRequest, "name and glottocode are required")
		return
	}

	ok, err := s.verifier.Verify(r.Context(), req.Name, req.Glottocode)
	if err != nil {
		s.log.Error("verify failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "verification failed")
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{
		Name:       req.Name,
		Glottocode: req.Glottocode,
		Verified:   ok,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
