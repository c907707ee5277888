// apps/go-server/internal/httpserver/server.go
//
// HTTP server wiring for the brain-training backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, panic recovery, timeouts,
//     JSON, CORS, player identity).
//   - Public endpoints: "/", "/health".
//   - Word search endpoints: /wordsearch/*.
//   - Daily puzzle endpoints: /daily/*.
//   - Themed word generation: /words/*.
//   - Results screen endpoints: /results/*.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the player cookie works).
//   - Every API route runs with a player id in context; see player.go.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/brainplay/apps/go-server/internal/config"
	"github.com/robalobadob/brainplay/apps/go-server/internal/results"
	"github.com/robalobadob/brainplay/apps/go-server/internal/store"
	"github.com/robalobadob/brainplay/apps/go-server/internal/wordgen"
	"github.com/robalobadob/brainplay/apps/go-server/internal/words"
)

// Server bundles the router, the in-memory game store, the results store and
// the word generator.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	games   store.Store
	results *results.Store
	gen     wordgen.Generator
	now     func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, games store.Store, res *results.Store, gen wordgen.Generator) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		games:   games,
		results: res,
		gen:     gen,
		now:     time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                   // add X-Request-ID
	s.r.Use(chimw.RealIP)                      // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                         // one log line per request
	s.r.Use(chimw.Recoverer)                   // recover from panics
	s.r.Use(chimw.Timeout(cfg.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                   // default JSON responses
	s.r.Use(corsFor(cfg.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "brainplay-go",
			"endpoints": []string{
				"/health", "POST /wordsearch/new", "POST /daily/new",
				"POST /words/generate", "POST /results",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		themes, total := words.Stats()
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":     true,
			"games":  s.games.Len(),
			"themes": themes,
			"words":  total,
		})
	})

	// Everything below knows who the player is.
	s.r.Group(func(r chi.Router) {
		r.Use(s.withPlayer)
		s.mountWordSearch(r)
		s.mountDaily(r)
		s.mountWords(r)
		s.mountResults(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      2 * s.cfg.RequestTimeout,
		IdleTimeout:       60 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// SweepGames drops games older than ttl every interval until ctx is done.
func (s *Server) SweepGames(ctx context.Context, ttl, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.games.Sweep(ctx, s.now().Add(-ttl)); n > 0 {
				log.Info().Int("removed", n).Msg("swept stale games")
			}
		}
	}
}

// ------------------------------ responses -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// decodeJSON decodes the request body into v. An empty body leaves v as is.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
