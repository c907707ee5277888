// apps/go-server/internal/httpserver/routes_results.go
//
// Results screen endpoints.
//   - POST /results      → store a summary from a browser-side game, return its analysis
//   - GET  /results/mine → the caller's recent results

package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/brainplay/apps/go-server/internal/daily"
	"github.com/robalobadob/brainplay/apps/go-server/internal/results"
)

func (s *Server) mountResults(r chi.Router) {
	r.Route("/results", func(r chi.Router) {
		r.Post("/", s.handlePostResult)
		r.Get("/mine", s.handleMyResults)
	})
}

// handlePostResult records a summary sent by one of the browser games.
func (s *Server) handlePostResult(w http.ResponseWriter, r *http.Request) {
	var sum results.Summary
	if err := decodeJSON(r, &sum); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if err := sum.Validate(); err != nil {
		code := "invalid_summary"
		if errors.Is(err, results.ErrUnknownGame) {
			code = "unknown_game"
		}
		writeError(w, http.StatusBadRequest, code)
		return
	}
	_, err := s.results.Insert(r.Context(), results.Record{
		PlayerID: playerID(r),
		Date:     daily.DateKey(s.now()),
		Summary:  sum,
	})
	if err != nil {
		log.Error().Err(err).Msg("insert result")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, results.Analyze(sum))
}

// handleMyResults lists the caller's results, newest first. ?limit= caps the
// list (default 20, at most 100).
func (s *Server) handleMyResults(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, 100)
	}
	rows, err := s.results.Recent(r.Context(), playerID(r), limit)
	if err != nil {
		log.Error().Err(err).Msg("recent results")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
