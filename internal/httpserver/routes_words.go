// apps/go-server/internal/httpserver/routes_words.go
//
// Themed word list endpoints.
//   - GET  /words/themes   → built-in theme names
//   - POST /words/generate → words for a theme from the configured generator
//
// Bad theme/count is a 400; a generator failure is a 500.

package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/brainplay/apps/go-server/internal/wordgen"
	"github.com/robalobadob/brainplay/apps/go-server/internal/words"
)

func (s *Server) mountWords(r chi.Router) {
	r.Route("/words", func(r chi.Router) {
		r.Get("/themes", s.handleThemes)
		r.Post("/generate", s.handleGenerate)
	})
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"themes": words.Themes()})
}

type generateReq struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// handleGenerate returns a themed word list for a custom puzzle.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	out, err := s.gen.Generate(r.Context(), req.Theme, req.Count)
	switch {
	case errors.Is(err, wordgen.ErrEmptyTheme), errors.Is(err, wordgen.ErrBadCount):
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	case err != nil:
		log.Error().Err(err).Str("theme", req.Theme).Msg("generate words")
		writeError(w, http.StatusInternalServerError, "Failed to generate words")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"words": out})
}
