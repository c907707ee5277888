// apps/go-server/internal/httpserver/routes_wordsearch.go
//
// HTTP routes for the word search game.
//   - POST /wordsearch/new           → build a puzzle (explicit words or a theme)
//   - GET  /wordsearch/{id}          → current view of a game
//   - POST /wordsearch/{id}/select   → check a dragged selection
//   - POST /wordsearch/{id}/finish   → end the game, return the results analysis
//
// Games live in the in-memory store. Finished games are written to the
// results table exactly once.

package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/brainplay/apps/go-server/internal/daily"
	"github.com/robalobadob/brainplay/apps/go-server/internal/game"
	"github.com/robalobadob/brainplay/apps/go-server/internal/results"
	"github.com/robalobadob/brainplay/apps/go-server/internal/store"
	"github.com/robalobadob/brainplay/apps/go-server/internal/wordgen"
	"github.com/robalobadob/brainplay/apps/go-server/internal/words"
	"github.com/robalobadob/brainplay/apps/go-server/internal/wordsearch"
)

// Bounds on a client-requested minimum grid size.
const (
	minGridLimit = 5
	maxGridLimit = 30
)

func (s *Server) mountWordSearch(r chi.Router) {
	r.Route("/wordsearch", func(r chi.Router) {
		r.Post("/new", s.handleNewWordSearch)
		r.Get("/{id}", s.handleGetWordSearch)
		r.Post("/{id}/select", s.handleSelect)
		r.Post("/{id}/finish", s.handleFinish)
	})
}

// -----------------------------------------------------------------------------
// /wordsearch/new

type newWordSearchReq struct {
	Theme   string   `json:"theme"`
	Count   int      `json:"count"`
	Words   []string `json:"words"`
	MinSize int      `json:"minSize"`
	Seed    int64    `json:"seed"`
}

// handleNewWordSearch builds a puzzle. Explicit words take priority over a
// theme; with neither, the default list is used.
func (s *Server) handleNewWordSearch(w http.ResponseWriter, r *http.Request) {
	var req newWordSearchReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	minSize := s.cfg.MinGridSize
	if req.MinSize != 0 {
		if req.MinSize < minGridLimit || req.MinSize > maxGridLimit {
			writeError(w, http.StatusBadRequest, "bad_min_size")
			return
		}
		minSize = req.MinSize
	}

	var list []string
	switch {
	case len(req.Words) > 0:
		clean, err := words.Validate(req.Words)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_word")
			return
		}
		list = clean
	case req.Theme != "":
		out, err := s.gen.Generate(r.Context(), req.Theme, req.Count)
		if errors.Is(err, wordgen.ErrEmptyTheme) || errors.Is(err, wordgen.ErrBadCount) {
			writeError(w, http.StatusBadRequest, "bad_request")
			return
		}
		if err != nil {
			log.Error().Err(err).Str("theme", req.Theme).Msg("generate words")
			writeError(w, http.StatusInternalServerError, "Failed to generate words")
			return
		}
		list = out
	}

	g := game.New(list, game.Options{
		MinSize:  minSize,
		Seed:     req.Seed,
		Theme:    req.Theme,
		PlayerID: playerID(r),
		Clock:    s.now,
	})
	if err := s.games.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

// -----------------------------------------------------------------------------
// /wordsearch/{id}

// gameFor loads the game named in the URL and checks that the caller owns
// it. Another player's game looks exactly like a missing one.
func (s *Server) gameFor(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	g, err := s.games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil || g.PlayerID != playerID(r) {
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Error().Err(err).Msg("load game")
		}
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return g, true
}

func (s *Server) handleGetWordSearch(w http.ResponseWriter, r *http.Request) {
	g, ok := s.gameFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

// -----------------------------------------------------------------------------
// /wordsearch/{id}/select

type selectReq struct {
	Cells []wordsearch.Cell `json:"cells"`
}

type selectRes struct {
	Word  string            `json:"word"`
	Cells []wordsearch.Cell `json:"cells"`
	Found []string          `json:"found"`
	State game.State        `json:"state"`
}

// handleSelect checks a selection. A miss, a repeat, or a finished game is a
// 409 with the matching error code; finding the last word records the result.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	g, ok := s.gameFor(w, r)
	if !ok {
		return
	}
	var req selectReq
	if err := decodeJSON(r, &req); err != nil || len(req.Cells) == 0 {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	word, state, err := g.ApplySelection(req.Cells)
	switch {
	case errors.Is(err, game.ErrNoMatch):
		writeError(w, http.StatusConflict, "no_match")
		return
	case errors.Is(err, game.ErrAlreadyFound):
		writeError(w, http.StatusConflict, "already_found")
		return
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, "finished")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	if state == game.StateWon {
		s.record(r.Context(), g)
	}
	view := g.Snapshot()
	writeJSON(w, http.StatusOK, selectRes{
		Word:  word,
		Cells: g.CellsOf(word),
		Found: view.Found,
		State: state,
	})
}

// -----------------------------------------------------------------------------
// /wordsearch/{id}/finish

type finishRes struct {
	results.Analysis
	State game.State `json:"state"`
}

// handleFinish ends the game (give up or done) and returns what the results
// screen shows. Finishing twice returns the same analysis.
func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	g, ok := s.gameFor(w, r)
	if !ok {
		return
	}
	state := g.Finish()
	s.record(r.Context(), g)
	writeJSON(w, http.StatusOK, finishRes{Analysis: results.Analyze(g.Summary()), State: state})
}

// record writes g's summary to the results table once. Failures are logged;
// the player still gets their result.
func (s *Server) record(ctx context.Context, g *game.Game) {
	if !g.MarkRecorded() {
		return
	}
	rec := results.Record{
		PlayerID: g.PlayerID,
		Date:     g.Daily,
		Daily:    g.Daily != "",
		Summary:  g.Summary(),
	}
	if rec.Date == "" {
		rec.Date = daily.DateKey(s.now())
	}
	if _, err := s.results.Insert(ctx, rec); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("record result")
	}
}
