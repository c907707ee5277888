// apps/go-server/internal/httpserver/routes_daily.go
//
// HTTP routes for the daily word search.
//   - POST /daily/new         → today's puzzle (creates or reuses the session)
//   - GET  /daily/leaderboard → best daily runs for a date (default today)
//
// Everyone gets the same theme and grid on a given UTC date: the theme comes
// from daily.Index and the grid from daily.Seed. Each player keeps one
// session per day in memory; play continues through the /wordsearch routes.

package httpserver

import (
	"math/rand"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/brainplay/apps/go-server/internal/daily"
	"github.com/robalobadob/brainplay/apps/go-server/internal/game"
	"github.com/robalobadob/brainplay/apps/go-server/internal/results"
	"github.com/robalobadob/brainplay/apps/go-server/internal/words"
)

const dailyWordCount = 8

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	sessions map[string]string // game IDs keyed by playerID|date
	mu       sync.Mutex        // guards sessions
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{srv: s, sessions: make(map[string]string)}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// puzzle returns today's date key, theme and word list.
func (d *dailyServer) puzzle() (date, theme string, list []string, seed int64) {
	now := d.srv.now()
	date = daily.DateKey(now)
	seed = daily.Seed(now, d.srv.cfg.DailySalt)

	themes := words.Themes()
	theme = themes[daily.Index(now, d.srv.cfg.DailySalt, len(themes))]
	list, err := words.ForTheme(theme, dailyWordCount, rand.New(rand.NewSource(seed)))
	if err != nil {
		log.Warn().Err(err).Str("theme", theme).Msg("daily theme unavailable")
		theme, list = words.DefaultTheme, words.Default()
	}
	return date, theme, list, seed
}

// -----------------------------------------------------------------------------
// /daily/new

// playedRes is returned by /daily/new once the caller's result for today is
// stored and their session is no longer held.
type playedRes struct {
	Date   string `json:"date"`
	Theme  string `json:"theme"`
	Played bool   `json:"played"`
}

// handleNew returns the caller's session for today, creating it on first
// request. A session swept before it was finished is rebuilt from scratch.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	pid := playerID(r)
	date, theme, list, seed := d.puzzle()
	key := pid + "|" + date

	d.mu.Lock()
	defer d.mu.Unlock()

	if id, ok := d.sessions[key]; ok {
		if g, err := d.srv.games.Get(r.Context(), id); err == nil {
			writeJSON(w, http.StatusOK, g.Snapshot())
			return
		}
	}

	// The session may be gone (swept, or lost on restart) after the result
	// was stored; today's puzzle is not dealt again.
	played, err := d.srv.results.AlreadyPlayed(r.Context(), pid, results.WordSearch, date)
	if err != nil {
		log.Error().Err(err).Msg("check daily played")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if played {
		writeJSON(w, http.StatusOK, playedRes{Date: date, Theme: theme, Played: true})
		return
	}

	g := game.New(list, game.Options{
		MinSize:  d.srv.cfg.MinGridSize,
		Seed:     seed,
		Theme:    theme,
		PlayerID: pid,
		Daily:    date,
		Clock:    d.srv.now,
	})
	if err := d.srv.games.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save daily game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	for k := range d.sessions {
		if !strings.HasSuffix(k, "|"+date) {
			delete(d.sessions, k)
		}
	}
	d.sessions[key] = g.ID
	writeJSON(w, http.StatusOK, g.Snapshot())
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string          `json:"date"`
	Top  []results.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.srv.now())
	}
	rows, err := d.srv.results.Leaderboard(r.Context(), results.WordSearch, date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
