package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/brainplay/apps/go-server/assets"
	"github.com/robalobadob/brainplay/apps/go-server/internal/config"
	"github.com/robalobadob/brainplay/apps/go-server/internal/database"
	"github.com/robalobadob/brainplay/apps/go-server/internal/game"
	"github.com/robalobadob/brainplay/apps/go-server/internal/results"
	"github.com/robalobadob/brainplay/apps/go-server/internal/store"
	"github.com/robalobadob/brainplay/apps/go-server/internal/wordgen"
	"github.com/robalobadob/brainplay/apps/go-server/internal/words"
	"github.com/robalobadob/brainplay/apps/go-server/internal/wordsearch"
)

func TestMain(m *testing.M) {
	if err := words.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type stubGenerator struct {
	words []string
	err   error
}

func (s stubGenerator) Generate(ctx context.Context, theme string, count int) ([]string, error) {
	if _, _, err := wordgen.CheckRequest(theme, count); err != nil {
		return nil, err
	}
	return s.words, s.err
}

var testNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, gen wordgen.Generator) *Server {
	t.Helper()
	db, err := database.Open(database.MemoryDSN(strings.ReplaceAll(t.Name(), "/", "_")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, assets.Migrations()))

	cfg := config.Config{
		ClientOrigin:   "http://localhost:5173",
		DailySalt:      "test_salt",
		JWTSecret:      "test_secret",
		CookieName:     "bp_player",
		MinGridSize:    10,
		RequestTimeout: 5 * time.Second,
	}
	if gen == nil {
		gen = stubGenerator{words: []string{"OCEAN", "CORAL", "WHALE"}}
	}
	s := New(cfg, store.NewMemoryStore(), results.NewStore(db), gen)
	s.now = func() time.Time { return testNow }
	return s
}

// client carries the player cookie between requests like a browser would.
type client struct {
	t      *testing.T
	s      *Server
	cookie *http.Cookie
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.s.Router().ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == c.s.cfg.CookieName {
			c.cookie = ck
		}
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type viewRes struct {
	GameID string     `json:"gameId"`
	Theme  string     `json:"theme"`
	Date   string     `json:"date"`
	Size   int        `json:"size"`
	Grid   [][]string `json:"grid"`
	Words  []string   `json:"words"`
	Found  []string   `json:"found"`
	State  game.State `json:"state"`
}

func (c *client) cellsOf(id, word string) []wordsearch.Cell {
	c.t.Helper()
	g, err := c.s.games.Get(context.Background(), id)
	require.NoError(c.t, err)
	return g.CellsOf(word)
}

func TestHealth(t *testing.T) {
	c := &client{t: t, s: newTestServer(t, nil)}
	rec := c.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Nil(t, c.cookie, "diagnostics should not mint players")
}

func TestCORSPreflight(t *testing.T) {
	c := &client{t: t, s: newTestServer(t, nil)}
	rec := c.do(http.MethodOptions, "/wordsearch/new", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestWordSearch_PlayToWin(t *testing.T) {
	c := &client{t: t, s: newTestServer(t, nil)}

	rec := c.do(http.MethodPost, "/wordsearch/new", map[string]any{
		"words": []string{"cat", "Dog", "FISH"},
		"seed":  7,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, c.cookie)
	v := decode[viewRes](t, rec)
	assert.Equal(t, 10, v.Size)
	assert.Len(t, v.Grid, 10)
	assert.ElementsMatch(t, []string{"CAT", "DOG", "FISH"}, v.Words)
	assert.Empty(t, v.Found)
	assert.Equal(t, game.StatePlaying, v.State)
	assert.NotContains(t, rec.Body.String(), "placements")

	for i, w := range v.Words {
		cells := c.cellsOf(v.GameID, w)
		rec := c.do(http.MethodPost, "/wordsearch/"+v.GameID+"/select", map[string]any{"cells": cells})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		res := decode[selectRes](t, rec)
		assert.Equal(t, w, res.Word)
		assert.Equal(t, cells, res.Cells)
		assert.Len(t, res.Found, i+1)
		if i == len(v.Words)-1 {
			assert.Equal(t, game.StateWon, res.State)
		} else {
			assert.Equal(t, game.StatePlaying, res.State)
		}
	}

	rec = c.do(http.MethodGet, "/results/mine", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rows := decode[[]results.Record](t, rec)
	require.Len(t, rows, 1)
	assert.Equal(t, results.WordSearch, rows[0].GameName)
	assert.Equal(t, 3, rows[0].Score)
	assert.Equal(t, 3, rows[0].TotalPossible)
	assert.False(t, rows[0].Daily)

	// Finishing a won game returns the analysis without recording again.
	rec = c.do(http.MethodPost, "/wordsearch/"+v.GameID+"/finish", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fin := decode[map[string]any](t, rec)
	assert.Equal(t, float64(100), fin["percentage"])
	assert.Equal(t, "won", fin["state"])
	rows = decode[[]results.Record](t, c.do(http.MethodGet, "/results/mine", nil))
	assert.Len(t, rows, 1)
}

func TestWordSearch_SelectErrors(t *testing.T) {
	c := &client{t: t, s: newTestServer(t, nil)}
	v := decode[viewRes](t, c.do(http.MethodPost, "/wordsearch/new", map[string]any{"words": []string{"CAT", "DOG"}}))
	path := "/wordsearch/" + v.GameID + "/select"

	rec := c.do(http.MethodPost, path, map[string]any{"cells": []wordsearch.Cell{{Row: 0, Col: 0}}})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"no_match"}`, rec.Body.String())

	cat := c.cellsOf(v.GameID, "CAT")
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, path, map[string]any{"cells": cat}).Code)
	rec = c.do(http.MethodPost, path, map[string]any{"cells": cat})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"already_found"}`, rec.Body.String())

	rec = c.do(http.MethodPost, path, map[string]any{"cells": []wordsearch.Cell{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/wordsearch/"+v.GameID+"/finish", nil).Code)
	rec = c.do(http.MethodPost, path, map[string]any{"cells": c.cellsOf(v.GameID, "DOG")})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"finished"}`, rec.Body.String())
}

func TestWordSearch_FinishEarlyRecordsOnce(t *testing.T) {
	c := &client{t: t, s: newTestServer(t, nil)}
	v := decode[viewRes](t, c.do(http.MethodPost, "/wordsearch/new", map[string]any{"words": []string{"BRAIN", "FOCUS"}}))

	rec := c.do(http.MethodPost, "/wordsearch/"+v.GameID+"/select", map[string]any{"cells": c.cellsOf(v.GameID, "FOCUS")})
	require.Equal(t, http.StatusOK, rec.Code)

	for i := 0; i < 2; i++ {
		rec = c.do(http.MethodPost, "/wordsearch/"+v.GameID+"/finish", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		fin := decode[map[string]any](t, rec)
		assert.Equal(t, "ended", fin["state"])
		assert.Equal(t, float64(50), fin["percentage"])
		assert.Equal(t, float64(1), fin["score"])
		assert.Equal(t, float64(2), fin["totalPossible"])
	}

	rows := decode[[]results.Record](t, c.do(http.MethodGet, "/results/mine", nil))
	assert.Len(t, rows, 1)
}

func TestWordSearch_OtherPlayersGet404(t *testing.T) {
	s := newTestServer(t, nil)
	alice := &client{t: t, s: s}
	bob := &client{t: t, s: s}

	v := decode[viewRes](t, alice.do(http.MethodPost, "/wordsearch/new", nil))
	require.NotEmpty(t, v.Words)

	assert.Equal(t, http.StatusOK, alice.do(http.MethodGet, "/wordsearch/"+v.GameID, nil).Code)
	assert.Equal(t, http.StatusNotFound, bob.do(http.MethodGet, "/wordsearch/"+v.GameID, nil).Code)
	assert.Equal(t, http.StatusNotFound, bob.do(http.MethodPost, "/wordsearch/"+v.GameID+"/finish", nil).Code)
	assert.Equal(t, http.StatusNotFound, alice.do(http.MethodGet, "/wordsearch/nope", nil).Code)
}

func TestWordSearch_NewValidation(t *testing.T) {
	c := &client{t: t, s: newTestServer(t, nil)}

	rec := c.do(http.MethodPost, "/wordsearch/new", map[string]any{"words": []string{"CAT", "D0G"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_word"}`, rec.Body.String())

	rec = c.do(http.MethodPost, "/wordsearch/new", map[string]any{"minSize": 2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/wordsearch/new", strings.NewReader("{"))
	rec = httptest.NewRecorder()
	c.s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWordSearch_DefaultsAndSizing(t *testing.T) {
	c := &client{t: t, s: newTestServer(t, nil)}

	v := decode[viewRes](t, c.do(http.MethodPost, "/wordsearch/new", nil))
	assert.Equal(t, words.Default(), v.Words)

	long := "ABCDEFGHIJKLMNOPQRST"
	v = decode[viewRes](t, c.do(http.MethodPost, "/wordsearch/new", map[string]any{"words": []string{long}}))
	assert.Equal(t, len(long)+2, v.Size)

	v = decode[viewRes](t, c.do(http.MethodPost, "/wordsearch/new", map[string]any{"words": []string{"CAT"}, "minSize": 15}))
	assert.Equal(t, 15, v.Size)
}

func TestWordSearch_SameSeedSameGrid(t *testing.T) {
	c := &client{t: t, s: newTestServer(t, nil)}
	body := map[string]any{"words": []string{"BRAIN", "FOCUS", "MEMORY"}, "seed": 99}
	a := decode[viewRes](t, c.do(http.MethodPost, "/wordsearch/new", body))
	b := decode[viewRes](t, c.do(http.MethodPost, "/wordsearch/new", body))
	assert.NotEqual(t, a.GameID, b.GameID)
	assert.Equal(t, a.Grid, b.Grid)
}

func TestWordSearch_Theme(t *testing.T) {
	c := &client{t: t, s: newTestServer(t, nil)}
	v := decode[viewRes](t, c.do(http.MethodPost, "/wordsearch/new", map[string]any{"theme": "ocean"}))
	assert.Equal(t, "ocean", v.Theme)
	assert.Equal(t, []string{"OCEAN", "CORAL", "WHALE"}, v.Words)

	failing := &client{t: t, s: newTestServer(t, stubGenerator{err: errors.New("boom")})}
	rec := failing.do(http.MethodPost, "/wordsearch/new", map[string]any{"theme": "ocean"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to generate words"}`, rec.Body.String())
}

func TestWords(t *testing.T) {
	c := &client{t: t, s: newTestServer(t, nil)}

	themes := decode[map[string][]string](t, c.do(http.MethodGet, "/words/themes", nil))
	assert.Contains(t, themes["themes"], words.DefaultTheme)

	rec := c.do(http.MethodPost, "/words/generate", map[string]any{"theme": "sea", "count": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"words":["OCEAN","CORAL","WHALE"]}`, rec.Body.String())

	rec = c.do(http.MethodPost, "/words/generate", map[string]any{"theme": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = c.do(http.MethodPost, "/words/generate", map[string]any{"theme": "sea", "count": wordgen.MaxCount + 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	failing := &client{t: t, s: newTestServer(t, stubGenerator{err: errors.New("boom")})}
	rec = failing.do(http.MethodPost, "/words/generate", map[string]any{"theme": "sea"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to generate words"}`, rec.Body.String())
}

func TestDaily_SharedPuzzleAndLeaderboard(t *testing.T) {
	s := newTestServer(t, nil)
	alice := &client{t: t, s: s}
	bob := &client{t: t, s: s}

	a1 := decode[viewRes](t, alice.do(http.MethodPost, "/daily/new", nil))
	a2 := decode[viewRes](t, alice.do(http.MethodPost, "/daily/new", nil))
	b := decode[viewRes](t, bob.do(http.MethodPost, "/daily/new", nil))

	assert.Equal(t, "2025-03-14", a1.Date)
	assert.Equal(t, a1.GameID, a2.GameID, "same player keeps the day's session")
	assert.NotEqual(t, a1.GameID, b.GameID)
	assert.Equal(t, a1.Grid, b.Grid, "everyone gets the same grid")
	assert.Equal(t, a1.Words, b.Words)
	assert.Equal(t, a1.Theme, b.Theme)
	require.NotEmpty(t, a1.Words)

	for _, w := range a1.Words {
		rec := alice.do(http.MethodPost, "/wordsearch/"+a1.GameID+"/select",
			map[string]any{"cells": alice.cellsOf(a1.GameID, w)})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	require.Equal(t, http.StatusOK, bob.do(http.MethodPost, "/wordsearch/"+b.GameID+"/finish", nil).Code)

	lb := decode[lbRes](t, bob.do(http.MethodGet, "/daily/leaderboard", nil))
	assert.Equal(t, "2025-03-14", lb.Date)
	require.Len(t, lb.Top, 2)
	assert.Equal(t, len(a1.Words), lb.Top[0].Score)
	assert.Equal(t, 0, lb.Top[1].Score)

	lb = decode[lbRes](t, bob.do(http.MethodGet, "/daily/leaderboard?date=2025-03-13", nil))
	assert.Empty(t, lb.Top)
}

func TestResults_PostAndList(t *testing.T) {
	c := &client{t: t, s: newTestServer(t, nil)}

	rec := c.do(http.MethodPost, "/results", results.Summary{
		GameName: results.MathChallenge, TimeTaken: 95, Score: 9, TotalPossible: 10,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	an := decode[results.Analysis](t, rec)
	assert.Equal(t, 90, an.Percentage)
	assert.Equal(t, "1m 35s", an.Time)
	assert.NotEmpty(t, an.Remark)

	rec = c.do(http.MethodPost, "/results", results.Summary{GameName: "Tetris", Score: 1, TotalPossible: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"unknown_game"}`, rec.Body.String())

	rec = c.do(http.MethodPost, "/results", results.Summary{GameName: results.MemoryMatch, Score: -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_summary"}`, rec.Body.String())

	rows := decode[[]results.Record](t, c.do(http.MethodGet, "/results/mine", nil))
	require.Len(t, rows, 1)
	assert.Equal(t, results.MathChallenge, rows[0].GameName)
	assert.Equal(t, "2025-03-14", rows[0].Date)

	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/results/mine?limit=x", nil).Code)

	other := &client{t: t, s: c.s}
	rows = decode[[]results.Record](t, other.do(http.MethodGet, "/results/mine", nil))
	assert.Empty(t, rows)
}

func TestPlayer_TokenSources(t *testing.T) {
	s := newTestServer(t, nil)

	tok, _, err := s.signPlayerToken("player-1", testNow)
	require.NoError(t, err)

	// Bearer header: no new cookie, same player.
	req := httptest.NewRequest(http.MethodPost, "/wordsearch/new", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
	v := decode[viewRes](t, rec)
	g, err := s.games.Get(context.Background(), v.GameID)
	require.NoError(t, err)
	assert.Equal(t, "player-1", g.PlayerID)

	// Tampered token: treated as a new player.
	req = httptest.NewRequest(http.MethodPost, "/wordsearch/new", nil)
	req.AddCookie(&http.Cookie{Name: s.cfg.CookieName, Value: tok + "x"})
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, rec.Result().Cookies(), 1)
	id, err := s.parsePlayerToken(rec.Result().Cookies()[0].Value)
	require.NoError(t, err)
	assert.NotEqual(t, "player-1", id)
}

func TestPlayer_ExpiredToken(t *testing.T) {
	s := newTestServer(t, nil)
	tok, _, err := s.signPlayerToken("old", testNow.Add(-2*playerTokenTTL))
	require.NoError(t, err)
	_, err = s.parsePlayerToken(tok)
	assert.Error(t, err)
}

func TestNotFound(t *testing.T) {
	c := &client{t: t, s: newTestServer(t, nil)}
	rec := c.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestDaily_NotDealtAgainAfterSessionIsGone(t *testing.T) {
	s := newTestServer(t, nil)
	alice := &client{t: t, s: s}
	ctx := context.Background()

	v := decode[viewRes](t, alice.do(http.MethodPost, "/daily/new", nil))
	require.NotEmpty(t, v.Words)
	for _, w := range v.Words {
		rec := alice.do(http.MethodPost, "/wordsearch/"+v.GameID+"/select",
			map[string]any{"cells": alice.cellsOf(v.GameID, w)})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	// The sweep drops the finished game.
	require.NoError(t, s.games.Delete(ctx, v.GameID))

	rec := alice.do(http.MethodPost, "/daily/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[map[string]any](t, rec)
	assert.Equal(t, true, res["played"])
	assert.Equal(t, "2025-03-14", res["date"])
	assert.NotContains(t, res, "grid")
	assert.Equal(t, 0, s.games.Len())

	lb := decode[lbRes](t, alice.do(http.MethodGet, "/daily/leaderboard", nil))
	require.Len(t, lb.Top, 1)
	assert.Equal(t, len(v.Words), lb.Top[0].Score)
}

func TestDaily_UnfinishedSessionRebuiltAndRecordedOnce(t *testing.T) {
	s := newTestServer(t, nil)
	alice := &client{t: t, s: s}
	ctx := context.Background()

	first := decode[viewRes](t, alice.do(http.MethodPost, "/daily/new", nil))
	require.NoError(t, s.games.Delete(ctx, first.GameID))

	second := decode[viewRes](t, alice.do(http.MethodPost, "/daily/new", nil))
	assert.NotEqual(t, first.GameID, second.GameID)
	assert.Equal(t, first.Grid, second.Grid)

	require.Equal(t, http.StatusOK, alice.do(http.MethodPost, "/wordsearch/"+second.GameID+"/finish", nil).Code)

	// A restarted process has no session map; a replayed copy of the same
	// puzzle still cannot add a second daily row.
	replay := game.New(second.Words, game.Options{Seed: 1, PlayerID: playerIDOf(t, alice), Daily: second.Date, Clock: s.now})
	replay.Finish()
	s.record(ctx, replay)

	lb := decode[lbRes](t, alice.do(http.MethodGet, "/daily/leaderboard", nil))
	require.Len(t, lb.Top, 1)
	assert.Equal(t, 0, lb.Top[0].Score)
}

func playerIDOf(t *testing.T, c *client) string {
	t.Helper()
	require.NotNil(t, c.cookie)
	id, err := c.s.parsePlayerToken(c.cookie.Value)
	require.NoError(t, err)
	return id
}
