// apps/go-server/internal/game/engine.go
//
// Session engine for a single word search game.
// Responsibilities:
//   - Build a puzzle from a word list with the grid generator.
//   - Check player selections against placed words.
//   - Track state transitions: playing → won/ended.
//   - Produce the summary handed to the results screen.
//
// Notes:
//   - Only placed words count: a word the generator dropped is never shown to
//     the player and does not count toward the total.
//   - Methods are safe for concurrent use.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	mrand "math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/brainplay/apps/go-server/internal/results"
	"github.com/robalobadob/brainplay/apps/go-server/internal/words"
	"github.com/robalobadob/brainplay/apps/go-server/internal/wordsearch"
)

var (
	ErrFinished     = errors.New("game finished")
	ErrNoMatch      = errors.New("selection matches no word")
	ErrAlreadyFound = errors.New("word already found")
)

// New builds a game for list. Words are normalized and deduplicated; invalid
// entries are dropped (callers wanting an error use words.Validate first). An
// empty list falls back to words.Default().
func New(list []string, opts Options) *Game {
	clean := words.NormalizeAll(list)
	if len(clean) == 0 {
		clean = words.Default()
	}

	minSize := opts.MinSize
	if minSize <= 0 {
		minSize = wordsearch.DefaultMinSize
	}
	rng := opts.Rand
	if rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = mrand.New(mrand.NewSource(seed))
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	puzzle := wordsearch.Generate(clean, minSize, rng)
	placed := puzzle.Placed(clean)

	g := &Game{
		ID:        randomID(),
		PlayerID:  opts.PlayerID,
		Theme:     opts.Theme,
		Daily:     opts.Daily,
		Words:     placed,
		Puzzle:    puzzle,
		Found:     []string{},
		StartedAt: clock(),
		clock:     clock,
	}
	if len(placed) < len(clean) {
		for _, w := range clean {
			if _, ok := puzzle.Placements[w]; !ok {
				g.Unplaced = append(g.Unplaced, w)
			}
		}
		log.Warn().Str("gameId", g.ID).Strs("unplaced", g.Unplaced).Int("size", puzzle.Size).
			Msg("words left out of grid")
	}
	return g
}

// ApplySelection checks the player's selected cells against the placed words.
// Returns: the matched word, the new state, or an error.
//
//   - ErrFinished if the game is over.
//   - ErrNoMatch if the cells are not exactly one word's cells.
//   - ErrAlreadyFound if that word was found before.
//
// Finding the last word moves the game to StateWon.
func (g *Game) ApplySelection(cells []wordsearch.Cell) (string, State, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.EndedAt.IsZero() {
		return "", g.state(), ErrFinished
	}
	w, ok := g.Puzzle.Match(cells)
	if !ok {
		return "", g.state(), ErrNoMatch
	}
	for _, f := range g.Found {
		if f == w {
			return w, g.state(), ErrAlreadyFound
		}
	}

	g.Found = append(g.Found, w)
	if len(g.Found) == len(g.Words) {
		g.EndedAt = g.clock()
	}
	return w, g.state(), nil
}

// Finish ends the game early (give up / next). Calling it on a finished game
// changes nothing.
func (g *Game) Finish() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.EndedAt.IsZero() {
		g.EndedAt = g.clock()
	}
	return g.state()
}

// State reports the current state.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

func (g *Game) state() State {
	switch {
	case g.EndedAt.IsZero():
		return StatePlaying
	case len(g.Words) > 0 && len(g.Found) == len(g.Words):
		return StateWon
	default:
		return StateEnded
	}
}

// Summary reports the session for the results screen. Time is measured to
// the end of the game, or to now while it is still running.
func (g *Game) Summary() results.Summary {
	g.mu.Lock()
	defer g.mu.Unlock()

	end := g.EndedAt
	if end.IsZero() {
		end = g.clock()
	}
	return results.Summary{
		GameName:      results.WordSearch,
		TimeTaken:     int(end.Sub(g.StartedAt) / time.Second),
		Score:         len(g.Found),
		TotalPossible: len(g.Words),
	}
}

// MarkRecorded flips Recorded and reports whether this call did it, so a
// summary is stored once even when finish requests race.
func (g *Game) MarkRecorded() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Recorded {
		return false
	}
	g.Recorded = true
	return true
}

// View is a snapshot of the game safe to encode and send to the client.
type View struct {
	GameID string          `json:"gameId"`
	Theme  string          `json:"theme,omitempty"`
	Daily  string          `json:"date,omitempty"`
	Size   int             `json:"size"`
	Grid   wordsearch.Grid `json:"grid"`
	Words  []string        `json:"words"`
	Found  []string        `json:"found"`
	State  State           `json:"state"`
}

// Snapshot copies the client-visible state. Placements are left out so the
// answers never reach the browser.
func (g *Game) Snapshot() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return View{
		GameID: g.ID,
		Theme:  g.Theme,
		Daily:  g.Daily,
		Size:   g.Puzzle.Size,
		Grid:   g.Puzzle.Grid,
		Words:  append([]string(nil), g.Words...),
		Found:  append([]string{}, g.Found...),
		State:  g.state(),
	}
}

// CellsOf returns the cells of a found word, for highlighting.
func (g *Game) CellsOf(word string) []wordsearch.Cell {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]wordsearch.Cell(nil), g.Puzzle.Placements[word]...)
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
