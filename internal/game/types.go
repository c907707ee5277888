// apps/go-server/internal/game/types.go
//
// Core type definitions for a word search session.
// Defines:
//   - State: coarse session state reported to the client.
//   - Options: knobs for building a puzzle.
//   - Game: state for a single in-progress or finished session.

package game

import (
	"sync"
	"time"

	"github.com/robalobadob/brainplay/apps/go-server/internal/wordsearch"
)

// State is the session state reported to the client.
//   - "playing": words left to find.
//   - "won":     every placed word was found.
//   - "ended":   the player gave up or moved on before finding everything.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateEnded   State = "ended"
)

// Options configures puzzle generation.
type Options struct {
	MinSize  int              // Smallest grid side; 0 means wordsearch.DefaultMinSize.
	Seed     int64            // Seed for reproducible puzzles (0 = random).
	Rand     wordsearch.Rand  // Overrides Seed when set.
	Clock    func() time.Time // Defaults to time.Now.
	Theme    string           // Reported back to the client only.
	PlayerID string           // Owner of the session.
	Daily    string           // Date key when this is the daily puzzle.
}

// Game holds the state of a single word search session.
type Game struct {
	ID        string            // Unique game identifier (random hex string).
	PlayerID  string            // Player who started the session.
	Theme     string            // Theme the words came from, if any.
	Daily     string            // YYYY-MM-DD for daily puzzles, empty otherwise.
	Words     []string          // Words to find: the input words that were placed.
	Unplaced  []string          // Input words the generator could not fit.
	Puzzle    wordsearch.Result // Grid and placements.
	Found     []string          // Words found so far, in the order found.
	StartedAt time.Time
	EndedAt   time.Time // Zero while playing.
	Recorded  bool      // Summary already written to the results store.

	mu    sync.Mutex
	clock func() time.Time
}
