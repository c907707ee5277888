// apps/go-server/internal/results/summary.go
//
// The summary every mini-game hands to the results screen when a session ends,
// plus the analysis shown there (percentage, time, per-game remark).

package results

import (
	"errors"
	"fmt"
	"math"
)

// Game names as reported by the mini-games.
const (
	WordSearch    = "Word Search"
	MemoryMatch   = "Memory Match"
	MathChallenge = "Math Challenge"
	JigsawPuzzle  = "Jigsaw Puzzle"
	ClockDrawing  = "Clock Drawing"
)

// GameNames lists every game the results screen knows about.
var GameNames = []string{WordSearch, MemoryMatch, MathChallenge, JigsawPuzzle, ClockDrawing}

var (
	// ErrUnknownGame is returned for a summary naming a game we do not have.
	ErrUnknownGame = errors.New("results: unknown game")

	// ErrInvalidSummary is returned for negative counts or times.
	ErrInvalidSummary = errors.New("results: invalid summary")
)

// Summary is the end-of-session record.
//
// Score means different things per game: words found (Word Search), correct
// answers (Math Challenge), moves taken (Memory Match, Jigsaw Puzzle) or 1/0
// for drawn/not drawn (Clock Drawing).
type Summary struct {
	GameName      string `json:"gameName"`
	TimeTaken     int    `json:"timeTaken"` // seconds
	Score         int    `json:"score"`
	TotalPossible int    `json:"totalPossible"`
}

// Validate checks the game name and that no field is negative.
func (s Summary) Validate() error {
	if !KnownGame(s.GameName) {
		return fmt.Errorf("%w: %q", ErrUnknownGame, s.GameName)
	}
	if s.TimeTaken < 0 || s.Score < 0 || s.TotalPossible < 0 {
		return ErrInvalidSummary
	}
	return nil
}

// KnownGame reports whether name is one of GameNames.
func KnownGame(name string) bool {
	for _, g := range GameNames {
		if g == name {
			return true
		}
	}
	return false
}

// MovesBased reports whether a lower score is better for the game.
func MovesBased(name string) bool {
	return name == MemoryMatch || name == JigsawPuzzle
}

// ratio is score/totalPossible as a percentage, 0 when nothing was possible.
func (s Summary) ratio() float64 {
	if s.TotalPossible == 0 {
		return 0
	}
	return float64(s.Score*100) / float64(s.TotalPossible)
}

// Percentage is the score as a rounded percentage of TotalPossible.
func (s Summary) Percentage() int {
	return int(math.Round(s.ratio()))
}

// FormatTime renders seconds as "Xm Ys".
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}
