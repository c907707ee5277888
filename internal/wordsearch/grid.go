// apps/go-server/internal/wordsearch/grid.go
//
// Word search grid generator.
// Responsibilities:
//   - Size the grid from the longest word (never below the requested minimum).
//   - Fill it with random letters, then lay words over the fill in one of four
//     straight directions.
//   - Let crossing words share a cell only when the letters agree.
//
// Placement is randomized trial and error capped at MaxAttempts per word, so a
// word that cannot fit is dropped rather than blocking the puzzle.

package wordsearch

import (
	"math/rand"
	"time"
)

const (
	// DefaultMinSize is the smallest grid handed to players.
	DefaultMinSize = 10

	// MaxAttempts bounds the placement tries for a single word.
	MaxAttempts = 100

	// padding is added to the longest word when sizing the grid.
	padding = 2
)

// GridSize returns max(minSize, longest word + 2).
func GridSize(words []string, minSize int) int {
	longest := 0
	for _, w := range words {
		if len(w) > longest {
			longest = len(w)
		}
	}
	return max(minSize, longest+padding)
}

// Generate builds a puzzle for words on a grid of at least minSize cells per side.
//
// Words are placed in input order. Each gets up to MaxAttempts random
// (direction, anchor) draws; the first draw that fits without a letter clash
// wins. Words that never fit are left out of Result.Placements. Since the grid
// is sized from the longest word, no word is ever longer than the grid Generate
// builds; words drop out only by clashing with earlier ones. If the same word
// appears twice the later placement replaces the earlier map entry.
//
// rng may be nil, in which case a time-seeded source is used. Given the same
// rng state the output is identical.
func Generate(words []string, minSize int, rng Rand) Result {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	size := GridSize(words, minSize)

	b := newBoard(size)
	b.fill(rng)

	placements := make(map[string][]Cell, len(words))
	for _, w := range words {
		for attempt := 0; attempt < MaxAttempts; attempt++ {
			cells, ok := b.try(w, rng)
			if !ok {
				continue
			}
			b.commit(w, cells)
			placements[w] = cells
			break
		}
	}

	return Result{Size: size, Grid: b.grid, Placements: placements}
}

// board is the mutable state behind a single Generate call.
type board struct {
	size  int
	grid  Grid
	taken [][]bool // cells written by a placed word
}

func newBoard(size int) *board {
	b := &board{
		size:  size,
		grid:  make(Grid, size),
		taken: make([][]bool, size),
	}
	for i := 0; i < size; i++ {
		b.grid[i] = make([]byte, size)
		b.taken[i] = make([]bool, size)
	}
	return b
}

// fill writes a random A–Z letter into every cell, row by row.
func (b *board) fill(rng Rand) {
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			b.grid[r][c] = byte('A' + rng.Intn(26))
		}
	}
}

// try draws one direction and anchor for w and returns the cells it would
// occupy. It never mutates the board.
func (b *board) try(w string, rng Rand) ([]Cell, bool) {
	dir := Directions[rng.Intn(len(Directions))]

	rowLo, rowN := anchorRange(dir.DY, len(w), b.size)
	colLo, colN := anchorRange(dir.DX, len(w), b.size)
	if rowN <= 0 || colN <= 0 {
		return nil, false
	}
	start := Cell{Row: rowLo + rng.Intn(rowN), Col: colLo + rng.Intn(colN)}

	cells := make([]Cell, len(w))
	for i := 0; i < len(w); i++ {
		c := Cell{Row: start.Row + i*dir.DY, Col: start.Col + i*dir.DX}
		if !b.inBounds(c) {
			return nil, false
		}
		if b.taken[c.Row][c.Col] && b.grid[c.Row][c.Col] != w[i] {
			return nil, false
		}
		cells[i] = c
	}
	return cells, true
}

// commit writes w over cells and marks them taken.
func (b *board) commit(w string, cells []Cell) {
	for i, c := range cells {
		b.grid[c.Row][c.Col] = w[i]
		b.taken[c.Row][c.Col] = true
	}
}

func (b *board) inBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < b.size && c.Col >= 0 && c.Col < b.size
}

// anchorRange returns the lowest valid start index along one axis and how many
// starts there are, for a word of length n stepping by d on a size-wide axis.
// count is zero or negative when the word cannot fit.
func anchorRange(d, n, size int) (lo, count int) {
	switch {
	case d > 0:
		return 0, size - n + 1
	case d < 0:
		return n - 1, size - n + 1
	default:
		return 0, size
	}
}
