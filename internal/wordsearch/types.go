// apps/go-server/internal/wordsearch/types.go
//
// Core type definitions for the word search grid generator.
// Defines:
//   - Direction: one of the four straight lines a word can run along.
//   - Cell: a (row, col) coordinate in the grid.
//   - Grid: the square letter matrix.
//   - Result: a generated grid plus where each placed word lives.

package wordsearch

import "encoding/json"

// Direction is a unit step applied once per letter.
// DX moves across columns, DY moves across rows.
type Direction struct {
	DX int
	DY int
}

var (
	Right = Direction{DX: 1, DY: 0}
	Left  = Direction{DX: -1, DY: 0}
	Down  = Direction{DX: 0, DY: 1}
	Up    = Direction{DX: 0, DY: -1}
)

// Directions lists every direction a word may be laid out in.
// The index order is what the generator draws from.
var Directions = [4]Direction{Right, Left, Down, Up}

// Cell is a grid coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Grid is a square matrix of uppercase ASCII letters, indexed [row][col].
type Grid [][]byte

// Size reports the grid dimension.
func (g Grid) Size() int { return len(g) }

// At returns the letter at c.
func (g Grid) At(c Cell) byte { return g[c.Row][c.Col] }

// Rows renders each row as a string.
func (g Grid) Rows() []string {
	out := make([]string, len(g))
	for i, row := range g {
		out[i] = string(row)
	}
	return out
}

// MarshalJSON encodes the grid as a 2D array of one-letter strings,
// which is what the browser renders cell by cell.
func (g Grid) MarshalJSON() ([]byte, error) {
	out := make([][]string, len(g))
	for i, row := range g {
		out[i] = make([]string, len(row))
		for j, b := range row {
			out[i][j] = string(b)
		}
	}
	return json.Marshal(out)
}

// Result is a finished puzzle.
//
// Placements maps each placed word to its cells, ordered from the word's
// first letter to its last. A word that could not be placed is absent.
type Result struct {
	Size       int               `json:"size"`
	Grid       Grid              `json:"grid"`
	Placements map[string][]Cell `json:"placements"`
}

// Rand is the random source the generator draws from.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}
