// apps/go-server/internal/wordsearch/match.go
//
// Selection checks against a generated puzzle.
//   - Match: which placed word a set of selected cells covers.
//   - Placed: the input words that made it into the grid.

package wordsearch

import "sort"

// Match reports which placed word the selection covers exactly.
//
// Comparison is by cell set, so the order the player dragged across the
// letters does not matter and reversed words match either way. When more
// than one word has the same cell set the alphabetically first one wins.
func (r Result) Match(selected []Cell) (string, bool) {
	if len(selected) == 0 {
		return "", false
	}
	sel := make(map[Cell]struct{}, len(selected))
	for _, c := range selected {
		sel[c] = struct{}{}
	}

	words := make([]string, 0, len(r.Placements))
	for w := range r.Placements {
		words = append(words, w)
	}
	sort.Strings(words)

	for _, w := range words {
		if sameCells(sel, r.Placements[w]) {
			return w, true
		}
	}
	return "", false
}

// Placed returns the words from the input that made it into the grid,
// keeping input order and dropping repeats.
func (r Result) Placed(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, ok := r.Placements[w]; !ok {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func sameCells(sel map[Cell]struct{}, cells []Cell) bool {
	if len(cells) == 0 {
		return false
	}
	uniq := make(map[Cell]struct{}, len(cells))
	for _, c := range cells {
		if _, ok := sel[c]; !ok {
			return false
		}
		uniq[c] = struct{}{}
	}
	return len(uniq) == len(sel)
}
