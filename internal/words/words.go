// apps/go-server/internal/words/words.go
//
// Word list management for the word search game.
//
// Responsibilities:
//   - Load the themed word lists embedded in assets, plus any extra lists found
//     in WORDS_DIR (one <theme>.txt per theme, one word per line).
//   - Normalize words to the form the grid generator expects (uppercase A–Z).
//   - Pick random words for a theme, and filter words returned by the AI
//     generator.
//
// Environment variables:
//   WORDS_DIR=/path/to/lists   (optional; a file named like an embedded theme
//                               replaces it)
//
// Initialization runs once (sync.Once). Lookups before Init fall back to the
// built-in default list.

package words

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robalobadob/brainplay/apps/go-server/assets"
)

const (
	// DefaultTheme is used when no theme is requested.
	DefaultTheme = "brain"

	// MaxLen caps a single word so a grid stays playable.
	MaxLen = 20

	// Generated words must fall inside these bounds.
	GeneratedMinLen = 4
	GeneratedMaxLen = 10
)

var (
	// ErrInvalidWord is returned for words that are empty, too long, or contain
	// anything but ASCII letters.
	ErrInvalidWord = errors.New("words: invalid word")

	// ErrUnknownTheme is returned by ForTheme for a theme with no list.
	ErrUnknownTheme = errors.New("words: unknown theme")
)

// fallback is the built-in default list, used until Init succeeds.
var fallback = []string{"BRAIN", "FOCUS", "MEMORY", "THINK", "LEARN"}

var (
	initOnce   sync.Once
	themes     map[string][]string
	initialErr error
)

// Init loads the theme lists exactly once.
// Returns an error if no usable list could be loaded.
func Init() error {
	initOnce.Do(func() {
		raw, err := assets.ThemeLists()
		if err != nil {
			initialErr = fmt.Errorf("words: embedded lists: %w", err)
			return
		}

		if dir := os.Getenv("WORDS_DIR"); dir != "" {
			extra, err := readDir(os.DirFS(dir))
			if err != nil {
				initialErr = fmt.Errorf("words: read %s: %w", dir, err)
				return
			}
			for name, list := range extra {
				raw[name] = list
			}
		}

		loaded := make(map[string][]string, len(raw))
		for name, list := range raw {
			clean := NormalizeAll(list)
			if len(clean) > 0 {
				loaded[strings.ToLower(name)] = clean
			}
		}
		if len(loaded[DefaultTheme]) == 0 {
			loaded[DefaultTheme] = append([]string(nil), fallback...)
		}
		themes = loaded
	})
	return initialErr
}

// readDir collects every *.txt list in fsys.
func readDir(fsys fs.FS) (map[string][]string, error) {
	names, err := fs.Glob(fsys, "*.txt")
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(names))
	for _, name := range names {
		f, err := fsys.Open(name)
		if err != nil {
			return nil, err
		}
		lines, err := assets.ReadLines(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		out[strings.TrimSuffix(name, ".txt")] = lines
	}
	return out, nil
}

// Normalize trims and uppercases w and checks it is 1..MaxLen ASCII letters.
func Normalize(w string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(w))
	if s == "" || len(s) > MaxLen || !isAlpha(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidWord, w)
	}
	return s, nil
}

// NormalizeAll normalizes each word, silently dropping invalid ones and
// repeats. Input order is kept.
func NormalizeAll(ws []string) []string {
	out := make([]string, 0, len(ws))
	seen := make(map[string]struct{}, len(ws))
	for _, w := range ws {
		s, err := Normalize(w)
		if err != nil {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Validate normalizes a caller-supplied list and fails on the first bad word.
// Repeats are dropped.
func Validate(ws []string) ([]string, error) {
	for _, w := range ws {
		if _, err := Normalize(w); err != nil {
			return nil, err
		}
	}
	return NormalizeAll(ws), nil
}

// Generated keeps words suitable for a generated puzzle: GeneratedMinLen to
// GeneratedMaxLen letters, no repeats, at most count words.
func Generated(ws []string, count int) []string {
	out := make([]string, 0, count)
	for _, w := range NormalizeAll(ws) {
		if len(out) >= count {
			break
		}
		if len(w) < GeneratedMinLen || len(w) > GeneratedMaxLen {
			continue
		}
		out = append(out, w)
	}
	return out
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Themes returns the loaded theme names, sorted.
func Themes() []string {
	if themes == nil {
		return []string{DefaultTheme}
	}
	out := make([]string, 0, len(themes))
	for name := range themes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Default returns the first five words of the default theme, the list the
// word search page shows when nothing else is asked for.
func Default() []string {
	list := fallback
	if l, ok := themes[DefaultTheme]; ok {
		list = l
	}
	n := min(len(list), len(fallback))
	return append([]string(nil), list[:n]...)
}

// ForTheme returns count distinct random words from theme's list (fewer when
// the list is shorter). rng may be nil for a time-seeded source.
func ForTheme(theme string, count int, rng *rand.Rand) ([]string, error) {
	name := strings.ToLower(strings.TrimSpace(theme))
	if name == "" {
		name = DefaultTheme
	}
	list, ok := themes[name]
	if !ok && name == DefaultTheme {
		list, ok = fallback, true
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	pool := append([]string(nil), list...)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if count < len(pool) && count > 0 {
		pool = pool[:count]
	}
	return pool, nil
}

// Stats returns the number of themes and the total number of words loaded.
func Stats() (themeCount int, wordCount int) {
	for _, list := range themes {
		wordCount += len(list)
	}
	return len(themes), wordCount
}
