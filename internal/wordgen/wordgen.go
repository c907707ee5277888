// Package wordgen produces themed word lists for the word search game, either
// from Gemini or from the embedded lists.
package wordgen

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/brainplay/apps/go-server/internal/words"
)

const (
	DefaultCount = 5
	MaxCount     = 12
)

var (
	ErrEmptyTheme = errors.New("wordgen: theme is required")
	ErrBadCount   = errors.New("wordgen: count out of range")
	ErrNoWords    = errors.New("wordgen: no usable words")
)

// Generator returns up to count uppercase words related to theme.
type Generator interface {
	Generate(ctx context.Context, theme string, count int) ([]string, error)
}

// CheckRequest normalizes a request: trims the theme and applies the default
// count when count is zero.
func CheckRequest(theme string, count int) (string, int, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return "", 0, ErrEmptyTheme
	}
	if count == 0 {
		count = DefaultCount
	}
	if count < 1 || count > MaxCount {
		return "", 0, ErrBadCount
	}
	return theme, count, nil
}

// Static serves words from the embedded theme lists. Unknown themes get the
// default list.
type Static struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewStatic returns a Static generator; seed 0 means time-seeded.
func NewStatic(seed int64) *Static {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Static{rng: rand.New(rand.NewSource(seed))}
}

func (s *Static) Generate(ctx context.Context, theme string, count int) ([]string, error) {
	theme, count, err := CheckRequest(theme, count)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := words.ForTheme(theme, count, s.rng)
	if errors.Is(err, words.ErrUnknownTheme) {
		list, err = words.ForTheme(words.DefaultTheme, count, s.rng)
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Fallback asks Primary first and Secondary when Primary fails or returns
// nothing usable.
type Fallback struct {
	Primary   Generator
	Secondary Generator
}

func (f Fallback) Generate(ctx context.Context, theme string, count int) ([]string, error) {
	out, err := f.Primary.Generate(ctx, theme, count)
	if err == nil && len(out) > 0 {
		return out, nil
	}
	if errors.Is(err, ErrEmptyTheme) || errors.Is(err, ErrBadCount) {
		return nil, err
	}
	log.Warn().Err(err).Str("theme", theme).Msg("word generator failed, using fallback")
	return f.Secondary.Generate(ctx, theme, count)
}
