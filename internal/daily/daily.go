// Package daily derives the shared puzzle of the day. Every player asking on
// the same UTC date with the same salt gets the same theme and the same grid.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// sum returns the first 8 bytes of HMAC(salt, YYYY-MM-DD) as a uint64.
func sum(date time.Time, salt string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	return binary.BigEndian.Uint64(h.Sum(nil)[:8])
}

// Index returns a deterministic index in [0, n) for date.
func Index(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	return int(sum(date, salt) % uint64(n))
}

// Seed returns the random seed for date's puzzle. It is never zero, since
// zero means "pick a random seed" to the game package.
func Seed(date time.Time, salt string) int64 {
	s := int64(sum(date, salt) >> 1)
	if s == 0 {
		return 1
	}
	return s
}
