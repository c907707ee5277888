package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"path"
	"strings"
)

//go:embed words/*.txt
var wordsFS embed.FS

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations returns the SQL migration files rooted at their directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// ThemeLists returns every embedded word list keyed by theme name
// (the file name without .txt).
func ThemeLists() (map[string][]string, error) {
	entries, err := wordsFS.ReadDir("words")
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		f, err := wordsFS.Open(path.Join("words", e.Name()))
		if err != nil {
			return nil, err
		}
		lines, err := ReadLines(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		out[strings.TrimSuffix(e.Name(), ".txt")] = lines
	}
	return out, nil
}

// ReadLines returns the trimmed, non-empty, non-comment lines of f.
func ReadLines(f fs.File) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}
