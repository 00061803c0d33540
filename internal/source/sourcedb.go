package source

import (
	"os"

	"github.com/juju/errors"
)

// DB is a small source database keyed by file path. It caches file
// contents split into lines so diagnostics can resolve a span to
// a line of text without re-reading or re-scanning the file each time.
type DB struct {
	files map[string]*fileEntry
}

type fileEntry struct {
	lines []string
}

func NewDB() *DB {
	return &DB{files: make(map[string]*fileEntry)}
}

// Load reads filePath into the database if it isn't already cached.
func (db *DB) Load(filePath string) error {
	if _, ok := db.files[filePath]; ok {
		return nil
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return errors.Annotatef(err, "loading source %q", filePath)
	}
	db.files[filePath] = &fileEntry{lines: splitLines(string(data))}
	return nil
}

// Line returns the 1-indexed line of filePath, or "" if the file or line
// number is unknown (e.g. a synthetic location).
func (db *DB) Line(filePath string, line int) string {
	entry, ok := db.files[filePath]
	if !ok || line < 1 || line > len(entry.lines) {
		return ""
	}
	return entry.lines[line-1]
}

// LineCount returns how many lines filePath has, or 0 if unknown.
func (db *DB) LineCount(filePath string) int {
	entry, ok := db.files[filePath]
	if !ok {
		return 0
	}
	return len(entry.lines)
}

func splitLines(text string) []string {
	lines := []string{}
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	lines = append(lines, text[start:])
	return lines
}
