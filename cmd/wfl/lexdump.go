package main

import (
	"fmt"
	"os"
	"strings"

	"wfl/internal/token"
)

// writeLexDump writes one line per token to <script minus .wfl>.lex.txt
// and returns the exit code: 2 if any token is an ERROR token, else 0.
func writeLexDump(scriptPath string, tokens []token.Token) (int, error) {
	var b strings.Builder
	code := 0
	for _, t := range tokens {
		fmt.Fprintf(&b, "%-16s %-20q %d:%d\n", t.Kind, t.Value, t.Start.Line, t.Start.Column)
		if t.Kind == token.ERROR {
			code = 2
		}
	}
	path := dumpPath(scriptPath, ".lex.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return 3, err
	}
	return code, nil
}

func dumpPath(scriptPath, suffix string) string {
	trimmed := strings.TrimSuffix(scriptPath, ".wfl")
	return trimmed + suffix
}
