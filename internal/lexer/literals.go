package lexer

import (
	"regexp"
	"strings"

	"wfl/internal/report"
	"wfl/internal/source"
	"wfl/internal/token"
)

// stringHandler unquotes a double-quoted literal and resolves its escape
// sequences. A raw newline embedded in the literal (not escaped) is kept
// as-is, so a multi-line string reads back exactly as written.
func stringHandler(lex *Lexer, re *regexp.Regexp) {
	match := re.FindString(lex.remainder())
	start := lex.Position
	lex.advance(match)
	lex.push(token.New(token.STRING, token.Intern(unescape(match[1:len(match)-1])), start, lex.Position))
}

// unterminatedStringHandler fires only when a string literal runs to
// EOF without a closing quote; it reports the error but still emits a
// STRING token for the unterminated content, so the parser sees a
// complete token stream and later diagnostics aren't cascading noise.
func unterminatedStringHandler(lex *Lexer, re *regexp.Regexp) {
	match := re.FindString(lex.remainder())
	start := lex.Position
	lex.advance(match)
	content := strings.TrimPrefix(match, `"`)
	lex.push(token.New(token.STRING, token.Intern(unescape(content)), start, lex.Position))
	if lex.reporter != nil {
		end := lex.Position
		lex.reporter.Error(lex.FilePath, source.NewLocation(&start, &end), report.Lexing,
			"unterminated-string", "string literal is missing a closing quote")
	}
}

func unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
