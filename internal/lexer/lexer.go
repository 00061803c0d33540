// Package lexer turns WFL source text into a flat token stream. Unlike a
// compiler that must halt on the first bad character, the lexer here
// never panics: unrecognised input becomes a token.ERROR token and a
// diagnostic, and scanning continues so later stages can still report
// on the rest of the file.
package lexer

import (
	"regexp"

	"wfl/internal/report"
	"wfl/internal/source"
	"wfl/internal/token"
)

type handler func(lex *Lexer, re *regexp.Regexp)

type pattern struct {
	regex   *regexp.Regexp
	handler handler
}

// Lexer scans a byte slice left to right, tracking its position with a
// source.Position so every emitted token carries an exact span.
type Lexer struct {
	sourceCode []byte
	Position   source.Position
	FilePath   string
	Tokens     []token.Token
	reporter   *report.Reporter
	patterns   []pattern
}

func (lex *Lexer) advance(match string) {
	lex.Position.Advance(match)
}

func (lex *Lexer) push(t token.Token) {
	lex.Tokens = append(lex.Tokens, t)
}

func (lex *Lexer) at() byte {
	return lex.sourceCode[lex.Position.Index]
}

func (lex *Lexer) remainder() string {
	return string(lex.sourceCode[lex.Position.Index:])
}

func (lex *Lexer) atEOF() bool {
	return lex.Position.Index >= len(lex.sourceCode)
}

func newLexer(filePath string, src []byte, rep *report.Reporter) *Lexer {
	lex := &Lexer{
		sourceCode: src,
		FilePath:   filePath,
		Position:   source.Position{Line: 1, Column: 1, Index: 0},
		Tokens:     make([]token.Token, 0, len(src)/4),
		reporter:   rep,
	}
	lex.patterns = []pattern{
		{regexp.MustCompile(`^[ \t\r]+`), skipHandler},
		{regexp.MustCompile(`^\n[ \t\r\n]*`), newlineHandler},
		{regexp.MustCompile(`^//[^\n]*`), skipHandler},
		{regexp.MustCompile(`^"(\\.|[^"\\])*"`), stringHandler},
		{regexp.MustCompile(`^"(\\.|[^"\\])*$`), unterminatedStringHandler},
		{regexp.MustCompile(`^[0-9]+(\.[0-9]+)?`), numberHandler},
		{regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`), identifierHandler},
		{regexp.MustCompile(`^:`), punct(token.COLON)},
		{regexp.MustCompile(`^,`), punct(token.COMMA)},
		{regexp.MustCompile(`^\(`), punct(token.LPAREN)},
		{regexp.MustCompile(`^\)`), punct(token.RPAREN)},
		{regexp.MustCompile(`^\[`), punct(token.LBRACKET)},
		{regexp.MustCompile(`^\]`), punct(token.RBRACKET)},
	}
	return lex
}

func punct(kind token.Kind) handler {
	return func(lex *Lexer, re *regexp.Regexp) {
		match := re.FindString(lex.remainder())
		start := lex.Position
		lex.advance(match)
		lex.push(token.New(kind, match, start, lex.Position))
	}
}

func skipHandler(lex *Lexer, re *regexp.Regexp) {
	match := re.FindString(lex.remainder())
	lex.advance(match)
}

// newlineHandler collapses a run of one or more newlines (and any blank
// lines between them) into a single NEWLINE token, which the parser
// treats as a soft statement terminator.
func newlineHandler(lex *Lexer, re *regexp.Regexp) {
	match := re.FindString(lex.remainder())
	start := lex.Position
	lex.advance(match)
	lex.push(token.New(token.NEWLINE, "\n", start, lex.Position))
}

func numberHandler(lex *Lexer, re *regexp.Regexp) {
	match := re.FindString(lex.remainder())
	start := lex.Position
	lex.advance(match)
	kind := token.INTEGER
	for i := 0; i < len(match); i++ {
		if match[i] == '.' {
			kind = token.FLOAT
			break
		}
	}
	lex.push(token.New(kind, match, start, lex.Position))
}

// identifierHandler scans the word starting at the lexer's current
// position, then looks ahead (without committing) at up to three more
// whitespace-separated words to try a longest-match against the keyword
// trie (spec.md §4.2). A match consumes every word it covers and is
// emitted as one token; no match falls back to a single IDENTIFIER.
func identifierHandler(lex *Lexer, re *regexp.Regexp) {
	spans := scanWords(lex.remainder(), 4)
	peek := func(n int) (string, bool) {
		if n < 0 || n >= len(spans) {
			return "", false
		}
		return spans[n].text, true
	}

	if kind, consumed, ok := token.MatchKeywordAt(peek); ok {
		length := 0
		for i := 0; i < consumed; i++ {
			length += spans[i].sepLen + spans[i].wordLen
		}
		text := lex.remainder()[:length]
		start := lex.Position
		lex.advance(text)
		lex.push(token.New(kind, text, start, lex.Position))
		return
	}

	word := spans[0].text
	start := lex.Position
	lex.advance(word)
	lex.push(token.New(token.IDENTIFIER, token.Intern(word), start, lex.Position))
}

type wordSpan struct {
	text    string
	wordLen int
	sepLen  int
}

// scanWords extracts up to max whitespace-separated identifier-shaped
// words from the front of remainder, without crossing a newline. It is
// pure lookahead: it does not touch lexer state.
func scanWords(remainder string, max int) []wordSpan {
	spans := make([]wordSpan, 0, max)
	i := 0
	for len(spans) < max {
		sepStart := i
		for i < len(remainder) && (remainder[i] == ' ' || remainder[i] == '\t') {
			i++
		}
		sepLen := i - sepStart
		if len(spans) > 0 && sepLen == 0 {
			break
		}
		wordStart := i
		for i < len(remainder) && isIdentByte(remainder[i], i == wordStart) {
			i++
		}
		wordLen := i - wordStart
		if wordLen == 0 {
			break
		}
		spans = append(spans, wordSpan{text: remainder[wordStart:i], wordLen: wordLen, sepLen: sepLen})
	}
	return spans
}

func isIdentByte(b byte, first bool) bool {
	switch {
	case b == '_':
		return true
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return !first
	default:
		return false
	}
}

// Tokenize scans src in full and returns every token it produced,
// including an EOF sentinel at the end. Lexical errors are reported
// through rep and represented inline as token.ERROR tokens rather than
// aborting the scan.
func Tokenize(filePath string, src []byte, rep *report.Reporter) []token.Token {
	lex := newLexer(filePath, src, rep)

	for !lex.atEOF() {
		matched := false
		remainder := lex.remainder()
		for _, p := range lex.patterns {
			if loc := p.regex.FindStringIndex(remainder); loc != nil && loc[0] == 0 {
				before := lex.Position.Index
				p.handler(lex, p.regex)
				matched = true
				if lex.Position.Index == before {
					// A handler must always consume at least one byte;
					// this guards against an infinite loop if one doesn't.
					lex.advance(string(lex.at()))
				}
				break
			}
		}

		if !matched {
			start := lex.Position
			bad := lex.at()
			lex.advance(string(bad))
			lex.push(token.New(token.ERROR, string(bad), start, lex.Position))
			if rep != nil {
				rep.Error(filePath, source.NewLocation(&start, &lex.Position), report.Lexing,
					"unrecognized-character", "unrecognized character "+quoteByte(bad))
			}
		}
	}

	lex.push(token.New(token.EOF, "", lex.Position, lex.Position))
	return lex.Tokens
}

func quoteByte(b byte) string {
	return "'" + string(rune(b)) + "'"
}
