// Package sqlfmt normalizes SQL definition text for display.
//
// Compact collapses all whitespace to single spaces. Pretty re-indents with
// four-space levels and uppercases keywords. Neither validates the SQL:
// malformed input is formatted on a best-effort basis.
package sqlfmt

import (
	"fmt"
	"strings"
)

// Mode selects how SQL text is rendered.
type Mode int

const (
	// ModeRaw leaves text exactly as stored.
	ModeRaw Mode = iota
	// ModeCompact renders a single line with collapsed whitespace.
	ModeCompact
	// ModePretty renders indented multi-line text with uppercase keywords.
	ModePretty
)

func (m Mode) String() string {
	switch m {
	case ModeRaw:
		return "raw"
	case ModeCompact:
		return "compact"
	case ModePretty:
		return "pretty"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ModeFor derives the mode from the two user-facing switches.
// pretty has no effect when normalization is disabled.
func ModeFor(normalize, pretty bool) Mode {
	switch {
	case !normalize:
		return ModeRaw
	case pretty:
		return ModePretty
	default:
		return ModeCompact
	}
}

// Format renders sql according to mode.
func Format(mode Mode, sql string) string {
	switch mode {
	case ModeCompact:
		return Compact(sql)
	case ModePretty:
		return Pretty(sql)
	default:
		return sql
	}
}

// Compact splits on whitespace runs and rejoins with single spaces.
func Compact(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}

// Pretty re-indents sql and uppercases keywords.
func Pretty(sql string) string {
	f := &prettyFormatter{p: newPrinter(), toks: Tokenize(sql)}
	f.run()
	return f.p.String()
}

type prettyFormatter struct {
	p    *printer
	toks []Token

	// clause is the query clause being printed ("" outside of a query).
	clause string
}

func (f *prettyFormatter) run() {
	for i := 0; i < len(f.toks); {
		tok := f.toks[i]
		switch {
		case tok.Kind == LParen:
			end := matchParen(f.toks, i)
			f.group(f.toks[i : end+1])
			i = end + 1
			continue
		case tok.Kind == Keyword:
			i = f.keyword(i)
			continue
		case tok.Kind == Semicolon:
			f.p.emit(tok)
			f.p.blankLine()
			f.p.depth = 0
			f.clause = ""
		case tok.Kind == Comma && f.clause != "":
			f.p.emit(tok)
			f.p.newline()
		default:
			f.p.emit(tok)
		}
		i++
	}
}

var joinWords = map[string]bool{
	"LEFT": true, "RIGHT": true, "FULL": true, "INNER": true, "OUTER": true,
	"CROSS": true, "NATURAL": true, "JOIN": true,
}

// keyword prints the keyword at i (plus any words it owns) and returns the
// index of the next unprinted token.
func (f *prettyFormatter) keyword(i int) int {
	tok := f.toks[i]
	if f.p.afterDot() {
		f.p.emit(tok)
		return i + 1
	}

	word := strings.ToUpper(tok.Text)
	switch word {
	case "SELECT":
		n := 1
		if f.nextIs(i+1, "DISTINCT") || f.nextIs(i+1, "ALL") {
			n = 2
		}
		return f.startClause(word, i, n)
	case "FROM", "WHERE", "HAVING", "LIMIT", "VALUES", "WINDOW":
		return f.startClause(word, i, 1)
	case "GROUP", "ORDER":
		if f.nextIs(i+1, "BY") {
			return f.startClause(word, i, 2)
		}
	case "UNION", "INTERSECT", "EXCEPT":
		n := 1
		if f.nextIs(i+1, "ALL") {
			n = 2
		}
		f.p.newline()
		f.p.depth = 0
		for _, t := range f.toks[i : i+n] {
			f.p.emit(t)
		}
		f.p.newline()
		f.clause = ""
		return i + n
	case "AND", "OR":
		if f.clause == "WHERE" || f.clause == "HAVING" {
			f.p.newline()
		}
	default:
		if f.clause == "FROM" && joinWords[word] && !f.prevIsJoinWord(i) {
			f.p.newline()
		}
	}
	f.p.emit(tok)
	return i + 1
}

// startClause puts the n keywords at i on their own line and indents the
// clause body one level.
func (f *prettyFormatter) startClause(word string, i, n int) int {
	f.p.newline()
	f.p.depth = 0
	for _, t := range f.toks[i : i+n] {
		f.p.emit(t)
	}
	f.p.newline()
	f.p.indent()
	f.clause = word
	return i + n
}

func (f *prettyFormatter) nextIs(i int, word string) bool {
	return i < len(f.toks) && f.toks[i].Kind == Keyword && strings.EqualFold(f.toks[i].Text, word)
}

// prevIsJoinWord keeps multi-word joins such as LEFT OUTER JOIN on one line.
func (f *prettyFormatter) prevIsJoinWord(i int) bool {
	if i == 0 {
		return false
	}
	prev := f.toks[i-1]
	return prev.Kind == Keyword && joinWords[strings.ToUpper(prev.Text)]
}

// group prints a parenthesized token run. Lists outside query clauses that
// are too wide for one line are broken one item per line.
func (f *prettyFormatter) group(toks []Token) {
	closed := len(toks) > 1 && toks[len(toks)-1].Kind == RParen
	inner := toks[1:]
	if closed {
		inner = toks[1 : len(toks)-1]
	}
	items := splitTopLevel(inner)

	width, ok := inlineWidth(toks)
	if f.clause != "" || len(items) < 2 || (ok && width <= inlineLimit) {
		for _, t := range toks {
			f.p.emit(t)
		}
		return
	}

	f.p.emit(toks[0])
	f.p.newline()
	f.p.indent()
	for idx, item := range items {
		for _, t := range item {
			f.p.emit(t)
		}
		if idx < len(items)-1 {
			f.p.emit(Token{Kind: Comma, Text: ","})
			f.p.newline()
		}
	}
	f.p.newline()
	f.p.dedent()
	if closed {
		f.p.emit(toks[len(toks)-1])
	}
}

// matchParen returns the index of the parenthesis closing the one at start,
// or the last index when it is never closed.
func matchParen(toks []Token, start int) int {
	depth := 0
	for i := start; i < len(toks); i++ {
		switch toks[i].Kind {
		case LParen:
			depth++
		case RParen:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(toks) - 1
}

// splitTopLevel splits toks on commas that are not nested in parentheses.
func splitTopLevel(toks []Token) [][]Token {
	if len(toks) == 0 {
		return nil
	}
	var items [][]Token
	depth, start := 0, 0
	for i, tok := range toks {
		switch tok.Kind {
		case LParen:
			depth++
		case RParen:
			depth--
		case Comma:
			if depth == 0 {
				items = append(items, toks[start:i])
				start = i + 1
			}
		}
	}
	return append(items, toks[start:])
}
