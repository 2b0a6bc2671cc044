package sqlfmt

import "strings"

// Lexer tokenizes SQL text without interpreting it.
// Unterminated strings and comments run to the end of input.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination

	prev     Kind // last token that was not a comment
	prevType bool // prev was a type name
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// NextToken returns the next token; EOF repeats once input is exhausted.
func (l *Lexer) NextToken() Token {
	space := l.skipWhitespace()
	if l.atEOF() {
		return Token{Kind: EOF, SpaceBefore: space}
	}

	start := l.pos
	var kind Kind
	typeName := false

	switch {
	case l.ch == '-' && l.peekChar() == '-':
		for !l.atEOF() && l.ch != '\n' {
			l.readChar()
		}
		kind = LineComment
	case l.ch == '/' && l.peekChar() == '*':
		l.readChar()
		l.readChar()
		for !l.atEOF() && !(l.ch == '*' && l.peekChar() == '/') {
			l.readChar()
		}
		if !l.atEOF() {
			l.readChar()
			l.readChar()
		}
		kind = BlockComment
	case l.ch == '\'':
		l.readQuoted('\'')
		kind = String
	case l.ch == '"':
		l.readQuoted('"')
		kind = QuotedIdent
	case l.ch == '`':
		l.readQuoted('`')
		kind = QuotedIdent
	case l.ch == '[':
		for !l.atEOF() && l.ch != ']' {
			l.readChar()
		}
		if !l.atEOF() {
			l.readChar()
		}
		kind = QuotedIdent
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		l.readNumber()
		kind = Number
	case isIdentStart(l.ch):
		for !l.atEOF() && isIdentPart(l.ch) {
			l.readChar()
		}
		word := l.input[start:l.pos]
		kind = Ident
		if IsKeyword(word) {
			kind = Keyword
		} else if IsTypeName(word) && l.inTypePosition() {
			// "price DECIMAL", "amount DOUBLE PRECISION"
			kind = Keyword
			typeName = true
		}
	case l.ch == '(':
		l.readChar()
		kind = LParen
	case l.ch == ')':
		l.readChar()
		kind = RParen
	case l.ch == ',':
		l.readChar()
		kind = Comma
	case l.ch == ';':
		l.readChar()
		kind = Semicolon
	case l.ch == '.':
		l.readChar()
		kind = Dot
	default:
		l.readOperator()
		kind = Operator
	}

	if kind != LineComment && kind != BlockComment {
		l.prev, l.prevType = kind, typeName
	}
	return Token{Kind: kind, Text: l.input[start:l.pos], SpaceBefore: space}
}

// inTypePosition reports whether a word here would name a column type: it
// follows a column name or another type name.
func (l *Lexer) inTypePosition() bool {
	return l.prev == Ident || l.prev == QuotedIdent || l.prevType
}

func (l *Lexer) skipWhitespace() bool {
	skipped := false
	for !l.atEOF() && isSpace(l.ch) {
		skipped = true
		l.readChar()
	}
	return skipped
}

// readQuoted consumes a quoted literal, treating a doubled quote as an escape.
func (l *Lexer) readQuoted(quote byte) {
	l.readChar() // opening quote
	for !l.atEOF() {
		if l.ch == quote {
			if l.peekChar() == quote {
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			return
		}
		l.readChar()
	}
}

// readNumber consumes integer, decimal, scientific and hex literals.
func (l *Lexer) readNumber() {
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		for !l.atEOF() && isHexDigit(l.ch) {
			l.readChar()
		}
		return
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
}

var multiCharOperators = []string{"->>", "||", "<=", ">=", "<>", "!=", "==", "<<", ">>", "->"}

func (l *Lexer) readOperator() {
	rest := l.input[l.pos:]
	for _, op := range multiCharOperators {
		if strings.HasPrefix(rest, op) {
			for range op {
				l.readChar()
			}
			return
		}
	}
	l.readChar()
}

// Tokenize returns all tokens from the input, excluding the trailing EOF.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Kind == EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// isIdentStart accepts ASCII letters, underscore and any byte of a multi-byte
// UTF-8 sequence, which SQLite allows in bare identifiers.
func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch >= 0x80
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '$'
}
