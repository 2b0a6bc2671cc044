package sqlfmt

import "strings"

const (
	indentUnit = "    "

	// inlineLimit is the widest a top-level parenthesized list may be before
	// it is broken one item per line.
	inlineLimit = 50
)

// printer accumulates formatted output with indentation and token spacing.
type printer struct {
	out         strings.Builder
	depth       int
	atLineStart bool
	hasPrev     bool
	prevKind    Kind
}

func newPrinter() *printer {
	return &printer{atLineStart: true}
}

// String returns the output without trailing blank space.
func (p *printer) String() string {
	return strings.TrimRight(p.out.String(), " \n")
}

// emit writes one token, uppercasing keywords that are not qualified names.
func (p *printer) emit(tok Token) {
	text := tok.Text
	if tok.Kind == Keyword && !p.afterDot() {
		text = strings.ToUpper(text)
	}

	if p.atLineStart {
		p.writeIndent()
	} else if p.hasPrev && needSpace(p.prevKind, tok) {
		p.out.WriteByte(' ')
	}
	p.out.WriteString(text)
	p.atLineStart = false
	p.hasPrev = true
	p.prevKind = tok.Kind

	if tok.Kind == LineComment {
		p.newline()
	}
}

func (p *printer) afterDot() bool {
	return p.hasPrev && p.prevKind == Dot
}

// newline ends the current line; it never produces empty lines.
func (p *printer) newline() {
	if p.atLineStart {
		return
	}
	p.out.WriteByte('\n')
	p.atLineStart = true
}

func (p *printer) blankLine() {
	p.newline()
	p.out.WriteByte('\n')
}

func (p *printer) writeIndent() {
	for i := 0; i < p.depth; i++ {
		p.out.WriteString(indentUnit)
	}
	p.atLineStart = false
}

func (p *printer) indent() {
	p.depth++
}

func (p *printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

// needSpace decides whether a space separates prev from tok on one line.
func needSpace(prev Kind, tok Token) bool {
	switch tok.Kind {
	case Comma, Semicolon, RParen, Dot:
		return false
	case LParen:
		return prev != LParen && tok.SpaceBefore
	}
	return prev != LParen && prev != Dot
}

// inlineWidth measures toks printed on a single line. ok is false when the
// tokens cannot share one line because they contain a line comment.
func inlineWidth(toks []Token) (width int, ok bool) {
	for i, tok := range toks {
		if tok.Kind == LineComment {
			return 0, false
		}
		if i > 0 && needSpace(toks[i-1].Kind, tok) {
			width++
		}
		width += len(tok.Text)
	}
	return width, true
}
