package dotgraph

import (
	"iter"
	"unicode"
	"unicode/utf8"

	"github.com/teleivo/dotgraph/token"
)

// Scanner splits source into tokens. Words are separated by runs of whitespace and a ';' is
// always a token of its own, so "a;" is scanned as an ID followed by a semicolon. There is no
// quoting, escaping or comment support.
type Scanner struct {
	src    []byte
	offset int
	line   int
	column int
}

// NewScanner creates a new scanner that tokenizes the given source.
func NewScanner(src []byte) *Scanner {
	return &Scanner{
		src:    src,
		line:   1,
		column: 1,
	}
}

// Next advances the scanner's position by one token and returns it. A token of kind [token.EOF]
// is returned once the end of input is reached and on every call thereafter. Scanning never
// fails: words that are not reserved are returned as [token.ID].
func (sc *Scanner) Next() token.Token {
	sc.skipWhitespace()

	start := sc.pos()
	if sc.offset >= len(sc.src) {
		return token.Token{Kind: token.EOF, Start: start, End: start}
	}

	if sc.src[sc.offset] == ';' {
		sc.next()
		return token.Token{Kind: token.Semicolon, Literal: ";", Start: start, End: start}
	}

	begin, end := sc.offset, start
	for sc.offset < len(sc.src) {
		r, _ := utf8.DecodeRune(sc.src[sc.offset:])
		if r == ';' || isWhitespace(r) {
			break
		}
		end = sc.pos()
		sc.next()
	}

	literal := string(sc.src[begin:sc.offset])
	return token.Token{
		Kind:    token.Lookup(literal),
		Literal: literal,
		Start:   start,
		End:     end,
	}
}

// All returns an iterator over the remaining tokens. The final token is always [token.EOF].
func (sc *Scanner) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok := sc.Next()
			if !yield(tok) || tok.Kind == token.EOF {
				return
			}
		}
	}
}

// Tokenize returns a lazy sequence of the tokens in src ending in [token.EOF]. Every iteration
// over the sequence scans src from the beginning.
func Tokenize(src []byte) iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		NewScanner(src).All()(yield)
	}
}

// next advances past the current rune and updates the position markers.
func (sc *Scanner) next() {
	r, size := utf8.DecodeRune(sc.src[sc.offset:])
	sc.offset += size
	if r == '\n' {
		sc.line++
		sc.column = 1
	} else {
		sc.column++
	}
}

func (sc *Scanner) pos() token.Position {
	return token.Position{Line: sc.line, Column: sc.column}
}

func (sc *Scanner) skipWhitespace() {
	for sc.offset < len(sc.src) {
		r, _ := utf8.DecodeRune(sc.src[sc.offset:])
		if !isWhitespace(r) {
			return
		}
		sc.next()
	}
}

// isWhitespace determines if the rune separates words. Any Unicode white space does.
func isWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}
