package outline

import (
	"math"

	"github.com/tdewolff/parse/v2/strconv"
)

// TokenKind distinguishes command letters from numeric operands.
type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenCommand
)

func (k TokenKind) String() string {
	switch k {
	case TokenNumber:
		return "number"
	case TokenCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Token is one lexeme of SVG path data.
type Token struct {
	Kind  TokenKind
	Text  string
	Value float64 // set for numbers
	Pos   int     // byte offset in the source
}

// Tokenize splits path data into command letters and numbers. Whitespace
// and commas separate tokens; a command letter is always a token of its
// own, and a sign or a second decimal point starts a new number, so
// "M10-5L.5.5" lexes the same as "M 10 -5 L 0.5 0.5".
func Tokenize(d string) ([]Token, error) {
	b := []byte(d)
	var toks []Token
	i := 0
	for i < len(b) {
		c := b[i]
		switch {
		case isSeparator(c):
			i++
		case isLetter(c):
			toks = append(toks, Token{Kind: TokenCommand, Text: string(c), Pos: i})
			i++
		case isNumberStart(c):
			v, n := strconv.ParseFloat(b[i:])
			if n == 0 {
				return nil, &MalformedPathError{Pos: i, Token: runAt(b, i), Reason: "invalid number"}
			}
			if math.IsInf(v, 0) || math.IsNaN(v) {
				return nil, &MalformedPathError{Pos: i, Token: string(b[i : i+n]), Reason: "number out of range"}
			}
			toks = append(toks, Token{Kind: TokenNumber, Text: string(b[i : i+n]), Value: v, Pos: i})
			i += n
		default:
			return nil, &MalformedPathError{Pos: i, Token: runAt(b, i), Reason: "unexpected character"}
		}
	}
	return toks, nil
}

// runAt returns the text from i up to the next separator, for error messages.
func runAt(b []byte, i int) string {
	j := i + 1
	for j < len(b) && !isSeparator(b[j]) {
		j++
	}
	return string(b[i:j])
}

func isSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNumberStart(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+'
}
