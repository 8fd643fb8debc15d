package cubetrainer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// ParsePolicy controls how forgiving ParseAlgorithm is with typed or pasted
// text.
type ParsePolicy struct {
	// PrimeMarks are substrings that mark a counter-clockwise turn when
	// found anywhere after the face letter.
	PrimeMarks []string

	// Separators are split on in addition to whitespace.
	Separators string

	// FoldCase accepts lowercase face letters.
	FoldCase bool

	// FoldWidth narrows fullwidth forms (Ｒ, ＇, ，) before tokenizing.
	FoldWidth bool
}

// DefaultPrimeMarks are the apostrophe glyphs accepted by DefaultParsePolicy.
// The last entry is U+2019 read back as Windows-1252.
var DefaultPrimeMarks = []string{"'", "’", "‘", "`", "′", "´", "â€™"}

// DefaultParsePolicy returns the policy used by ParseAlgorithm.
func DefaultParsePolicy() ParsePolicy {
	marks := make([]string, len(DefaultPrimeMarks))
	copy(marks, DefaultPrimeMarks)
	return ParsePolicy{
		PrimeMarks: marks,
		Separators: ",",
		FoldCase:   true,
		FoldWidth:  true,
	}
}

// ParseAlgorithm parses free text into moves with the default policy.
// Tokens that do not start with a face letter are dropped; text with no
// valid tokens yields an empty slice.
//
//	ParseAlgorithm("r u r' u'")   // R U R' U'
//	ParseAlgorithm("R2 hello U'") // R2 U'
func ParseAlgorithm(text string) []Move {
	return DefaultParsePolicy().Parse(text)
}

// Parse tokenizes text on whitespace and the policy separators and keeps
// every token whose first rune is a face letter. A prime mark anywhere in the
// token makes a counter-clockwise turn, otherwise a 2 makes a half turn.
// All other characters in a kept token are ignored.
func (p ParsePolicy) Parse(text string) []Move {
	if p.FoldWidth {
		text = width.Narrow.String(text)
	}

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(p.Separators, r)
	})

	moves := make([]Move, 0, len(tokens))
	for _, tok := range tokens {
		if m, ok := p.parseToken(tok); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

func (p ParsePolicy) parseToken(tok string) (Move, bool) {
	first, size := utf8.DecodeRuneInString(tok)
	if first == utf8.RuneError {
		return Move{}, false
	}
	if p.FoldCase {
		first = unicode.ToUpper(first)
	}

	face, ok := faceFromLetter(first)
	if !ok {
		return Move{}, false
	}

	rest := tok[size:]
	turn := CW
	switch {
	case p.hasPrime(rest):
		turn = CCW
	case strings.ContainsRune(rest, '2'):
		turn = Half
	}

	return Move{Face: face, Turn: turn}, true
}

func (p ParsePolicy) hasPrime(s string) bool {
	for _, mark := range p.PrimeMarks {
		if mark != "" && strings.Contains(s, mark) {
			return true
		}
	}
	return false
}
