// Package normalize canonicalizes free-text name guesses so matching
// stays pure and testable independent of storage.
package normalize

import (
	"strings"
	"unicode"
)

// suffixes maps recognized generational suffixes to their canonical form
var suffixes = map[string]string{
	"jr":  "jr",
	"jr.": "jr",
	"sr":  "sr",
	"sr.": "sr",
	"ii":  "ii",
	"iii": "iii",
	"iv":  "iv",
	"v":   "v",
}

// Name is a canonicalized name: a base comparison key plus a suffix
// marker stripped from the raw text ("jr", "iii", ... or empty)
type Name struct {
	Base   string
	Suffix string
}

// Parse canonicalizes raw guess text:
//   - case-folds
//   - strips punctuation, keeping hyphens and apostrophes that sit
//     inside a word ("Ja'Marr", "Amon-Ra")
//   - collapses whitespace
//   - strips a trailing generational suffix into Name.Suffix
func Parse(raw string) Name {
	lower := strings.ToLower(raw)

	var b strings.Builder
	b.Grow(len(lower))
	runes := []rune(lower)
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case (r == '-' || r == '\'') && interior(runes, i):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	suffix := ""
	if len(fields) > 1 {
		if s, ok := suffixes[fields[len(fields)-1]]; ok {
			suffix = s
			fields = fields[:len(fields)-1]
		}
	}

	return Name{Base: strings.Join(fields, " "), Suffix: suffix}
}

// interior reports whether position i sits between two letters
func interior(runes []rune, i int) bool {
	return i > 0 && i < len(runes)-1 &&
		unicode.IsLetter(runes[i-1]) && unicode.IsLetter(runes[i+1])
}

// Key returns the full comparison key for raw text. Key is idempotent:
// Key(Key(s)) == Key(s).
func Key(raw string) string {
	n := Parse(raw)
	if n.Suffix == "" {
		return n.Base
	}
	return n.Base + " " + n.Suffix
}

// Matches reports whether a guessed name matches a candidate name.
// Base keys must be equal. A suffix in the guess only matches a
// candidate that carries the same suffix; a guess without a suffix
// matches regardless of the candidate's suffix.
func Matches(guess, candidate Name) bool {
	if guess.Base == "" || guess.Base != candidate.Base {
		return false
	}
	return guess.Suffix == "" || guess.Suffix == candidate.Suffix
}
