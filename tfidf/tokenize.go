package tfidf

import (
	"strings"
	"unicode"
)

// minTokenRunes is the shortest run of word characters kept as a token.
const minTokenRunes = 2

// Tokenize case-folds text and splits it into word tokens.
// A token is a maximal run of letters, digits, marks, or underscores at
// least two runes long; every other rune separates tokens, so punctuation
// never reaches the output.
func Tokenize(text string) []string {
	runes := []rune(strings.ToLower(text))

	var tokens []string
	start := -1
	for i, r := range runes {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start >= minTokenRunes {
			tokens = append(tokens, string(runes[start:i]))
		}
		start = -1
	}
	if start >= 0 && len(runes)-start >= minTokenRunes {
		tokens = append(tokens, string(runes[start:]))
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}
