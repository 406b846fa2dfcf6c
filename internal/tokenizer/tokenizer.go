// Package tokenizer splits source text into display tokens.
package tokenizer

import (
	"strings"
	"unicode"
)

// Tokenize splits text on whitespace and strips each chunk down to its
// alphanumeric runes. A chunk made entirely of punctuation yields an
// empty token, which is kept in place: the display order of tokens is
// the reading order and must match the source word for word.
func Tokenize(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		var b strings.Builder
		for _, r := range field {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		tokens = append(tokens, b.String())
	}
	return tokens
}
