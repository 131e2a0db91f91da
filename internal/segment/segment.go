// Package segment splits study text into sentences.
//
// The splitter is a punctuation heuristic, not a language model: a sentence
// ends at '.', '?' or '!' followed by whitespace, except after a lone
// capital initial ("J. Smith") or a lowercase initialism ("e.g. this").
// Some abbreviations will still be split; callers tolerate that.
package segment

import (
	"strings"
	"unicode"
)

// Split returns the sentences of text in order, each trimmed of surrounding
// whitespace. It never returns an empty slice: when text holds no sentence at
// all (empty or blank input) the result is the text itself as one element.
func Split(text string) []string {
	runes := []rune(text)
	var out []string

	start := 0
	for i := 0; i < len(runes)-1; i++ {
		if !isTerminal(runes[i]) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if runes[i] == '.' && (afterInitial(runes, i) || afterInitialism(runes, i)) {
			continue
		}
		out = appendSentence(out, runes[start:i+1])
		start = i + 1
	}
	out = appendSentence(out, runes[start:])

	if len(out) == 0 {
		return []string{text}
	}
	return out
}

func appendSentence(out []string, r []rune) []string {
	s := strings.TrimSpace(string(r))
	if s == "" {
		return out
	}
	return append(out, s)
}

func isTerminal(r rune) bool {
	return r == '.' || r == '?' || r == '!'
}

// afterInitial reports whether the period at i closes a single uppercase
// letter that starts a word, as in "J. Smith".
func afterInitial(runes []rune, i int) bool {
	if i < 1 || !unicode.IsUpper(runes[i-1]) {
		return false
	}
	return i < 2 || !unicode.IsLetter(runes[i-2])
}

// afterInitialism reports whether the period at i closes a
// lowercase-dot-lowercase pattern, as in "e.g." or "i.e.".
func afterInitialism(runes []rune, i int) bool {
	if i < 3 {
		return false
	}
	return unicode.IsLower(runes[i-3]) && runes[i-2] == '.' && unicode.IsLower(runes[i-1])
}
