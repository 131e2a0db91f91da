// Package rewrite adapts text to a learning speed by ordered dictionary
// substitution over segmented sentences.
package rewrite

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/adaptlearn/internal/lexicon"
	"github.com/abhisek/adaptlearn/internal/logging"
	"github.com/abhisek/adaptlearn/internal/segment"
)

// Mode selects how sentences are rewritten.
type Mode int

const (
	ModePassthrough Mode = iota // Sentences unchanged
	ModeSimplify                // Lower-case, then complex terms → plain phrases
	ModeEnhance                 // Plain terms → elaborate phrases, case untouched
)

func (m Mode) String() string {
	switch m {
	case ModeSimplify:
		return "simplify"
	case ModeEnhance:
		return "enhance"
	default:
		return "passthrough"
	}
}

// Rewriter applies substitution tables to sentences.
type Rewriter struct {
	simplify lexicon.Table
	enhance  lexicon.Table

	// Split segments text for Process. Defaults to segment.Split.
	Split  func(string) []string
	logger *logging.Logger
}

// New creates a Rewriter over the given tables.
func New(simplify, enhance lexicon.Table, logger *logging.Logger) *Rewriter {
	return &Rewriter{
		simplify: simplify,
		enhance:  enhance,
		Split:    segment.Split,
		logger:   logging.OrNop(logger),
	}
}

// Default creates a Rewriter over the built-in tables.
func Default(logger *logging.Logger) *Rewriter {
	return New(lexicon.Simplify(), lexicon.Enhance(), logger)
}

// Process segments text and rewrites it. A segmentation that yields no
// sentences degrades to treating the whole text as one sentence.
func (r *Rewriter) Process(text string, mode Mode) string {
	sentences := r.Split(text)
	if len(sentences) == 0 {
		r.logger.Warn("segmentation degraded, using whole text", "chars", len(text), "mode", mode.String())
		sentences = []string{text}
	}
	return r.Rewrite(sentences, mode)
}

// Rewrite transforms each sentence according to mode and joins the results
// with a single space.
func (r *Rewriter) Rewrite(sentences []string, mode Mode) string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		switch mode {
		case ModeSimplify:
			out[i] = r.SimplifySentence(s)
		case ModeEnhance:
			out[i] = r.EnhanceSentence(s)
		default:
			out[i] = s
		}
	}
	return strings.Join(out, " ")
}

// SimplifySentence lower-cases the sentence and replaces each complex term
// in table order. Matching is on substrings, so a replacement may itself be
// rewritten by a later entry. The first character of the result is
// upper-cased.
func (r *Rewriter) SimplifySentence(sentence string) string {
	result := strings.ToLower(sentence)
	for _, sub := range r.simplify {
		from := strings.ToLower(sub.From)
		if strings.Contains(result, from) {
			result = strings.ReplaceAll(result, from, sub.To)
		}
	}
	return capitalizeFirst(result)
}

// EnhanceSentence replaces every literal occurrence of each plain term in
// table order.
func (r *Rewriter) EnhanceSentence(sentence string) string {
	result := sentence
	for _, sub := range r.enhance {
		result = strings.ReplaceAll(result, sub.From, sub.To)
	}
	return result
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + s[size:]
}
