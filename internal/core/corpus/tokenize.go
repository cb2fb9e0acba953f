package corpus

import (
	"strings"
	"unicode"
)

// minTokenLength is the shortest token kept, in runes.
const minTokenLength = 2

// stopWords are dropped at index and query time.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`a an the and or but if then else for to of in on at by with as
		is are was were be been being it its this that these those from up down over under again
		further than so such into about between through during before after above below out off
		own same too very can will just don should now not no nor only also may must shall which
		who whom whose what when where why how all any both each few more most other some our your
		their his her them they we you he she him me my do does did has have had having`) {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether w is in the fixed stop-word set.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// span is a token and its rune offsets within the source text.
type span struct {
	token string
	start int
	end   int
}

// Tokenize lowercases text, splits it on non-alphanumeric boundaries and
// drops short tokens and stop words.
func Tokenize(text string) []string {
	spans := tokenSpans(text)
	tokens := make([]string, len(spans))
	for i, s := range spans {
		tokens[i] = s.token
	}
	return tokens
}

// UniqueTokens tokenizes text and removes duplicates, keeping first-seen order.
func UniqueTokens(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range Tokenize(text) {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

func tokenSpans(text string) []span {
	var (
		spans []span
		b     strings.Builder
		start = -1
		pos   = 0
	)
	flush := func(end int) {
		if start < 0 {
			return
		}
		tok := b.String()
		b.Reset()
		if end-start >= minTokenLength && !IsStopWord(tok) {
			spans = append(spans, span{token: tok, start: start, end: end})
		}
		start = -1
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = pos
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			flush(pos)
		}
		pos++
	}
	flush(pos)
	return spans
}
