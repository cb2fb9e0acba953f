package corpus

import "strings"

const ellipsis = "..."

// Snippet returns a window of length runes from body holding the most
// occurrences of tokens. The window opens up to a quarter of its length
// before the first counted occurrence. Without any occurrence the first
// length runes are returned. Line breaks become spaces.
func Snippet(body string, tokens []string, length int) string {
	runes := []rune(body)
	if length <= 0 || len(runes) <= length {
		return flatten(string(runes))
	}

	want := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		want[t] = struct{}{}
	}
	var hits []span
	for _, s := range tokenSpans(body) {
		if _, ok := want[s.token]; ok {
			hits = append(hits, s)
		}
	}
	if len(hits) == 0 {
		return flatten(string(runes[:length])) + ellipsis
	}

	bestFirst, bestLast, bestCount := 0, 0, 0
	last := 0
	for first := range hits {
		if last < first {
			last = first
		}
		for last+1 < len(hits) && hits[last+1].end-hits[first].start <= length {
			last++
		}
		if count := last - first + 1; count > bestCount {
			bestFirst, bestLast, bestCount = first, last, count
		}
	}

	start := hits[bestFirst].start
	lead := length / 4
	if slack := start + length - hits[bestLast].end; slack < lead {
		lead = slack
	}
	if lead < 0 {
		lead = 0
	}
	start -= lead
	if start < 0 {
		start = 0
	}
	end := start + length
	if end > len(runes) {
		end = len(runes)
		start = end - length
	}

	out := flatten(string(runes[start:end]))
	if start > 0 {
		out = ellipsis + out
	}
	if end < len(runes) {
		out += ellipsis
	}
	return out
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
