package corpus

import (
	"strings"
	"unicode"
)

// Code-likeness thresholds.
const (
	minIndentedRun    = 2
	minKeywordHits    = 2
	minBracketDensity = 0.02
)

// codeKeywords are language keywords common in scripting examples.
var codeKeywords = map[string]struct{}{
	"def": {}, "class": {}, "import": {}, "return": {}, "elif": {}, "except": {},
	"lambda": {}, "yield": {}, "print": {}, "self": {}, "none": {}, "true": {},
	"false": {}, "function": {}, "var": {}, "const": {}, "void": {}, "public": {},
	"static": {}, "namespace": {}, "include": {}, "endif": {}, "foreach": {},
}

// IsCodeLike reports whether body contains code markers: a fenced block,
// an interactive prompt, a run of indented lines, or several language
// keywords alongside a high density of brackets.
func IsCodeLike(body string) bool {
	if strings.Contains(body, "```") {
		return true
	}

	run := 0
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, ">>>") {
			return true
		}
		if trimmed != "" && (strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")) {
			run++
			if run >= minIndentedRun {
				return true
			}
			continue
		}
		run = 0
	}

	return keywordHits(body) >= minKeywordHits && BracketDensity(body) >= minBracketDensity
}

// BracketDensity is the share of runes in body that are brackets or braces.
func BracketDensity(body string) float64 {
	total, brackets := 0, 0
	for _, r := range body {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		switch r {
		case '(', ')', '[', ']', '{', '}':
			brackets++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(brackets) / float64(total)
}

func keywordHits(body string) int {
	seen := make(map[string]struct{})
	for _, f := range strings.FieldsFunc(strings.ToLower(body), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '_'
	}) {
		if _, ok := codeKeywords[f]; ok {
			seen[f] = struct{}{}
		}
	}
	return len(seen)
}
