// Package heading detects chapter labels in extracted text.
package heading

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxLabelRunes bounds the length of a detected label.
const MaxLabelRunes = 120

const (
	minCapsWords     = 2
	maxCapsWords     = 8
	maxNumberedWords = 12
)

var (
	// "Chapter 3", "CHAPTER 12: Meshing"
	chapterPattern = regexp.MustCompile(`^(?i:chapter)\s+\d+\b`)

	// "3 Meshing", "4.2.1 Named Selections"
	numberedPattern = regexp.MustCompile(`^\d+(\.\d+)*\.?\s+\p{L}`)

	whitespace = regexp.MustCompile(`\s+`)
)

// FromLeadingLine returns the first non-empty line of text if it looks
// like a heading.
func FromLeadingLine(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = Clean(line)
		if line == "" {
			continue
		}
		if IsHeadingLine(line) {
			return line, true
		}
		return "", false
	}
	return "", false
}

// IsHeadingLine reports whether a single cleaned line matches one of the
// heading patterns: "Chapter N", a numbered title, or a short ALL CAPS line.
func IsHeadingLine(line string) bool {
	if line == "" || utf8.RuneCountInString(line) > MaxLabelRunes {
		return false
	}
	switch {
	case chapterPattern.MatchString(line):
		return true
	case numberedPattern.MatchString(line):
		return len(strings.Fields(line)) <= maxNumberedWords
	default:
		return isAllCaps(line)
	}
}

func isAllCaps(line string) bool {
	words := strings.Fields(line)
	if len(words) < minCapsWords || len(words) > maxCapsWords {
		return false
	}
	letters := 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters >= minCapsWords*2
}

// Clean collapses whitespace runs and trims the result.
func Clean(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// Truncate clamps a label to MaxLabelRunes.
func Truncate(label string) string {
	if utf8.RuneCountInString(label) <= MaxLabelRunes {
		return label
	}
	return strings.TrimSpace(string([]rune(label)[:MaxLabelRunes]))
}

// FromFilename derives a readable label from a file path.
func FromFilename(uri string) string {
	name := filepath.Base(uri)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return Clean(name)
}
