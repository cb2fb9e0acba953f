package html

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/manuals/internal/core/ports/driven"
	"github.com/custodia-labs/manuals/internal/extractors/heading"
)

// dropped subtrees contribute no text.
var dropped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Nav:      true,
	atom.Header:   true,
	atom.Footer:   true,
	atom.Noscript: true,
	atom.Svg:      true,
	atom.Template: true,
}

// paragraph elements are separated from their neighbours by a blank line.
var paragraph = map[atom.Atom]bool{
	atom.P:          true,
	atom.Div:        true,
	atom.Pre:        true,
	atom.Table:      true,
	atom.Ul:         true,
	atom.Ol:         true,
	atom.Dl:         true,
	atom.Blockquote: true,
	atom.Section:    true,
	atom.Article:    true,
	atom.Main:       true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Hr:         true,
}

// line elements end with a single newline.
var line = map[atom.Atom]bool{
	atom.Li: true,
	atom.Tr: true,
	atom.Br: true,
	atom.Dt: true,
	atom.Dd: true,
}

type section struct {
	label string
	text  strings.Builder
}

type walker struct {
	title    string
	sections []*section
	cur      *section
	inPre    int
}

func newWalker() *walker {
	w := &walker{cur: &section{}}
	w.sections = append(w.sections, w.cur)
	return w
}

func (w *walker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
		if dropped[n.DataAtom] {
			return
		}
		switch n.DataAtom {
		case atom.Title:
			if w.title == "" {
				w.title = heading.Clean(textOf(n))
			}
			return
		case atom.H1, atom.H2:
			w.open(heading.Clean(textOf(n)))
		case atom.H3:
			if w.cur.label == "" {
				w.cur.label = heading.Truncate(heading.Clean(textOf(n)))
			}
		case atom.Pre:
			w.inPre++
			defer func() { w.inPre-- }()
		}
	}

	if n.Type == html.ElementNode && paragraph[n.DataAtom] {
		w.cur.text.WriteString("\n\n")
		defer w.cur.text.WriteString("\n\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
	if n.Type == html.ElementNode && line[n.DataAtom] {
		w.cur.text.WriteString("\n")
	}
}

// open starts a new section labelled by an h1 or h2.
func (w *walker) open(label string) {
	w.cur = &section{label: heading.Truncate(label)}
	w.sections = append(w.sections, w.cur)
}

func (w *walker) text(s string) {
	if w.inPre > 0 {
		w.cur.text.WriteString(s)
		return
	}
	collapsed := strings.Join(strings.Fields(s), " ")
	lineStart := w.atLineStart()
	if collapsed == "" {
		if s != "" && !lineStart {
			w.cur.text.WriteString(" ")
		}
		return
	}
	if !lineStart && (s[0] == ' ' || s[0] == '\n' || s[0] == '\t') {
		collapsed = " " + collapsed
	}
	last := s[len(s)-1]
	if last == ' ' || last == '\n' || last == '\t' {
		collapsed += " "
	}
	w.cur.text.WriteString(collapsed)
}

// finish drops empty sections. A leading section without a heading takes
// the page title.
func (w *walker) finish() []driven.Section {
	out := make([]driven.Section, 0, len(w.sections))
	for i, s := range w.sections {
		text := trimBlankLines(s.text.String())
		if text == "" {
			continue
		}
		label := s.label
		if i == 0 && label == "" {
			label = heading.Truncate(w.title)
		}
		out = append(out, driven.Section{Label: label, Text: text})
	}
	return out
}

// trimBlankLines drops blank lines around s while keeping the indentation
// of its first line, which matters for sections that open with a pre block.
func trimBlankLines(s string) string {
	s = strings.TrimRight(s, " \t\n")
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 || strings.TrimSpace(s[:i]) != "" {
			break
		}
		s = s[i+1:]
	}
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// atLineStart reports whether the current section is empty or ends a line.
func (w *walker) atLineStart() bool {
	b := w.cur.text.String()
	return b == "" || strings.HasSuffix(b, "\n")
}

// textOf concatenates the text beneath n.
func textOf(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
			return
		}
		if n.Type == html.ElementNode && dropped[n.DataAtom] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}
