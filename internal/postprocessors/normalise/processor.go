// Package normalise cleans up whitespace and control characters in
// extracted text while keeping the line structure code detection relies on.
package normalise

import (
	"context"
	"strings"
	"unicode"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
)

// Name is the processor name used in configuration.
const Name = "normalise"

// DefaultTabWidth is the number of spaces a leading tab expands to.
const DefaultTabWidth = 4

// Ensure Processor implements the interface.
var _ driven.RecordProcessor = (*Processor)(nil)

// Processor normalises record bodies.
type Processor struct {
	tabWidth int
}

// Option configures the processor.
type Option func(*Processor)

// WithTabWidth sets how many spaces a leading tab becomes.
func WithTabWidth(width int) Option {
	return func(p *Processor) {
		if width > 0 {
			p.tabWidth = width
		}
	}
}

// New creates a new normaliser with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{tabWidth: DefaultTabWidth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process normalises every record body. Labels are cleaned too.
func (p *Processor) Process(_ context.Context, records []domain.Record) ([]domain.Record, error) {
	out := make([]domain.Record, len(records))
	for i, r := range records {
		r.Body = p.Text(r.Body)
		r.Label = strings.Join(strings.Fields(stripControl(r.Label)), " ")
		out[i] = r
	}
	return out, nil
}

// Text applies the normalisation rules to one body:
//   - control characters are removed and other spaces become ' '
//   - leading indentation is kept, with tabs expanded
//   - interior runs of blanks collapse to one space
//   - trailing blanks are trimmed from each line
//   - runs of blank lines collapse to one paragraph break
func (p *Processor) Text(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = stripControl(body)

	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = p.line(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	// Lines are already right-trimmed, so only a trailing paragraph break
	// remains; the first line keeps its indentation.
	return strings.Trim(strings.Join(out, "\n"), "\n")
}

func (p *Processor) line(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	indent := 0
	for _, r := range line[:len(line)-len(trimmed)] {
		if r == '\t' {
			indent += p.tabWidth
		} else {
			indent++
		}
	}

	return strings.Repeat(" ", indent) + strings.Join(strings.Fields(trimmed), " ")
}

// stripControl drops non-printable runes except newline and tab, and maps
// other whitespace (form feeds, carriage returns, no-break spaces) to
// newlines or spaces.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r == '\r' || r == '\f' || r == '\v':
			return '\n'
		case unicode.IsSpace(r):
			return ' '
		case !unicode.IsPrint(r):
			return -1
		}
		return r
	}, s)
}
