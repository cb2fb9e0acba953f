package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var errEmptyPage = errors.New("page has no content stream")

// Document is an opened PDF.
type Document interface {
	// NumPages returns the page count.
	NumPages() int

	// Page reads one page. n is 1-based.
	Page(n int) (Page, error)
}

// Page is the text of one page.
type Page struct {
	Text string
	Rows []Row
}

// Row is one line of text with its vertical position and average font size.
// Larger Y is higher on the page.
type Row struct {
	Y        float64
	FontSize float64
	Text     string
}

// Opener opens PDF bytes.
type Opener func(content []byte) (Document, error)

// openReader is the default Opener backed by ledongthuc/pdf.
func openReader(content []byte) (Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}
	return &readerDocument{r: r}, nil
}

type readerDocument struct {
	r *pdf.Reader
}

func (d *readerDocument) NumPages() int {
	return d.r.NumPage()
}

func (d *readerDocument) Page(n int) (Page, error) {
	p := d.r.Page(n)
	if p.V.IsNull() {
		return Page{}, errEmptyPage
	}

	text, err := p.GetPlainText(nil)
	if err != nil {
		return Page{}, fmt.Errorf("plain text: %w", err)
	}

	// Rows only feed the font-size cue, so a failure here is not fatal.
	rows, err := p.GetTextByRow()
	if err != nil {
		return Page{Text: text}, nil
	}

	page := Page{Text: text, Rows: make([]Row, 0, len(rows))}
	for _, row := range rows {
		if row == nil || len(row.Content) == 0 {
			continue
		}
		var (
			b    strings.Builder
			size float64
		)
		for _, t := range row.Content {
			b.WriteString(t.S)
			size += t.FontSize
		}
		page.Rows = append(page.Rows, Row{
			Y:        float64(row.Position),
			FontSize: size / float64(len(row.Content)),
			Text:     b.String(),
		})
	}
	return page, nil
}
