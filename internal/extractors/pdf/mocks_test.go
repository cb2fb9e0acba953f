package pdf

import (
	"errors"
	"fmt"
)

// mockDocument is a test double for Document.
// A page whose text is "panic" panics; "fail" returns an error.
type mockDocument struct {
	pages []Page
}

func (m *mockDocument) NumPages() int {
	return len(m.pages)
}

func (m *mockDocument) Page(n int) (Page, error) {
	if n < 1 || n > len(m.pages) {
		return Page{}, fmt.Errorf("page %d out of range", n)
	}
	p := m.pages[n-1]
	switch p.Text {
	case "panic":
		panic("malformed content stream")
	case "fail":
		return Page{}, errors.New("bad xref")
	}
	return p, nil
}

func openerFor(doc Document, err error) Opener {
	return func([]byte) (Document, error) {
		return doc, err
	}
}
