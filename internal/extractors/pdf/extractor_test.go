package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
)

func rawPDF() *domain.RawDocument {
	return &domain.RawDocument{
		SourceID: "mechanical.pdf",
		URI:      "/docs/mechanical.pdf",
		MIMEType: domain.MIMETypePDF,
		Content:  []byte("%PDF-1.7"),
	}
}

func TestNew(t *testing.T) {
	e := New()
	require.NotNil(t, e)
	assert.Equal(t, "pdf", e.Name())
	assert.Equal(t, []string{"application/pdf"}, e.SupportedMIMETypes())
	assert.Equal(t, 50, e.Priority())
}

func TestExtract_NilDocument(t *testing.T) {
	res, err := New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, res)
}

func TestExtract_PagesInOrder(t *testing.T) {
	doc := &mockDocument{pages: []Page{
		{Text: "Chapter 1 Introduction\nWelcome."},
		{Text: "continued text"},
		{Text: "MESHING BASICS\nThe mesher..."},
	}}
	e := NewWithOpener(openerFor(doc, nil))

	res, err := e.Extract(context.Background(), rawPDF())
	require.NoError(t, err)
	require.Len(t, res.Sections, 3)
	assert.Empty(t, res.Skipped)

	assert.Equal(t, driven.Section{Ordinal: 1, Label: "Chapter 1 Introduction", Text: "Chapter 1 Introduction\nWelcome."}, res.Sections[0])
	assert.Equal(t, 2, res.Sections[1].Ordinal)
	assert.Empty(t, res.Sections[1].Label)
	assert.Equal(t, "MESHING BASICS", res.Sections[2].Label)
}

func TestExtract_SkipsFailedPages(t *testing.T) {
	doc := &mockDocument{pages: []Page{
		{Text: "page one"},
		{Text: "fail"},
		{Text: "panic"},
		{Text: "page four"},
	}}
	e := NewWithOpener(openerFor(doc, nil))

	res, err := e.Extract(context.Background(), rawPDF())
	require.NoError(t, err)

	require.Len(t, res.Sections, 2)
	assert.Equal(t, 1, res.Sections[0].Ordinal)
	assert.Equal(t, 4, res.Sections[1].Ordinal)

	require.Len(t, res.Skipped, 2)
	assert.Equal(t, 2, res.Skipped[0].Unit)
	assert.Contains(t, res.Skipped[0].Reason, "bad xref")
	assert.Equal(t, 3, res.Skipped[1].Unit)
	assert.Contains(t, res.Skipped[1].Reason, "parser panic")
	assert.Equal(t, "mechanical.pdf", res.Skipped[1].SourceID)
}

func TestExtract_OpenFailure(t *testing.T) {
	e := NewWithOpener(openerFor(nil, errors.New("not a PDF")))

	res, err := e.Extract(context.Background(), rawPDF())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrSourceUnreadable)
	assert.Contains(t, err.Error(), "not a PDF")
}

func TestExtract_OpenPanic(t *testing.T) {
	e := NewWithOpener(func([]byte) (Document, error) {
		panic("truncated trailer")
	})

	_, err := e.Extract(context.Background(), rawPDF())
	assert.ErrorIs(t, err, domain.ErrSourceUnreadable)
}

func TestExtract_Cancelled(t *testing.T) {
	doc := &mockDocument{pages: []Page{{Text: "a"}, {Text: "b"}}}
	e := NewWithOpener(openerFor(doc, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Extract(ctx, rawPDF())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtract_GarbageBytes(t *testing.T) {
	raw := rawPDF()
	raw.Content = []byte("this is not a pdf at all")

	_, err := New().Extract(context.Background(), raw)
	assert.ErrorIs(t, err, domain.ErrSourceUnreadable)
}
