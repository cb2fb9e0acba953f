package postprocessors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

// mockProcessor is a test processor that applies fn to every body.
type mockProcessor struct {
	name string
	fn   func(domain.Record) domain.Record
	err  error
}

func (m *mockProcessor) Name() string {
	return m.name
}

func (m *mockProcessor) Process(_ context.Context, records []domain.Record) ([]domain.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.fn == nil {
		return records, nil
	}
	out := make([]domain.Record, len(records))
	for i, r := range records {
		out[i] = m.fn(r)
	}
	return out, nil
}

func sampleRecords() []domain.Record {
	return []domain.Record{
		{SourceID: "a.pdf", Ordinal: 1, Body: "one"},
		{SourceID: "a.pdf", Ordinal: 2, Body: "two"},
	}
}

func TestNewPipeline(t *testing.T) {
	p := NewPipeline()
	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.Len() != 0 {
		t.Errorf("expected 0 processors, got %d", p.Len())
	}
}

func TestPipeline_Add(t *testing.T) {
	p := NewPipeline()
	p.Add(&mockProcessor{name: "test"})

	if p.Len() != 1 {
		t.Errorf("expected 1 processor, got %d", p.Len())
	}
	if names := p.Names(); len(names) != 1 || names[0] != "test" {
		t.Errorf("unexpected names: %v", names)
	}
}

func TestPipeline_Process_EmptyPipeline(t *testing.T) {
	out, err := NewPipeline().Process(context.Background(), sampleRecords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0].Body != "one" {
		t.Errorf("expected records unchanged, got %v", out)
	}
}

func TestPipeline_Process_Order(t *testing.T) {
	upper := &mockProcessor{name: "upper", fn: func(r domain.Record) domain.Record {
		r.Body = strings.ToUpper(r.Body)
		return r
	}}
	suffix := &mockProcessor{name: "suffix", fn: func(r domain.Record) domain.Record {
		r.Body += "!"
		return r
	}}

	out, err := NewPipeline(upper, suffix).Process(context.Background(), sampleRecords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Body != "ONE!" || out[1].Body != "TWO!" {
		t.Errorf("unexpected bodies: %q %q", out[0].Body, out[1].Body)
	}
}

func TestPipeline_Process_Error(t *testing.T) {
	boom := errors.New("boom")
	p := NewPipeline(&mockProcessor{name: "failing", err: boom})

	_, err := p.Process(context.Background(), sampleRecords())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if !strings.Contains(err.Error(), "processor failing") {
		t.Errorf("expected processor name in error, got %v", err)
	}
}

func TestPipeline_Process_RejectsNewKeys(t *testing.T) {
	renumber := &mockProcessor{name: "renumber", fn: func(r domain.Record) domain.Record {
		r.Ordinal += 10
		return r
	}}

	if _, err := NewPipeline(renumber).Process(context.Background(), sampleRecords()); err == nil {
		t.Error("expected error when a processor changes record keys")
	}
}

func TestPipeline_Process_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPipeline(&mockProcessor{name: "noop"}).Process(ctx, sampleRecords())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
