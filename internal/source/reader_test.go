package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"briefdesk/internal/model"
)

type fixedReader struct {
	kind model.SourceKind
	text string
}

func (r *fixedReader) Kind() model.SourceKind { return r.kind }

func (r *fixedReader) Read(ctx context.Context, req model.SourceRequest) (*model.SourceDocument, error) {
	return &model.SourceDocument{
		Kind:        r.kind,
		Identifier:  req.Identifier(),
		Text:        r.text,
		Chars:       len(r.text),
		RetrievedAt: time.Now().UTC(),
	}, nil
}

func TestResolver_DispatchesByKind(t *testing.T) {
	resolver := NewResolver(
		&fixedReader{kind: model.SourcePDF, text: "pdf text"},
		&fixedReader{kind: model.SourceSheet, text: "sheet text"},
	)

	doc, err := resolver.Resolve(context.Background(), model.SourceRequest{
		Kind:    model.SourceSheet,
		SheetID: "s1",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if doc.Text != "sheet text" {
		t.Errorf("Expected sheet reader to handle the request, got %q", doc.Text)
	}
}

func TestResolver_InvalidRequest(t *testing.T) {
	resolver := NewResolver(&fixedReader{kind: model.SourcePDF})

	// A pdf request with neither data nor URL is malformed
	_, err := resolver.Resolve(context.Background(), model.SourceRequest{Kind: model.SourcePDF})
	if !errors.Is(err, ErrParse) {
		t.Errorf("Expected ErrParse for invalid request, got %v", err)
	}
}

func TestResolver_UnknownKind(t *testing.T) {
	resolver := NewResolver(&fixedReader{kind: model.SourcePDF})

	_, err := resolver.Resolve(context.Background(), model.SourceRequest{
		Kind:    model.SourceTranscript,
		VideoID: "abc123def45",
	})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable for unregistered kind, got %v", err)
	}
}
