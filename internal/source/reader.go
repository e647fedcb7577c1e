package source

import (
	"context"
	"errors"
	"fmt"

	"briefdesk/internal/model"
)

// ErrUnavailable marks a network or file access failure at ingestion
var ErrUnavailable = errors.New("source unavailable")

// ErrParse marks malformed source content
var ErrParse = errors.New("source parse failure")

// Reader extracts plain text from one kind of source
type Reader interface {
	// Kind returns the source kind this reader handles
	Kind() model.SourceKind

	// Read resolves the request into a SourceDocument or fails with
	// ErrUnavailable / ErrParse (wrapped)
	Read(ctx context.Context, req model.SourceRequest) (*model.SourceDocument, error)
}

// Resolver dispatches a SourceRequest to the reader for its kind
type Resolver struct {
	readers map[model.SourceKind]Reader
}

// NewResolver creates a resolver over the given readers
func NewResolver(readers ...Reader) *Resolver {
	m := make(map[model.SourceKind]Reader, len(readers))
	for _, r := range readers {
		m[r.Kind()] = r
	}
	return &Resolver{readers: m}
}

// Resolve validates the request tag and runs the matching reader
func (r *Resolver) Resolve(ctx context.Context, req model.SourceRequest) (*model.SourceDocument, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	reader, ok := r.readers[req.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: no reader for kind %q", ErrUnavailable, req.Kind)
	}
	return reader.Read(ctx, req)
}
