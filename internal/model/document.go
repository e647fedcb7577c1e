package model

import (
	"fmt"
	"strings"
	"time"
)

// SourceKind identifies the type of an ingested source
type SourceKind string

const (
	SourcePDF        SourceKind = "pdf"
	SourceSheet      SourceKind = "sheet"
	SourceTranscript SourceKind = "transcript"
)

// SourceRequest is the tagged union describing one requested source.
// Exactly one of the per-kind field groups is meaningful; Kind is the tag
// and is resolved once at ingestion entry, never re-sniffed downstream.
type SourceRequest struct {
	Kind SourceKind

	// PDF: either uploaded bytes (with a display name) or a remote URL
	PDFName string
	PDFData []byte
	PDFURL  string

	// Sheet: spreadsheet ID plus an optional A1 range
	SheetID    string
	SheetRange string

	// Transcript: video URL or bare 11-character video ID
	VideoID string
}

// Identifier returns the human-readable locator for the request
func (r SourceRequest) Identifier() string {
	switch r.Kind {
	case SourcePDF:
		if r.PDFURL != "" {
			return r.PDFURL
		}
		return r.PDFName
	case SourceSheet:
		if r.SheetRange != "" {
			return r.SheetID + "!" + r.SheetRange
		}
		return r.SheetID
	case SourceTranscript:
		return r.VideoID
	}
	return ""
}

// Validate checks that the request carries the fields its tag requires
func (r SourceRequest) Validate() error {
	switch r.Kind {
	case SourcePDF:
		if len(r.PDFData) == 0 && r.PDFURL == "" {
			return fmt.Errorf("pdf request needs uploaded data or a URL")
		}
	case SourceSheet:
		if r.SheetID == "" {
			return fmt.Errorf("sheet request needs a spreadsheet ID")
		}
	case SourceTranscript:
		if r.VideoID == "" {
			return fmt.Errorf("transcript request needs a video URL or ID")
		}
	default:
		return fmt.Errorf("unknown source kind: %q", r.Kind)
	}
	return nil
}

// SourceDocument is the extracted plain text of one source.
// Immutable after creation; discarded after normalization.
type SourceDocument struct {
	Kind        SourceKind `json:"kind"`
	Identifier  string     `json:"identifier"`
	Text        string     `json:"-"`
	Chars       int        `json:"chars"`
	RetrievedAt time.Time  `json:"retrieved_at"`
}

// NormalizedCorpus is the ordered, provenance-labeled text body assembled
// from all ingested sources for one run. Block order equals ingestion order.
type NormalizedCorpus struct {
	Blocks []CorpusBlock
	Text   string
}

// CorpusBlock is one labeled document inside the corpus
type CorpusBlock struct {
	Kind       SourceKind
	Identifier string
	Text       string
}

// Len returns the total character count of the corpus text
func (c NormalizedCorpus) Len() int {
	return len(c.Text)
}

// Header returns the provenance marker prefixed to a block's text
func (b CorpusBlock) Header() string {
	return fmt.Sprintf("=== %s: %s ===", strings.ToUpper(string(b.Kind)), b.Identifier)
}
