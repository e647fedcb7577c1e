package source

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"briefdesk/internal/model"
)

// PDFReader extracts text from uploaded or remote PDF documents
type PDFReader struct {
	fetcher *Fetcher
}

// NewPDFReader creates a new PDF reader. The fetcher is used only for
// PDF-by-URL requests.
func NewPDFReader(fetcher *Fetcher) *PDFReader {
	return &PDFReader{fetcher: fetcher}
}

// Kind returns the source kind this reader handles
func (r *PDFReader) Kind() model.SourceKind {
	return model.SourcePDF
}

// Read extracts page texts from the PDF, in page order. Pages yielding no
// extractable text are skipped, not treated as failures.
func (r *PDFReader) Read(ctx context.Context, req model.SourceRequest) (*model.SourceDocument, error) {
	data := req.PDFData
	if len(data) == 0 {
		fetched, err := r.fetcher.Fetch(ctx, req.PDFURL)
		if err != nil {
			return nil, fmt.Errorf("%w: download pdf %s: %v", ErrUnavailable, req.PDFURL, err)
		}
		data = fetched
	}

	text, err := extractPDFText(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, req.Identifier(), err)
	}

	return &model.SourceDocument{
		Kind:        model.SourcePDF,
		Identifier:  req.Identifier(),
		Text:        text,
		Chars:       len(text),
		RetrievedAt: time.Now().UTC(),
	}, nil
}

// extractPDFText walks the document page by page and joins the non-empty
// page texts with page-break separators
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var pages []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}
		pages = append(pages, content)
	}

	return joinPages(pages), nil
}

// joinPages concatenates page texts with blank-line page breaks, dropping
// pages that are empty after trimming
func joinPages(pages []string) string {
	var kept []string
	for _, p := range pages {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "\n\n")
}
