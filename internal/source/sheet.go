package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"briefdesk/internal/model"
)

// SheetReader fetches values from a Google Sheet and flattens them into
// delimited text lines
type SheetReader struct {
	apiKey       string
	defaultRange string
	endpoint     string // overrides the API endpoint (tests)
}

// SheetOption customizes SheetReader creation
type SheetOption func(*SheetReader)

// WithSheetsEndpoint points the reader at a custom API endpoint
func WithSheetsEndpoint(endpoint string) SheetOption {
	return func(r *SheetReader) {
		r.endpoint = endpoint
	}
}

// NewSheetReader creates a new Sheets reader
func NewSheetReader(apiKey, defaultRange string, opts ...SheetOption) *SheetReader {
	r := &SheetReader{
		apiKey:       apiKey,
		defaultRange: defaultRange,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Kind returns the source kind this reader handles
func (r *SheetReader) Kind() model.SourceKind {
	return model.SourceSheet
}

// Read issues a values.get for the requested range and flattens the rows
func (r *SheetReader) Read(ctx context.Context, req model.SourceRequest) (*model.SourceDocument, error) {
	if r.apiKey == "" {
		return nil, fmt.Errorf("%w: GOOGLE_SHEETS_API_KEY not set", ErrUnavailable)
	}

	readRange := req.SheetRange
	if readRange == "" {
		readRange = r.defaultRange
	}

	opts := []option.ClientOption{option.WithAPIKey(r.apiKey)}
	if r.endpoint != "" {
		opts = append(opts, option.WithEndpoint(r.endpoint))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: sheets client: %v", ErrUnavailable, err)
	}

	resp, err := svc.Spreadsheets.Values.Get(req.SheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, classifySheetsError(req.SheetID, err)
	}

	text := flattenRows(resp.Values)
	return &model.SourceDocument{
		Kind:        model.SourceSheet,
		Identifier:  req.Identifier(),
		Text:        text,
		Chars:       len(text),
		RetrievedAt: time.Now().UTC(),
	}, nil
}

// classifySheetsError maps API failures onto the reader error kinds.
// A rejected range is malformed input; everything else is unavailability.
func classifySheetsError(sheetID string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest {
		return fmt.Errorf("%w: sheet %s: %v", ErrParse, sheetID, err)
	}
	return fmt.Errorf("%w: sheet %s: %v", ErrUnavailable, sheetID, err)
}

// flattenRows renders the value grid as tab-delimited lines, one per row
func flattenRows(rows [][]interface{}) string {
	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, cell := range row {
			if j > 0 {
				sb.WriteString("\t")
			}
			sb.WriteString(fmt.Sprint(cell))
		}
	}
	return sb.String()
}
