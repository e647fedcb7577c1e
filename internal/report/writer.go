package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"briefdesk/internal/model"
)

// ErrWrite marks a local storage write failure
var ErrWrite = errors.New("report write failure")

// timestampLayout yields second-granularity filenames; uniqueness across
// runs follows from the clock moving forward
const timestampLayout = "20060102_150405"

// nowFunc is the clock used for filenames (injectable for tests)
var nowFunc = time.Now

// Writer persists synthesis results as timestamped report artifacts
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at the given directory
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write serializes the summary to a new timestamped file and returns its
// path. Existing files are never overwritten.
func (w *Writer) Write(result model.SynthesisResult) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create reports dir: %v", ErrWrite, err)
	}

	name := fmt.Sprintf("Analysis_%s.txt", nowFunc().UTC().Format(timestampLayout))
	path := filepath.Join(w.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrWrite, path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(result.Summary); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", ErrWrite, path, err)
	}

	return path, nil
}
