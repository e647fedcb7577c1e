package report

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"briefdesk/internal/model"
)

func TestWriter_WritesSummary(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir)

	path, err := writer.Write(model.SynthesisResult{Summary: "executive summary text"})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if string(content) != "executive summary text" {
		t.Errorf("Report content %q, want the summary", content)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("Report written outside the reports dir: %s", path)
	}
}

func TestWriter_FilenamesIncreaseWithClock(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	origNow := nowFunc
	nowFunc = func() time.Time { return clock }
	defer func() { nowFunc = origNow }()

	var paths []string
	for i := 0; i < 3; i++ {
		path, err := writer.Write(model.SynthesisResult{Summary: "s"})
		if err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
		paths = append(paths, path)
		clock = clock.Add(time.Second)
	}

	// Unique and strictly increasing in timestamp order
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	for i := range paths {
		if paths[i] != sorted[i] {
			t.Fatalf("Filenames not increasing: %v", paths)
		}
	}
	for i := 1; i < len(paths); i++ {
		if paths[i] == paths[i-1] {
			t.Fatalf("Duplicate report filename: %s", paths[i])
		}
	}
}

func TestWriter_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir)

	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	origNow := nowFunc
	nowFunc = func() time.Time { return fixed }
	defer func() { nowFunc = origNow }()

	if _, err := writer.Write(model.SynthesisResult{Summary: "first"}); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	_, err := writer.Write(model.SynthesisResult{Summary: "second"})
	if !errors.Is(err, ErrWrite) {
		t.Errorf("Expected ErrWrite on filename collision, got %v", err)
	}
}

func TestWriter_UnwritableDir(t *testing.T) {
	writer := NewWriter(filepath.Join(t.TempDir(), "file-in-the-way", "reports"))

	// Make the parent path a file so MkdirAll fails
	parent := filepath.Dir(writer.dir)
	if err := os.WriteFile(parent, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, err := writer.Write(model.SynthesisResult{Summary: "s"})
	if !errors.Is(err, ErrWrite) {
		t.Errorf("Expected ErrWrite, got %v", err)
	}
}
