package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/noteninja/noteninja/internal/report"
)

var testDate = time.Date(2024, 3, 9, 15, 30, 0, 0, time.UTC)

func TestWriteTranscriptVerbatim(t *testing.T) {
	dir := t.TempDir()
	md := "# Summary\nAll good\n# Transcript\n[00:00] Hi"

	path, err := WriteTranscript(dir, md, testDate)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Base(path) != "Note-Ninja-Transcript-2024-03-09.txt" {
		t.Errorf("filename = %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != md {
		t.Errorf("content = %q, want raw markdown verbatim", data)
	}
}

func TestWriteReportRendersSections(t *testing.T) {
	dir := t.TempDir()
	r := report.Parse("# Metadata\nDuration: 01:00\n# Summary\nShort one.\n# Transcript\n[00:05] Hola\nTranslation: hello")

	path, err := WriteReport(dir, r, testDate)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Base(path) != "Note-Ninja-Report-2024-03-09.txt" {
		t.Errorf("filename = %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "EXECUTIVE SUMMARY") {
		t.Error("report should contain the summary heading")
	}
	if !strings.Contains(text, "[00:05] Hola") {
		t.Error("report should contain the transcript block")
	}
	if !strings.Contains(text, "> Translation: hello") {
		t.Error("translation lines should be marked in the gutter")
	}
	// Insights had no heading in the source; empty sections are skipped.
	if strings.Contains(text, "QA INSIGHTS") {
		t.Error("empty sections should not be rendered")
	}
}
