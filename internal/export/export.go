// Package export writes the analysis result to local files: the raw markdown
// verbatim, and a rendered plain-text report. Filenames embed the current
// date, matching the download names of the web surface this app descends
// from.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/noteninja/noteninja/internal/report"
)

// WriteTranscript writes the raw markdown verbatim and returns the file path.
func WriteTranscript(dir, markdown string, now time.Time) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("Note-Ninja-Transcript-%s.txt", now.Format("2006-01-02")))
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return path, nil
}

// WriteReport renders the parsed report as plain text and returns the file
// path. Empty sections are skipped.
func WriteReport(dir string, r report.Report, now time.Time) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("Note-Ninja-Report-%s.txt", now.Format("2006-01-02")))
	if err := os.WriteFile(path, []byte(renderReport(r)), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

func renderReport(r report.Report) string {
	var b strings.Builder

	writeSection(&b, r.Metadata, r.Metadata.Content)
	writeSection(&b, r.Summary, r.Summary.Content)
	writeSection(&b, r.Transcript, renderTranscript(r.Transcript.Content))
	writeSection(&b, r.Insights, r.Insights.Content)

	return b.String()
}

func writeSection(b *strings.Builder, s report.Section, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	b.WriteString(strings.ToUpper(s.Title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len(s.Title)))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
}

// renderTranscript lays blocks out with a timestamp gutter; translation lines
// are indented under their original.
func renderTranscript(content string) string {
	blocks := report.ParseBlocks(content)
	if len(blocks) == 0 {
		return ""
	}

	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		for j, line := range block.Lines {
			switch {
			case j == 0:
				fmt.Fprintf(&b, "[%s] %s\n", block.Timestamp, line.Text)
			case line.Translation:
				fmt.Fprintf(&b, "        > %s\n", line.Text)
			default:
				fmt.Fprintf(&b, "        %s\n", line.Text)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
