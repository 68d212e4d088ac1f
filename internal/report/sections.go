// Package report parses the markdown document returned by the analysis engine
// into the typed sections the result view renders. The input is produced by an
// external model and is untrusted: both parsers are total functions that
// degrade to empty sections instead of failing.
package report

import (
	"regexp"
	"strings"
)

// Key identifies one of the four fixed report sections.
type Key string

const (
	KeySummary    Key = "summary"
	KeyTranscript Key = "transcript"
	KeyMetadata   Key = "metadata"
	KeyInsights   Key = "insights"
)

// Section is one classified chunk of the report.
type Section struct {
	Title   string
	Content string
}

// Report holds all four sections. Every key is always present; Content is
// empty when the source markdown had no matching heading.
type Report struct {
	Summary    Section
	Transcript Section
	Metadata   Section
	Insights   Section
}

// Section returns the section for a key. Unknown keys return the summary.
func (r Report) Section(k Key) Section {
	switch k {
	case KeyTranscript:
		return r.Transcript
	case KeyMetadata:
		return r.Metadata
	case KeyInsights:
		return r.Insights
	}
	return r.Summary
}

// headingRules classifies a lowercased heading by substring containment.
// Order matters: the first matching rule wins for a chunk. Kept as a table so
// new buckets (e.g. "speakers") slot in without touching Parse.
var headingRules = []struct {
	substr string
	key    Key
}{
	{"metadata", KeyMetadata},
	{"summary", KeySummary},
	{"transcript", KeyTranscript},
	{"insights", KeyInsights},
	{"qa", KeyInsights},
}

var (
	headingMarker = regexp.MustCompile(`^#{1,3}\s`)
	headingText   = regexp.MustCompile(`^#+\s*(.*)`)
)

// Parse splits a markdown document into the four report sections. Chunks start
// at a heading marker (# to ### followed by a space) and run to the next one;
// chunks with no recognized heading are dropped. When two headings land in the
// same bucket the later chunk wins. This last-write-wins behavior mirrors the
// engine's loose output contract and is deliberately not hardened against
// adversarial input.
func Parse(markdown string) Report {
	r := Report{
		Summary:    Section{Title: "Executive Summary"},
		Transcript: Section{Title: "The Transcript"},
		Metadata:   Section{Title: "Metadata"},
		Insights:   Section{Title: "QA Insights"},
	}

	for _, chunk := range splitChunks(markdown) {
		m := headingText.FindStringSubmatch(chunk)
		if m == nil {
			continue
		}
		title := strings.ToLower(strings.TrimSpace(m[1]))
		content := stripHeadingLine(chunk)

		for _, rule := range headingRules {
			if !strings.Contains(title, rule.substr) {
				continue
			}
			switch rule.key {
			case KeyMetadata:
				r.Metadata.Content = content
			case KeySummary:
				r.Summary.Content = content
			case KeyTranscript:
				r.Transcript.Content = content
			case KeyInsights:
				r.Insights.Content = content
			}
			break
		}
	}

	return r
}

// splitChunks performs a lookahead split: each heading line opens a new chunk
// and stays attached to it. Text before the first heading forms a headingless
// chunk, which Parse discards.
func splitChunks(markdown string) []string {
	lines := strings.Split(markdown, "\n")

	var chunks []string
	var current []string
	for _, line := range lines {
		if headingMarker.MatchString(line) && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = current[:0]
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n"))
	}
	return chunks
}

// stripHeadingLine removes the chunk's heading line and surrounding whitespace.
func stripHeadingLine(chunk string) string {
	if i := strings.IndexByte(chunk, '\n'); i >= 0 {
		return strings.TrimSpace(chunk[i+1:])
	}
	return ""
}
