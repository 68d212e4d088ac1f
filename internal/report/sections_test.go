package report

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
)

func TestParseFullDocument(t *testing.T) {
	md := "# Metadata\nDuration: 12:30\nSpeakers: 2\n\n" +
		"## Executive Summary\nThe team aligned on launch.\n\n" +
		"## The Transcript\n[00:00] Speaker 1: Hello.\n\n" +
		"## QA Insights\n- Decision: ship Friday"

	r := Parse(md)

	if r.Metadata.Content != "Duration: 12:30\nSpeakers: 2" {
		t.Errorf("metadata = %q", r.Metadata.Content)
	}
	if r.Summary.Content != "The team aligned on launch." {
		t.Errorf("summary = %q", r.Summary.Content)
	}
	if r.Transcript.Content != "[00:00] Speaker 1: Hello." {
		t.Errorf("transcript = %q", r.Transcript.Content)
	}
	if r.Insights.Content != "- Decision: ship Friday" {
		t.Errorf("insights = %q", r.Insights.Content)
	}
}

func TestParseEmptyInput(t *testing.T) {
	r := Parse("")

	for _, k := range []Key{KeySummary, KeyTranscript, KeyMetadata, KeyInsights} {
		s := r.Section(k)
		if s.Content != "" {
			t.Errorf("%s content = %q, want empty", k, s.Content)
		}
		if s.Title == "" {
			t.Errorf("%s should keep its default title", k)
		}
	}
}

func TestParseNoHeadings(t *testing.T) {
	r := Parse("just some prose\nwith no structure at all")

	if r.Summary.Content != "" || r.Transcript.Content != "" {
		t.Error("headingless input should produce empty sections")
	}
}

// Totality: any input yields all four sections without panicking.
func TestParseArbitraryInput(t *testing.T) {
	gofakeit.Seed(11)

	for i := 0; i < 200; i++ {
		var b strings.Builder
		for j := 0; j < gofakeit.Number(0, 8); j++ {
			switch gofakeit.Number(0, 3) {
			case 0:
				b.WriteString("# " + gofakeit.Sentence(3) + "\n")
			case 1:
				b.WriteString("### " + gofakeit.BuzzWord() + "\n")
			case 2:
				b.WriteString(gofakeit.Paragraph(1, 2, 5, "\n") + "\n")
			case 3:
				b.WriteString("####\n#\n[\n")
			}
		}

		r := Parse(b.String())
		if r.Summary.Title == "" || r.Transcript.Title == "" ||
			r.Metadata.Title == "" || r.Insights.Title == "" {
			t.Fatalf("input %d: section titles should always be present", i)
		}
	}
}

func TestParseLastWriteWins(t *testing.T) {
	md := "# Summary\nfirst body\n# Session Summary\nsecond body"

	r := Parse(md)

	if r.Summary.Content != "second body" {
		t.Errorf("summary = %q, want %q", r.Summary.Content, "second body")
	}
}

func TestParseUnrecognizedHeadingDropped(t *testing.T) {
	md := "# Appendix\nshould vanish\n# Summary\nkept"

	r := Parse(md)

	if r.Summary.Content != "kept" {
		t.Errorf("summary = %q", r.Summary.Content)
	}
	for _, k := range []Key{KeyTranscript, KeyMetadata, KeyInsights} {
		if got := r.Section(k).Content; got != "" {
			t.Errorf("%s = %q, want empty", k, got)
		}
	}
}

func TestParseRuleOrder(t *testing.T) {
	// A heading matching both "metadata" and "summary" lands in the first
	// matching bucket.
	r := Parse("# Metadata Summary\nbody")

	if r.Metadata.Content != "body" {
		t.Errorf("metadata = %q", r.Metadata.Content)
	}
	if r.Summary.Content != "" {
		t.Errorf("summary = %q, want empty", r.Summary.Content)
	}
}

func TestParseQAHeadingIsInsights(t *testing.T) {
	r := Parse("## QA & Review\nanswers here")

	if r.Insights.Content != "answers here" {
		t.Errorf("insights = %q", r.Insights.Content)
	}
}

func TestParseDeepHeadingLevels(t *testing.T) {
	r := Parse("### the transcript\n[00:01] hi")

	if r.Transcript.Content != "[00:01] hi" {
		t.Errorf("transcript = %q", r.Transcript.Content)
	}
}
