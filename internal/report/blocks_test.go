package report

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
)

func TestParseBlocksOrdering(t *testing.T) {
	blocks := ParseBlocks("[00:05] Hello\nWorld\n[00:10] Bye")

	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}
	if blocks[0].Timestamp != "00:05" {
		t.Errorf("timestamp = %q, want %q", blocks[0].Timestamp, "00:05")
	}
	if len(blocks[0].Lines) != 2 || blocks[0].Lines[0].Text != "Hello" || blocks[0].Lines[1].Text != "World" {
		t.Errorf("lines = %+v", blocks[0].Lines)
	}
	if blocks[1].Timestamp != "00:10" {
		t.Errorf("timestamp = %q, want %q", blocks[1].Timestamp, "00:10")
	}
	if len(blocks[1].Lines) != 1 || blocks[1].Lines[0].Text != "Bye" {
		t.Errorf("lines = %+v", blocks[1].Lines)
	}
}

func TestParseBlocksSentinel(t *testing.T) {
	blocks := ParseBlocks("Intro line\n[00:01] Start")

	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}
	if blocks[0].Timestamp != SentinelTimestamp {
		t.Errorf("timestamp = %q, want %q", blocks[0].Timestamp, SentinelTimestamp)
	}
	if len(blocks[0].Lines) != 1 || blocks[0].Lines[0].Text != "Intro line" {
		t.Errorf("lines = %+v", blocks[0].Lines)
	}
}

func TestParseBlocksSingleSentinel(t *testing.T) {
	// Multiple leading lines share one sentinel block.
	blocks := ParseBlocks("one\ntwo\n[00:30] three")

	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}
	if len(blocks[0].Lines) != 2 {
		t.Errorf("sentinel lines = %d, want 2", len(blocks[0].Lines))
	}
}

func TestParseBlocksBlankLinesIgnored(t *testing.T) {
	blocks := ParseBlocks("[00:05] Hello\n\n\nWorld")

	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(blocks))
	}
	if len(blocks[0].Lines) != 2 {
		t.Errorf("lines = %d, want 2", len(blocks[0].Lines))
	}
}

func TestParseBlocksTranslationFlag(t *testing.T) {
	blocks := ParseBlocks("[00:05] Hola amigos\nTranslation: hello friends\ntRANSLATION: case test")

	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(blocks))
	}
	lines := blocks[0].Lines
	if lines[0].Translation {
		t.Error("primary line flagged as translation")
	}
	if !lines[1].Translation {
		t.Error("Translation: line not flagged")
	}
	if !lines[2].Translation {
		t.Error("translation prefix match should be case-insensitive")
	}
}

func TestParseBlocksTimestampMidLineIgnored(t *testing.T) {
	// A bracketed time not at line start does not open a block.
	blocks := ParseBlocks("spoke at [00:05] today")

	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(blocks))
	}
	if blocks[0].Timestamp != SentinelTimestamp {
		t.Errorf("timestamp = %q", blocks[0].Timestamp)
	}
}

func TestParseBlocksEmpty(t *testing.T) {
	if blocks := ParseBlocks(""); len(blocks) != 0 {
		t.Errorf("blocks = %d, want 0", len(blocks))
	}
}

// Totality over arbitrary content.
func TestParseBlocksArbitraryInput(t *testing.T) {
	gofakeit.Seed(7)

	for i := 0; i < 200; i++ {
		content := gofakeit.Paragraph(1, 4, 6, "\n")
		blocks := ParseBlocks(content)
		for _, b := range blocks {
			if b.Timestamp == "" {
				t.Fatal("block timestamp should never be empty")
			}
			if len(b.Lines) == 0 && b.Timestamp == SentinelTimestamp {
				t.Fatal("sentinel block should never be empty")
			}
		}
	}
}
