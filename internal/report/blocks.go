package report

import (
	"regexp"
	"strings"
)

// SentinelTimestamp marks content that preceded any recognized timestamp.
const SentinelTimestamp = "--:--"

// translationPrefix flags lines carrying an English rendering of the line
// above. Matching is case-insensitive.
const translationPrefix = "translation:"

// Line is one content line of a transcript block.
type Line struct {
	Text        string
	Translation bool
}

// Block groups the speech between two timestamp markers.
type Block struct {
	Timestamp string
	Lines     []Line
}

var timestampMarker = regexp.MustCompile(`^\[(\d{2}:\d{2})\]\s*`)

// ParseBlocks segments transcript content into timestamped blocks. A line
// opening with [MM:SS] starts a new block; other non-blank lines append to the
// open block, or to a leading sentinel block when no timestamp has been seen
// yet. Blank lines are skipped without closing blocks.
func ParseBlocks(content string) []Block {
	var blocks []Block
	var current *Block

	for _, line := range strings.Split(content, "\n") {
		if m := timestampMarker.FindStringSubmatch(line); m != nil {
			if current != nil {
				blocks = append(blocks, *current)
			}
			current = &Block{
				Timestamp: m[1],
				Lines:     []Line{newLine(line[len(m[0]):])},
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if current == nil {
			current = &Block{Timestamp: SentinelTimestamp}
		}
		current.Lines = append(current.Lines, newLine(trimmed))
	}

	if current != nil {
		blocks = append(blocks, *current)
	}
	return blocks
}

func newLine(text string) Line {
	return Line{
		Text:        text,
		Translation: strings.HasPrefix(strings.ToLower(text), translationPrefix),
	}
}
