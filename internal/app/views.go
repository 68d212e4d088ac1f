package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/noteninja/noteninja/internal/report"
	"github.com/noteninja/noteninja/internal/session"
	"github.com/noteninja/noteninja/internal/ui"
)

// View renders the current workflow stage.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var body string
	switch m.view {
	case ViewLanding:
		body = m.renderLanding()
	case ViewLogin:
		body = m.renderLogin()
	case ViewActive:
		body = m.renderActive()
	case ViewPreview:
		body = m.renderPreview()
	case ViewResult:
		body = m.renderResult()
	}

	sections := []string{m.renderHeader(), m.divider(), body}
	if m.notice != "" {
		sections = append(sections, ui.NoticeStyle.Render(m.notice))
	}
	sections = append(sections, m.divider(), m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) divider() string {
	return ui.DividerStyle.Render(strings.Repeat("─", m.width))
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("NOTE NINJA")
	tagline := ui.TaglineStyle.Render(" — Elite Multimodal Transcription")

	var mode string
	if m.user != nil {
		mode = ui.DimStyle.Render("  mode: ") + ui.SelectedStyle.Render(m.mode.String())
	}

	var who string
	if m.user != nil {
		who = ui.DimStyle.Render("  [" + m.user.Initials + "] " + m.user.Email)
	}

	return title + tagline + mode + who
}

func (m Model) renderLanding() string {
	lines := []string{
		"",
		ui.TitleStyle.Render("  Elite Multimodal Transcription"),
		"",
		"  Execute deep linguistic analysis with 100% fidelity. The engine is",
		"  optimized for technical jargon and complex multi-speaker environments.",
		"",
		ui.TaglineStyle.Render("  ZERO-LOSS ENGINE V2.5"),
		"",
		"  " + ui.SelectedStyle.Render("Live Intercept") + ui.DimStyle.Render("  capture audio in real time"),
		"  " + ui.SelectedStyle.Render("File Processing") + ui.DimStyle.Render(" ingest WAV, MP3, or M4A assets"),
		"",
		ui.DimStyle.Render("  Press Enter to sign in"),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderLogin() string {
	lines := []string{
		"",
		ui.TitleStyle.Render("  Note Ninja"),
		ui.DimStyle.Render("  Elite Multimodal Transcription Engine"),
		"",
		"  " + ui.BadgeStyle.Render("● ZERO-LOSS ENGINE READY"),
		"",
		ui.DimStyle.Render("  Press Enter to continue with the demo identity"),
		ui.DimStyle.Render("  Esc to go back"),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderActive() string {
	if m.status.Step == session.StepRecording {
		lines := []string{
			"",
			"  " + ui.RecordingDotStyle.Render("● SIGNAL CAPTURING"),
			"",
			"  " + ui.ClockStyle.Render(formatClock(m.recordingSeconds)),
			"",
			ui.DimStyle.Render("  Press Space to cease intercept"),
		}
		return strings.Join(lines, "\n")
	}

	lines := []string{
		"",
		"  " + ui.IdleDotStyle.Render("○ IDLE"),
		"",
		"  " + ui.SelectedStyle.Render("Space") + ui.DimStyle.Render("  start a live intercept"),
		"  " + ui.SelectedStyle.Render("i") + ui.DimStyle.Render("      import an audio file"),
	}

	if m.importing {
		lines = append(lines,
			"",
			"  "+ui.SelectedStyle.Render("File path: ")+m.pathInput+ui.SelectedStyle.Render("▌"),
			ui.DimStyle.Render("  Enter to import, Esc to cancel"),
		)
	}

	if m.status.Step == session.StepError {
		lines = append(lines,
			"",
			"  "+ui.ErrorStyle.Render("Error: ")+ui.ErrorTextStyle.Render(m.status.Message),
		)
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderPreview() string {
	if m.pending == nil {
		return ui.DimStyle.Render("  No pending audio.")
	}

	playState := "▶ Play"
	if m.playing {
		playState = "⏸ Playing"
	}

	lines := []string{
		"",
		ui.TitleStyle.Render("  Intercept Quality Check"),
		ui.DimStyle.Render("  Verify the auditory feed before final linguistic ingestion."),
		"",
		fmt.Sprintf("  %s  %s",
			ui.SelectedStyle.Render(playState),
			ui.DimStyle.Render(fmt.Sprintf("%d KB  %s", len(m.pending.Data)/1024, m.pending.MimeType))),
		"",
		"  " + ui.SelectedStyle.Render("Enter") + ui.DimStyle.Render("  execute analysis") +
			"   " + ui.SelectedStyle.Render("d") + ui.DimStyle.Render(" discard") +
			"   " + ui.SelectedStyle.Render("p") + ui.DimStyle.Render(" play/pause"),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderResult() string {
	switch m.status.Step {
	case session.StepAnalyzing:
		lines := []string{
			"",
			"  " + ui.SpinnerStyle.Render("⟳ Engine Active"),
			"",
			ui.DimStyle.Render("  Executing deep linguistic extraction protocols..."),
		}
		return strings.Join(lines, "\n")

	case session.StepError:
		lines := []string{
			"",
			"  " + ui.ErrorStyle.Render("Analysis Interrupted"),
			"",
		}
		for _, wl := range wrapText(m.status.Message, max(20, m.width-4)) {
			lines = append(lines, "  "+ui.ErrorTextStyle.Render(wl))
		}
		lines = append(lines,
			"",
			"  "+ui.SelectedStyle.Render("r")+ui.DimStyle.Render(" retry sequence")+
				"   "+ui.SelectedStyle.Render("b")+ui.DimStyle.Render(" go back"),
		)
		return strings.Join(lines, "\n")
	}

	return m.renderReport()
}

// renderReport shows the parsed result behind tabs. The report is recomputed
// from the raw markdown on every render; parsing is a pure function of the
// result text.
func (m Model) renderReport() string {
	parsed := report.Parse(m.result)

	var lines []string
	lines = append(lines, "", "  "+m.renderTabs(parsed), "")

	active := parsed.Section(m.activeTab)
	lines = append(lines, "  "+ui.TitleStyle.Render(active.Title))
	lines = append(lines, "")

	if strings.TrimSpace(active.Content) == "" {
		lines = append(lines, ui.DimStyle.Render("  No data captured for this sector"))
	} else if m.activeTab == report.KeyTranscript {
		lines = append(lines, m.renderTranscript(active.Content)...)
	} else {
		for _, raw := range strings.Split(active.Content, "\n") {
			for _, wl := range wrapText(raw, max(20, m.width-4)) {
				lines = append(lines, "  "+wl)
			}
		}
	}

	if m.historyCount > 0 {
		lines = append(lines, "", ui.DimStyle.Render(fmt.Sprintf("  %d analyses this session", m.historyCount)))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderTabs(parsed report.Report) string {
	tabs := []struct {
		key   report.Key
		num   string
		label string
	}{
		{report.KeySummary, "1", "Summary"},
		{report.KeyTranscript, "2", "Transcript"},
		{report.KeyMetadata, "3", "Metadata"},
		{report.KeyInsights, "4", "Insights"},
	}

	var parts []string
	for _, t := range tabs {
		label := t.num + ":" + t.label
		if t.key == m.activeTab {
			parts = append(parts, ui.TabActiveStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, ui.TabStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

// renderTranscript lays blocks out with a timestamp gutter; translation
// lines are dimmed and italicized under their originals.
func (m Model) renderTranscript(content string) []string {
	blocks := report.ParseBlocks(content)
	textWidth := max(20, m.width-12)

	var lines []string
	for i, block := range blocks {
		if i > 0 {
			lines = append(lines, "")
		}
		ts := ui.TimestampStyle.Render("[" + block.Timestamp + "]")
		for j, line := range block.Lines {
			prefix := strings.Repeat(" ", lipgloss.Width(ts)+2)
			wrapped := wrapText(line.Text, textWidth)
			for k, wl := range wrapped {
				styled := wl
				if line.Translation {
					styled = ui.TranslationStyle.Render(wl)
				}
				if j == 0 && k == 0 {
					lines = append(lines, "  "+ts+" "+styled)
				} else {
					lines = append(lines, "  "+prefix+styled)
				}
			}
		}
	}
	return lines
}

func (m Model) renderFooter() string {
	var parts []string
	add := func(key, desc string) {
		parts = append(parts, ui.FooterKeyStyle.Render(key)+ui.FooterDescStyle.Render(" "+desc))
	}

	switch m.view {
	case ViewLanding:
		add("Enter", "Sign in")
	case ViewLogin:
		add("Enter", "Continue")
		add("Esc", "Back")
	case ViewActive:
		if m.status.Step == session.StepRecording {
			add("Space", "Stop")
		} else {
			add("Space", "Record")
			add("i", "Import")
			add("m", "Mode")
			add("s", "Sign out")
		}
	case ViewPreview:
		add("Enter", "Analyze")
		add("p", "Play")
		add("d", "Discard")
		add("m", "Mode")
	case ViewResult:
		switch m.status.Step {
		case session.StepCompleted:
			add("Tab", "Section")
			add("e", "Export TXT")
			add("x", "Export report")
			add("n", "New session")
			add("s", "Sign out")
		case session.StepError:
			add("r", "Retry")
			add("b", "Back")
		}
	}

	add("q", "Quit")
	return strings.Join(parts, "  ")
}

// Helpers

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
