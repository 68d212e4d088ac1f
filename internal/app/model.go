// Package app is the session state machine: a bubbletea model sequencing
// landing, login, active, preview, and result views, owning every transition
// and its side effects. All session state lives here and mutates only through
// typed messages and key handlers, which keeps the legal (view, status)
// pairings enforceable instead of conventional.
package app

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/noteninja/noteninja/internal/analysis"
	"github.com/noteninja/noteninja/internal/capture"
	"github.com/noteninja/noteninja/internal/db"
	"github.com/noteninja/noteninja/internal/export"
	"github.com/noteninja/noteninja/internal/playback"
	"github.com/noteninja/noteninja/internal/report"
	"github.com/noteninja/noteninja/internal/session"
)

// View is the workflow stage currently on screen.
type View int

const (
	ViewLanding View = iota
	ViewLogin
	ViewActive
	ViewPreview
	ViewResult
)

// String returns the lowercase view name.
func (v View) String() string {
	switch v {
	case ViewLanding:
		return "landing"
	case ViewLogin:
		return "login"
	case ViewActive:
		return "active"
	case ViewPreview:
		return "preview"
	case ViewResult:
		return "result"
	}
	return "unknown"
}

// Deps are the collaborators the state machine drives.
type Deps struct {
	Analyzer  analysis.Analyzer
	Recorder  *capture.Controller
	Player    *playback.Player
	History   *db.Store // optional; nil disables the session history counter
	ExportDir string
	Log       zerolog.Logger
}

// Model is the root bubbletea model.
type Model struct {
	deps Deps

	// Session state
	user    *session.User
	view    View
	status  session.Status
	mode    session.Mode
	pending *session.PendingAudio
	result  string // raw markdown; empty means no result

	// Recording state
	recordingSeconds int

	// Preview state
	playing bool

	// Result state
	activeTab    report.Key
	historyCount int

	// Import path entry
	importing bool
	pathInput string

	// Transient notice (exports, import errors)
	notice string

	// UI state
	width  int
	height int
}

// New creates the model in its initial landing state.
func New(deps Deps) Model {
	return Model{
		deps:      deps,
		view:      ViewLanding,
		status:    session.Idle(),
		mode:      session.CleanRead,
		activeTab: report.KeyTranscript,
	}
}

// Init has no startup work; the app waits for input on the landing view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Commands

// beginCaptureCmd acquires the microphone.
func beginCaptureCmd(recorder *capture.Controller) tea.Cmd {
	return func() tea.Msg {
		if err := recorder.Start(context.Background()); err != nil {
			return CaptureFailedMsg{Err: err}
		}
		return CaptureStartedMsg{}
	}
}

// endCaptureCmd finalizes the capture session into a pending asset.
func endCaptureCmd(recorder *capture.Controller) tea.Cmd {
	return func() tea.Msg {
		pending, err := recorder.Stop()
		if err != nil {
			return CaptureStopFailedMsg{Err: err}
		}
		return CaptureStoppedMsg{Pending: pending}
	}
}

// recordTickCmd advances the elapsed clock while recording.
func recordTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return RecordTickMsg{}
	})
}

// importFileCmd reads an audio file into a pending asset. No local format
// validation: the engine is the only validation point.
func importFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return FileImportFailedMsg{Err: err}
		}
		pending, err := session.NewPendingAudio(data, mimeForPath(path))
		if err != nil {
			return FileImportFailedMsg{Err: err}
		}
		return FileImportedMsg{Pending: pending}
	}
}

// analyzeCmd submits the audio payload to the engine. One in-flight request
// at a time; no mid-flight cancellation.
func analyzeCmd(analyzer analysis.Analyzer, audio []byte, mimeType string, mode session.Mode) tea.Cmd {
	return func() tea.Msg {
		markdown, err := analyzer.Analyze(context.Background(), audio, mimeType, mode)
		if err != nil {
			return AnalysisFailedMsg{Err: err}
		}
		return AnalysisDoneMsg{Markdown: markdown}
	}
}

// playbackCmd starts preview playback and reports when it ends.
func playbackCmd(player *playback.Player, path string) tea.Cmd {
	return func() tea.Msg {
		done, err := player.Start(path)
		if err != nil {
			return PlaybackFinishedMsg{}
		}
		<-done
		return PlaybackFinishedMsg{}
	}
}

// recordHistoryCmd stores a completed analysis and refreshes the counter.
func recordHistoryCmd(store *db.Store, entry db.Analysis) tea.Cmd {
	return func() tea.Msg {
		if _, err := store.Record(entry); err != nil {
			return nil
		}
		n, err := store.Count()
		if err != nil {
			return nil
		}
		return HistoryCountMsg{Count: n}
	}
}

// exportTranscriptCmd writes the raw markdown verbatim.
func exportTranscriptCmd(dir, markdown string) tea.Cmd {
	return func() tea.Msg {
		path, err := export.WriteTranscript(dir, markdown, time.Now())
		if err != nil {
			return ExportFailedMsg{Err: err}
		}
		return ExportDoneMsg{Path: path}
	}
}

// exportReportCmd writes the rendered plain-text report.
func exportReportCmd(dir, markdown string) tea.Cmd {
	return func() tea.Msg {
		path, err := export.WriteReport(dir, report.Parse(markdown), time.Now())
		if err != nil {
			return ExportFailedMsg{Err: err}
		}
		return ExportDoneMsg{Path: path}
	}
}

// clearNoticeCmd fires after a delay to clear the transient notice.
func clearNoticeCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearNoticeMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case CaptureStartedMsg:
		m.status = session.Status{Step: session.StepRecording}
		m.recordingSeconds = 0
		return m, recordTickCmd()

	case CaptureFailedMsg:
		// Permission denial and device errors both land here; the view stays
		// active so the user can re-attempt capture.
		m.status = session.Error(captureErrorMessage(msg.Err))
		m.deps.Log.Warn().Err(msg.Err).Msg("capture start failed")
		return m, nil

	case RecordTickMsg:
		if m.status.Step != session.StepRecording {
			// Capture ended; let the tick chain die so no orphaned timer
			// keeps firing.
			return m, nil
		}
		m.recordingSeconds++
		return m, recordTickCmd()

	case CaptureStoppedMsg:
		m.setPending(msg.Pending)
		m.status = session.Idle()
		m.view = ViewPreview
		return m, nil

	case CaptureStopFailedMsg:
		if errors.Is(msg.Err, capture.ErrNotRecording) {
			// A duplicate stop raced the in-flight finalization; the
			// first stop's result is still on its way.
			return m, nil
		}
		m.status = session.Error(captureErrorMessage(msg.Err))
		m.deps.Log.Warn().Err(msg.Err).Msg("capture stop failed")
		return m, nil

	case FileImportedMsg:
		m.setPending(msg.Pending)
		m.result = ""
		m.status = session.Idle()
		m.view = ViewPreview
		return m, nil

	case FileImportFailedMsg:
		m.notice = fmt.Sprintf("Import failed: %v", msg.Err)
		return m, clearNoticeCmd()

	case AnalysisDoneMsg:
		m.result = msg.Markdown
		m.status = session.Status{Step: session.StepCompleted}
		m.activeTab = report.KeyTranscript

		var cmd tea.Cmd
		if m.deps.History != nil && m.pending != nil {
			cmd = recordHistoryCmd(m.deps.History, db.Analysis{
				Mode:       m.mode.String(),
				MimeType:   m.pending.MimeType,
				AudioBytes: len(m.pending.Data),
				Markdown:   msg.Markdown,
			})
		}
		m.clearPending()
		return m, cmd

	case AnalysisFailedMsg:
		m.status = session.Error(analysis.UserMessage(msg.Err))
		m.deps.Log.Warn().Err(msg.Err).Msg("analysis failed")
		return m, nil

	case PlaybackFinishedMsg:
		m.playing = false
		return m, nil

	case HistoryCountMsg:
		m.historyCount = msg.Count
		return m, nil

	case ExportDoneMsg:
		m.notice = "Saved " + msg.Path
		return m, clearNoticeCmd()

	case ExportFailedMsg:
		m.notice = fmt.Sprintf("Export failed: %v", msg.Err)
		return m, clearNoticeCmd()

	case ClearNoticeMsg:
		m.notice = ""
		return m, nil
	}

	return m, nil
}

// handleKey processes key presses per view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == KeyCtrlC {
		return m.teardown()
	}

	if m.importing {
		return m.handleImportKey(msg)
	}

	if key == KeyQuit && !m.importing {
		return m.teardown()
	}

	switch m.view {
	case ViewLanding:
		if key == KeyEnter {
			m.view = ViewLogin
		}
		return m, nil

	case ViewLogin:
		switch key {
		case KeyEnter:
			// Authenticate: the login is a stub with a fixed identity.
			user := session.DemoUser()
			m.user = &user
			m.view = ViewActive
			m.status = session.Idle()
		case KeyEscape:
			m.view = ViewLanding
		}
		return m, nil

	case ViewActive:
		return m.handleActiveKey(key)

	case ViewPreview:
		return m.handlePreviewKey(key)

	case ViewResult:
		return m.handleResultKey(key)
	}

	return m, nil
}

func (m Model) handleActiveKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeySpace:
		if m.status.Step == session.StepRecording {
			return m, endCaptureCmd(m.deps.Recorder)
		}
		// Begin capture: drop any stale asset and result first.
		m.clearPending()
		m.result = ""
		return m, beginCaptureCmd(m.deps.Recorder)

	case KeyImport:
		if m.status.Step == session.StepRecording {
			return m, nil
		}
		m.importing = true
		m.pathInput = ""
		return m, nil

	case KeyMode:
		if m.status.Step == session.StepRecording {
			return m, nil
		}
		m.mode = m.mode.Toggle()
		return m, nil

	case KeySignOut:
		if m.status.Step == session.StepRecording {
			return m, nil
		}
		return m.signOut()
	}
	return m, nil
}

func (m Model) handlePreviewKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyPlay:
		if m.pending == nil || m.pending.Handle == nil {
			return m, nil
		}
		if m.playing {
			m.deps.Player.Stop()
			return m, nil
		}
		m.playing = true
		return m, playbackCmd(m.deps.Player, m.pending.Handle.Path())

	case KeyEnter:
		return m.submit()

	case KeyDiscard:
		// Discard: release the handle, drop the asset, back to active.
		m.stopPlayback()
		m.clearPending()
		m.view = ViewActive
		m.status = session.Idle()
		return m, nil

	case KeyMode:
		m.mode = m.mode.Toggle()
		return m, nil

	case KeySignOut:
		return m.signOut()
	}
	return m, nil
}

func (m Model) handleResultKey(key string) (tea.Model, tea.Cmd) {
	switch m.status.Step {
	case session.StepAnalyzing:
		// No interrupting an in-flight analysis; the session waits for
		// success or failure.
		return m, nil

	case session.StepError:
		switch key {
		case KeyRetry:
			m.view = ViewActive
			m.status = session.Idle()
			m.clearPending()
		case KeyBack:
			return m.signOut()
		}
		return m, nil
	}

	switch key {
	case KeyTab:
		m.activeTab = nextTab(m.activeTab)
	case "1":
		m.activeTab = report.KeySummary
	case "2":
		m.activeTab = report.KeyTranscript
	case "3":
		m.activeTab = report.KeyMetadata
	case "4":
		m.activeTab = report.KeyInsights
	case KeyExportTXT:
		if m.result != "" {
			return m, exportTranscriptCmd(m.deps.ExportDir, m.result)
		}
	case KeyExportRpt:
		if m.result != "" {
			return m, exportReportCmd(m.deps.ExportDir, m.result)
		}
	case KeyNew:
		m.view = ViewActive
		m.result = ""
		m.status = session.Idle()
	case KeySignOut:
		return m.signOut()
	}
	return m, nil
}

// handleImportKey edits the path prompt shown over the active view.
func (m Model) handleImportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		path := strings.TrimSpace(m.pathInput)
		m.importing = false
		m.pathInput = ""
		if path == "" {
			return m, nil
		}
		return m, importFileCmd(path)
	case tea.KeyEsc:
		m.importing = false
		m.pathInput = ""
		return m, nil
	case tea.KeyBackspace:
		if len(m.pathInput) > 0 {
			runes := []rune(m.pathInput)
			m.pathInput = string(runes[:len(runes)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.pathInput += " "
		return m, nil
	case tea.KeyRunes:
		m.pathInput += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

// submit hands the pending asset to the engine. The view flips to result
// immediately so the analyzing state is visible before the network call
// finishes.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.pending == nil {
		return m, nil
	}
	m.stopPlayback()
	// The handle leaves scope at the submit boundary: playback is over and
	// the asset must not hold browser-style resources past preview.
	if m.pending.Handle != nil {
		m.pending.Handle.Release()
	}

	m.status = session.Status{Step: session.StepAnalyzing}
	m.view = ViewResult

	return m, analyzeCmd(m.deps.Analyzer, m.pending.Data, m.pending.MimeType, m.mode)
}

// signOut clears the whole session and returns to landing.
func (m Model) signOut() (tea.Model, tea.Cmd) {
	m.stopPlayback()
	m.clearPending()
	m.user = nil
	m.result = ""
	m.status = session.Idle()
	m.view = ViewLanding
	return m, nil
}

// teardown releases everything before quitting. The hardware stream must not
// outlive the app.
func (m Model) teardown() (tea.Model, tea.Cmd) {
	if m.deps.Recorder != nil && m.deps.Recorder.State() == capture.StateRecording {
		if pending, err := m.deps.Recorder.Stop(); err == nil {
			pending.Discard()
		}
	}
	m.stopPlayback()
	m.clearPending()
	return m, tea.Quit
}

// setPending replaces the pending asset, releasing the previous handle first.
func (m *Model) setPending(p *session.PendingAudio) {
	m.clearPending()
	m.pending = p
}

// clearPending releases and drops the pending asset.
func (m *Model) clearPending() {
	if m.pending != nil {
		m.pending.Discard()
		m.pending = nil
	}
}

func (m *Model) stopPlayback() {
	if m.playing {
		m.deps.Player.Stop()
		m.playing = false
	}
}

// captureErrorMessage maps capture failures onto their user-facing text.
func captureErrorMessage(err error) string {
	if capture.IsPermissionDenied(err) {
		return capture.PermissionDeniedMessage
	}
	return fmt.Sprintf("Recording failed: %v", err)
}

func nextTab(k report.Key) report.Key {
	switch k {
	case report.KeySummary:
		return report.KeyTranscript
	case report.KeyTranscript:
		return report.KeyMetadata
	case report.KeyMetadata:
		return report.KeyInsights
	}
	return report.KeySummary
}

// mimeForPath maps a file extension onto a declared media type. Unknown
// extensions pass through as a generic payload; the engine decides whether it
// can read them.
func mimeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webm":
		return "audio/webm"
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".m4a", ".mp4":
		return "audio/mp4"
	case ".ogg":
		return "audio/ogg"
	}
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// formatClock renders elapsed seconds as MM:SS.
func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
