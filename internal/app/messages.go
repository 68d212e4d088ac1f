package app

import (
	"github.com/noteninja/noteninja/internal/session"
)

// CaptureStartedMsg is sent when the microphone was acquired and chunks are
// flowing.
type CaptureStartedMsg struct{}

// CaptureFailedMsg is sent when acquisition failed (permission denial or a
// device error).
type CaptureFailedMsg struct {
	Err error
}

// CaptureStoppedMsg carries the finalized pending audio asset.
type CaptureStoppedMsg struct {
	Pending *session.PendingAudio
}

// CaptureStopFailedMsg is sent when finalization failed. The hardware is
// already released by the time it arrives.
type CaptureStopFailedMsg struct {
	Err error
}

// RecordTickMsg advances the elapsed recording clock once per second.
type RecordTickMsg struct{}

// FileImportedMsg carries a pending asset built from an imported file.
type FileImportedMsg struct {
	Pending *session.PendingAudio
}

// FileImportFailedMsg is sent when the file could not be read.
type FileImportFailedMsg struct {
	Err error
}

// AnalysisDoneMsg carries the raw markdown report from the engine.
type AnalysisDoneMsg struct {
	Markdown string
}

// AnalysisFailedMsg is sent when the engine rejected or failed the request.
type AnalysisFailedMsg struct {
	Err error
}

// PlaybackFinishedMsg is sent when preview playback ends, whether it ran to
// completion or was stopped.
type PlaybackFinishedMsg struct{}

// HistoryCountMsg refreshes the session history counter.
type HistoryCountMsg struct {
	Count int
}

// ExportDoneMsg reports where an export landed.
type ExportDoneMsg struct {
	Path string
}

// ExportFailedMsg is sent when an export could not be written.
type ExportFailedMsg struct {
	Err error
}

// ClearNoticeMsg clears the transient notice line after a timeout.
type ClearNoticeMsg struct{}
