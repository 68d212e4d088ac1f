// Package session holds the in-memory data model for one app session: the
// pending audio asset, the processing status, and the transcription mode.
// Nothing in this package is persisted; everything dies with the process.
package session

// Step identifies the long-running operation currently in progress.
type Step int

const (
	StepIdle Step = iota
	StepRecording
	StepUploading
	StepAnalyzing
	StepCompleted
	StepError
)

// String returns the lowercase step name.
func (s Step) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepRecording:
		return "recording"
	case StepUploading:
		return "uploading"
	case StepAnalyzing:
		return "analyzing"
	case StepCompleted:
		return "completed"
	case StepError:
		return "error"
	}
	return "unknown"
}

// Status is the tagged processing state. Exactly one status is active at a
// time; Message is only meaningful for StepError.
type Status struct {
	Step    Step
	Message string
}

// Idle returns the zero status.
func Idle() Status { return Status{Step: StepIdle} }

// Error returns an error status carrying a user-facing message.
func Error(message string) Status {
	return Status{Step: StepError, Message: message}
}
