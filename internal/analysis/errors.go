package analysis

import "fmt"

// Category buckets an analysis failure into one of the user-facing classes
// the result view knows how to present. None of them are retried
// automatically; the user drives recovery.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryRateLimited
	CategoryModelUnavailable
	CategoryContentRejected
	CategoryEmptyResponse
)

// User-facing messages per category.
const (
	msgRateLimited      = "Analysis Rate Limit: The engine is currently saturated. Please wait 60 seconds and retry."
	msgModelUnavailable = "Linguistic Terminal Error: The requested model version is currently unavailable in this sector. Try again in a moment."
	msgContentRejected  = "Linguistic Safety Protocol: The content of the audio triggered a safety filter. Analysis aborted."
	msgEmptyResponse    = "Linguistic core returned an empty signal. Verify audio quality."
	msgMissingKey       = "Linguistic Engine failure: API Key not initialized in environment."
)

// Error is an analysis failure carrying its category and the message shown to
// the user.
type Error struct {
	Category Category
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage returns the presentation text for an error. Analysis errors
// surface their fixed per-category message; anything else is wrapped as an
// engine failure.
func UserMessage(err error) string {
	if ae, ok := err.(*Error); ok {
		return ae.Message
	}
	return fmt.Sprintf("Engine Failure: %v", err)
}

func newError(cat Category, message string, err error) *Error {
	return &Error{Category: cat, Message: message, Err: err}
}
