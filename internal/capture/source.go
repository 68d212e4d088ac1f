// Package capture owns the recording device lifecycle: acquire and release
// the microphone, accumulate audio chunks, and hand the result over as a
// playable pending asset.
package capture

import (
	"context"
	"errors"
)

// ErrPermissionDenied reports that microphone access was refused. The caller
// re-invokes Start to retry; nothing retries automatically.
var ErrPermissionDenied = errors.New("microphone access denied")

// PermissionDeniedMessage is the fixed user-facing text for ErrPermissionDenied.
const PermissionDeniedMessage = "Microphone access denied."

// IsPermissionDenied reports whether err stems from refused microphone access.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// Source acquires the underlying capture device. The production source runs
// an external capture process; tests use scripted fakes.
type Source interface {
	Acquire(ctx context.Context) (Stream, error)
}

// Stream is one active capture session. Chunks delivers audio data as it
// arrives and is closed once the stream finalizes. Stop signals finalization
// and releases the hardware; it must be safe to call exactly once per stream.
type Stream interface {
	Chunks() <-chan []byte
	MimeType() string
	Stop() error
	// Err reports a terminal stream failure, valid after Chunks is closed.
	Err() error
}
