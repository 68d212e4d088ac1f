package session

import (
	"fmt"
	"os"
	"sync"
)

// Handle is a revocable reference to an in-memory audio asset. It is backed by
// a temp file so an external player can address the asset without a copy of
// the bytes being handed around. Exactly one live handle exists per pending
// asset; Release must be called before the asset is replaced or cleared.
type Handle struct {
	path    string
	release sync.Once
	err     error
}

// Path returns the filesystem location the handle points at. Empty after a
// failed creation, never after a successful one.
func (h *Handle) Path() string { return h.path }

// Release revokes the handle, removing its backing file. Safe to call more
// than once; only the first call does work.
func (h *Handle) Release() error {
	h.release.Do(func() {
		if h.path != "" {
			h.err = os.Remove(h.path)
		}
	})
	return h.err
}

// PendingAudio is an audio asset awaiting submission, produced by either the
// capture path or the file-import path.
type PendingAudio struct {
	Data     []byte
	MimeType string
	Handle   *Handle
}

// NewPendingAudio wraps raw audio bytes into a pending asset with a fresh
// playback handle.
func NewPendingAudio(data []byte, mimeType string) (*PendingAudio, error) {
	f, err := os.CreateTemp("", "noteninja-*"+extForMime(mimeType))
	if err != nil {
		return nil, fmt.Errorf("create playback handle: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("write playback handle: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("close playback handle: %w", err)
	}
	return &PendingAudio{
		Data:     data,
		MimeType: mimeType,
		Handle:   &Handle{path: f.Name()},
	}, nil
}

// Discard releases the playback handle. The asset must not be used afterwards.
func (p *PendingAudio) Discard() {
	if p != nil && p.Handle != nil {
		p.Handle.Release()
	}
}

func extForMime(mimeType string) string {
	switch mimeType {
	case "audio/webm":
		return ".webm"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/mp4", "audio/x-m4a":
		return ".m4a"
	case "audio/ogg":
		return ".ogg"
	}
	return ".audio"
}

// User is the stub identity set by the login view. There is no auth backend.
type User struct {
	Name     string
	Email    string
	Initials string
}

// DemoUser returns the fixed identity used by the login stub.
func DemoUser() User {
	return User{Name: "Saaadmalikk1998", Email: "saad@ninja.ai", Initials: "SA"}
}
