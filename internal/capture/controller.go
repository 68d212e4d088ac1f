package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/noteninja/noteninja/internal/session"
)

// State is the controller's lifecycle position.
type State int

const (
	StateIdle State = iota
	StateAcquiring
	StateRecording
	StateStopping
)

var (
	// ErrBusy rejects a Start while a capture session is already active.
	ErrBusy = errors.New("capture already in progress")
	// ErrNotRecording rejects a Stop with no active capture session.
	ErrNotRecording = errors.New("no capture in progress")
)

// Controller drives at most one capture session at a time. Start acquires the
// device and begins accumulating chunks; Stop finalizes them into a pending
// audio asset with a fresh playback handle. The hardware stream is released
// exactly once per session, on success and on error paths alike.
type Controller struct {
	source Source
	log    zerolog.Logger

	mu        sync.Mutex
	state     State
	stream    Stream
	chunks    [][]byte
	collected chan struct{}
	startedAt time.Time
}

// New builds a controller over the given source.
func New(source Source, log zerolog.Logger) *Controller {
	return &Controller{source: source, log: log}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Elapsed returns how long the current capture session has been running.
// Zero when not recording.
func (c *Controller) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRecording {
		return 0
	}
	return time.Since(c.startedAt)
}

// Start acquires the microphone and begins collecting chunks. A second Start
// while a session is active returns ErrBusy. Permission denial comes back as
// ErrPermissionDenied (possibly wrapped) and leaves the controller idle.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrBusy
	}
	c.state = StateAcquiring
	c.mu.Unlock()

	stream, err := c.source.Acquire(ctx)
	if err != nil {
		c.mu.Lock()
		c.state = StateIdle
		c.mu.Unlock()
		c.log.Warn().Err(err).Msg("microphone acquisition failed")
		return err
	}

	c.mu.Lock()
	c.state = StateRecording
	c.stream = stream
	c.chunks = nil
	c.collected = make(chan struct{})
	c.startedAt = time.Now()
	c.mu.Unlock()

	go c.collect(stream)

	c.log.Info().Msg("capture session started")
	return nil
}

// collect drains the stream into the chunk list until it finalizes.
func (c *Controller) collect(stream Stream) {
	for chunk := range stream.Chunks() {
		if len(chunk) == 0 {
			continue
		}
		c.mu.Lock()
		c.chunks = append(c.chunks, chunk)
		c.mu.Unlock()
	}
	c.mu.Lock()
	close(c.collected)
	c.mu.Unlock()
}

// Stop finalizes the capture session: signals the stream to stop, waits for
// all chunks to be collected, concatenates them, and wraps the result in a
// pending asset. The playback handle is only created after the last chunk is
// in. The hardware is released even when finalization errors.
func (c *Controller) Stop() (*session.PendingAudio, error) {
	c.mu.Lock()
	if c.state != StateRecording {
		c.mu.Unlock()
		return nil, ErrNotRecording
	}
	c.state = StateStopping
	stream := c.stream
	collected := c.collected
	c.mu.Unlock()

	stopErr := stream.Stop()
	<-collected

	c.mu.Lock()
	var buf bytes.Buffer
	for _, chunk := range c.chunks {
		buf.Write(chunk)
	}
	c.chunks = nil
	c.stream = nil
	c.state = StateIdle
	c.mu.Unlock()

	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("capture stream: %w", err)
	}
	if stopErr != nil {
		return nil, fmt.Errorf("stop capture: %w", stopErr)
	}

	pending, err := session.NewPendingAudio(buf.Bytes(), stream.MimeType())
	if err != nil {
		return nil, err
	}

	c.log.Info().Int("bytes", len(pending.Data)).Str("mime_type", pending.MimeType).Msg("capture session finalized")
	return pending, nil
}
