package capture

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

// interruptSignal asks the capture process to finalize its output cleanly.
var interruptSignal = os.Interrupt

// chunkSize matches the read granularity of the capture pipe.
const chunkSize = 4096

// FFmpegSource records from the default microphone by running an ffmpeg
// capture process and reading encoded audio off its stdout.
type FFmpegSource struct {
	Binary string // capture binary, normally "ffmpeg"
	Device string // input device, empty selects the platform default
}

// NewFFmpegSource builds a source for the configured binary and device.
func NewFFmpegSource(binary, device string) *FFmpegSource {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpegSource{Binary: binary, Device: device}
}

// Acquire starts the capture process. An immediate exit is classified: device
// permission failures map to ErrPermissionDenied so the app can show the
// fixed recovery message.
func (s *FFmpegSource) Acquire(ctx context.Context) (Stream, error) {
	args := s.captureArgs()
	cmd := exec.Command(s.Binary, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("capture stdout: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start capture process: %w", err)
	}

	st := &ffmpegStream{
		cmd:    cmd,
		stdout: stdout,
		stderr: &stderr,
		chunks: make(chan []byte, 16),
		exited: make(chan struct{}),
	}
	go st.pump()

	// Give the process a beat to fail on device access before reporting the
	// session as live.
	select {
	case <-time.After(250 * time.Millisecond):
	case <-st.exited:
		st.Stop()
		if isPermissionDenied(stderr.String()) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, firstLine(stderr.String()))
		}
		return nil, fmt.Errorf("capture process exited: %s", firstLine(stderr.String()))
	case <-ctx.Done():
		// No consumer exists yet; drain so pump can reach EOF and Stop
		// can reap the process.
		go st.drain()
		st.Stop()
		return nil, ctx.Err()
	}

	return st, nil
}

// captureArgs selects the platform input driver and a webm/opus output on
// stdout.
func (s *FFmpegSource) captureArgs() []string {
	device := s.Device
	var in []string
	switch runtime.GOOS {
	case "darwin":
		if device == "" {
			device = ":0"
		}
		in = []string{"-f", "avfoundation", "-i", device}
	case "windows":
		if device == "" {
			device = "audio=default"
		}
		in = []string{"-f", "dshow", "-i", device}
	default:
		if device == "" {
			device = "default"
		}
		in = []string{"-f", "pulse", "-i", device}
	}
	return append(in, "-c:a", "libopus", "-f", "webm", "-loglevel", "error", "-")
}

type ffmpegStream struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr *bytes.Buffer
	chunks chan []byte

	once   sync.Once
	exited chan struct{}
	err    error
}

func (s *ffmpegStream) Chunks() <-chan []byte { return s.chunks }

func (s *ffmpegStream) MimeType() string { return "audio/webm" }

// pump reads stdout into fixed-size chunks until the process closes it.
func (s *ffmpegStream) pump() {
	defer close(s.chunks)
	defer close(s.exited)

	for {
		buf := make([]byte, chunkSize)
		n, err := s.stdout.Read(buf)
		if n > 0 {
			s.chunks <- buf[:n]
		}
		if err != nil {
			return
		}
	}
}

// Stop interrupts the capture process so it finalizes the container, then
// reaps it. Called exactly once per stream by the controller.
func (s *ffmpegStream) Stop() error {
	var stopErr error
	s.once.Do(func() {
		if s.cmd.Process != nil {
			// SIGINT lets ffmpeg flush and close the output cleanly.
			_ = s.cmd.Process.Signal(interruptSignal)
		}
		// The child's exit closes the write side of the pipe; pump must
		// drain the flushed tail to EOF before Wait closes the read side.
		<-s.exited
		waitErr := s.cmd.Wait()
		if waitErr != nil && isPermissionDenied(s.stderr.String()) {
			s.err = fmt.Errorf("%w: %s", ErrPermissionDenied, firstLine(s.stderr.String()))
			stopErr = s.err
		}
	})
	return stopErr
}

func (s *ffmpegStream) Err() error { return s.err }

// drain discards remaining chunks so pump can finish when nobody collects.
func (s *ffmpegStream) drain() {
	for range s.chunks {
	}
}

// isPermissionDenied matches the device-access failure text the platform
// capture drivers emit.
func isPermissionDenied(stderr string) bool {
	lower := strings.ToLower(stderr)
	for _, marker := range []string{
		"operation not permitted",
		"permission denied",
		"not authorized",
		"access denied",
	} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
