package session

import (
	"os"
	"testing"
)

func TestNewPendingAudioCreatesHandle(t *testing.T) {
	p, err := NewPendingAudio([]byte("riff-data"), "audio/wav")
	if err != nil {
		t.Fatalf("NewPendingAudio: %v", err)
	}
	defer p.Discard()

	if p.Handle == nil {
		t.Fatal("pending audio should carry a handle")
	}
	if p.Handle.Path() == "" {
		t.Fatal("handle path should be set")
	}

	data, err := os.ReadFile(p.Handle.Path())
	if err != nil {
		t.Fatalf("read handle file: %v", err)
	}
	if string(data) != "riff-data" {
		t.Errorf("handle file = %q, want %q", data, "riff-data")
	}
}

func TestHandleReleaseRemovesFile(t *testing.T) {
	p, err := NewPendingAudio([]byte("x"), "audio/webm")
	if err != nil {
		t.Fatalf("NewPendingAudio: %v", err)
	}
	path := p.Handle.Path()

	if err := p.Handle.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("backing file should be gone after release")
	}
}

func TestHandleReleaseIdempotent(t *testing.T) {
	p, err := NewPendingAudio([]byte("x"), "audio/webm")
	if err != nil {
		t.Fatalf("NewPendingAudio: %v", err)
	}

	if err := p.Handle.Release(); err != nil {
		t.Fatalf("first release: %v", err)
	}
	// Second release must not error even though the file is gone.
	if err := p.Handle.Release(); err != nil {
		t.Errorf("second release: %v", err)
	}
}

func TestDiscardNilSafe(t *testing.T) {
	var p *PendingAudio
	p.Discard() // must not panic
}

func TestModeToggle(t *testing.T) {
	if CleanRead.Toggle() != Verbatim {
		t.Error("CleanRead should toggle to Verbatim")
	}
	if Verbatim.Toggle() != CleanRead {
		t.Error("Verbatim should toggle to CleanRead")
	}
	if CleanRead.String() != "Clean Read" {
		t.Errorf("CleanRead = %q", CleanRead.String())
	}
}

func TestStatusSteps(t *testing.T) {
	if Idle().Step != StepIdle {
		t.Error("Idle() should be StepIdle")
	}
	st := Error("boom")
	if st.Step != StepError || st.Message != "boom" {
		t.Errorf("Error() = %+v", st)
	}
	if StepAnalyzing.String() != "analyzing" {
		t.Errorf("StepAnalyzing = %q", StepAnalyzing.String())
	}
}
