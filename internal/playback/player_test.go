package playback

import (
	"runtime"
	"testing"
	"time"
)

func TestPlayerRunsToCompletion(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sleep as a stand-in player")
	}
	p := New("sleep")

	done, err := p.Start("0.05")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !p.Playing() {
		t.Error("player should report playing")
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("playback did not finish")
	}
	if p.Playing() {
		t.Error("player should be stopped after completion")
	}
}

func TestPlayerStop(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sleep as a stand-in player")
	}
	p := New("sleep")

	done, err := p.Start("60")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	p.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stop did not end playback")
	}
}

func TestPlayerRejectsConcurrentStart(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sleep as a stand-in player")
	}
	p := New("sleep")

	done, err := p.Start("60")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() { p.Stop(); <-done }()

	if _, err := p.Start("60"); err == nil {
		t.Error("second start should be rejected")
	}
}

func TestPlayerArgs(t *testing.T) {
	args := playerArgs("ffplay", "/tmp/a.webm")
	if len(args) != 5 || args[len(args)-1] != "/tmp/a.webm" {
		t.Errorf("ffplay args = %v", args)
	}
	args = playerArgs("afplay", "/tmp/a.m4a")
	if len(args) != 1 || args[0] != "/tmp/a.m4a" {
		t.Errorf("afplay args = %v", args)
	}
}
