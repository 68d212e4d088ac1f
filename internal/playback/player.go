// Package playback previews a pending audio asset through an external player
// process addressing the asset's playback handle. At most one playback runs
// at a time.
package playback

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// Player runs the configured player binary against a handle path.
type Player struct {
	binary string

	mu   sync.Mutex
	cmd  *exec.Cmd
	done chan struct{}
}

// New builds a player for the given binary (normally ffplay).
func New(binary string) *Player {
	if binary == "" {
		binary = "ffplay"
	}
	return &Player{binary: binary}
}

// Playing reports whether a playback process is currently running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd != nil
}

// Start begins playing the file at path. The returned channel closes when
// playback finishes, whether it ran to the end or was stopped. Starting while
// already playing is rejected.
func (p *Player) Start(path string) (<-chan struct{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd != nil {
		return nil, fmt.Errorf("playback already running")
	}

	cmd := exec.Command(p.binary, playerArgs(p.binary, path)...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start player: %w", err)
	}

	done := make(chan struct{})
	p.cmd = cmd
	p.done = done

	go func() {
		cmd.Wait()
		p.mu.Lock()
		p.cmd = nil
		p.done = nil
		p.mu.Unlock()
		close(done)
	}()

	return done, nil
}

// Stop kills the running playback, if any. The Start channel closes shortly
// after.
func (p *Player) Stop() {
	p.mu.Lock()
	cmd := p.cmd
	p.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		cmd.Process.Kill()
	}
}

// playerArgs adapts the invocation to the player binary.
func playerArgs(binary, path string) []string {
	name := strings.TrimSuffix(filepath.Base(binary), filepath.Ext(binary))
	if name == "ffplay" {
		return []string{"-nodisp", "-autoexit", "-loglevel", "error", path}
	}
	return []string{path}
}
