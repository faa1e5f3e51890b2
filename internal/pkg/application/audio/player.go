package audio

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
)

//go:embed sounds/emergency-alert.wav
var soundFiles embed.FS

// ErrNotAllowed marks playback failures caused by the host refusing to
// play audio at all (no player binary, no audio device), as opposed to
// transient playback errors. Callers use errors.Is to tell the two apart
// and surface a "sound blocked" notice instead of a generic failure.
var ErrNotAllowed = errors.New("audio playback not allowed on this host")

// Playback is a single in-flight playback of the alert sound.
type Playback interface {
	// Done is closed when playback has finished or was stopped.
	Done() <-chan struct{}
	Stop() error
}

// Player owns the mechanics of playing the alert sound. The engine holds
// exactly one Player for the lifetime of the process.
type Player interface {
	// Preload prepares the sound asset so later playback can start
	// without delay. Failure is non-fatal, playback simply may fail.
	Preload(ctx context.Context) error
	// Play starts playback at the given volume (0..1) and returns
	// without waiting for completion.
	Play(ctx context.Context, volume float64) (Playback, error)
}

// execPlayer plays the alert sound with an OS-native audio command over
// a WAV asset that is embedded at build time and written out on preload.
type execPlayer struct {
	soundFile string
	command   string

	mu       sync.Mutex
	resolved string
}

// NewPlayer returns a Player that shells out to an OS audio command.
// If soundFile is empty the embedded alert asset is used, and if command
// is empty a suitable player is looked up on PATH.
func NewPlayer(soundFile, command string) Player {
	return &execPlayer{
		soundFile: soundFile,
		command:   command,
	}
}

func (p *execPlayer) Preload(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.soundFile == "" {
		asset, err := soundFiles.ReadFile("sounds/emergency-alert.wav")
		if err != nil {
			return fmt.Errorf("failed to read embedded alert sound: %w", err)
		}

		path := filepath.Join(os.TempDir(), "emergency-alert.wav")
		err = os.WriteFile(path, asset, 0o644)
		if err != nil {
			return fmt.Errorf("failed to write alert sound to %s: %w", path, err)
		}

		p.soundFile = path
	} else if _, err := os.Stat(p.soundFile); err != nil {
		return fmt.Errorf("alert sound %s is not readable: %w", p.soundFile, err)
	}

	_, err := p.playerCommandLocked()
	return err
}

func (p *execPlayer) Play(ctx context.Context, volume float64) (Playback, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	command, err := p.playerCommandLocked()
	if err != nil {
		return nil, err
	}

	if p.soundFile == "" {
		return nil, fmt.Errorf("no alert sound has been loaded")
	}

	cmd := exec.CommandContext(ctx, command, playerArgs(command, p.soundFile, volume)...)

	err = cmd.Start()
	if err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", command, err)
	}

	pb := &execPlayback{
		cmd:  cmd,
		done: make(chan struct{}),
	}

	go func() {
		cmd.Wait()
		close(pb.done)
	}()

	return pb, nil
}

func (p *execPlayer) playerCommandLocked() (string, error) {
	if p.resolved != "" {
		return p.resolved, nil
	}

	candidates := []string{"afplay", "paplay", "ffplay", "aplay"}
	if p.command != "" {
		candidates = []string{p.command}
	}

	for _, c := range candidates {
		path, err := exec.LookPath(c)
		if err == nil {
			p.resolved = path
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: no audio player found on PATH", ErrNotAllowed)
}

func playerArgs(command, soundFile string, volume float64) []string {
	switch filepath.Base(command) {
	case "afplay":
		return []string{"-v", strconv.FormatFloat(volume, 'f', 2, 64), soundFile}
	case "ffplay":
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet",
			"-volume", strconv.Itoa(int(volume * 100)), soundFile}
	case "paplay":
		// paplay volume is linear 0..65536
		return []string{"--volume", strconv.Itoa(int(volume * 65536)), soundFile}
	default:
		return []string{soundFile}
	}
}

type execPlayback struct {
	cmd  *exec.Cmd
	done chan struct{}
}

func (pb *execPlayback) Done() <-chan struct{} {
	return pb.done
}

func (pb *execPlayback) Stop() error {
	select {
	case <-pb.done:
		return nil
	default:
	}

	if pb.cmd.Process != nil {
		err := pb.cmd.Process.Kill()
		if err != nil {
			return fmt.Errorf("failed to stop playback: %w", err)
		}
	}

	<-pb.done
	return nil
}
