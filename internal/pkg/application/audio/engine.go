package audio

import (
	"context"
	"errors"
	"sync"

	"github.com/fieldwatch/emergency-monitor/internal/pkg/infrastructure/logging"
)

// ErrNotEnabled is reported when playback is requested before an operator
// has enabled audio.
var ErrNotEnabled = errors.New("audio has not been enabled")

// AlertVolume is the fixed playback volume for live alerts.
const AlertVolume float64 = 0.8

//go:generate moq -rm -out engine_mock.go . Engine

// Engine owns the single alert-sound handle for the whole process. Audio is
// a best-effort enhancement: every operation reports success as a value and
// a failed playback never blocks the alert workflow.
type Engine interface {
	// Enable unlocks the audio subsystem with a near-silent play/stop
	// cycle. It must be invoked from an explicit operator action.
	Enable(ctx context.Context) bool
	Enabled() bool

	// Play plays the alert sound at AlertVolume. A playback already in
	// flight is stopped and restarted so at most one is ever active.
	// When ok is false, reason tells blocked hosts (errors.Is reason
	// ErrNotAllowed) apart from transient failures.
	Play(ctx context.Context) (ok bool, reason error)

	// TestPlay is Play for operator-triggered diagnostic use.
	TestPlay(ctx context.Context) (ok bool, reason error)
}

type engine struct {
	mu sync.Mutex

	player  Player
	enabled bool

	current Playback
}

// New creates the engine and starts an asynchronous preload of the sound
// asset. Preload failure is non-fatal, later play attempts simply may fail.
func New(ctx context.Context, player Player) Engine {
	e := &engine{
		player: player,
	}

	go func() {
		log := logging.GetLoggerFromContext(ctx)

		err := player.Preload(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("failed to preload alert sound")
			return
		}

		log.Debug().Msg("alert sound loaded")
	}()

	return e
}

func (e *engine) Enable(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	log := logging.GetLoggerFromContext(ctx)

	if e.player == nil {
		log.Warn().Msg("audio handle is not available")
		return false
	}

	if e.enabled {
		return true
	}

	pb, err := e.player.Play(ctx, 0)
	if err != nil {
		log.Warn().Err(err).Msg("could not enable audio")
		return false
	}
	pb.Stop()

	e.enabled = true

	log.Info().Msg("audio enabled")
	return true
}

func (e *engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

func (e *engine) Play(ctx context.Context) (bool, error) {
	return e.play(ctx)
}

func (e *engine) TestPlay(ctx context.Context) (bool, error) {
	log := logging.GetLoggerFromContext(ctx)

	ok, reason := e.play(ctx)
	log.Debug().Bool("ok", ok).Msg("test playback")

	return ok, reason
}

func (e *engine) play(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return false, ErrNotEnabled
	}

	if !e.enabled {
		return false, ErrNotEnabled
	}

	log := logging.GetLoggerFromContext(ctx)

	if e.current != nil {
		select {
		case <-e.current.Done():
		default:
			log.Debug().Msg("alert sound already playing, restarting it")
			e.current.Stop()
		}
		e.current = nil
	}

	pb, err := e.player.Play(ctx, AlertVolume)
	if err != nil {
		if errors.Is(err, ErrNotAllowed) {
			log.Warn().Err(err).Msg("alert sound blocked")
		} else {
			log.Error().Err(err).Msg("failed to play alert sound")
		}
		return false, err
	}

	e.current = pb
	return true, nil
}
