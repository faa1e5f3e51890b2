package audio

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/matryer/is"
)

func TestPlayBeforeEnableIsRefused(t *testing.T) {
	is := is.New(t)
	p := newFakePlayer()

	e := New(context.Background(), p)

	ok, reason := e.Play(context.Background())
	is.True(!ok)
	is.True(errors.Is(reason, ErrNotEnabled))
	is.Equal(p.playCount, 0) // no playback attempt may reach the player
}

func TestEnableRunsNearSilentUnlockCycle(t *testing.T) {
	is := is.New(t)
	p := newFakePlayer()

	e := New(context.Background(), p)

	is.True(e.Enable(context.Background()))
	is.True(e.Enabled())
	is.Equal(p.volumes, []float64{0})
	is.Equal(p.playbacks[0].stopped, true)
}

func TestEnableFailureLeavesStateUnchanged(t *testing.T) {
	is := is.New(t)
	p := newFakePlayer()
	p.err = fmt.Errorf("%w: no audio player found on PATH", ErrNotAllowed)

	e := New(context.Background(), p)

	is.True(!e.Enable(context.Background()))
	is.True(!e.Enabled())
}

func TestPlayDoesNotWaitForPreload(t *testing.T) {
	is := is.New(t)
	p := newFakePlayer()
	p.preloadStarted = make(chan struct{})
	p.preloadRelease = make(chan struct{})
	defer close(p.preloadRelease)

	e := New(context.Background(), p)
	<-p.preloadStarted

	// enabling proves the asset playable, a still-running preload
	// must not hold playback back
	is.True(e.Enable(context.Background()))

	ok, reason := e.Play(context.Background())
	is.True(ok)
	is.NoErr(reason)
}

func TestPlayUsesAlertVolume(t *testing.T) {
	is := is.New(t)
	p := newFakePlayer()

	e := New(context.Background(), p)
	e.Enable(context.Background())

	ok, reason := e.Play(context.Background())
	is.True(ok)
	is.NoErr(reason)
	is.Equal(p.volumes[len(p.volumes)-1], AlertVolume)
}

func TestNoOverlappingPlayback(t *testing.T) {
	is := is.New(t)
	p := newFakePlayer()

	e := New(context.Background(), p)
	e.Enable(context.Background())

	ok, _ := e.Play(context.Background())
	is.True(ok)

	// second play while the first is still running restarts playback
	ok, _ = e.Play(context.Background())
	is.True(ok)

	active := 0
	for _, pb := range p.playbacks[1:] { // skip the unlock cycle
		if !pb.stopped {
			active++
		}
	}
	is.Equal(active, 1)
}

func TestBlockedPlaybackIsDistinguishable(t *testing.T) {
	is := is.New(t)
	p := newFakePlayer()

	e := New(context.Background(), p)
	e.Enable(context.Background())

	p.err = fmt.Errorf("%w: no audio device", ErrNotAllowed)

	ok, reason := e.Play(context.Background())
	is.True(!ok)
	is.True(errors.Is(reason, ErrNotAllowed))
}

type fakePlayback struct {
	stopped bool
	done    chan struct{}
}

func (pb *fakePlayback) Done() <-chan struct{} { return pb.done }
func (pb *fakePlayback) Stop() error {
	if !pb.stopped {
		pb.stopped = true
		close(pb.done)
	}
	return nil
}

type fakePlayer struct {
	err       error
	volumes   []float64
	playbacks []*fakePlayback
	playCount int

	preloadStarted chan struct{}
	preloadRelease chan struct{}
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{}
}

func (p *fakePlayer) Preload(ctx context.Context) error {
	if p.preloadStarted != nil {
		close(p.preloadStarted)
		<-p.preloadRelease
	}
	return nil
}

func (p *fakePlayer) Play(ctx context.Context, volume float64) (Playback, error) {
	p.playCount++
	if p.err != nil {
		return nil, p.err
	}

	p.volumes = append(p.volumes, volume)
	pb := &fakePlayback{done: make(chan struct{})}
	p.playbacks = append(p.playbacks, pb)
	return pb, nil
}
