package monitor

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"

	"github.com/fieldwatch/emergency-monitor/internal/pkg/application/audio"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/application/events"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/infrastructure/logging"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/infrastructure/repositories/journal"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/infrastructure/tracing"
	"github.com/fieldwatch/emergency-monitor/pkg/client"
	"github.com/fieldwatch/emergency-monitor/pkg/types"
)

var tracer = otel.Tracer("emergency-monitor/monitor")

// EventPublisher is the slice of messaging.MsgContext the monitor needs.
type EventPublisher interface {
	PublishOnTopic(ctx context.Context, message messaging.TopicMessage) error
}

// PanelNotifier pushes events to connected notification panels.
type PanelNotifier interface {
	Publish(event string, data any) error
}

type Config struct {
	PollInterval time.Duration `yaml:"pollInterval"`
	PollJitter   time.Duration `yaml:"pollJitter"`

	// SilentBackground controls whether timer-driven polls suppress
	// notification side effects the way routine background refreshes
	// did in the console this service replaced.
	SilentBackground bool `yaml:"silentBackground"`
}

func DefaultConfig() *Config {
	return &Config{
		PollInterval:     10 * time.Second,
		PollJitter:       time.Second,
		SilentBackground: true,
	}
}

// UnmarshalYAML accepts the intervals in time.ParseDuration notation
// ("10s", "1m30s") and leaves fields not present in the document at
// their current values.
func (c *Config) UnmarshalYAML(unmarshal func(any) error) error {
	aux := struct {
		PollInterval     string `yaml:"pollInterval"`
		PollJitter       string `yaml:"pollJitter"`
		SilentBackground *bool  `yaml:"silentBackground"`
	}{}

	err := unmarshal(&aux)
	if err != nil {
		return err
	}

	if aux.PollInterval != "" {
		c.PollInterval, err = time.ParseDuration(aux.PollInterval)
		if err != nil {
			return fmt.Errorf("invalid pollInterval: %w", err)
		}
	}

	if aux.PollJitter != "" {
		c.PollJitter, err = time.ParseDuration(aux.PollJitter)
		if err != nil {
			return fmt.Errorf("invalid pollJitter: %w", err)
		}
	}

	if aux.SilentBackground != nil {
		c.SilentBackground = *aux.SilentBackground
	}

	return nil
}

// State is a snapshot of the monitor's invariant-bearing fields.
type State struct {
	PreviousEmergencyCount int       `json:"previousEmergencyCount"`
	SidebarOpen            bool      `json:"sidebarOpen"`
	LastPoll               time.Time `json:"lastPoll,omitempty"`
}

// Monitor maintains the roster of users with an active emergency alarm
// and raises notifications when that roster grows.
type Monitor interface {
	Start(ctx context.Context)
	Stop()

	// Poll fetches the full user roster, rebuilds the alert roster and,
	// unless silent, emits notification side effects when the number of
	// active alarms has grown since the previous poll.
	Poll(ctx context.Context, silent bool) error

	// Refresh is a user-initiated, non-silent poll.
	Refresh(ctx context.Context) error

	// Resolve clears the emergency alarm for the given user on the
	// tracking backend and re-polls. On failure the roster is left
	// untouched and the error is propagated to the caller.
	Resolve(ctx context.Context, userID string) error

	Roster() []types.User
	State() State
	SetSidebarOpen(open bool)

	Stats(ctx context.Context) (types.DashboardStats, error)
}

type monitorImpl struct {
	client    client.TrackingClient
	engine    audio.Engine
	messenger EventPublisher
	panel     PanelNotifier
	sender    events.EventSender
	journal   journal.Journal

	cfg *Config

	mu            sync.Mutex
	roster        []types.User
	previousCount int
	sidebarOpen   bool
	lastPoll      time.Time

	// monotonic poll sequencing, so that a slow response can not
	// overwrite state that a newer poll already applied
	dispatchedSeq uint64
	appliedSeq    uint64

	done chan struct{}
}

func New(c client.TrackingClient, engine audio.Engine, messenger EventPublisher,
	panel PanelNotifier, sender events.EventSender, j journal.Journal, cfg *Config) Monitor {

	if cfg == nil {
		cfg = DefaultConfig()
	}

	return &monitorImpl{
		client:    c,
		engine:    engine,
		messenger: messenger,
		panel:     panel,
		sender:    sender,
		journal:   j,
		cfg:       cfg,
		roster:    []types.User{},
	}
}

func (m *monitorImpl) Start(ctx context.Context) {
	m.mu.Lock()
	if m.done != nil {
		m.mu.Unlock()
		return
	}
	m.done = make(chan struct{})
	done := m.done
	m.mu.Unlock()

	go m.backgroundWorker(ctx, done)
}

func (m *monitorImpl) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done != nil {
		close(m.done)
		m.done = nil
	}
}

func (m *monitorImpl) backgroundWorker(ctx context.Context, done <-chan struct{}) {
	log := logging.GetLoggerFromContext(ctx)

	// first poll is always silent so that a restart does not replay
	// alerts for emergencies that are already being handled
	err := m.Poll(ctx, true)
	if err != nil {
		log.Error().Err(err).Msg("initial poll failed")
	}

	for {
		select {
		case <-done:
			return
		case <-time.After(m.nextWaitInterval()):
			err := m.Poll(ctx, m.cfg.SilentBackground)
			if err != nil {
				log.Error().Err(err).Msg("background poll failed")
			}
		}
	}
}

// nextWaitInterval returns the fixed poll interval with jitter added, so
// that several monitor instances do not hammer the backend in lockstep.
func (m *monitorImpl) nextWaitInterval() time.Duration {
	interval := m.cfg.PollInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	if m.cfg.PollJitter > 0 {
		interval += time.Duration(rand.Int63n(int64(m.cfg.PollJitter)))
	}

	return interval
}

func (m *monitorImpl) Poll(ctx context.Context, silent bool) error {
	var err error
	ctx, span := tracer.Start(ctx, "poll-roster")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetLoggerFromContext(ctx)

	m.mu.Lock()
	m.dispatchedSeq++
	seq := m.dispatchedSeq
	m.mu.Unlock()

	users, err := m.client.GetUsers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch users from tracking backend")
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	alerting := lo.Filter(users, func(u types.User, _ int) bool {
		return u.EmergencyAlarm
	})

	m.mu.Lock()

	if seq < m.appliedSeq {
		m.mu.Unlock()
		log.Debug().Uint64("seq", seq).Msg("dropping stale poll response")
		return nil
	}

	previousCount := m.previousCount
	previousRoster := m.roster
	currentCount := len(alerting)

	m.appliedSeq = seq
	m.previousCount = currentCount
	m.roster = alerting
	m.lastPoll = time.Now().UTC()

	notify := !silent && currentCount > previousCount
	if notify {
		m.sidebarOpen = true
	}

	m.mu.Unlock()

	log.Debug().
		Int("current", currentCount).
		Int("previous", previousCount).
		Msg("checked emergencies")

	m.journalTransitions(ctx, previousRoster, alerting)

	if notify {
		m.notify(ctx, types.Notification{
			Delta:      currentCount - previousCount,
			Count:      currentCount,
			ObservedAt: time.Now().UTC(),
		}, alerting)
	}

	return nil
}

func (m *monitorImpl) Refresh(ctx context.Context) error {
	return m.Poll(ctx, false)
}

func (m *monitorImpl) Resolve(ctx context.Context, userID string) error {
	var err error
	ctx, span := tracer.Start(ctx, "resolve-emergency")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetLoggerFromContext(ctx)

	err = m.client.SetEmergencyAlarm(ctx, userID, false)
	if err != nil {
		return fmt.Errorf("failed to resolve emergency for user %s: %w", userID, err)
	}

	resolved := &EmergencyResolved{
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}

	if m.messenger != nil {
		pubErr := m.messenger.PublishOnTopic(ctx, resolved)
		if pubErr != nil {
			log.Error().Err(pubErr).Msg("failed to publish resolve event")
		}
	}

	if m.panel != nil {
		pubErr := m.panel.Publish("emergency-resolved", resolved)
		if pubErr != nil {
			log.Error().Err(pubErr).Msg("failed to publish panel notification")
		}
	}

	return m.Poll(ctx, false)
}

func (m *monitorImpl) Roster() []types.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	roster := make([]types.User, len(m.roster))
	copy(roster, m.roster)
	return roster
}

func (m *monitorImpl) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return State{
		PreviousEmergencyCount: m.previousCount,
		SidebarOpen:            m.sidebarOpen,
		LastPoll:               m.lastPoll,
	}
}

func (m *monitorImpl) SetSidebarOpen(open bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sidebarOpen = open
}

func (m *monitorImpl) Stats(ctx context.Context) (types.DashboardStats, error) {
	var err error
	ctx, span := tracer.Start(ctx, "dashboard-stats")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	users, err := m.client.GetUsers(ctx)
	if err != nil {
		return types.DashboardStats{}, fmt.Errorf("failed to fetch users: %w", err)
	}

	stats := types.DashboardStats{
		UserCount: len(users),
		ActiveEmergencies: lo.CountBy(users, func(u types.User) bool {
			return u.EmergencyAlarm
		}),
		LocationStatus: types.LocationStatus{
			AtLocation: lo.CountBy(users, func(u types.User) bool {
				return u.AssignedLocation != types.NotAssigned && u.AtAssignedLocation
			}),
			NotAtLocation: lo.CountBy(users, func(u types.User) bool {
				return u.AssignedLocation != types.NotAssigned && !u.AtAssignedLocation
			}),
			NotAssigned: lo.CountBy(users, func(u types.User) bool {
				return u.AssignedLocation == types.NotAssigned
			}),
		},
	}

	return stats, nil
}

// notify fans a new-emergencies notification out to the panel, the message
// broker, any cloudevents subscribers and the audio engine. Every sink is
// best effort, a failed delivery never fails the poll.
func (m *monitorImpl) notify(ctx context.Context, n types.Notification, roster []types.User) {
	log := logging.GetLoggerFromContext(ctx)

	log.Info().Int("delta", n.Delta).Int("count", n.Count).Msg("new emergency alerts detected")

	if m.panel != nil {
		err := m.panel.Publish("emergency-raised", struct {
			Notification types.Notification `json:"notification"`
			Users        []types.User       `json:"users"`
		}{Notification: n, Users: roster})
		if err != nil {
			log.Error().Err(err).Msg("failed to publish panel notification")
		}
	}

	if m.messenger != nil {
		err := m.messenger.PublishOnTopic(ctx, &EmergencyRaised{
			Delta:     n.Delta,
			Count:     n.Count,
			Users:     roster,
			Timestamp: n.ObservedAt,
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to publish emergency.raised")
		}
	}

	if m.sender != nil {
		err := m.sender.Send(ctx, n, roster)
		if err != nil {
			log.Error().Err(err).Msg("failed to deliver notification to subscribers")
		}
	}

	if m.engine != nil {
		ok, reason := m.engine.Play(ctx)
		if !ok && errors.Is(reason, audio.ErrNotAllowed) && m.panel != nil {
			// let the panel tell the operator to enable sound instead
			// of failing the alert
			m.panel.Publish("sound-blocked", n)
		}
	}
}

// journalTransitions records per-user raises and resolves in the audit
// journal. This runs on every poll, silent or not, and has no effect on
// the count-based notification decision above.
func (m *monitorImpl) journalTransitions(ctx context.Context, previous, current []types.User) {
	if m.journal == nil {
		return
	}

	log := logging.GetLoggerFromContext(ctx)
	now := time.Now().UTC()

	wasAlerting := lo.SliceToMap(previous, func(u types.User) (string, types.User) {
		return u.ID, u
	})
	isAlerting := lo.SliceToMap(current, func(u types.User) (string, types.User) {
		return u.ID, u
	})

	for id, u := range isAlerting {
		if _, ok := wasAlerting[id]; !ok {
			err := m.journal.Add(ctx, types.JournalEntry{
				UserID:     u.ID,
				UserName:   u.Name(),
				Rank:       u.Rank,
				Location:   u.CurrentLocation,
				Entry:      types.JournalEntryRaised,
				ObservedAt: now,
			})
			if err != nil {
				log.Error().Err(err).Msg("failed to journal raised alarm")
			}
		}
	}

	for id, u := range wasAlerting {
		if _, ok := isAlerting[id]; !ok {
			err := m.journal.Add(ctx, types.JournalEntry{
				UserID:     u.ID,
				UserName:   u.Name(),
				Rank:       u.Rank,
				Location:   u.CurrentLocation,
				Entry:      types.JournalEntryResolved,
				ObservedAt: now,
			})
			if err != nil {
				log.Error().Err(err).Msg("failed to journal resolved alarm")
			}
		}
	}
}
