package events

import (
	"context"
	"errors"
	"fmt"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"golang.org/x/sys/unix"

	"github.com/fieldwatch/emergency-monitor/internal/pkg/infrastructure/logging"
	"github.com/fieldwatch/emergency-monitor/pkg/types"
)

const EmergencyRaisedEventType string = "fieldwatch.emergencyraised"

type SubscriberConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type NotificationConfig struct {
	Type        string             `yaml:"type"`
	Subscribers []SubscriberConfig `yaml:"subscribers"`
}

type Config struct {
	Notifications []NotificationConfig `yaml:"notifications"`
}

// EventSender delivers emergency notifications to externally configured
// subscriber endpoints as cloudevents.
type EventSender interface {
	Send(ctx context.Context, n types.Notification, roster []types.User) error
}

type eventSender struct {
	subscribers map[string][]SubscriberConfig
}

func New(cfg *Config) EventSender {
	e := &eventSender{
		subscribers: make(map[string][]SubscriberConfig),
	}

	if cfg != nil {
		for _, s := range cfg.Notifications {
			e.subscribers[s.Type] = s.Subscribers
		}
	}

	return e
}

func (e *eventSender) Send(ctx context.Context, n types.Notification, roster []types.User) error {
	if s, ok := e.subscribers[EmergencyRaisedEventType]; !ok || len(s) == 0 {
		return nil
	}

	var err error

	c, err := cloudevents.NewClientHTTP()
	if err != nil {
		return err
	}

	event := cloudevents.NewEvent()
	event.SetID(fmt.Sprintf("emergency:%d", n.ObservedAt.Unix()))
	event.SetTime(n.ObservedAt)
	event.SetSource("github.com/fieldwatch/emergency-monitor")
	event.SetType(EmergencyRaisedEventType)

	eventData := struct {
		Delta     int          `json:"delta"`
		Count     int          `json:"count"`
		Users     []types.User `json:"users"`
		Timestamp string       `json:"timestamp"`
	}{
		Delta:     n.Delta,
		Count:     n.Count,
		Users:     roster,
		Timestamp: n.ObservedAt.Format("2006-01-02T15:04:05.999999999Z07:00"),
	}

	err = event.SetData(cloudevents.ApplicationJSON, eventData)
	if err != nil {
		return err
	}

	logger := logging.GetLoggerFromContext(ctx)

	for _, s := range e.subscribers[EmergencyRaisedEventType] {
		ctxWithTarget := cloudevents.ContextWithTarget(ctx, s.Endpoint)

		result := c.Send(ctxWithTarget, event)
		if cloudevents.IsUndelivered(result) || errors.Is(result, unix.ECONNREFUSED) {
			logger.Error().Err(result).Msgf("failed to send event to %s", s.Endpoint)
			err = fmt.Errorf("%w", result)
		}
	}

	return err
}
