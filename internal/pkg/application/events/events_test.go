package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matryer/is"
	"gopkg.in/yaml.v2"

	"github.com/fieldwatch/emergency-monitor/pkg/types"
)

func TestConfig(t *testing.T) {
	is := is.New(t)

	cfg := &Config{}
	err := yaml.Unmarshal([]byte(`
notifications:
  - type: fieldwatch.emergencyraised
    subscribers:
    - endpoint: http://api-notification:8990
`), cfg)

	is.NoErr(err)
	is.Equal(len(cfg.Notifications), 1)
	is.Equal(cfg.Notifications[0].Type, EmergencyRaisedEventType)
	is.Equal(cfg.Notifications[0].Subscribers[0].Endpoint, "http://api-notification:8990")
}

func TestSendDeliversToSubscriber(t *testing.T) {
	is := is.New(t)

	received := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- r.Header.Get("Ce-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := New(&Config{
		Notifications: []NotificationConfig{
			{
				Type:        EmergencyRaisedEventType,
				Subscribers: []SubscriberConfig{{Endpoint: server.URL}},
			},
		},
	})

	n := types.Notification{Delta: 1, Count: 3, ObservedAt: time.Now().UTC()}
	err := sender.Send(context.Background(), n, []types.User{{ID: "user-1", EmergencyAlarm: true}})

	is.NoErr(err)
	is.Equal(<-received, EmergencyRaisedEventType)
}

func TestSendWithoutSubscribersIsANoop(t *testing.T) {
	is := is.New(t)

	err := New(nil).Send(context.Background(), types.Notification{}, nil)
	is.NoErr(err)
}
