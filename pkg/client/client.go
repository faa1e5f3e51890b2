package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fieldwatch/emergency-monitor/internal/pkg/infrastructure/logging"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/infrastructure/tracing"
	"github.com/fieldwatch/emergency-monitor/pkg/types"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

//go:generate moq -rm -out client_mock.go . TrackingClient

// TrackingClient talks to the personnel-tracking backend on behalf of
// the monitor. It owns authentication and transport concerns, nothing else.
type TrackingClient interface {
	GetUsers(ctx context.Context) ([]types.User, error)
	SetEmergencyAlarm(ctx context.Context, userID string, active bool) error
}

var tracer = otel.Tracer("emergency-monitor/tracking-client")

type trackingClient struct {
	url         string
	httpClient  http.Client
	tokenSource oauth2.TokenSource
}

// New creates a client against the tracking backend at url. If tokenURL is
// empty the client operates without authentication, which is only useful
// in test environments.
func New(ctx context.Context, url, tokenURL, clientID, clientSecret string) (TrackingClient, error) {
	c := &trackingClient{
		url: url,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	if tokenURL != "" {
		ccCfg := clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		}

		c.tokenSource = ccCfg.TokenSource(ctx)

		if _, err := c.tokenSource.Token(); err != nil {
			return nil, fmt.Errorf("failed to acquire initial access token: %w", err)
		}
	}

	return c, nil
}

func (c *trackingClient) GetUsers(ctx context.Context) ([]types.User, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-users")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetLoggerFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/users", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users from tracking backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("tracking backend returned status %d", resp.StatusCode)
		return nil, err
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	result := struct {
		Users []types.User `json:"users"`
	}{}

	err = json.Unmarshal(respBody, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	log.Debug().Msgf("retrieved %d users from tracking backend", len(result.Users))

	return result.Users, nil
}

func (c *trackingClient) SetEmergencyAlarm(ctx context.Context, userID string, active bool) error {
	var err error
	ctx, span := tracer.Start(ctx, "set-emergency-alarm")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, err := json.Marshal(struct {
		EmergencyAlarm bool `json:"emergencyAlarm"`
	}{EmergencyAlarm: active})
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/users/%s/emergency", c.url, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("failed to update emergency alarm: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		err = fmt.Errorf("tracking backend returned status %d", resp.StatusCode)
		return err
	}

	return nil
}

func (c *trackingClient) do(req *http.Request) (*http.Response, error) {
	if c.tokenSource != nil {
		token, err := c.tokenSource.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to refresh access token: %w", err)
		}
		token.SetAuthHeader(req)
	}

	return c.httpClient.Do(req)
}
