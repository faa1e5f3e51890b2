package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"

	"github.com/fieldwatch/emergency-monitor/internal/pkg/application/audio"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/application/events"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/application/monitor"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/application/webevents"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/infrastructure/logging"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/infrastructure/repositories/journal"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/infrastructure/router"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/infrastructure/tracing"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/presentation/api"
	"github.com/fieldwatch/emergency-monitor/pkg/client"
)

const serviceName string = "emergency-monitor"

var serviceVersion string = "develop"

type appConfig struct {
	Monitor monitor.Config `yaml:"monitor"`
	Events  events.Config  `yaml:"events"`

	Audio struct {
		SoundFile     string `yaml:"soundFile"`
		PlayerCommand string `yaml:"playerCommand"`
	} `yaml:"audio"`

	Backend struct {
		URL          string `yaml:"url"`
		TokenURL     string `yaml:"tokenUrl"`
		ClientID     string `yaml:"clientId"`
		ClientSecret string `yaml:"clientSecret"`
	} `yaml:"backend"`
}

func main() {
	configFilePath := flag.String("config", "/opt/fieldwatch/config/config.yaml", "monitor configuration file")
	policiesFilePath := flag.String("policies", "/opt/fieldwatch/config/authz.rego", "an authorization policy file")
	flag.Parse()

	ctx, logger := logging.NewLogger(context.Background(), serviceName, serviceVersion)

	cleanup, err := tracing.Init(ctx, logger, serviceName, serviceVersion)
	exitIf(err, logger, "failed to init tracing")
	defer cleanup()

	configFile, err := os.Open(*configFilePath)
	exitIf(err, logger, "could not open configuration file")

	cfg, err := parseConfigFile(configFile)
	exitIf(err, logger, "could not parse configuration file")

	policies, err := os.Open(*policiesFilePath)
	exitIf(err, logger, "unable to open opa policy file")
	defer policies.Close()

	backendURL := env(logger, "TRACKING_BACKEND_URL", cfg.Backend.URL)
	if backendURL == "" {
		exitIf(fmt.Errorf("no tracking backend configured"), logger, "invalid configuration")
	}

	tc, err := client.New(ctx, backendURL,
		envOrDefault("OAUTH2_TOKEN_URL", cfg.Backend.TokenURL),
		envOrDefault("OAUTH2_CLIENT_ID", cfg.Backend.ClientID),
		envOrDefault("OAUTH2_CLIENT_SECRET", cfg.Backend.ClientSecret),
	)
	exitIf(err, logger, "failed to create tracking backend client")

	messenger, err := messaging.Initialize(
		messaging.LoadConfiguration(serviceName, logger),
	)
	exitIf(err, logger, "failed to init messenger")
	defer messenger.Close()

	j, err := journal.New(newJournalConnector(ctx))
	exitIf(err, logger, "could not create or connect to journal database")

	we := webevents.New()
	defer we.Shutdown()

	engine := audio.New(ctx, audio.NewPlayer(cfg.Audio.SoundFile, cfg.Audio.PlayerCommand))
	sender := events.New(&cfg.Events)

	m := monitor.New(tc, engine, messenger, we, sender, j, &cfg.Monitor)
	m.Start(ctx)
	defer m.Stop()

	messenger.RegisterTopicMessageHandler("tracking.userUpdated", monitor.UserUpdatedHandler(m))

	r, err := setupRouterAndRegisterHandlers(ctx, policies, m, engine, j, we)
	exitIf(err, logger, "failed to setup router")

	apiPort := fmt.Sprintf(":%s", envOrDefault("SERVICE_PORT", "8080"))
	logger.Info().Str("port", apiPort).Msg("starting to listen for connections")

	err = http.ListenAndServe(apiPort, r)
	exitIf(err, logger, "failed to start request router")
}

func setupRouterAndRegisterHandlers(ctx context.Context, policies io.Reader, m monitor.Monitor, engine audio.Engine, j journal.Journal, we webevents.WebEvents) (*chi.Mux, error) {
	r := router.New(serviceName)
	return api.RegisterHandlers(ctx, r, policies, m, engine, j, we)
}

func newJournalConnector(ctx context.Context) journal.ConnectorFunc {
	if os.Getenv("POSTGRES_HOST") != "" {
		return journal.NewPostgreSQLConnector(ctx, journal.LoadConfigFromEnv())
	}

	return journal.NewSQLiteConnector(os.Getenv("JOURNAL_FILE"))
}

func parseConfigFile(configFile io.ReadCloser) (*appConfig, error) {
	defer configFile.Close()

	b, err := io.ReadAll(configFile)
	if err != nil {
		return nil, err
	}

	cfg := &appConfig{Monitor: *monitor.DefaultConfig()}
	err = yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func env(logger zerolog.Logger, name, defaultValue string) string {
	value := envOrDefault(name, defaultValue)
	if value == "" {
		logger.Warn().Str("name", name).Msg("environment variable not set")
	}
	return value
}

func envOrDefault(name, defaultValue string) string {
	if value, ok := os.LookupEnv(name); ok {
		return value
	}
	return defaultValue
}

func exitIf(err error, logger zerolog.Logger, msg string) {
	if err != nil {
		logger.Fatal().Err(err).Msg(msg)
	}
}
