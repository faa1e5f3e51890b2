package monitor

import (
	"context"

	"github.com/diwise/messaging-golang/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/fieldwatch/emergency-monitor/internal/pkg/infrastructure/logging"
)

// UserUpdatedHandler triggers an immediate silent poll whenever the
// tracking backend announces a user change on the broker, so that the
// roster does not have to wait for the next timer tick.
func UserUpdatedHandler(m Monitor) messaging.TopicMessageHandler {
	return func(ctx context.Context, msg amqp.Delivery, logger zerolog.Logger) {
		logger.Debug().Msgf("%s received, refreshing roster", msg.RoutingKey)

		ctx = logging.NewContextWithLogger(ctx, logger)

		err := m.Poll(ctx, true)
		if err != nil {
			logger.Error().Err(err).Msg("failed to refresh roster")
		}
	}
}
