package components

import (
	"context"

	"stayhub/internal/infra/events"
	"stayhub/internal/infra/gateway"
	"stayhub/internal/infra/uow"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase/shared"

	"go.uber.org/fx"
)

// InfraModule wires the write side: the unit of work, the payment gateway
// parsers and the booking event publisher.
var InfraModule = fx.Module("infra",
	fx.Provide(
		uow.NewPostgresUoW,
		gateway.DefaultRegistry,
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) shared.EventPublisher {
	publisher, cleanup := events.NewPublisher(cfg.Events)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return publisher
}
