package components

import (
	"parking-gateway/internal/infra/repository"
	"parking-gateway/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
		fx.Annotate(
			repository.NewSlotRepository,
			fx.As(new(usecase.SlotRepository)),
			fx.As(new(usecase.SlotClaimer)),
		),
		fx.Annotate(
			repository.NewReservationRepository,
			fx.As(new(usecase.ReservationRepository)),
		),
		fx.Annotate(
			repository.NewPaymentRepository,
			fx.As(new(usecase.PaymentRepository)),
		),
		fx.Annotate(
			repository.NewOccupancyRepository,
			fx.As(new(usecase.OccupancyRepository)),
			fx.As(new(usecase.OccupancyWriter)),
		),
		fx.Annotate(
			repository.NewFeedbackRepository,
			fx.As(new(usecase.FeedbackRepository)),
		),
	),
)
