package components

import (
	"parking-gateway/internal/pkg/clock"
	"parking-gateway/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewAuthUseCase,
		usecase.NewBookingUseCase,
		usecase.NewSlotUseCase,
		usecase.NewOccupancyUseCase,
		usecase.NewFeedbackUseCase,
	),
)
