package components

import (
	"parking-gateway/internal/handler"
	"parking-gateway/internal/handler/api"
	"parking-gateway/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewReservationHandler,
		api.NewSlotHandler,
		api.NewFeedbackHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
