package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"parking-gateway/internal/handler/api"
	"parking-gateway/internal/handler/middleware"
	"parking-gateway/internal/infra/db"
	"parking-gateway/internal/pkg/config"
)

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *slog.Logger,
	manager *db.Manager,
	authHandler *api.AuthHandler,
	reservationHandler *api.ReservationHandler,
	slotHandler *api.SlotHandler,
	feedbackHandler *api.FeedbackHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger))

	engine.GET("/health", healthCheck(manager))

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		users := apiGroup.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/me", authHandler.Me)
		}

		slots := apiGroup.Group("/slots")
		{
			slots.GET("", slotHandler.ListSlots)
			slots.GET("/:id", slotHandler.GetSlot)
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			bookings.POST("", reservationHandler.CreateBooking)
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			reservations.GET("", reservationHandler.GetUserReservations)
			reservations.GET("/:id", reservationHandler.GetReservation)
			reservations.GET("/:id/payments", reservationHandler.GetReservationPayments)
			reservations.POST("/:id/check-in", reservationHandler.CheckIn)
			reservations.POST("/:id/check-out", reservationHandler.CheckOut)
		}

		feedback := apiGroup.Group("/feedback")
		feedback.Use(authMiddleware.RequireAuth())
		{
			feedback.POST("", feedbackHandler.SubmitFeedback)
		}
	}
}

// healthCheck reports the pool manager's lifecycle state so orchestration
// can tell a booting gateway from a broken one.
func healthCheck(manager *db.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := manager.State()
		body := gin.H{"status": state.String()}

		switch state {
		case db.StateReady:
			c.JSON(http.StatusOK, body)
		case db.StateFailed:
			c.JSON(http.StatusServiceUnavailable, body)
		default:
			body["status"] = "initializing"
			c.JSON(http.StatusOK, body)
		}
	}
}
