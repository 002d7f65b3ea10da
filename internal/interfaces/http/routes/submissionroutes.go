package routes

import (
	"github.com/gin-gonic/gin"

	submissionhandlers "permitflow/internal/interfaces/http/handlers/submission"
	"permitflow/internal/interfaces/http/middleware"
)

type SubmissionRouteConfig struct {
	SubmissionHandler     *submissionhandlers.SubmissionHandler
	AuthMiddleware        *middleware.AuthMiddleware
	IdempotencyMiddleware *middleware.IdempotencyMiddleware
}

func SetupSubmissionRoutes(engine *gin.Engine, config *SubmissionRouteConfig) {
	submissions := engine.Group("/submissions")
	submissions.Use(config.AuthMiddleware.RequireAuth())
	{
		// Unsafe operations honor the Idempotency-Key header.
		idempotent := config.IdempotencyMiddleware.Handle()

		submissions.POST("", idempotent, config.SubmissionHandler.CreateSubmission)
		submissions.GET("", config.SubmissionHandler.ListSubmissions)

		submissions.POST("/:id/transition", idempotent, config.SubmissionHandler.TransitionSubmission)
		submissions.POST("/:id/packet", idempotent, config.SubmissionHandler.RequestPacket)
		submissions.GET("/:id/packet", config.SubmissionHandler.GetPacket)
		submissions.GET("/:id/events", config.SubmissionHandler.ListEvents)

		submissions.GET("/:id", config.SubmissionHandler.GetSubmission)
		submissions.PUT("/:id", idempotent, config.SubmissionHandler.UpdateSubmission)
	}
}
