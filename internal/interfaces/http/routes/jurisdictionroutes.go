package routes

import (
	"github.com/gin-gonic/gin"

	jurisdictionhandlers "permitflow/internal/interfaces/http/handlers/jurisdiction"
	"permitflow/internal/interfaces/http/middleware"
)

type JurisdictionRouteConfig struct {
	JurisdictionHandler *jurisdictionhandlers.JurisdictionHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupJurisdictionRoutes(engine *gin.Engine, config *JurisdictionRouteConfig) {
	jurisdictions := engine.Group("/jurisdictions")
	jurisdictions.Use(config.AuthMiddleware.RequireAuth())
	{
		jurisdictions.GET("", config.JurisdictionHandler.ListJurisdictions)
	}
}
