package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/situs-protocol/situs-indexer/internal/api/middleware"
)

// SetupRoutes registers all REST routes on the router
func SetupRoutes(router *gin.Engine, handler *Handler, authCfg middleware.AuthConfig) {
	router.GET("/health", handler.Health)
	router.GET("/cron", middleware.CronAuth(authCfg), handler.Cron)

	v1 := router.Group("/api/v1")
	{
		admin := v1.Group("/admin", middleware.AdminAuth(authCfg))
		{
			admin.POST("/sync", handler.AdminSync)
			admin.POST("/verify", handler.AdminVerify)
			admin.POST("/fix", handler.AdminFix)
			admin.POST("/ensurance/sync", handler.AdminEnsuranceSync)
		}

		v1.GET("/metadata/:contract/:token_id", handler.GetMetadata)
		v1.GET("/metadata/:contract/:token_id/image", handler.GetMetadataImage)

		v1.GET("/ogs", handler.ListOGs)
		v1.GET("/ogs/:og/accounts", handler.ListAccounts)
		v1.GET("/ensurance/:chain", handler.ListEnsuranceTokens)
	}
}
