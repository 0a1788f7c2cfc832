package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	Secret          []byte
	AuthHandler     *AuthHandler
	ProviderHandler *ProviderHandler
	ViewHandler     *ViewHandler
	PlaceHandler    *PlaceHandler
	StreamHandler   *StreamHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CORS())

	// public
	router.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/api/login", cfg.AuthHandler.Login)

	// protected
	api := router.Group("/api")
	api.Use(RequireAuth(cfg.Secret))
	{
		api.GET("/providers", cfg.ProviderHandler.List)
		api.POST("/providers", cfg.ProviderHandler.Create)
		api.PUT("/providers/:id", cfg.ProviderHandler.Update)
		api.DELETE("/providers/:id", cfg.ProviderHandler.Delete)
		api.POST("/providers/:id/opmerkingen", cfg.ProviderHandler.AddComment)
		api.DELETE("/providers/:id/opmerkingen/:index", cfg.ProviderHandler.DeleteComment)
		api.GET("/providers/stream", cfg.StreamHandler.Snapshots)
		api.GET("/views", cfg.ViewHandler.Render)
		api.GET("/places", cfg.PlaceHandler.Search)
	}

	return router
}
