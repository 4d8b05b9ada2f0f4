package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/qr", h.qr)
		api.GET("/quote", h.quote)
		api.POST("/render", h.render)
	}
}
