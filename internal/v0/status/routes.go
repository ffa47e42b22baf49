package status

import (
	"DiningAPI/internal/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware *auth.Middleware) {
	halls := rg.Group("/halls")
	halls.Use(authMiddleware.RateLimit())
	{
		halls.GET("", h.GetHalls)
		halls.GET("/:hall", h.GetHall)
		halls.GET("/:hall/schedule", h.GetHallSchedule)
	}

	admin := rg.Group("/admin")
	admin.Use(authMiddleware.RequireAdmin())
	{
		admin.POST("/reload", h.PostReload)
	}
}
