package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Отчеты: текущий снимок и отправка
	reports := api.Group("/reports")
	{
		reports.GET("", h.listReports)
		reports.GET("/:id", h.getReport)
		reports.POST("", h.submitReport)
	}

	// Слои карты
	mapGroup := api.Group("/map")
	{
		mapGroup.GET("/config", h.mapConfig)
		mapGroup.GET("/markers", h.markers)
		mapGroup.GET("/danger-zones", h.dangerZones)
	}

	// Токен для внешнего API хранится в cookie браузера
	session := api.Group("/session")
	{
		session.POST("/token", h.setToken)
		session.DELETE("/token", h.clearToken)
	}

	api.GET("/system/health", h.healthCheck)
	api.GET("/system/ready", h.readyCheck)
}
