package logs

import (
	"congress-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, logService *LogService) {
	logController := &LogController{LogService: logService}

	logGroup := r.Group("/api/logs")
	logGroup.Use(middlewares.AuthMiddleware(), middlewares.RequireRole("admin"))
	{
		logGroup.POST("/filter", logController.GetLogs)
	}
}
