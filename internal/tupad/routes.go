package tupad

import (
	"congress-api/internal/logs"
	"congress-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, service *TupadService, logService *logs.LogService) {
	tupadController := &TupadController{Service: service, LS: logService}

	tupadGroup := r.Group("/api/tupad")
	tupadGroup.Use(middlewares.AuthMiddleware())
	{
		tupadGroup.GET("", tupadController.List)
		tupadGroup.GET("/:id", tupadController.Get)
		tupadGroup.POST("", tupadController.Create)
		tupadGroup.PUT("/:id", tupadController.Update)
		tupadGroup.DELETE("/:id", tupadController.Delete)
		tupadGroup.POST("/bulk", tupadController.Bulk)
		tupadGroup.POST("/import", tupadController.Import)
		tupadGroup.POST("/preview", tupadController.Preview)
		tupadGroup.GET("/export", tupadController.Export)
	}

	searchGroup := r.Group("/api/search")
	searchGroup.Use(middlewares.AuthMiddleware())
	{
		searchGroup.GET("/tupad", tupadController.Search)
	}
}
