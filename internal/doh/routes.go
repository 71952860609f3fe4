package doh

import (
	"congress-api/internal/logs"
	"congress-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, service *DohService, logService *logs.LogService) {
	dohController := &DohController{Service: service, LS: logService}

	dohGroup := r.Group("/api/doh")
	dohGroup.Use(middlewares.AuthMiddleware())
	{
		dohGroup.GET("", dohController.List)
		dohGroup.GET("/:id", dohController.Get)
		dohGroup.POST("", dohController.Create)
		dohGroup.PUT("/:id", dohController.Update)
		dohGroup.DELETE("/:id", dohController.Delete)
		dohGroup.POST("/bulk", dohController.Bulk)
		dohGroup.POST("/import", dohController.Import)
		dohGroup.POST("/preview", dohController.Preview)
		dohGroup.GET("/export", dohController.Export)
	}

	searchGroup := r.Group("/api/search")
	searchGroup.Use(middlewares.AuthMiddleware())
	{
		searchGroup.GET("/doh", dohController.Search)
	}
}
