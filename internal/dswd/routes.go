package dswd

import (
	"congress-api/internal/logs"
	"congress-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, service *DswdService, logService *logs.LogService) {
	dswdController := &DswdController{Service: service, LS: logService}

	dswdGroup := r.Group("/api/dswd")
	dswdGroup.Use(middlewares.AuthMiddleware())
	{
		dswdGroup.GET("", dswdController.List)
		dswdGroup.GET("/claimed", dswdController.ListClaimed)
		dswdGroup.GET("/unclaimed", dswdController.ListUnclaimed)
		dswdGroup.GET("/:id", dswdController.Get)
		dswdGroup.POST("", dswdController.Create)
		dswdGroup.PUT("/:id", dswdController.Update)
		dswdGroup.DELETE("/:id", dswdController.Delete)
		dswdGroup.POST("/status", dswdController.UpdateStatus)
		dswdGroup.POST("/bulk", dswdController.Bulk)
		dswdGroup.POST("/import", dswdController.Import)
		dswdGroup.POST("/preview", dswdController.Preview)
		dswdGroup.GET("/export", dswdController.Export)
	}

	searchGroup := r.Group("/api/search")
	searchGroup.Use(middlewares.AuthMiddleware())
	{
		searchGroup.GET("/dswd", dswdController.Search)
	}
}
