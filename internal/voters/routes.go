package voters

import (
	"congress-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, service *VoterService) {
	voterController := &VoterController{Service: service}

	searchGroup := r.Group("/api/search")
	searchGroup.Use(middlewares.AuthMiddleware())
	{
		searchGroup.GET("/voters", voterController.Search)
	}
}
