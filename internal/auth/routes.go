package auth

import (
	"congress-api/internal/logs"
	"congress-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, userService *UserService, logService *logs.LogService) {
	authController := &AuthController{UserService: userService, LS: logService}

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)
		authGroup.POST("/logout", authController.Logout)
		authGroup.GET("/me", authController.Me)
		authGroup.POST("/refresh", authController.Refresh)
		authGroup.POST("/send-otp", authController.SendOTP)
		authGroup.POST("/reset-password", authController.ResetPassword)
	}

	profileGroup := r.Group("/api/profile")
	profileGroup.Use(middlewares.AuthMiddleware())
	{
		profileGroup.GET("", authController.GetProfile)
		profileGroup.PUT("", authController.UpdateProfile)
	}

	userGroup := r.Group("/api/users")
	userGroup.Use(middlewares.AuthMiddleware(), middlewares.RequireRole("admin"))
	{
		userGroup.GET("", authController.GetUsers)
		userGroup.POST("", authController.CreateUser)
		userGroup.GET("/:id", authController.GetUser)
		userGroup.PUT("/:id", authController.UpdateUser)
		userGroup.DELETE("/:id", authController.DeleteUser)
	}
}
