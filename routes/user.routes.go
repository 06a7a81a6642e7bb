package routes

import (
	"bora/internal/controllers"
	"bora/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(router *gin.Engine, userController *controllers.UserController) {
	userRoutes := router.Group("/user")
	userRoutes.Use(middleware.AuthMiddleware())
	{
		userRoutes.GET("", userController.GetProfile)
		userRoutes.GET("/achievements", userController.GetAchievements)
		userRoutes.GET("/preferences", userController.GetPreferences)
		userRoutes.POST("/preferences/define", userController.DefinePreferences)
		userRoutes.PUT("/avatar", userController.UpdateAvatar)
		userRoutes.PUT("/update", userController.UpdateUser)
		userRoutes.DELETE("/deactivate", userController.DeactivateUser)
	}
}
