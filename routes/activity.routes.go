package routes

import (
	"bora/internal/controllers"
	"bora/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterActivityRoutes(router *gin.Engine, activityController *controllers.ActivityController) {
	activityRoutes := router.Group("/activities")
	activityRoutes.Use(middleware.AuthMiddleware())
	{
		activityRoutes.GET("", activityController.GetActivities)
		activityRoutes.GET("/all", activityController.GetAllActivities)
		activityRoutes.GET("/types", activityController.GetTypes)
		activityRoutes.POST("/new", activityController.CreateActivity)

		activityRoutes.GET("/user/creator", activityController.GetCreatedByUser)
		activityRoutes.GET("/user/creator/all", activityController.GetAllCreatedByUser)
		activityRoutes.GET("/user/participant", activityController.GetParticipating)
		activityRoutes.GET("/user/participant/all", activityController.GetAllParticipating)

		activityRoutes.GET("/:activityId/participants", activityController.GetParticipants)
		activityRoutes.POST("/:activityId/subscribe", activityController.Subscribe)
		activityRoutes.PUT("/:activityId/update", activityController.UpdateActivity)
		activityRoutes.PUT("/:activityId/conclude", activityController.Conclude)
		activityRoutes.PUT("/:activityId/approve", activityController.ApproveParticipant)
		activityRoutes.PUT("/:activityId/check-in", activityController.CheckIn)
		activityRoutes.DELETE("/:activityId/unsubscribe", activityController.Unsubscribe)
		activityRoutes.DELETE("/:activityId/delete", activityController.DeleteActivity)
	}
}
