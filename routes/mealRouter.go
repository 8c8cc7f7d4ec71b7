package routes

import (
	controller "hostel-meal-management/controllers"

	"github.com/gin-gonic/gin"
)

func MealRoutes(incomingRoutes *gin.Engine, h *controller.Controller, gate Gate) {
	incomingRoutes.GET("/meals", h.GetMeals())
	incomingRoutes.GET("/meals/:id", h.GetMeal())
	incomingRoutes.POST("/meals", gate.Auth, gate.Admin, h.CreateMeal())
	incomingRoutes.PUT("/meals/:id", gate.Auth, gate.Admin, h.UpdateMeal())
	incomingRoutes.PATCH("/meals/:id", gate.Auth, h.LikeMeal())
	incomingRoutes.DELETE("/meals/:id", gate.Auth, gate.Admin, h.DeleteMeal())
	incomingRoutes.POST("/meals/:id/image", gate.Auth, gate.Admin, h.UploadMealImage())
}

func UpcomingMealRoutes(incomingRoutes *gin.Engine, h *controller.Controller, gate Gate) {
	incomingRoutes.GET("/upcoming-meals", h.GetUpcomingMeals())
	incomingRoutes.POST("/upcoming-meals", gate.Auth, gate.Admin, h.CreateUpcomingMeal())
	incomingRoutes.PUT("/upcoming-meals/:id", gate.Auth, gate.Admin, h.UpdateUpcomingMeal())
	incomingRoutes.POST("/upcoming-meals/:id/publish", gate.Auth, gate.Admin, h.PublishUpcomingMeal())
}

func PackageRoutes(incomingRoutes *gin.Engine, h *controller.Controller) {
	incomingRoutes.GET("/packages", h.GetPackages())
	incomingRoutes.GET("/packages/:name", h.GetPackage())
}
