package routes

import (
	controller "hostel-meal-management/controllers"

	"github.com/gin-gonic/gin"
)

func RequestedMealRoutes(incomingRoutes *gin.Engine, h *controller.Controller, gate Gate) {
	incomingRoutes.POST("/requested-meals", gate.Auth, h.RequestMeal())
	incomingRoutes.GET("/requested-meals", gate.Auth, gate.Admin, h.GetRequestedMeals())
	incomingRoutes.GET("/requested-meals/user/:email", gate.Auth, gate.Owner("email"), h.GetRequestedMealsByEmail())
	incomingRoutes.PATCH("/requested-meals/:id", gate.Auth, gate.Admin, h.UpdateRequestedMealStatus())
	incomingRoutes.DELETE("/requested-meals/:id", gate.Auth, h.DeleteRequestedMeal())
}

func ReviewRoutes(incomingRoutes *gin.Engine, h *controller.Controller, gate Gate) {
	incomingRoutes.GET("/reviews", h.GetReviews())
	incomingRoutes.POST("/reviews", gate.Auth, h.AddReview())
	incomingRoutes.PATCH("/reviews/:id", gate.Auth, h.UpdateReview())
	incomingRoutes.DELETE("/reviews/:id", gate.Auth, h.DeleteReview())
}
