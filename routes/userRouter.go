package routes

import (
	controller "hostel-meal-management/controllers"

	"github.com/gin-gonic/gin"
)

func UserRoutes(incomingRoutes *gin.Engine, h *controller.Controller, gate Gate) {
	incomingRoutes.POST("/users/signup", h.SignUp())
	incomingRoutes.POST("/users/login", h.Login())
	incomingRoutes.POST("/users", gate.Auth, h.UpsertUser())
	incomingRoutes.GET("/users", gate.Auth, gate.Admin, h.GetUsers())
	incomingRoutes.GET("/users/admin/:email", gate.Auth, h.CheckAdmin())
	incomingRoutes.PATCH("/users/admin/:id", gate.Auth, gate.Admin, h.SetRole())
	incomingRoutes.GET("/users/:email", gate.Auth, gate.Owner("email"), h.GetUser())
	incomingRoutes.PATCH("/users/:email/badge", gate.Auth, gate.Owner("email"), h.UpdateBadge())
}
