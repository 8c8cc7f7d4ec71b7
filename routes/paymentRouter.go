package routes

import (
	controller "hostel-meal-management/controllers"

	"github.com/gin-gonic/gin"
)

func PaymentRoutes(incomingRoutes *gin.Engine, h *controller.Controller, gate Gate) {
	incomingRoutes.POST("/create-payment-intent", gate.Auth, h.CreatePaymentIntent())
	incomingRoutes.POST("/payments", gate.Auth, h.SavePayment())
	incomingRoutes.GET("/payments", gate.Auth, gate.Admin, h.GetPayments())
	incomingRoutes.GET("/payments/:email", gate.Auth, gate.Owner("email"), h.GetPaymentsByEmail())
}
