package controller

import (
	"net/http"

	"hostel-meal-management/middleware"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func (h *Controller) Home() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "Server is running")
	}
}

// Health pings the database.
func (h *Controller) Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := h.context(c)
		defer cancel()

		if err := h.client.Ping(ctx, readpref.Primary()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "request_id": middleware.RequestID(c)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
