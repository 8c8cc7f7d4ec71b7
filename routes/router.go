package routes

import (
	"time"

	controller "hostel-meal-management/controllers"
	"hostel-meal-management/middleware"

	"github.com/gin-gonic/gin"
)

// Gate holds the two access checks routes are mounted behind.
type Gate struct {
	Auth    gin.HandlerFunc
	Admin   gin.HandlerFunc
	roles   middleware.RoleLookup
	timeout time.Duration
}

// NewGate builds the checks; role lookups get timeout like any handler.
func NewGate(secret []byte, roles middleware.RoleLookup, timeout time.Duration) Gate {
	return Gate{
		Auth:    middleware.Authentication(secret),
		Admin:   middleware.AdminOnly(roles, timeout),
		roles:   roles,
		timeout: timeout,
	}
}

// Owner allows the caller named by the :param path segment, or an admin.
func (g Gate) Owner(param string) gin.HandlerFunc {
	return middleware.OwnerOrAdmin(g.roles, param, g.timeout)
}

// Setup builds the engine with every route mounted.
func Setup(h *controller.Controller, secret []byte, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(corsOrigins))

	gate := NewGate(secret, h, h.Timeout())

	router.GET("/", h.Home())
	router.GET("/healthz", h.Health())
	router.POST("/jwt", h.Login())

	MealRoutes(router, h, gate)
	UpcomingMealRoutes(router, h, gate)
	PackageRoutes(router, h)
	UserRoutes(router, h, gate)
	PaymentRoutes(router, h, gate)
	RequestedMealRoutes(router, h, gate)
	ReviewRoutes(router, h, gate)

	return router
}
