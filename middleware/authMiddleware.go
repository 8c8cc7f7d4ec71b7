package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	helper "hostel-meal-management/helpers"

	"github.com/gin-gonic/gin"
)

// EmailKey is the gin context key holding the authenticated caller's email.
const EmailKey = "email"

// RoleLookup answers whether the user with the given email is an admin.
type RoleLookup interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// Authentication requires a valid bearer token and records the caller's
// email in the context.
func Authentication(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}

		claims, err := helper.ValidateToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}

		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// AdminOnly must run after Authentication. The role lookup is bounded by
// timeout.
func AdminOnly(lookup RoleLookup, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAdmin(c, lookup, timeout) {
			return
		}
		c.Next()
	}
}

// OwnerOrAdmin lets the request through when the path parameter param
// equals the caller's email, or when the caller is an admin.
func OwnerOrAdmin(lookup RoleLookup, param string, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param(param) == c.GetString(EmailKey) {
			c.Next()
			return
		}
		if !isAdmin(c, lookup, timeout) {
			return
		}
		c.Next()
	}
}

// isAdmin aborts the request and returns false unless the caller is an admin.
func isAdmin(c *gin.Context, lookup RoleLookup, timeout time.Duration) bool {
	email := c.GetString(EmailKey)
	if email == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
		return false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	admin, err := lookup.IsAdmin(ctx, email)
	if err != nil {
		log.Printf("rid=%s role lookup failed email=%s err=%v", RequestID(c), email, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "error occurred while checking permissions"})
		return false
	}
	if !admin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
		return false
	}
	return true
}
