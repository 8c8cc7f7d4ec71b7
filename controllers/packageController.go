package controller

import (
	"net/http"

	"hostel-meal-management/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (h *Controller) GetPackages() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := h.context(c)
		defer cancel()

		// cheapest package first
		opts := options.Find().SetSort(bson.D{{Key: "price", Value: 1}})
		packages, err := findAll[models.Package](ctx, h.packages, bson.M{}, opts)
		if err != nil {
			h.fail(c, err, "error occurred while listing packages")
			return
		}
		c.JSON(http.StatusOK, packages)
	}
}

// GetPackage looks a package up by its name, which is what checkout links use.
func (h *Controller) GetPackage() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := h.context(c)
		defer cancel()

		pkg, err := findOne[models.Package](ctx, h.packages, bson.M{"name": c.Param("name")}, "package")
		if err != nil {
			h.fail(c, err, "error occurred while fetching the package")
			return
		}
		c.JSON(http.StatusOK, pkg)
	}
}
