package controller

import (
	"net/http"
	"strings"
	"time"

	"hostel-meal-management/middleware"
	"hostel-meal-management/models"
	"hostel-meal-management/query"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

const maxImageSize = 5 << 20

func (h *Controller) GetMeals() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filterInput query.MealFilter
		var page query.Page
		if err := c.ShouldBindQuery(&filterInput); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := c.ShouldBindQuery(&page); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Build the filter from the query parameters
		filter, err := filterInput.Build()
		if err != nil {
			h.fail(c, err, "")
			return
		}

		ctx, cancel := h.context(c)
		defer cancel()

		meals, err := findAll[models.Meal](ctx, h.meals, filter, page.FindOptions())
		if err != nil {
			h.fail(c, err, "error occurred while listing meals")
			return
		}
		c.JSON(http.StatusOK, meals)
	}
}

func (h *Controller) GetMeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := query.ObjectID(c.Param("id"))
		if err != nil {
			h.fail(c, err, "")
			return
		}

		ctx, cancel := h.context(c)
		defer cancel()

		// Query the database
		meal, err := findOne[models.Meal](ctx, h.meals, byID(id), "meal")
		if err != nil {
			h.fail(c, err, "error occurred while fetching the meal")
			return
		}
		c.JSON(http.StatusOK, meal)
	}
}

func (h *Controller) CreateMeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input query.MealUpdate
		if !bind(c, &input) {
			return
		}

		fields, err := input.Fields()
		if err == nil {
			err = query.Require(fields, "title", "category", "price")
		}
		if err != nil {
			h.fail(c, err, "")
			return
		}

		// counters start at zero unless the client seeded them
		fields = withDefault(fields, "like", 0)
		fields = withDefault(fields, "reviewCount", 0)
		if caller := c.GetString(middleware.EmailKey); caller != "" {
			fields = withDefault(fields, "adminEmail", caller)
		}
		fields = append(fields, bson.E{Key: "createdAt", Value: time.Now()})

		ctx, cancel := h.context(c)
		defer cancel()

		// Insert the new meal
		result, insertErr := h.meals.InsertOne(ctx, fields)
		if insertErr != nil {
			h.fail(c, insertErr, "meal was not created")
			return
		}
		c.JSON(http.StatusCreated, insertResponse(result))
	}
}

// UpdateMeal edits any writable meal field. The meal must exist.
func (h *Controller) UpdateMeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := query.ObjectID(c.Param("id"))
		if err != nil {
			h.fail(c, err, "")
			return
		}

		var input query.MealUpdate
		if !bind(c, &input) {
			return
		}
		updateObj, err := input.Fields()
		if err != nil {
			h.fail(c, err, "")
			return
		}

		ctx, cancel := h.context(c)
		defer cancel()

		// Update only the fields that were sent
		result, err := updateOne(ctx, h.meals, byID(id), query.Set(updateObj), false, "meal")
		if err != nil {
			h.fail(c, err, "meal update failed")
			return
		}
		c.JSON(http.StatusOK, updateResponse(result))
	}
}

// LikeMeal sets the like counter and nothing else.
func (h *Controller) LikeMeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := query.ObjectID(c.Param("id"))
		if err != nil {
			h.fail(c, err, "")
			return
		}

		var input query.LikeUpdate
		if !bind(c, &input) {
			return
		}
		updateObj, err := input.Fields()
		if err != nil {
			h.fail(c, err, "")
			return
		}

		ctx, cancel := h.context(c)
		defer cancel()

		result, err := updateOne(ctx, h.meals, byID(id), query.Set(updateObj), false, "meal")
		if err != nil {
			h.fail(c, err, "meal update failed")
			return
		}
		c.JSON(http.StatusOK, updateResponse(result))
	}
}

func (h *Controller) DeleteMeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := query.ObjectID(c.Param("id"))
		if err != nil {
			h.fail(c, err, "")
			return
		}

		ctx, cancel := h.context(c)
		defer cancel()

		result, err := deleteOne(ctx, h.meals, byID(id), "meal")
		if err != nil {
			h.fail(c, err, "meal delete failed")
			return
		}
		c.JSON(http.StatusOK, deleteResponse(result))
	}
}

// UploadMealImage stores the multipart "image" file and points the meal at it.
func (h *Controller) UploadMealImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.images == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image upload is not configured"})
			return
		}

		id, err := query.ObjectID(c.Param("id"))
		if err != nil {
			h.fail(c, err, "")
			return
		}

		// Read the uploaded file and check its size and type
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}
		if file.Size > maxImageSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image must be at most 5MB"})
			return
		}
		contentType := file.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is not an image"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
			return
		}
		defer src.Close()

		ctx, cancel := h.context(c)
		defer cancel()

		// Store the image, then point the meal at its URL
		url, err := h.images.PutImage(ctx, "meals", file.Filename, contentType, src, file.Size)
		if err != nil {
			h.fail(c, err, "image upload failed")
			return
		}

		updateObj, err := query.MealUpdate{Image: &url}.Fields()
		if err != nil {
			h.fail(c, err, "")
			return
		}
		if _, err := updateOne(ctx, h.meals, byID(id), query.Set(updateObj), false, "meal"); err != nil {
			h.fail(c, err, "meal update failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"image": url})
	}
}
