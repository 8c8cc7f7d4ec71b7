package controller

import (
	"net/http"
	"time"

	"hostel-meal-management/middleware"
	"hostel-meal-management/models"
	"hostel-meal-management/query"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestMeal records a meal request. New requests are always pending.
func (h *Controller) RequestMeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.RequestedMeal
		if !bind(c, &request) {
			return
		}
		if !h.authorize(c, request.Email) {
			return
		}

		// create some extra details for the request: ID, status, createdAt
		request.ID = primitive.NewObjectID()
		request.Status = models.StatusPending
		request.CreatedAt = time.Now()

		ctx, cancel := h.context(c)
		defer cancel()

		result, insertErr := h.requestedMeals.InsertOne(ctx, request)
		if insertErr != nil {
			h.fail(c, insertErr, "meal request was not saved")
			return
		}
		c.JSON(http.StatusCreated, insertResponse(result))
	}
}

func (h *Controller) GetRequestedMeals() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filterInput query.RequestedMealFilter
		var page query.Page
		if err := c.ShouldBindQuery(&filterInput); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := c.ShouldBindQuery(&page); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := h.context(c)
		defer cancel()

		requests, err := findAll[models.RequestedMeal](ctx, h.requestedMeals, filterInput.Build(), page.FindOptions())
		if err != nil {
			h.fail(c, err, "error occurred while listing requested meals")
			return
		}
		c.JSON(http.StatusOK, requests)
	}
}

// GetRequestedMealsByEmail lists one user's requests; search and status
// filters still apply.
func (h *Controller) GetRequestedMealsByEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filterInput query.RequestedMealFilter
		if err := c.ShouldBindQuery(&filterInput); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// the path decides whose requests are listed
		filterInput.Email = c.Param("email")

		ctx, cancel := h.context(c)
		defer cancel()

		requests, err := findAll[models.RequestedMeal](ctx, h.requestedMeals, filterInput.Build(), query.Page{}.FindOptions())
		if err != nil {
			h.fail(c, err, "error occurred while listing requested meals")
			return
		}
		c.JSON(http.StatusOK, requests)
	}
}

func (h *Controller) UpdateRequestedMealStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := query.ObjectID(c.Param("id"))
		if err != nil {
			h.fail(c, err, "")
			return
		}

		var input query.StatusUpdate
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

		// Check if the request exists and update its status
		result, err := updateOne(ctx, h.requestedMeals, byID(id), query.Set(updateObj), false, "requested meal")
		if err != nil {
			h.fail(c, err, "status update failed")
			return
		}
		c.JSON(http.StatusOK, updateResponse(result))
	}
}

// DeleteRequestedMeal cancels a request. Non-admins can only delete their own.
func (h *Controller) DeleteRequestedMeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := query.ObjectID(c.Param("id"))
		if err != nil {
			h.fail(c, err, "")
			return
		}

		filter, ok := h.ownedBy(c, id)
		if !ok {
			return
		}

		ctx, cancel := h.context(c)
		defer cancel()

		result, err := deleteOne(ctx, h.requestedMeals, filter, "requested meal")
		if err != nil {
			h.fail(c, err, "requested meal delete failed")
			return
		}
		c.JSON(http.StatusOK, deleteResponse(result))
	}
}

// ownedBy returns a filter for id that also pins the owner's email unless
// the caller is an admin.
func (h *Controller) ownedBy(c *gin.Context, id primitive.ObjectID) (bson.M, bool) {
	admin, err := h.isCallerAdmin(c)
	if err != nil {
		h.fail(c, err, "error occurred while checking permissions")
		return nil, false
	}
	filter := byID(id)
	if !admin {
		filter["email"] = c.GetString(middleware.EmailKey)
	}
	return filter, true
}
