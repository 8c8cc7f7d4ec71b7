package controller

import (
	"log"
	"net/http"
	"time"

	"hostel-meal-management/middleware"
	"hostel-meal-management/models"
	"hostel-meal-management/query"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddReview stores a review and bumps the meal's review counter.
func (h *Controller) AddReview() gin.HandlerFunc {
	return func(c *gin.Context) {
		var review models.Review
		if !bind(c, &review) {
			return
		}
		if !h.authorize(c, review.Email) {
			return
		}

		review.ID = primitive.NewObjectID()
		review.CreatedAt = time.Now()

		ctx, cancel := h.context(c)
		defer cancel()

		// Save the review, then bump the counter on its meal
		result, insertErr := h.reviews.InsertOne(ctx, review)
		if insertErr != nil {
			h.fail(c, insertErr, "review was not saved")
			return
		}
		h.adjustReviewCount(c, review.MealID, 1)
		c.JSON(http.StatusCreated, insertResponse(result))
	}
}

func (h *Controller) GetReviews() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filterInput query.ReviewFilter
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

		reviews, err := findAll[models.Review](ctx, h.reviews, filterInput.Build(), page.FindOptions())
		if err != nil {
			h.fail(c, err, "error occurred while listing reviews")
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

func (h *Controller) UpdateReview() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := query.ObjectID(c.Param("id"))
		if err != nil {
			h.fail(c, err, "")
			return
		}

		var input query.ReviewUpdate
		if !bind(c, &input) {
			return
		}
		updateObj, err := input.Fields()
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

		result, err := updateOne(ctx, h.reviews, filter, query.Set(updateObj), false, "review")
		if err != nil {
			h.fail(c, err, "review update failed")
			return
		}
		c.JSON(http.StatusOK, updateResponse(result))
	}
}

func (h *Controller) DeleteReview() gin.HandlerFunc {
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

		// Fetch the review first; its mealId is needed after the delete
		review, err := findOne[models.Review](ctx, h.reviews, filter, "review")
		if err != nil {
			h.fail(c, err, "error occurred while fetching the review")
			return
		}
		result, err := deleteOne(ctx, h.reviews, filter, "review")
		if err != nil {
			h.fail(c, err, "review delete failed")
			return
		}
		h.adjustReviewCount(c, review.MealID, -1)
		c.JSON(http.StatusOK, deleteResponse(result))
	}
}

// adjustReviewCount is best effort: the review itself is already stored,
// so a failure here is only logged. The counter never goes below zero.
func (h *Controller) adjustReviewCount(c *gin.Context, mealID string, delta int) {
	id, err := primitive.ObjectIDFromHex(mealID)
	if err != nil {
		return
	}

	filter := byID(id)
	if delta < 0 {
		filter["reviewCount"] = bson.M{"$gt": 0}
	}

	ctx, cancel := h.context(c)
	defer cancel()

	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "reviewCount", Value: delta}}}}
	if _, err := h.meals.UpdateOne(ctx, filter, update); err != nil {
		log.Printf("rid=%s review count update failed meal=%s err=%v", middleware.RequestID(c), mealID, err)
	}
}
