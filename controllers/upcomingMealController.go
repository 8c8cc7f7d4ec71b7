package controller

import (
	"net/http"
	"time"

	"hostel-meal-management/models"
	"hostel-meal-management/query"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (h *Controller) GetUpcomingMeals() gin.HandlerFunc {
	return func(c *gin.Context) {
		var page query.Page
		if err := c.ShouldBindQuery(&page); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := h.context(c)
		defer cancel()

		meals, err := findAll[models.UpcomingMeal](ctx, h.upcomingMeals, bson.M{}, page.FindOptions())
		if err != nil {
			h.fail(c, err, "error occurred while listing upcoming meals")
			return
		}
		c.JSON(http.StatusOK, meals)
	}
}

func (h *Controller) CreateUpcomingMeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input query.UpcomingMealUpdate
		if !bind(c, &input) {
			return
		}

		// title, category and price are mandatory on create
		fields, err := input.Fields()
		if err == nil {
			err = query.Require(fields, "title", "category", "price")
		}
		if err != nil {
			h.fail(c, err, "")
			return
		}
		fields = withDefault(fields, "like", 0)
		fields = withDefault(fields, "reviewCount", 0)
		fields = append(fields, bson.E{Key: "createdAt", Value: time.Now()})

		ctx, cancel := h.context(c)
		defer cancel()

		result, insertErr := h.upcomingMeals.InsertOne(ctx, fields)
		if insertErr != nil {
			h.fail(c, insertErr, "upcoming meal was not created")
			return
		}
		c.JSON(http.StatusCreated, insertResponse(result))
	}
}

// UpdateUpcomingMeal merges the supplied fields into the upcoming meal,
// creating it under the given id when it does not exist yet.
func (h *Controller) UpdateUpcomingMeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := query.ObjectID(c.Param("id"))
		if err != nil {
			h.fail(c, err, "")
			return
		}

		var input query.UpcomingMealUpdate
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

		// Insert the upcoming meal if it does not exist yet
		result, err := updateOne(ctx, h.upcomingMeals, byID(id), query.Set(updateObj), true, "upcoming meal")
		if err != nil {
			h.fail(c, err, "upcoming meal update failed")
			return
		}
		c.JSON(http.StatusOK, updateResponse(result))
	}
}

// PublishUpcomingMeal moves an upcoming meal into the meal list, keeping
// its id. The insert happens first so a failure never loses the meal.
func (h *Controller) PublishUpcomingMeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := query.ObjectID(c.Param("id"))
		if err != nil {
			h.fail(c, err, "")
			return
		}

		ctx, cancel := h.context(c)
		defer cancel()

		// Check if the upcoming meal exists
		doc, err := findOne[bson.M](ctx, h.upcomingMeals, byID(id), "upcoming meal")
		if err != nil {
			h.fail(c, err, "error occurred while fetching the upcoming meal")
			return
		}

		// an upserted draft may lack what a published meal needs
		if err := query.RequireDoc(doc, "title", "category", "price"); err != nil {
			h.fail(c, err, "")
			return
		}
		delete(doc, "serveDate")
		doc["createdAt"] = time.Now()

		// Insert into meals first so a failed delete never loses the meal
		result, insertErr := h.meals.InsertOne(ctx, doc)
		if mongo.IsDuplicateKeyError(insertErr) {
			h.fail(c, query.Invalid("id", "meal already published"), "")
			return
		}
		if insertErr != nil {
			h.fail(c, insertErr, "meal was not published")
			return
		}

		// Remove it from the upcoming list
		if _, err := h.upcomingMeals.DeleteOne(ctx, byID(id)); err != nil {
			h.fail(c, err, "published meal could not be removed from upcoming meals")
			return
		}
		c.JSON(http.StatusCreated, insertResponse(result))
	}
}
