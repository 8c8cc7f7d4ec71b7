package controller

import (
	"log"
	"net/http"
	"time"

	"hostel-meal-management/middleware"
	"hostel-meal-management/models"
	"hostel-meal-management/payment"
	"hostel-meal-management/query"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type paymentIntentRequest struct {
	Price *query.Number `json:"price"`
}

// CreatePaymentIntent turns a price into a provider payment intent and
// returns its client secret.
func (h *Controller) CreatePaymentIntent() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.intents == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payments are not configured"})
			return
		}

		var req paymentIntentRequest
		if !bind(c, &req) {
			return
		}
		if req.Price == nil {
			h.fail(c, query.Invalid("price", "required"), "")
			return
		}
		price, err := req.Price.Float()
		if err != nil {
			h.fail(c, query.Invalid("price", "must be a number"), "")
			return
		}
		// the provider charges in the smallest currency unit
		amount, err := payment.AmountInCents(price)
		if err != nil {
			h.fail(c, query.Invalid("price", err.Error()), "")
			return
		}

		ctx, cancel := h.context(c)
		defer cancel()

		clientSecret, err := h.intents.CreatePaymentIntent(ctx, amount)
		if err != nil {
			log.Printf("rid=%s payment intent failed amount=%d err=%v", middleware.RequestID(c), amount, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider rejected the request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
	}
}

// SavePayment stores the confirmed payment as sent.
func (h *Controller) SavePayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p models.Payment
		if !bind(c, &p) {
			return
		}
		if !h.authorize(c, p.Email) {
			return
		}

		// Store the payment as the client confirmed it
		p.ID = primitive.NewObjectID()
		p.CreatedAt = time.Now()

		ctx, cancel := h.context(c)
		defer cancel()

		result, insertErr := h.payments.InsertOne(ctx, p)
		if insertErr != nil {
			h.fail(c, insertErr, "payment was not saved")
			return
		}
		c.JSON(http.StatusCreated, insertResponse(result))
	}
}

func (h *Controller) GetPayments() gin.HandlerFunc {
	return func(c *gin.Context) {
		var page query.Page
		if err := c.ShouldBindQuery(&page); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := h.context(c)
		defer cancel()

		payments, err := findAll[models.Payment](ctx, h.payments, bson.M{}, page.FindOptions())
		if err != nil {
			h.fail(c, err, "error occurred while listing payments")
			return
		}
		c.JSON(http.StatusOK, payments)
	}
}

// GetPaymentsByEmail is the caller's payment history.
func (h *Controller) GetPaymentsByEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		var page query.Page
		if err := c.ShouldBindQuery(&page); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := h.context(c)
		defer cancel()

		filter := bson.M{"email": c.Param("email")}
		payments, err := findAll[models.Payment](ctx, h.payments, filter, page.FindOptions())
		if err != nil {
			h.fail(c, err, "error occurred while listing payments")
			return
		}
		c.JSON(http.StatusOK, payments)
	}
}
