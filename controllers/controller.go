package controller

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"hostel-meal-management/database"
	"hostel-meal-management/middleware"
	"hostel-meal-management/models"
	"hostel-meal-management/query"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var validate = validator.New()

// PaymentIntentCreator talks to the payment provider.
type PaymentIntentCreator interface {
	CreatePaymentIntent(ctx context.Context, amount int64) (clientSecret string, err error)
}

// ImageUploader stores an uploaded image and returns its public URL.
type ImageUploader interface {
	PutImage(ctx context.Context, prefix, filename, contentType string, r io.Reader, size int64) (string, error)
}

// Controller holds the collections and collaborators the handlers use.
type Controller struct {
	client         *mongo.Client
	meals          *mongo.Collection
	upcomingMeals  *mongo.Collection
	packages       *mongo.Collection
	users          *mongo.Collection
	payments       *mongo.Collection
	requestedMeals *mongo.Collection
	reviews        *mongo.Collection

	timeout     time.Duration
	tokenSecret []byte
	tokenTTL    time.Duration
	intents     PaymentIntentCreator
	images      ImageUploader
}

type Option func(*Controller)

func WithTimeout(d time.Duration) Option {
	return func(h *Controller) { h.timeout = d }
}

func WithTokens(secret []byte, ttl time.Duration) Option {
	return func(h *Controller) {
		h.tokenSecret = secret
		h.tokenTTL = ttl
	}
}

// WithPaymentIntents enables POST /create-payment-intent.
func WithPaymentIntents(p PaymentIntentCreator) Option {
	return func(h *Controller) { h.intents = p }
}

// WithImages enables meal image uploads.
func WithImages(u ImageUploader) Option {
	return func(h *Controller) { h.images = u }
}

func New(db *mongo.Database, opts ...Option) *Controller {
	h := &Controller{
		client:         db.Client(),
		meals:          database.OpenCollection(db, database.Meals),
		upcomingMeals:  database.OpenCollection(db, database.UpcomingMeals),
		packages:       database.OpenCollection(db, database.Packages),
		users:          database.OpenCollection(db, database.Users),
		payments:       database.OpenCollection(db, database.Payments),
		requestedMeals: database.OpenCollection(db, database.RequestedMeals),
		reviews:        database.OpenCollection(db, database.Reviews),
		timeout:        10 * time.Second,
		tokenTTL:       time.Hour,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Timeout is the deadline every store call made for a request gets.
func (h *Controller) Timeout() time.Duration {
	return h.timeout
}

// IsAdmin implements middleware.RoleLookup. Unknown users are not admins.
func (h *Controller) IsAdmin(ctx context.Context, email string) (bool, error) {
	var user models.User
	opts := options.FindOne().SetProjection(bson.M{"role": 1})
	err := h.users.FindOne(ctx, bson.M{"email": email}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

func (h *Controller) context(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// fail writes err as a JSON response. Storage errors are logged and
// replaced by msg so that driver details never reach the client.
func (h *Controller) fail(c *gin.Context, err error, msg string) {
	switch query.KindOf(err) {
	case query.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case query.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("rid=%s %s: %v", middleware.RequestID(c), msg, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

// bind decodes the JSON body into v and runs struct validation.
func bind(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	if validationErr := validate.Struct(v); validationErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		return false
	}
	return true
}

// authorize lets the request continue when the caller is email or an
// admin; otherwise it writes 403 and returns false.
func (h *Controller) authorize(c *gin.Context, email string) bool {
	caller := c.GetString(middleware.EmailKey)
	if caller != "" && caller == email {
		return true
	}
	admin, err := h.isCallerAdmin(c)
	if err != nil {
		h.fail(c, err, "error occurred while checking permissions")
		return false
	}
	if !admin {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
		return false
	}
	return true
}

func (h *Controller) isCallerAdmin(c *gin.Context) (bool, error) {
	caller := c.GetString(middleware.EmailKey)
	if caller == "" {
		return false, nil
	}
	ctx, cancel := h.context(c)
	defer cancel()
	return h.IsAdmin(ctx, caller)
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, what string) (T, error) {
	var result T
	err := coll.FindOne(ctx, filter).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return result, query.NotFound(what)
	}
	if err != nil {
		return result, query.Storage("find "+what, err)
	}
	return result, nil
}

// updateOne applies update to the document matched by filter. Without
// upsert a miss is reported as not found and nothing is written.
func updateOne(ctx context.Context, coll *mongo.Collection, filter interface{}, update bson.D, upsert bool, what string) (*mongo.UpdateResult, error) {
	opt := options.Update().SetUpsert(upsert)
	result, err := coll.UpdateOne(ctx, filter, update, opt)
	if err != nil {
		return nil, query.Storage("update "+what, err)
	}
	if !upsert && result.MatchedCount == 0 {
		return nil, query.NotFound(what)
	}
	return result, nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, filter interface{}, what string) (*mongo.DeleteResult, error) {
	result, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return nil, query.Storage("delete "+what, err)
	}
	if result.DeletedCount == 0 {
		return nil, query.NotFound(what)
	}
	return result, nil
}

func insertResponse(result *mongo.InsertOneResult) gin.H {
	return gin.H{"acknowledged": true, "insertedId": result.InsertedID}
}

func updateResponse(result *mongo.UpdateResult) gin.H {
	return gin.H{
		"acknowledged":  true,
		"matchedCount":  result.MatchedCount,
		"modifiedCount": result.ModifiedCount,
		"upsertedCount": result.UpsertedCount,
		"upsertedId":    result.UpsertedID,
	}
}

func deleteResponse(result *mongo.DeleteResult) gin.H {
	return gin.H{"acknowledged": true, "deletedCount": result.DeletedCount}
}

// withDefault appends key unless the client already supplied it.
func withDefault(fields bson.D, key string, value interface{}) bson.D {
	for _, e := range fields {
		if e.Key == key {
			return fields
		}
	}
	return append(fields, bson.E{Key: key, Value: value})
}

func byID(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id}
}
