package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	helper "hostel-meal-management/helpers"
	"hostel-meal-management/middleware"
	"hostel-meal-management/models"
	"hostel-meal-management/query"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var passwordCost = bcrypt.DefaultCost

type signUpRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Image    string `json:"image"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GetUsers lists users matching the search, with the total count so the
// admin table can page.
func (h *Controller) GetUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filterInput query.UserFilter
		var page query.Page
		if err := c.ShouldBindQuery(&filterInput); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := c.ShouldBindQuery(&page); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter := filterInput.Build()

		ctx, cancel := h.context(c)
		defer cancel()

		users, err := findAll[models.User](ctx, h.users, filter, page.FindOptions())
		if err != nil {
			h.fail(c, err, "error occurred while listing users")
			return
		}

		// Count every match, not just this page
		totalCount, err := h.users.CountDocuments(ctx, filter)
		if err != nil {
			h.fail(c, err, "error occurred while counting users")
			return
		}

		resp := gin.H{
			"total_count": totalCount,
			"users":       users,
		}
		if p, err := strconv.Atoi(page.Page); err == nil {
			resp["page"] = p
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *Controller) GetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := h.context(c)
		defer cancel()

		user, err := findOne[models.User](ctx, h.users, bson.M{"email": c.Param("email")}, "user")
		if err != nil {
			h.fail(c, err, "error occurred while fetching the user")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpsertUser saves the profile the client has after sign-in. Callers may
// only write their own record unless they are admins.
func (h *Controller) UpsertUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input query.UserUpdate
		if !bind(c, &input) {
			return
		}
		updateObj, err := input.Fields()
		if err != nil {
			h.fail(c, err, "")
			return
		}
		if !h.authorize(c, *input.Email) {
			return
		}

		ctx, cancel := h.context(c)
		defer cancel()

		// Upsert keyed by email
		filter := bson.M{"email": *input.Email}
		result, err := updateOne(ctx, h.users, filter, query.Set(updateObj), true, "user")
		if err != nil {
			h.fail(c, err, "user was not saved")
			return
		}
		c.JSON(http.StatusOK, updateResponse(result))
	}
}

// CheckAdmin reports whether the caller is an admin. Asking about anyone
// else is forbidden.
func (h *Controller) CheckAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")
		if email != c.GetString(middleware.EmailKey) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}

		ctx, cancel := h.context(c)
		defer cancel()

		admin, err := h.IsAdmin(ctx, email)
		if err != nil {
			h.fail(c, err, "error occurred while checking the role")
			return
		}
		c.JSON(http.StatusOK, gin.H{"admin": admin})
	}
}

// SetRole changes the role of the user with the given id. An empty body
// promotes the user to admin.
func (h *Controller) SetRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := query.ObjectID(c.Param("id"))
		if err != nil {
			h.fail(c, err, "")
			return
		}

		var input query.RoleUpdate
		if c.Request.ContentLength != 0 && !bind(c, &input) {
			return
		}
		// an empty body promotes to admin
		if input.Role == nil {
			role := models.RoleAdmin
			input.Role = &role
		}
		updateObj, err := input.Fields()
		if err != nil {
			h.fail(c, err, "")
			return
		}

		ctx, cancel := h.context(c)
		defer cancel()

		result, err := updateOne(ctx, h.users, byID(id), query.Set(updateObj), false, "user")
		if err != nil {
			h.fail(c, err, "role update failed")
			return
		}
		c.JSON(http.StatusOK, updateResponse(result))
	}
}

// UpdateBadge records the badge bought with a package, creating the user
// record when the email is not known yet.
func (h *Controller) UpdateBadge() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input query.BadgeUpdate
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

		filter := bson.M{"email": c.Param("email")}
		result, err := updateOne(ctx, h.users, filter, query.Set(updateObj), true, "user")
		if err != nil {
			h.fail(c, err, "badge update failed")
			return
		}
		c.JSON(http.StatusOK, updateResponse(result))
	}
}

// SignUp creates a user with a hashed password and signs them in. An email
// that is already stored is rejected.
func (h *Controller) SignUp() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signUpRequest
		if !bind(c, &req) {
			return
		}

		// hash password
		password, err := HashPassword(req.Password)
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			h.fail(c, query.Invalid("password", "too long"), "")
			return
		}
		if err != nil {
			h.fail(c, err, "password could not be stored")
			return
		}

		user := models.User{
			Name:     req.Name,
			Email:    req.Email,
			Image:    req.Image,
			Role:     models.RoleUser,
			Password: password,
		}
		user.ID = primitive.NewObjectID()
		user.CreatedAt = time.Now()

		ctx, cancel := h.context(c)
		defer cancel()

		// the unique email index rejects a second sign-up
		if _, err := h.users.InsertOne(ctx, user); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				h.fail(c, query.Invalid("email", "already registered"), "")
				return
			}
			h.fail(c, err, "user was not created")
			return
		}

		token, err := helper.GenerateToken(h.tokenSecret, user.Email, h.tokenTTL)
		if err != nil {
			h.fail(c, err, "token could not be issued")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"token": token})
	}
}

// Login checks the password and hands out an access token.
func (h *Controller) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if !bind(c, &req) {
			return
		}

		ctx, cancel := h.context(c)
		defer cancel()

		// find a user with that email
		var foundUser models.User
		err := h.users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&foundUser)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			h.fail(c, query.Storage("find user", err), "error occurred while signing in")
			return
		}

		// unknown emails and records without a password fail the same way
		if ok, msg := VerifyPassword(req.Password, foundUser.Password); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		token, err := helper.GenerateToken(h.tokenSecret, foundUser.Email, h.tokenTTL)
		if err != nil {
			h.fail(c, err, "token could not be issued")
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword compares userPassword with the stored hash.
func VerifyPassword(userPassword string, providedPassword string) (bool, string) {
	if err := bcrypt.CompareHashAndPassword([]byte(providedPassword), []byte(userPassword)); err != nil {
		return false, "login or password is incorrect"
	}
	return true, ""
}
